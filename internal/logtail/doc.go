// Package logtail reads the newest lines of Tabula's activity log.
//
// The application logs through the standard log package with the default
// flags, so each line starts with a "2006/01/02 15:04:05" timestamp followed
// by a lower-case package tag such as "workbench:". Tail keeps only the
// newest lines in a ring buffer while scanning, then Parse splits each line
// into time, source and message for the activity overlay.
package logtail
