// Package view derives the visible page of rows from the stored rows and
// the current search, sort and page parameters. Everything here is pure;
// the stored order is never changed by viewing.
package view
