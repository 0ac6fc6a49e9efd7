// Package csvio converts between CSV text and table rows.
//
// Parsing treats the first record as the header and keys every field by
// header name, so imported rows line up with columns whose keys match the
// headers. Writing emits column labels as the header and reads each value
// by column key.
package csvio
