// Package workbench bundles one table session.
//
// A Workbench owns the transient state that sits beside the record store:
// the view parameters (search, sort, page) and the edit session. Each
// method is one complete user event. The terminal UI and the headless
// commands both drive the table through it.
//
// Import rows are rekeyed against the existing columns before they replace
// the store contents: exported files carry column labels as headers, and
// mapping them back to keys makes an export followed by an import restore
// the same values under the same keys.
package workbench
