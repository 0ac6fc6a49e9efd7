// Package state holds the authoritative table contents for Tabula.
//
// # Overview
//
// Store owns the ordered row sequence and the column list. Every other
// component reads through it and writes through its operations; nothing
// else keeps a private copy of the data.
//
//	UI / workbench:               Store:
//	┌────────────────┐            ┌─────────────────┐
//	│ edit / import  │───────────→│ ReplaceRows()   │
//	│ delete / drag  │  (mutex)   │ UpdateRow()     │
//	│ column manager │            │ DeleteRow()     │
//	│      ↓         │            │ ReplaceColumns()│
//	│ render         │←───────────│ Snapshot()      │
//	└────────────────┘            └─────────────────┘
//
// # Core Types
//
// Store:
//   - Guards a single Snapshot with sync.RWMutex
//   - Writers take the write lock, readers share the read lock
//   - The zero value is usable
//
// Snapshot:
//   - Columns, Rows, a monotonically increasing Version and UpdatedAt
//   - Returned by value with rows and fields deep-copied
//
// # Mutation Semantics
//
// ReplaceRows installs a whole new sequence. Identifiers must be unique, so
// rows lacking one, or repeating an earlier one, get a fresh identifier.
//
// UpdateRow merges the given fields into the matching row. Keys not
// mentioned keep their values and the row keeps its position. An unknown
// identifier is a no-op and reports false.
//
// DeleteRow removes the matching row and keeps the relative order of the
// rest. An unknown identifier is a no-op and reports false.
//
// ReplaceColumns installs a new column list. Row fields are never touched
// when columns change, so hidden or undeclared fields survive.
//
// Version only moves when something actually changed, which lets callers
// cheaply detect staleness.
package state
