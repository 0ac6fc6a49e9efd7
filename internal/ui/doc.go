// Package ui provides the terminal user interface for Tabula.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. Every key press is one event that
// runs to completion against the workbench, so the table, the drafts and
// the view parameters never change under a render. File reads and writes
// run as tea.Cmds and report back as messages.
//
// # Package Structure
//
//   - app.go: Options, Model, Init/Update/View and Run
//   - input_handlers.go: key routing for browse, search and edit modes, and
//     the actions they trigger
//   - table.go: page rendering, column sizing, draft overlay
//   - header.go: title bar, search line, footer and help bar
//   - modal.go, columns_modal.go: prompts, delete confirmation, column manager
//   - commands.go: import, export, clipboard, activity and reload commands
//   - notice.go: transient notices that expire after NoticeTTL
//   - activity.go: overlay over the tail of the log file
//   - theme.go: Dark and Light themes
//   - keys.go, help.go: key bindings and the help overlay
//
// # Modes
//
// Browse mode moves a cell cursor over the current page. Enter opens the
// selected row for editing and focuses a cell input; tab moves between
// cells, enter leaves the cell with the row still open, ctrl+s saves
// every open row and esc discards them all. Several rows can be open at
// once. Search mode sends typing to the search input and refilters on
// each keystroke.
//
// # Reordering
//
// Rows are moved in canonical order. m picks the selected row up and a
// second m drops it onto the row under the cursor; K and J move the
// selected row one place. The cursor follows the moved row.
//
// # Reloads
//
// When started with a watched file, reloads arrive as messages. A reload
// that arrives while any row is open is held until the edits are saved or
// cancelled.
package ui
