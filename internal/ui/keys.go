package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Activity   key.Binding
	Escape     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// View
	Search    key.Binding
	Sort      key.Binding
	ClearSort key.Binding

	// Rows
	Edit      key.Binding
	NextCell  key.Binding
	PrevCell  key.Binding
	SaveAll   key.Binding
	CancelRow key.Binding
	Delete    key.Binding
	Pick      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Copy      key.Binding

	// Table
	Columns key.Binding
	Import  key.Binding
	Export  key.Binding

	// Modals
	Confirm key.Binding
	Toggle  key.Binding
	Add     key.Binding
	Rename  key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel edits / dismiss"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next column"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("pgup/[", "Previous page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("pgdown/]", "Next page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by column"),
		),
		ClearSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Original order"),
		),

		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit row"),
		),
		NextCell: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next cell"),
		),
		PrevCell: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous cell"),
		),
		SaveAll: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save all edits"),
		),
		CancelRow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Cancel row edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete row"),
		),
		Pick: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Pick up / drop row"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Move row up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Move row down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy row as CSV"),
		),

		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Manage columns"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Import CSV"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Export"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Toggle column"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add column"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename column"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Edit, k.SaveAll, k.Columns, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Search, k.Sort, k.ClearSort},
		{k.Edit, k.NextCell, k.PrevCell, k.SaveAll, k.CancelRow, k.Escape},
		{k.Delete, k.Pick, k.MoveUp, k.MoveDown, k.Copy},
		{k.Columns, k.Import, k.Export},
		{k.CycleTheme, k.Activity, k.Help, k.Quit},
	}
}

// editingHelp is shown in the footer while a cell input has focus.
func (k keyMap) editingHelp() []key.Binding {
	return []key.Binding{k.NextCell, k.PrevCell, k.Confirm, k.SaveAll, k.Escape}
}
