package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Zebra rows

	// Table colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text
	EditBg        string // Rows with open drafts

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Editing: lipgloss.NewStyle().
			Background(lipgloss.Color(t.EditBg)).
			Foreground(lipgloss.Color(t.Text)),

		Zebra: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header       lipgloss.Style
	Footer       lipgloss.Style
	Logo         lipgloss.Style
	ColumnHeader lipgloss.Style
	Selected     lipgloss.Style
	Editing      lipgloss.Style
	Zebra        lipgloss.Style
	Modal        lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Dark":  darkTheme(),
	"Light": lightTheme(),
}

var themeOrder = []string{"Dark", "Light"}

// GetTheme returns a theme by name. Unknown names get Dark.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return darkTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func darkTheme() Theme {
	// Tailwind CSS gray/indigo palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Dark",

		Background: "#111827", // gray-900
		Surface:    "#1f2937", // gray-800
		SurfaceAlt: "#182130", // between gray-900 and gray-800

		SelectionBg:   "#4f46e5", // indigo-600
		SelectionText: "#f9fafb", // gray-50
		EditBg:        "#3b2f0b", // dim amber

		Border:      "#374151", // gray-700
		BorderFocus: "#818cf8", // indigo-400

		Text:    "#f3f4f6", // gray-100
		Muted:   "#9ca3af", // gray-400
		Faint:   "#6b7280", // gray-500
		Accent:  "#818cf8", // indigo-400
		Success: "#34d399", // emerald-400
		Warning: "#fbbf24", // amber-400
		Danger:  "#f87171", // red-400
		Info:    "#22d3ee", // cyan-400
	}
}

func lightTheme() Theme {
	return Theme{
		Name: "Light",

		Background: "#ffffff",
		Surface:    "#f3f4f6", // gray-100
		SurfaceAlt: "#f9fafb", // gray-50

		SelectionBg:   "#c7d2fe", // indigo-200
		SelectionText: "#111827", // gray-900
		EditBg:        "#fef3c7", // amber-100

		Border:      "#d1d5db", // gray-300
		BorderFocus: "#4f46e5", // indigo-600

		Text:    "#111827", // gray-900
		Muted:   "#4b5563", // gray-600
		Faint:   "#9ca3af", // gray-400
		Accent:  "#4f46e5", // indigo-600
		Success: "#059669", // emerald-600
		Warning: "#b45309", // amber-700
		Danger:  "#dc2626", // red-600
		Info:    "#0891b2", // cyan-600
	}
}
