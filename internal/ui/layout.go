package ui

import "time"

// Column width limits for the table.
const (
	// MinCellWidth is the narrowest a column is drawn.
	MinCellWidth = 4

	// MaxCellWidth caps a column; longer values are truncated.
	MaxCellWidth = 28

	// gutterWidth is the marker area left of each row.
	gutterWidth = 2
)

// Chrome rows around the table: header, search line, column headers,
// footer status, notice and help bar.
const chromeHeight = 6

// Activity log limits.
const (
	// ActivityLines is the number of log lines shown in the activity overlay.
	ActivityLines = 200
)

// Timing constants.
const (
	// NoticeTTL is how long a notice stays visible.
	NoticeTTL = 4 * time.Second
)
