package ui

import (
	"fmt"
	"strings"

	"github.com/five82/tabula/internal/logtail"
)

// renderActivity shows the tail of the log file as an overlay.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	width := clamp(m.width-4, 40, 120)
	inner := width - 6
	room := max(m.height-8, 3)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Activity"))
	b.WriteString("\n\n")

	switch {
	case m.config.LogFile == "":
		b.WriteString(styles.MutedText.Render("Logging is disabled."))
	case m.activityErr != nil:
		b.WriteString(styles.DangerText.Render(wrap(m.activityErr.Error(), inner)))
	case len(m.activity) == 0:
		b.WriteString(styles.MutedText.Render("Nothing logged yet."))
	default:
		entries := m.activity
		if len(entries) > room {
			entries = entries[len(entries)-room:]
		}
		for _, e := range entries {
			b.WriteString(m.formatEntry(e, inner))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%s · any key closes", m.config.LogFile)))
	return m.overlay(styles.Modal.Width(width).Render(b.String()))
}

func (m Model) formatEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	used := 0
	if e.HasTime() {
		ts := e.Time.Format("15:04:05")
		b.WriteString(styles.FaintText.Render(ts) + " ")
		used += len(ts) + 1
	}
	if e.Source != "" {
		b.WriteString(styles.AccentText.Render(e.Source) + " ")
		used += len(e.Source) + 1
	}
	msgStyle := styles.Text
	if e.Level == logtail.LevelWarn {
		msgStyle = styles.WarningText
	}
	b.WriteString(msgStyle.Render(truncateCell(e.Message, width-used)))
	return b.String()
}
