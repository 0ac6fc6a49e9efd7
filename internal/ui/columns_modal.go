package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tabula/internal/workbench"
)

type columnsAction int

const (
	columnsBrowse columnsAction = iota
	columnsAdding
	columnsRenaming
)

// columnsModal lists every column with its visibility and edits them in
// place through the workbench.
type columnsModal struct {
	bench  *workbench.Workbench
	cursor int
	action columnsAction
	input  textinput.Model
	err    string
}

func newColumnsModal(bench *workbench.Workbench) *columnsModal {
	return &columnsModal{bench: bench}
}

func (c *columnsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if c.action != columnsBrowse {
		if ok {
			switch {
			case key.Matches(k, keys.Confirm):
				c.submit()
				return c, nil, false
			case key.Matches(k, keys.Escape):
				c.action = columnsBrowse
				c.err = ""
				return c, nil, false
			}
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd, false
	}
	if !ok {
		return c, nil, false
	}

	cols := c.bench.Store().Columns()
	c.err = ""
	switch {
	case key.Matches(k, keys.Escape), key.Matches(k, keys.Columns):
		return c, nil, true
	case key.Matches(k, keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(k, keys.Down):
		if c.cursor < len(cols)-1 {
			c.cursor++
		}
	case key.Matches(k, keys.Toggle):
		if c.cursor < len(cols) {
			if _, err := c.bench.ToggleColumn(cols[c.cursor].Key); err != nil {
				c.err = err.Error()
			}
		}
	case key.Matches(k, keys.Add):
		c.action = columnsAdding
		c.input = newInput("", "Column label")
	case key.Matches(k, keys.Rename):
		if c.cursor < len(cols) {
			c.action = columnsRenaming
			c.input = newInput(cols[c.cursor].Label, "Column label")
		}
	}
	return c, nil, false
}

func (c *columnsModal) submit() {
	value := c.input.Value()
	var err error
	switch c.action {
	case columnsAdding:
		_, err = c.bench.AddColumn(value)
		if err == nil {
			c.cursor = len(c.bench.Store().Columns()) - 1
		}
	case columnsRenaming:
		cols := c.bench.Store().Columns()
		if c.cursor < len(cols) {
			err = c.bench.RelabelColumn(cols[c.cursor].Key, value)
		}
	}
	if err != nil {
		c.err = err.Error()
		return
	}
	c.err = ""
	c.action = columnsBrowse
}

func (c *columnsModal) View(theme Theme, width int) string {
	styles := theme.Styles()
	inner := width - 6

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Manage Columns"))
	b.WriteString("\n\n")

	for i, col := range c.bench.Store().Columns() {
		box := "[ ] "
		if col.Visible {
			box = "[x] "
		}
		line := box + truncateCell(col.Label, inner-len(box)-len(col.Key)-3) + styles.FaintText.Render("  "+col.Key)
		if i == c.cursor {
			line = styles.Selected.Render(padRight(box+col.Label, inner-len(col.Key)-2)) + styles.FaintText.Render("  "+col.Key)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch c.action {
	case columnsAdding:
		b.WriteString("\n" + styles.AccentText.Render("New column") + "\n")
		c.input.Width = inner - 3
		b.WriteString(c.input.View() + "\n")
	case columnsRenaming:
		b.WriteString("\n" + styles.AccentText.Render("Rename column") + "\n")
		c.input.Width = inner - 3
		b.WriteString(c.input.View() + "\n")
	}

	if c.err != "" {
		b.WriteString("\n" + styles.DangerText.Render(wrap(c.err, inner)) + "\n")
	}

	b.WriteString("\n")
	if c.action == columnsBrowse {
		b.WriteString(styles.MutedText.Render("space toggle · a add · r rename · esc close"))
	} else {
		b.WriteString(styles.MutedText.Render("enter save · esc back"))
	}
	return styles.Modal.Width(width).Render(b.String())
}
