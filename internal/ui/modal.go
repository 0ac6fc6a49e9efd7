package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width int) string
}

// promptPurpose says what a submitted prompt value is for.
type promptPurpose int

const (
	promptImport promptPurpose = iota
	promptExport
)

// promptResultMsg carries a submitted prompt value back to the model.
type promptResultMsg struct {
	purpose promptPurpose
	value   string
}

// confirmMsg is sent when a confirmation is accepted.
type confirmMsg struct {
	rowID string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func newInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

// promptModal asks for one line of text.
type promptModal struct {
	purpose promptPurpose
	title   string
	hint    string
	input   textinput.Model
}

func newPromptModal(purpose promptPurpose, title, hint, value string) *promptModal {
	return &promptModal{
		purpose: purpose,
		title:   title,
		hint:    hint,
		input:   newInput(value, hint),
	}
}

func (p *promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Confirm):
			return p, emit(promptResultMsg{purpose: p.purpose, value: strings.TrimSpace(p.input.Value())}), true
		case key.Matches(k, keys.Escape):
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p *promptModal) View(theme Theme, width int) string {
	styles := theme.Styles()
	inner := width - 6
	p.input.Width = inner - 3

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(wrap(p.hint, inner)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("enter confirm · esc cancel"))
	return styles.Modal.Width(width).Render(b.String())
}

// confirmModal asks a yes/no question about one row.
type confirmModal struct {
	question string
	rowID    string
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes):
		return c, emit(confirmMsg{rowID: c.rowID}), true
	case key.Matches(k, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width int) string {
	styles := theme.Styles()
	body := styles.DangerText.Render(wrap(c.question, width-6)) + "\n\n" +
		styles.MutedText.Render(fmt.Sprintf("%s yes · %s no", keyHelp(DefaultKeyMap().Yes), keyHelp(DefaultKeyMap().No)))
	return styles.Modal.Width(width).Render(body)
}

func keyHelp(b key.Binding) string { return b.Help().Key }
