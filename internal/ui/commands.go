package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/export"
	"github.com/five82/tabula/internal/logtail"
	"github.com/five82/tabula/internal/table"
	"github.com/five82/tabula/internal/workbench"
)

// Messages

type importedMsg struct {
	path   string
	result csvio.Result
}

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct{ err error }

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

type reloadMsg csvio.Result

// Commands

func importCmd(ctx context.Context, path string, opts csvio.Options) tea.Cmd {
	return func() tea.Msg {
		return importedMsg{path: path, result: workbench.Load(ctx, path, opts)}
	}
}

func exportCmd(dir, name string, f export.Format, rows []table.Row, cols []table.Column) tea.Cmd {
	return func() tea.Msg {
		path, err := export.SaveFile(dir, name, f, rows, cols)
		return exportedMsg{path: path, err: err}
	}
}

func copyRowCmd(row table.Row, cols []table.Column) tea.Cmd {
	return func() tea.Msg {
		text, err := csvio.Export([]table.Row{row}, cols)
		if err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{err: clipboard.WriteAll(strings.TrimRight(text, "\n"))}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.Tail(path, ActivityLines)
		return activityMsg{entries: entries, err: err}
	}
}

func waitForReloadCmd(ch <-chan csvio.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(res)
	}
}
