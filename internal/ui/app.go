package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tabula/internal/config"
	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/logtail"
	"github.com/five82/tabula/internal/prefs"
	"github.com/five82/tabula/internal/workbench"
)

// inputMode says which component receives key presses.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeEdit
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Workbench  *workbench.Workbench
	Config     config.Config
	Prefs      prefs.Prefs
	PrefsPath  string
	SourcePath string              // file the rows came from, shown in the header
	Reloads    <-chan csvio.Result // optional; fresh parses of SourcePath
	Notice     string              // shown once at startup
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	bench      *workbench.Workbench
	config     config.Config
	prefs      prefs.Prefs
	prefsPath  string
	sourcePath string
	reloads    <-chan csvio.Result
	keys       keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	mode   inputMode

	// Table cursor
	selectedRow int // index on the current page
	selectedCol int // index into the visible columns

	// Editing
	editingID string
	cellInput textinput.Model

	// Search
	searchInput textinput.Model

	pager paginator.Model
	help  help.Model

	// Row picked up with the pick key, waiting for a drop target.
	carrying string

	notice    notice
	noticeSeq int

	// A watcher reload that arrived while rows were being edited.
	pendingReload *csvio.Result

	modal        Modal
	showHelp     bool
	showActivity bool
	activity     []logtail.Entry
	activityErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search all fields"

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "Page %d of %d"

	m := Model{
		ctx:         ctx,
		bench:       opts.Workbench,
		config:      opts.Config,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		sourcePath:  opts.SourcePath,
		reloads:     opts.Reloads,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		cellInput:   textinput.New(),
		searchInput: search,
		pager:       pager,
		help:        help.New(),
	}
	if strings.TrimSpace(opts.Notice) != "" {
		m.setNotice(noticeLevelFor(opts.Notice), opts.Notice)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.notice.text != "" {
		cmds = append(cmds, expireNoticeCmd(m.notice.seq))
	}
	if m.reloads != nil {
		cmds = append(cmds, waitForReloadCmd(m.reloads))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.notice.seq {
			m.notice = notice{}
		}
		return m, nil

	case promptResultMsg:
		return m.handlePrompt(msg)

	case confirmMsg:
		return m.deleteRow(msg.rowID)

	case importedMsg:
		return m.handleImported(msg)

	case exportedMsg:
		return m.handleExported(msg)

	case copiedMsg:
		if msg.err != nil {
			cmd := m.notify(noticeError, "Copy failed: "+msg.err.Error())
			return m, cmd
		}
		cmd := m.notify(noticeSuccess, "Copied row to clipboard")
		return m, cmd

	case activityMsg:
		m.activity = msg.entries
		m.activityErr = msg.err
		return m, nil

	case reloadMsg:
		return m.handleReload(csvio.Result(msg))
	}

	// Forward everything else (cursor blink) to whatever has focus.
	var cmd tea.Cmd
	switch {
	case m.modal != nil:
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
	case m.mode == modeEdit:
		m.cellInput, cmd = m.cellInput.Update(msg)
	case m.mode == modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showActivity {
		return m.renderActivity()
	}

	if m.modal != nil {
		return m.overlay(m.modal.View(m.theme, m.modalWidth()))
	}

	return m.renderMain()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	res := m.bench.View()

	var b strings.Builder
	b.WriteString(m.renderHeader(res))
	b.WriteString("\n")
	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")
	b.WriteString(m.renderTable(res))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(res))
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) modalWidth() int {
	return clamp(m.width-4, 30, 60)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
