package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

// notice is a transient status line.
type notice struct {
	text  string
	level noticeLevel
	seq   int
}

type noticeExpiredMsg struct{ seq int }

// setNotice replaces the current notice without scheduling its expiry.
func (m *Model) setNotice(level noticeLevel, text string) {
	m.noticeSeq++
	m.notice = notice{text: text, level: level, seq: m.noticeSeq}
}

// notify shows a notice that clears itself after NoticeTTL. A newer notice
// is never cleared by an older timer.
func (m *Model) notify(level noticeLevel, text string) tea.Cmd {
	m.setNotice(level, text)
	return expireNoticeCmd(m.notice.seq)
}

func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// noticeLevelFor picks a level for an import summary.
func noticeLevelFor(summary string) noticeLevel {
	if strings.HasPrefix(summary, "Imported") && !strings.Contains(summary, "skipped") && !strings.Contains(summary, "warnings") {
		return noticeSuccess
	}
	if strings.HasPrefix(summary, "Imported") {
		return noticeInfo
	}
	return noticeError
}

func (m Model) renderNotice() string {
	if m.notice.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.InfoText
	switch m.notice.level {
	case noticeSuccess:
		style = styles.SuccessText
	case noticeError:
		style = styles.DangerText
	}
	// One line only; the full text is in the activity log.
	text := truncateCell(m.notice.text, m.width-2)
	return " " + style.Render(text)
}
