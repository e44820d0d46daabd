package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

// Ensure NoticeBridge implements the notifier port.
var _ driven.Notifier = (*NoticeBridge)(nil)

// NoticeBridge adapts core notifications into Bubbletea messages. The
// core calls Notify from whatever goroutine a command runs on; the
// program consumes notices through WaitForNotice commands, so everything
// still flows through the single Update loop.
type NoticeBridge struct {
	notices chan messages.Notice
	nextID  atomic.Uint64
}

// NewNoticeBridge creates a notice bridge.
func NewNoticeBridge() *NoticeBridge {
	return &NoticeBridge{
		// Buffered so a burst of notifications never blocks the core.
		notices: make(chan messages.Notice, 16),
	}
}

// Notify implements driven.Notifier.
func (n *NoticeBridge) Notify(level driven.NotifyLevel, message string) {
	notice := messages.Notice{
		Level:   noticeLevel(level),
		Text:    message,
		IssueID: n.nextID.Add(1),
	}

	select {
	case n.notices <- notice:
	default:
		// Drop rather than block when the buffer is full.
	}
}

// WaitForNotice returns a command that delivers the next notice.
// The app re-arms it after every delivery.
func (n *NoticeBridge) WaitForNotice() tea.Cmd {
	return func() tea.Msg {
		return <-n.notices
	}
}

// noticeLevel maps the port severity onto the message severity.
func noticeLevel(level driven.NotifyLevel) messages.NoticeLevel {
	switch level {
	case driven.NotifySuccess:
		return messages.NoticeSuccess
	case driven.NotifyError:
		return messages.NoticeError
	default:
		return messages.NoticeInfo
	}
}
