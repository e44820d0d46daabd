// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/styles"
)

// Bar displays transient notifications, catalog context and keybinding
// hints. Notifications replace each other; the newest wins and expires
// after a display window driven by NoticeExpired messages.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	notice    *messages.Notice
	itemCount int
	offline   bool
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.Notice:
		notice := msg
		s.notice = &notice
		return s, nil

	case messages.NoticeExpired:
		// Only clear if a newer notice has not replaced it.
		if s.notice != nil && s.notice.IssueID == msg.IssueID {
			s.notice = nil
		}
		return s, nil
	}

	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the notification or catalog context.
func (s *Bar) renderLeft() string {
	if s.notice != nil {
		switch s.notice.Level {
		case messages.NoticeError:
			return s.styles.Error.Render(s.notice.Text)
		case messages.NoticeSuccess:
			return s.styles.Success.Render(s.notice.Text)
		default:
			return s.styles.Normal.Render(s.notice.Text)
		}
	}

	var parts []string
	if s.offline {
		parts = append(parts, s.styles.Warning.Render("offline"))
	}
	parts = append(parts, s.styles.Muted.Render(fmt.Sprintf("%d items", s.itemCount)))
	return strings.Join(parts, " ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetItemCount sets the visible item count.
func (s *Bar) SetItemCount(count int) {
	s.itemCount = count
}

// SetOffline marks the bar as rendering from the offline snapshot.
func (s *Bar) SetOffline(offline bool) {
	s.offline = offline
}

// Offline reports whether the offline marker is shown.
func (s *Bar) Offline() bool {
	return s.offline
}

// Notice returns the currently displayed notice, if any.
func (s *Bar) Notice() *messages.Notice {
	return s.notice
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.notice = nil
	s.itemCount = 0
}
