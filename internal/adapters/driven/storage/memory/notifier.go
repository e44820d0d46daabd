package memory

import (
	"sync"

	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Notification is one recorded notification.
type Notification struct {
	Level   driven.NotifyLevel
	Message string
}

// Notifier records notifications for inspection in tests.
type Notifier struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewNotifier creates an empty recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify records a notification.
func (n *Notifier) Notify(level driven.NotifyLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, Notification{Level: level, Message: message})
}

// Notifications returns a copy of everything recorded so far.
func (n *Notifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// Last returns the most recent notification, if any.
func (n *Notifier) Last() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notifications) == 0 {
		return Notification{}, false
	}
	return n.notifications[len(n.notifications)-1], true
}
