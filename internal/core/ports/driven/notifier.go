package driven

// NotifyLevel classifies a user-facing notification.
type NotifyLevel int

const (
	// NotifyInfo is a neutral status message.
	NotifyInfo NotifyLevel = iota
	// NotifySuccess confirms a completed operation.
	NotifySuccess
	// NotifyError reports a failed operation.
	NotifyError
)

// Notifier is the transient notification channel. Every failure path in
// the core reports through it and leaves the view in its previous state;
// no failure is fatal.
type Notifier interface {
	// Notify emits a transient user-facing message.
	Notify(level NotifyLevel, message string)
}
