// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExplorer is the main vault browsing view.
	ViewExplorer ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExplorer:
		return "explorer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// CatalogRefreshed signals a live refetch of documents and folders
// finished.
type CatalogRefreshed struct {
	Err error
}

// CachedCatalogLoaded signals the offline snapshot was hydrated.
type CachedCatalogLoaded struct {
	Age time.Duration
	Err error
}

// ItemSelected signals an explorer item was selected for inspection.
type ItemSelected struct {
	Item domain.ExplorerItem
}

// InspectorUpdated signals that one of the inspector's async
// sub-operations finished for the given item. The panel re-reads its
// state from the service; results for superseded selections were
// already dropped there.
type InspectorUpdated struct {
	ItemID string
}

// TierChanged signals a security tier mutation finished.
type TierChanged struct {
	ItemID string
	Tier   domain.SecurityTier
	Err    error
}

// IndexingToggled signals an ingest/remove-embeddings mutation finished.
type IndexingToggled struct {
	ItemID  string
	Indexed bool
	Err     error
}

// FolderCreated signals a folder creation finished.
type FolderCreated struct {
	Folder *domain.Folder
	Err    error
}

// DocumentMoved signals a reparenting mutation finished.
type DocumentMoved struct {
	ItemID   string
	FolderID string
	Err      error
}

// DownloadResolved carries a short-lived download URL back to the view.
type DownloadResolved struct {
	ItemID string
	URL    string
	Err    error
}

// Notice carries a transient user-facing notification for the status bar.
type Notice struct {
	Level   NoticeLevel
	Text    string
	IssueID uint64
}

// NoticeLevel is the severity of a Notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// NoticeExpired clears a notice after its display window.
type NoticeExpired struct {
	IssueID uint64
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
