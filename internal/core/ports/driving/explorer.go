package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// ExplorerService drives the vault browsing experience. It owns the
// application state (collections, current folder, query, filter, sort,
// expand state) and funnels every mutation through a named command; the
// derived item list is recomputed from state, never patched in place.
type ExplorerService interface {
	// Refresh refetches both collections from the backend and replaces
	// the local state. On failure the previous state stays visible.
	Refresh(ctx context.Context) error

	// LoadCached hydrates state from the local catalog snapshot, if any.
	// Returns the snapshot age so callers can hint staleness.
	LoadCached(ctx context.Context) (time.Duration, error)

	// Items computes the ordered list for the current view state.
	Items() []domain.ExplorerItem

	// MostCited computes the ranked highlight strip (top 5 by citations).
	MostCited() []domain.ExplorerItem

	// Breadcrumbs resolves the current folder's path, root first.
	Breadcrumbs() []domain.Folder

	// Tree returns the visible navigation-tree rows.
	Tree() []domain.TreeNode

	// Document returns a document from the current collections.
	Document(id string) (domain.Document, bool)

	// Folder returns a folder from the current collections.
	Folder(id string) (domain.Folder, bool)

	// EnterFolder makes folderID the current scope. Empty is the root.
	EnterFolder(folderID string)

	// CurrentFolder returns the current scope. Empty is the root.
	CurrentFolder() string

	// SetSearch sets the free-text name filter.
	SetSearch(query string)

	// Search returns the active name filter.
	Search() string

	// SetQuickFilter sets the quick-access filter.
	SetQuickFilter(filter domain.QuickFilter)

	// QuickFilter returns the active quick-access filter.
	QuickFilter() domain.QuickFilter

	// SetSort sets the sort field and direction.
	SetSort(field domain.SortField, ascending bool)

	// Sort returns the active sort field and direction.
	Sort() (domain.SortField, bool)

	// ToggleExpand flips a tree node and reports the new state.
	ToggleExpand(folderID string) bool

	// ToggleStar flips the local-only star override for a document.
	ToggleStar(documentID string)

	// CreateFolder creates a folder in the current scope and refetches.
	CreateFolder(ctx context.Context, name string) (*domain.Folder, error)

	// SetTier persists a document's tier and refetches on success.
	SetTier(ctx context.Context, documentID string, tier domain.SecurityTier) error

	// SetIndexing starts ingestion or removes embeddings, then refetches.
	SetIndexing(ctx context.Context, documentID string, indexed bool) error

	// MoveDocument reparents a document and refetches on success.
	MoveDocument(ctx context.Context, documentID, folderID string) error
}
