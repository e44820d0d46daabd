// Package services implements the driving ports. Services orchestrate
// domain logic over the driven ports and own the application state.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

// Ensure ExplorerService implements the interface.
var _ driving.ExplorerService = (*ExplorerService)(nil)

// ExplorerService owns the vault browsing state. The collections are
// replaced wholesale by refetches; the only local-only mutation is the
// star override map, which the backend's store layer is expected to
// confirm on the next refetch. Derived output (items, breadcrumbs, tree)
// is recomputed from state on every call.
//
// A mutex guards the state because UI frameworks run async completions
// on separate goroutines.
type ExplorerService struct {
	vault    driven.VaultStore
	cache    driven.CatalogCache
	notifier driven.Notifier

	mu        sync.RWMutex
	documents map[string]domain.Document
	folders   map[string]domain.Folder
	docOrder  []string
	folderIdx *domain.FolderIndex

	currentFolder string
	searchQuery   string
	quickFilter   domain.QuickFilter
	sortField     domain.SortField
	sortAscending bool
	expanded      domain.ExpandSet

	// starOverrides holds optimistic star flips keyed by document id.
	// An entry is dropped once a refetch confirms it.
	starOverrides map[string]bool
}

// NewExplorerService creates an explorer service. cache and notifier may
// be nil; browsing then starts empty and failures are only logged.
func NewExplorerService(vault driven.VaultStore, cache driven.CatalogCache, notifier driven.Notifier) *ExplorerService {
	return &ExplorerService{
		vault:         vault,
		cache:         cache,
		notifier:      notifier,
		documents:     make(map[string]domain.Document),
		folders:       make(map[string]domain.Folder),
		folderIdx:     domain.NewFolderIndex(nil),
		sortField:     domain.SortByUpdatedAt,
		expanded:      domain.NewExpandSet(),
		starOverrides: make(map[string]bool),
	}
}

// Refresh refetches both collections and replaces local state. On any
// failure the previous state stays visible and a notification is raised.
func (s *ExplorerService) Refresh(ctx context.Context) error {
	if s.vault == nil {
		return domain.ErrVaultUnavailable
	}

	docs, err := s.vault.ListDocuments(ctx)
	if err != nil {
		s.notify(driven.NotifyError, "Could not load documents")
		return fmt.Errorf("listing documents: %w", err)
	}
	folders, err := s.vault.ListFolders(ctx)
	if err != nil {
		s.notify(driven.NotifyError, "Could not load folders")
		return fmt.Errorf("listing folders: %w", err)
	}

	s.replaceCollections(docs, folders)
	logger.Debug("catalog refreshed: %d documents, %d folders", len(docs), len(folders))

	if s.cache != nil {
		snap := driven.CatalogSnapshot{Documents: docs, Folders: folders, FetchedAt: time.Now()}
		if err := s.cache.SaveSnapshot(ctx, snap); err != nil {
			// Cache trouble never fails a refresh.
			logger.Warn("saving catalog snapshot: %v", err)
		}
	}
	return nil
}

// LoadCached hydrates state from the local snapshot, returning its age.
func (s *ExplorerService) LoadCached(ctx context.Context) (time.Duration, error) {
	if s.cache == nil {
		return 0, domain.ErrNotFound
	}
	snap, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	s.replaceCollections(snap.Documents, snap.Folders)
	logger.Debug("catalog loaded from snapshot taken %s", snap.FetchedAt)
	return time.Since(snap.FetchedAt), nil
}

// replaceCollections swaps in fresh collections, rebuilds the derived
// folder index and deterministic document order, and drops confirmed
// star overrides.
func (s *ExplorerService) replaceCollections(docs map[string]domain.Document, folders map[string]domain.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = docs
	s.folders = folders
	s.folderIdx = domain.NewFolderIndex(folders)

	// Collections arrive keyed by id; creation order is the stable
	// baseline the sort's tiebreak preserves.
	s.docOrder = s.docOrder[:0]
	for id := range docs {
		s.docOrder = append(s.docOrder, id)
	}
	sort.Slice(s.docOrder, func(i, j int) bool {
		a, b := docs[s.docOrder[i]], docs[s.docOrder[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	for id, starred := range s.starOverrides {
		doc, ok := docs[id]
		if !ok || doc.Starred == starred {
			delete(s.starOverrides, id)
		}
	}
}

// snapshotState copies the inputs the list pipeline needs.
func (s *ExplorerService) snapshotState() (domain.ListQuery, []domain.Document, []domain.Folder) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := domain.ListQuery{
		FolderID:  s.currentFolder,
		Filter:    s.quickFilter,
		Search:    s.searchQuery,
		Sort:      s.sortField,
		Ascending: s.sortAscending,
	}

	docs := make([]domain.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		doc := s.documents[id]
		if starred, ok := s.starOverrides[id]; ok {
			doc.Starred = starred
		}
		docs = append(docs, doc)
	}

	folders := make([]domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		folders = append(folders, f)
	}
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ID < folders[j].ID
	})
	return q, docs, folders
}

// Items computes the ordered explorer list for the current view state.
func (s *ExplorerService) Items() []domain.ExplorerItem {
	q, docs, folders := s.snapshotState()
	return domain.ListItems(q, docs, folders)
}

// MostCited computes the ranked highlight strip.
func (s *ExplorerService) MostCited() []domain.ExplorerItem {
	_, docs, _ := s.snapshotState()
	return domain.MostCited(docs)
}

// Breadcrumbs resolves the current folder path, root first. Ids that no
// longer resolve are omitted rather than failing the whole path.
func (s *ExplorerService) Breadcrumbs() []domain.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var crumbs []domain.Folder
	for _, id := range domain.BuildPath(s.currentFolder, s.folders) {
		if f, ok := s.folders[id]; ok {
			crumbs = append(crumbs, f)
		}
	}
	return crumbs
}

// Tree returns the visible navigation-tree rows.
func (s *ExplorerService) Tree() []domain.TreeNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folderIdx.VisibleNodes(s.expanded)
}

// Document returns a document by id, with any star override applied.
func (s *ExplorerService) Document(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if ok {
		if starred, o := s.starOverrides[id]; o {
			doc.Starred = starred
		}
	}
	return doc, ok
}

// Folder returns a folder by id.
func (s *ExplorerService) Folder(id string) (domain.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.folders[id]
	return f, ok
}

// EnterFolder makes folderID the current scope.
func (s *ExplorerService) EnterFolder(folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFolder = folderID
}

// CurrentFolder returns the current scope.
func (s *ExplorerService) CurrentFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFolder
}

// SetSearch sets the free-text name filter.
func (s *ExplorerService) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// Search returns the active name filter.
func (s *ExplorerService) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SetQuickFilter sets the quick-access filter.
func (s *ExplorerService) SetQuickFilter(filter domain.QuickFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quickFilter = filter
}

// QuickFilter returns the active quick-access filter.
func (s *ExplorerService) QuickFilter() domain.QuickFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quickFilter
}

// SetSort sets the sort field and direction.
func (s *ExplorerService) SetSort(field domain.SortField, ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortField = field
	s.sortAscending = ascending
}

// Sort returns the active sort field and direction.
func (s *ExplorerService) Sort() (domain.SortField, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortField, s.sortAscending
}

// ToggleExpand flips a tree node and reports the new state.
func (s *ExplorerService) ToggleExpand(folderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded.Toggle(folderID)
}

// ToggleStar flips the local-only star override for a document. The
// backend's store layer confirms the flag on a later refetch; until then
// the override shadows the fetched value.
func (s *ExplorerService) ToggleStar(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return
	}
	current := doc.Starred
	if starred, o := s.starOverrides[documentID]; o {
		current = starred
	}
	s.starOverrides[documentID] = !current
}

// CreateFolder creates a folder in the current scope, then refetches.
func (s *ExplorerService) CreateFolder(ctx context.Context, name string) (*domain.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is empty", domain.ErrInvalidInput)
	}
	if s.vault == nil {
		return nil, domain.ErrVaultUnavailable
	}

	folder, err := s.vault.CreateFolder(ctx, name, s.CurrentFolder())
	if err != nil {
		s.notify(driven.NotifyError, failureMessage(err, "Could not create folder"))
		return nil, fmt.Errorf("creating folder: %w", err)
	}

	s.notify(driven.NotifySuccess, fmt.Sprintf("Created folder %q", name))
	return folder, s.Refresh(ctx)
}

// SetTier persists a document's tier, then refetches. Any tier may move
// to any other tier; the client imposes no transition rules. State is
// never mutated optimistically, so a failure leaves the prior tier
// visible untouched.
func (s *ExplorerService) SetTier(ctx context.Context, documentID string, tier domain.SecurityTier) error {
	if s.vault == nil {
		return domain.ErrVaultUnavailable
	}
	if _, ok := s.Document(documentID); !ok {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	if err := s.vault.SetTier(ctx, documentID, tier); err != nil {
		s.notify(driven.NotifyError, failureMessage(err, "Could not change security tier"))
		return fmt.Errorf("setting tier: %w", err)
	}

	s.notify(driven.NotifySuccess, fmt.Sprintf("Security tier set to %s", tier.Label()))
	return s.Refresh(ctx)
}

// SetIndexing starts ingestion or removes embeddings, then refetches to
// observe the authoritative new status. Enabling and disabling are two
// distinct backend operations, not a flag PATCH.
func (s *ExplorerService) SetIndexing(ctx context.Context, documentID string, indexed bool) error {
	if s.vault == nil {
		return domain.ErrVaultUnavailable
	}
	if _, ok := s.Document(documentID); !ok {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	if indexed {
		if err := s.vault.StartIngest(ctx, documentID); err != nil {
			s.notify(driven.NotifyError, failureMessage(err, "Could not start indexing"))
			return fmt.Errorf("starting ingest: %w", err)
		}
		s.notify(driven.NotifySuccess, "Indexing started")
	} else {
		if err := s.vault.RemoveEmbeddings(ctx, documentID); err != nil {
			s.notify(driven.NotifyError, failureMessage(err, "Could not remove from index"))
			return fmt.Errorf("removing embeddings: %w", err)
		}
		s.notify(driven.NotifySuccess, "Removed from index")
	}
	return s.Refresh(ctx)
}

// MoveDocument reparents a document, then refetches.
func (s *ExplorerService) MoveDocument(ctx context.Context, documentID, folderID string) error {
	if s.vault == nil {
		return domain.ErrVaultUnavailable
	}
	if _, ok := s.Document(documentID); !ok {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	if err := s.vault.MoveDocument(ctx, documentID, folderID); err != nil {
		s.notify(driven.NotifyError, failureMessage(err, "Could not move document"))
		return fmt.Errorf("moving document: %w", err)
	}
	return s.Refresh(ctx)
}

// notify reports through the notifier when one is configured.
func (s *ExplorerService) notify(level driven.NotifyLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}

// failureMessage prefers the server-provided message when the error
// carries one, falling back to the per-operation message.
func failureMessage(err error, fallback string) string {
	var m interface{ UserMessage() string }
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	return fallback
}
