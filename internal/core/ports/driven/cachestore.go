package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// CatalogSnapshot is a point-in-time copy of the vault catalog.
type CatalogSnapshot struct {
	// Documents is the document collection keyed by id.
	Documents map[string]domain.Document

	// Folders is the folder collection keyed by id.
	Folders map[string]domain.Folder

	// FetchedAt is when the snapshot was taken from the backend.
	FetchedAt time.Time
}

// CatalogCache persists catalog snapshots locally so the explorer can
// render immediately on startup and degrade to read-only browsing when
// the backend is unreachable.
type CatalogCache interface {
	// SaveSnapshot replaces the cached snapshot.
	SaveSnapshot(ctx context.Context, snap CatalogSnapshot) error

	// LoadSnapshot returns the cached snapshot.
	// Returns domain.ErrNotFound when no snapshot has been saved yet.
	LoadSnapshot(ctx context.Context) (*CatalogSnapshot, error)

	// Close releases the underlying storage.
	Close() error
}
