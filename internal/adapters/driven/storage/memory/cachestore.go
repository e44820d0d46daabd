package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

// Ensure CatalogCache implements the interface.
var _ driven.CatalogCache = (*CatalogCache)(nil)

// CatalogCache is an in-memory implementation of driven.CatalogCache.
type CatalogCache struct {
	mu   sync.RWMutex
	snap *driven.CatalogSnapshot
}

// NewCatalogCache creates an empty in-memory cache.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{}
}

// SaveSnapshot replaces the cached snapshot.
func (c *CatalogCache) SaveSnapshot(_ context.Context, snap driven.CatalogSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = &snap
	return nil
}

// LoadSnapshot returns the cached snapshot.
func (c *CatalogCache) LoadSnapshot(_ context.Context) (*driven.CatalogSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, domain.ErrNotFound
	}
	snap := *c.snap
	return &snap, nil
}

// Close is a no-op for the in-memory cache.
func (c *CatalogCache) Close() error {
	return nil
}
