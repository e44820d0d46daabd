// Package memory provides in-memory implementations of the driven ports.
// They back unit tests and the offline demo mode.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

// Ensure VaultStore implements the interface.
var _ driven.VaultStore = (*VaultStore)(nil)

// VaultStore is an in-memory implementation of driven.VaultStore.
type VaultStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	folders   map[string]domain.Folder
	audit     map[string][]domain.AuditEntry
	related   map[string][]domain.RelatedDocument
}

// NewVaultStore creates an empty in-memory vault.
func NewVaultStore() *VaultStore {
	return &VaultStore{
		documents: make(map[string]domain.Document),
		folders:   make(map[string]domain.Folder),
		audit:     make(map[string][]domain.AuditEntry),
		related:   make(map[string][]domain.RelatedDocument),
	}
}

// PutDocument seeds or replaces a document.
func (s *VaultStore) PutDocument(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
}

// DeleteDocument removes a seeded document.
func (s *VaultStore) DeleteDocument(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
}

// PutFolder seeds or replaces a folder.
func (s *VaultStore) PutFolder(folder domain.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders[folder.ID] = folder
}

// PutAudit seeds the audit trail for a document.
func (s *VaultStore) PutAudit(documentID string, entries []domain.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit[documentID] = entries
}

// PutRelated seeds the similarity neighbours for a document.
func (s *VaultStore) PutRelated(documentID string, related []domain.RelatedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.related[documentID] = related
}

// ListDocuments returns a copy of the document collection.
func (s *VaultStore) ListDocuments(_ context.Context) (map[string]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make(map[string]domain.Document, len(s.documents))
	for id, doc := range s.documents {
		docs[id] = doc
	}
	return docs, nil
}

// ListFolders returns a copy of the folder collection.
func (s *VaultStore) ListFolders(_ context.Context) (map[string]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folders := make(map[string]domain.Folder, len(s.folders))
	for id, f := range s.folders {
		folders[id] = f
	}
	return folders, nil
}

// CreateFolder creates a folder under parentID.
func (s *VaultStore) CreateFolder(_ context.Context, name, parentID string) (*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := domain.Folder{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
	}
	s.folders[folder.ID] = folder
	return &folder, nil
}

// SetTier persists a new tier for a document.
func (s *VaultStore) SetTier(_ context.Context, documentID string, tier domain.SecurityTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.SecurityLevel = tier.Level()
	s.documents[documentID] = doc
	return nil
}

// StartIngest marks a document as processing, then indexed. The in-memory
// backend indexes instantly.
func (s *VaultStore) StartIngest(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = domain.StatusIndexed
	s.documents[documentID] = doc
	return nil
}

// RemoveEmbeddings reverts a document to pending.
func (s *VaultStore) RemoveEmbeddings(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = domain.StatusPending
	doc.Citations = 0
	doc.Relevance = 0
	s.documents[documentID] = doc
	return nil
}

// ResolveDownload returns a synthetic short-lived URL.
func (s *VaultStore) ResolveDownload(_ context.Context, documentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.documents[documentID]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("memory://downloads/%s?expires=%d", documentID, time.Now().Add(time.Minute).Unix()), nil
}

// AuditLog returns the seeded audit trail.
func (s *VaultStore) AuditLog(_ context.Context, documentID string) ([]domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audit[documentID], nil
}

// VerifyIntegrity reports valid for any document with a checksum.
func (s *VaultStore) VerifyIntegrity(_ context.Context, documentID string) (*domain.Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if doc.Checksum == "" {
		return &domain.Verification{Valid: false, Reason: "no checksum recorded"}, nil
	}
	return &domain.Verification{Valid: true}, nil
}

// RelatedDocuments returns the seeded neighbours, truncated to limit.
func (s *VaultStore) RelatedDocuments(_ context.Context, documentID string, limit int) ([]domain.RelatedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	related := s.related[documentID]
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// MoveDocument reparents a document.
func (s *VaultStore) MoveDocument(_ context.Context, documentID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.FolderID = folderID
	s.documents[documentID] = doc
	return nil
}
