package driven

import (
	"context"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// VaultStore is the remote document store backing the explorer.
// It is the single source of truth: the core never mutates its local
// collections directly, it issues a mutation and refetches.
//
// Mutating operations (SetTier, StartIngest, RemoveEmbeddings, CreateFolder,
// MoveDocument) must not be retried by implementations; duplicate side
// effects such as double ingestion are worse than a surfaced failure.
// Idempotent reads may retry once on transient network failure.
type VaultStore interface {
	// ListDocuments fetches the full document collection, keyed by id.
	ListDocuments(ctx context.Context) (map[string]domain.Document, error)

	// ListFolders fetches the full folder collection, keyed by id.
	ListFolders(ctx context.Context) (map[string]domain.Folder, error)

	// CreateFolder creates a folder under parentID (empty for the vault
	// root) and returns the created record.
	CreateFolder(ctx context.Context, name, parentID string) (*domain.Folder, error)

	// SetTier persists a new security tier for a document.
	SetTier(ctx context.Context, documentID string, tier domain.SecurityTier) error

	// StartIngest asks the backend to vectorise a document.
	StartIngest(ctx context.Context, documentID string) error

	// RemoveEmbeddings asks the backend to delete a document's chunks.
	RemoveEmbeddings(ctx context.Context, documentID string) error

	// ResolveDownload returns a short-lived download URL for a document.
	ResolveDownload(ctx context.Context, documentID string) (string, error)

	// AuditLog fetches the audit trail entries for a document.
	AuditLog(ctx context.Context, documentID string) ([]domain.AuditEntry, error)

	// VerifyIntegrity asks the backend to re-checksum a document.
	VerifyIntegrity(ctx context.Context, documentID string) (*domain.Verification, error)

	// RelatedDocuments returns up to limit similarity-ranked documents.
	RelatedDocuments(ctx context.Context, documentID string, limit int) ([]domain.RelatedDocument, error)

	// MoveDocument reparents a document. Empty folderID is the vault root.
	MoveDocument(ctx context.Context, documentID, folderID string) error
}
