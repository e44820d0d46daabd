package domain

import "time"

// DocumentStatus is the normalised indexing lifecycle state of a document.
// The backend reports free-form strings; NormalizeStatus maps them at the
// wire boundary so the rest of the core works with a closed enum.
type DocumentStatus string

const (
	// StatusPending means the document has not entered the ingest pipeline.
	StatusPending DocumentStatus = "pending"
	// StatusProcessing means vectorisation is in progress.
	StatusProcessing DocumentStatus = "processing"
	// StatusIndexed means the document is retrievable via embeddings.
	StatusIndexed DocumentStatus = "indexed"
	// StatusError means the ingest pipeline failed for this document.
	StatusError DocumentStatus = "error"
)

// NormalizeStatus maps a backend status string to a DocumentStatus.
// The literal tokens "Indexed" and "ready" (exact, case-sensitive) are the
// only spellings that mean indexed; anything unrecognised is pending.
func NormalizeStatus(raw string) DocumentStatus {
	switch raw {
	case "Indexed", "ready":
		return StatusIndexed
	case "processing", "Processing":
		return StatusProcessing
	case "error", "Error", "failed":
		return StatusError
	default:
		return StatusPending
	}
}

// IsIndexed reports whether the document is retrievable via embeddings.
func (s DocumentStatus) IsIndexed() bool {
	return s == StatusIndexed
}

// Document represents a vault document as served by the remote store.
// The remote store owns these records; the core only reads them.
type Document struct {
	// ID is the stable, unique identifier.
	ID string

	// Name is the display name (usually a file name).
	Name string

	// Size is the document size in bytes. Absent sizes arrive as zero.
	Size int64

	// CreatedAt is when the document entered the vault.
	CreatedAt time.Time

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time

	// Status is the normalised indexing lifecycle state.
	Status DocumentStatus

	// SecurityLevel is the numeric classification level (1-4).
	// Zero means unset and maps to TierGeneral.
	SecurityLevel int

	// Starred marks the document for the quick-access starred view.
	Starred bool

	// FolderID is the containing folder. Empty means the vault root.
	FolderID string

	// Checksum is the content hash used for integrity verification.
	// Empty when the backend has not computed one.
	Checksum string

	// Citations is the backend-reported citation count. Only meaningful
	// for indexed documents.
	Citations int

	// Relevance is the backend-reported retrieval relevance in [0,1].
	// Only meaningful for indexed documents.
	Relevance float64
}

// Folder represents a vault folder. Folders form a tree via ParentID.
type Folder struct {
	// ID is the stable, unique identifier.
	ID string

	// Name is the display name.
	Name string

	// ParentID is the parent folder. Empty means the vault root.
	ParentID string

	// ChildIDs is the backend's denormalised child-folder cache.
	// It is never trusted as authoritative; the child index is derived
	// from ParentID links instead (see FolderIndex).
	ChildIDs []string

	// DocumentIDs is the backend's denormalised membership cache.
	// Authoritative membership is Document.FolderID.
	DocumentIDs []string
}

// IsRoot reports whether the folder sits at the vault root.
func (f *Folder) IsRoot() bool {
	return f.ParentID == ""
}
