package domain

import "time"

// AuditEntry is one row of a document's audit trail.
type AuditEntry struct {
	// ID is the unique entry identifier.
	ID string

	// DocumentID is the audited document.
	DocumentID string

	// Action names what happened (viewed, downloaded, tier_changed, ...).
	Action string

	// Actor is the user name that performed the action.
	Actor string

	// OccurredAt is when the action happened.
	OccurredAt time.Time
}

// Verification is the backend's integrity verdict for a document.
type Verification struct {
	// Valid reports whether the stored content still matches its checksum.
	Valid bool

	// Reason explains a failed verification. Empty when Valid.
	Reason string
}

// RelatedDocument is one similarity-ranked neighbour of a document.
type RelatedDocument struct {
	// Document is the related document record.
	Document Document

	// Similarity is the backend's similarity score in [0,1].
	Similarity float64
}
