package driving

import (
	"context"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// OpPhase is the observable state of one inspector sub-operation.
type OpPhase int

const (
	// OpIdle means the operation has not been requested.
	OpIdle OpPhase = iota
	// OpLoading means the request is in flight.
	OpLoading
	// OpSuccess means data is available.
	OpSuccess
	// OpFailure means the request failed; see the operation's Err.
	OpFailure
)

// AuditSummary is the count-only audit view the inspector shows.
type AuditSummary struct {
	// DocumentID is the audited document.
	DocumentID string

	// Count is the number of audit entries.
	Count int
}

// RelatedResult is the similarity-ranked neighbour list for an item.
type RelatedResult struct {
	// DocumentID is the item the lookup was issued for.
	DocumentID string

	// Related is the ranked neighbour list, limited to five.
	Related []domain.RelatedDocument
}

// InspectorState is the full observable state of the inspector panel.
// Each async sub-operation carries its own phase so the panel can render
// loading, success and failure sections independently.
type InspectorState struct {
	// Open reports whether the panel is showing an item.
	Open bool

	// ItemID is the inspected item. Empty when closed.
	ItemID string

	// AuditPhase, Audit and AuditErr describe the audit-log fetch.
	AuditPhase OpPhase
	Audit      *AuditSummary
	AuditErr   error

	// VerifyPhase, Verify and VerifyErr describe integrity verification.
	VerifyPhase OpPhase
	Verify      *domain.Verification
	VerifyErr   error

	// RelatedPhase, Related and RelatedErr describe the related lookup.
	RelatedPhase OpPhase
	Related      *RelatedResult
	RelatedErr   error
}

// InspectorService coordinates the per-item side-channel operations of
// the detail panel. Every async completion is gated on the item id it was
// issued for: a result for an item that is no longer selected is dropped,
// so stale cross-item data can never render.
type InspectorService interface {
	// Select opens the panel on an item, resetting all sub-operation
	// state. Selecting the already-open item also resets (reselection
	// discards in-flight results).
	Select(itemID string)

	// Close closes the panel and discards all sub-operation state.
	Close()

	// State returns a copy of the current panel state.
	State() InspectorState

	// ReconcileSelection closes the panel if the inspected item is no
	// longer present in the backing collection.
	ReconcileSelection(exists func(itemID string) bool)

	// FetchAudit starts the audit-log fetch for the selected item.
	FetchAudit(ctx context.Context, itemID string)

	// FetchVerification starts integrity verification for the selected item.
	FetchVerification(ctx context.Context, itemID string)

	// FetchRelated starts the related-document lookup (limit 5).
	FetchRelated(ctx context.Context, itemID string)

	// ResolveDownload returns a short-lived download URL for the item.
	// It is request/response, not panel state: the URL is opened, not shown.
	ResolveDownload(ctx context.Context, itemID string) (string, error)
}
