package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

// Ensure InspectorService implements the interface.
var _ driving.InspectorService = (*InspectorService)(nil)

// relatedLimit is how many similarity-ranked neighbours the panel shows.
const relatedLimit = 5

// InspectorService coordinates the per-item async operations of the
// detail panel. Fetch methods block until the backend answers and are
// meant to run on their own goroutine (a tea.Cmd in the TUI); the result
// is committed only when the response's item id still matches the
// current selection, so a slow early request can never overwrite state
// for a later selection. Stale results are dropped silently.
type InspectorService struct {
	vault    driven.VaultStore
	notifier driven.Notifier

	mu    sync.Mutex
	state driving.InspectorState
}

// NewInspectorService creates an inspector service.
func NewInspectorService(vault driven.VaultStore, notifier driven.Notifier) *InspectorService {
	return &InspectorService{vault: vault, notifier: notifier}
}

// Select opens the panel on an item. All sub-operation state resets,
// including on reselection of the same item: anything in flight for the
// previous selection is discarded when it completes.
func (s *InspectorService) Select(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = driving.InspectorState{Open: true, ItemID: itemID}
}

// Close closes the panel and discards all sub-operation state.
func (s *InspectorService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = driving.InspectorState{}
}

// State returns a copy of the current panel state.
func (s *InspectorService) State() driving.InspectorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ReconcileSelection closes the panel when the inspected item has
// disappeared from the backing collection (e.g. deleted remotely).
func (s *InspectorService) ReconcileSelection(exists func(itemID string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Open && !exists(s.state.ItemID) {
		s.state = driving.InspectorState{}
	}
}

// begin marks an operation loading if itemID is still the selection.
// It reports whether the caller should proceed with the fetch.
func (s *InspectorService) begin(itemID string, mark func(*driving.InspectorState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Open || s.state.ItemID != itemID {
		return false
	}
	mark(&s.state)
	return true
}

// commit applies a completed operation's result unless the selection has
// moved on, in which case the result is dropped silently.
func (s *InspectorService) commit(itemID string, apply func(*driving.InspectorState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Open || s.state.ItemID != itemID {
		logger.Debug("dropping stale inspector result for %s", itemID)
		return
	}
	apply(&s.state)
}

// FetchAudit fetches the count-only audit summary for the selected item.
func (s *InspectorService) FetchAudit(ctx context.Context, itemID string) {
	if !s.begin(itemID, func(st *driving.InspectorState) {
		st.AuditPhase = driving.OpLoading
		st.Audit = nil
		st.AuditErr = nil
	}) {
		return
	}

	entries, err := s.vault.AuditLog(ctx, itemID)
	s.commit(itemID, func(st *driving.InspectorState) {
		if err != nil {
			st.AuditPhase = driving.OpFailure
			st.AuditErr = err
			s.notify(driven.NotifyError, failureMessage(err, "Could not load audit log"))
			return
		}
		st.AuditPhase = driving.OpSuccess
		st.Audit = &driving.AuditSummary{DocumentID: itemID, Count: len(entries)}
	})
}

// FetchVerification runs integrity verification for the selected item.
func (s *InspectorService) FetchVerification(ctx context.Context, itemID string) {
	if !s.begin(itemID, func(st *driving.InspectorState) {
		st.VerifyPhase = driving.OpLoading
		st.Verify = nil
		st.VerifyErr = nil
	}) {
		return
	}

	verdict, err := s.vault.VerifyIntegrity(ctx, itemID)
	s.commit(itemID, func(st *driving.InspectorState) {
		if err != nil {
			st.VerifyPhase = driving.OpFailure
			st.VerifyErr = err
			s.notify(driven.NotifyError, failureMessage(err, "Could not verify integrity"))
			return
		}
		st.VerifyPhase = driving.OpSuccess
		st.Verify = verdict
	})
}

// FetchRelated runs the similarity lookup for the selected item. Entries
// pointing at documents that no longer resolve are omitted rather than
// failing the lookup.
func (s *InspectorService) FetchRelated(ctx context.Context, itemID string) {
	if !s.begin(itemID, func(st *driving.InspectorState) {
		st.RelatedPhase = driving.OpLoading
		st.Related = nil
		st.RelatedErr = nil
	}) {
		return
	}

	related, err := s.vault.RelatedDocuments(ctx, itemID, relatedLimit)
	s.commit(itemID, func(st *driving.InspectorState) {
		if err != nil {
			st.RelatedPhase = driving.OpFailure
			st.RelatedErr = err
			s.notify(driven.NotifyError, failureMessage(err, "Could not find related documents"))
			return
		}

		kept := make([]domain.RelatedDocument, 0, len(related))
		for _, r := range related {
			if r.Document.ID != "" {
				kept = append(kept, r)
			}
		}
		st.RelatedPhase = driving.OpSuccess
		st.Related = &driving.RelatedResult{DocumentID: itemID, Related: kept}
	})
}

// ResolveDownload resolves a short-lived download URL. It is plain
// request/response; the URL is handed to the caller to open, not stored
// as panel state.
func (s *InspectorService) ResolveDownload(ctx context.Context, itemID string) (string, error) {
	url, err := s.vault.ResolveDownload(ctx, itemID)
	if err != nil {
		s.notify(driven.NotifyError, failureMessage(err, "Could not prepare download"))
		return "", fmt.Errorf("resolving download: %w", err)
	}
	return url, nil
}

// notify reports through the notifier when one is configured.
func (s *InspectorService) notify(level driven.NotifyLevel, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}
