package inspector

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/services"
)

// newTestView builds an inspector view over a seeded in-memory vault.
func newTestView(t *testing.T) (*View, *services.InspectorService) {
	t.Helper()

	vault := memory.NewVaultStore()
	vault.PutDocument(domain.Document{
		ID: "d-brief", Name: "Brief.pdf", Status: domain.StatusIndexed,
		Size: 4096, SecurityLevel: 3, UpdatedAt: time.Now(),
		Checksum: "abc", Citations: 5, Relevance: 0.8,
	})
	vault.PutAudit("d-brief", []domain.AuditEntry{
		{ID: "a1", DocumentID: "d-brief", Action: "viewed"},
		{ID: "a2", DocumentID: "d-brief", Action: "downloaded"},
	})
	vault.PutRelated("d-brief", []domain.RelatedDocument{
		{Document: domain.Document{ID: "d-other", Name: "Other.pdf"}, Similarity: 0.91},
	})

	svc := services.NewInspectorService(vault, memory.NewNotifier())
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), svc)
	view.SetDimensions(80, 24)
	return view, svc
}

func briefItem() domain.ExplorerItem {
	return domain.ExplorerItem{
		ID: "d-brief", Name: "Brief.pdf", Type: domain.ItemDocument,
		Security: domain.TierConfidential, Indexed: true,
		Size: 4096, UpdatedAt: time.Now(), Citations: 5, Relevance: 0.8,
	}
}

func TestView_OpenStartsFetches(t *testing.T) {
	view, svc := newTestView(t)

	cmd := view.Open(briefItem())
	require.NotNil(t, cmd)

	// Run the batched fetches; each reports back with the item id.
	runBatch(t, cmd, "d-brief")

	state := svc.State()
	assert.Equal(t, 2, state.Audit.Count)
	require.NotNil(t, state.Related)
	assert.Len(t, state.Related.Related, 1)
}

// runBatch executes a batch command's sub-commands synchronously.
func runBatch(t *testing.T, cmd tea.Cmd, wantID string) {
	t.Helper()
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		updated, ok := msg.(messages.InspectorUpdated)
		require.True(t, ok)
		assert.Equal(t, wantID, updated.ItemID)
		return
	}
	for _, sub := range batch {
		runBatch(t, sub, wantID)
	}
}

func TestView_OpenFolderSkipsFetches(t *testing.T) {
	view, svc := newTestView(t)

	cmd := view.Open(domain.ExplorerItem{ID: "f-fin", Name: "Finance", Type: domain.ItemFolder})

	assert.Nil(t, cmd)
	assert.True(t, svc.State().Open)
}

func TestView_RendersMetadata(t *testing.T) {
	view, _ := newTestView(t)
	view.Open(briefItem())

	out := view.View()

	assert.Contains(t, out, "Brief.pdf")
	assert.Contains(t, out, "Confidential")
	assert.Contains(t, out, "4096 bytes")
	assert.Contains(t, out, "Citations")
}

func TestView_RendersAuditAndRelated(t *testing.T) {
	view, _ := newTestView(t)
	cmd := view.Open(briefItem())
	runBatch(t, cmd, "d-brief")

	out := view.View()

	assert.Contains(t, out, "2 recorded events")
	assert.Contains(t, out, "Other.pdf")
	assert.Contains(t, out, "91%")
}

func TestView_VerifyKeyRunsVerification(t *testing.T) {
	view, svc := newTestView(t)
	view.Open(briefItem())

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	require.NotNil(t, cmd)
	cmd()

	state := svc.State()
	require.NotNil(t, state.Verify)
	assert.True(t, state.Verify.Valid)
	assert.Contains(t, view.View(), "checksum valid")
}

func TestView_DownloadKeyResolvesURL(t *testing.T) {
	view, _ := newTestView(t)
	view.Open(briefItem())

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DownloadResolved)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "d-brief", msg.ItemID)
	assert.NotEmpty(t, msg.URL)
	_ = view
}

func TestView_ClosedPanelRendersNothing(t *testing.T) {
	view, svc := newTestView(t)
	view.Open(briefItem())
	view.Close()

	assert.False(t, svc.State().Open)
	assert.Empty(t, view.View())
}

func TestView_VerifyBeforeFetchShowsHint(t *testing.T) {
	view, _ := newTestView(t)
	view.Open(briefItem())

	assert.Contains(t, view.View(), "press v to verify")
}
