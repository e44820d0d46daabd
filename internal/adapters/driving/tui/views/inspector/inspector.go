// Package inspector provides the per-item detail panel for the TUI.
package inspector

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

// View is the detail panel. The inspector service owns all async state;
// the panel reads it back on every render and re-renders on
// InspectorUpdated messages. Messages for superseded selections were
// already dropped by the service, so no cross-item data can appear.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	inspector driving.InspectorService

	item   domain.ExplorerItem
	width  int
	height int
	ready  bool
}

// NewView creates a new inspector view.
func NewView(s *styles.Styles, km *keymap.KeyMap, inspector driving.InspectorService) *View {
	return &View{
		styles:    s,
		keymap:    km,
		inspector: inspector,
	}
}

// Open selects an item and kicks off the side-channel fetches.
func (v *View) Open(item domain.ExplorerItem) tea.Cmd {
	v.item = item
	v.inspector.Select(item.ID)

	if item.Type != domain.ItemDocument {
		return nil
	}

	itemID := item.ID
	return tea.Batch(
		func() tea.Msg {
			v.inspector.FetchAudit(context.Background(), itemID)
			return messages.InspectorUpdated{ItemID: itemID}
		},
		func() tea.Msg {
			v.inspector.FetchRelated(context.Background(), itemID)
			return messages.InspectorUpdated{ItemID: itemID}
		},
	)
}

// Close closes the panel.
func (v *View) Close() {
	v.inspector.Close()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the inspector view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.InspectorUpdated:
		// State lives in the service; nothing to copy.
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses while the panel is open.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Verify):
		itemID := v.item.ID
		return v, func() tea.Msg {
			v.inspector.FetchVerification(context.Background(), itemID)
			return messages.InspectorUpdated{ItemID: itemID}
		}

	case keymap.Matches(keyStr, v.keymap.Download):
		itemID := v.item.ID
		return v, func() tea.Msg {
			url, err := v.inspector.ResolveDownload(context.Background(), itemID)
			return messages.DownloadResolved{ItemID: itemID, URL: url, Err: err}
		}
	}

	return v, nil
}

// View renders the detail panel.
func (v *View) View() string {
	state := v.inspector.State()
	if !state.Open {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.item.Name))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 48)))
	b.WriteString("\n\n")

	b.WriteString(v.renderMetadata())
	b.WriteString("\n")

	if v.item.Type == domain.ItemDocument {
		b.WriteString(v.renderAudit(state))
		b.WriteString("\n")
		b.WriteString(v.renderVerification(state))
		b.WriteString("\n")
		b.WriteString(v.renderRelated(state))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[v] verify  [d] download  [esc] close"))
	return b.String()
}

// renderMetadata renders the item's core fields.
func (v *View) renderMetadata() string {
	var b strings.Builder

	tier := v.styles.Tier(v.item.Security).Render(v.item.Security.Label())
	b.WriteString(v.formatField("Security", tier))

	if v.item.Type == domain.ItemDocument {
		indexed := "no"
		if v.item.Indexed {
			indexed = "yes"
		}
		b.WriteString(v.formatField("Indexed", indexed))
		b.WriteString(v.formatField("Size", fmt.Sprintf("%d bytes", v.item.Size)))
		b.WriteString(v.formatField("Updated", v.item.UpdatedAt.Format("2006-01-02 15:04")))
		if v.item.Indexed {
			b.WriteString(v.formatField("Citations", fmt.Sprintf("%d", v.item.Citations)))
			b.WriteString(v.formatField("Relevance", fmt.Sprintf("%.2f", v.item.Relevance)))
		}
	}
	return b.String()
}

// renderAudit renders the audit-log section.
func (v *View) renderAudit(state driving.InspectorState) string {
	label := v.styles.Subtitle.Render("Audit")
	switch state.AuditPhase {
	case driving.OpLoading:
		return label + "\n" + v.styles.Muted.Render("  loading...") + "\n"
	case driving.OpFailure:
		return label + "\n" + v.styles.Error.Render("  unavailable") + "\n"
	case driving.OpSuccess:
		return label + "\n" + v.styles.Normal.Render(
			fmt.Sprintf("  %d recorded events", state.Audit.Count)) + "\n"
	default:
		return ""
	}
}

// renderVerification renders the integrity section.
func (v *View) renderVerification(state driving.InspectorState) string {
	label := v.styles.Subtitle.Render("Integrity")
	switch state.VerifyPhase {
	case driving.OpLoading:
		return label + "\n" + v.styles.Muted.Render("  verifying...") + "\n"
	case driving.OpFailure:
		return label + "\n" + v.styles.Error.Render("  verification failed") + "\n"
	case driving.OpSuccess:
		if state.Verify.Valid {
			return label + "\n" + v.styles.Success.Render("  checksum valid") + "\n"
		}
		reason := state.Verify.Reason
		if reason == "" {
			reason = "checksum invalid"
		}
		return label + "\n" + v.styles.Error.Render("  "+reason) + "\n"
	default:
		return label + "\n" + v.styles.Muted.Render("  press v to verify") + "\n"
	}
}

// renderRelated renders the similarity-ranked neighbour list.
func (v *View) renderRelated(state driving.InspectorState) string {
	label := v.styles.Subtitle.Render("Related")
	switch state.RelatedPhase {
	case driving.OpLoading:
		return label + "\n" + v.styles.Muted.Render("  loading...") + "\n"
	case driving.OpFailure:
		return label + "\n" + v.styles.Error.Render("  unavailable") + "\n"
	case driving.OpSuccess:
		if len(state.Related.Related) == 0 {
			return label + "\n" + v.styles.Muted.Render("  none found") + "\n"
		}
		var b strings.Builder
		b.WriteString(label)
		b.WriteString("\n")
		for _, r := range state.Related.Related {
			b.WriteString(v.styles.Normal.Render(
				fmt.Sprintf("  %s", r.Document.Name)))
			b.WriteString(v.styles.Muted.Render(
				fmt.Sprintf("  %.0f%%", r.Similarity*100)))
			b.WriteString("\n")
		}
		return b.String()
	default:
		return ""
	}
}

// formatField formats a labelled field line.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s\n", v.styles.Muted.Render(label+":"), value)
}

// Item returns the inspected item.
func (v *View) Item() domain.ExplorerItem {
	return v.item
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
