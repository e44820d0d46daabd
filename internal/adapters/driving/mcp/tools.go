package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	FolderID string `json:"folder_id,omitempty" jsonschema:"folder to list (empty for the vault root)"`
	Search   string `json:"search,omitempty" jsonschema:"case-insensitive name filter"`
	Sort     string `json:"sort,omitempty" jsonschema:"sort field: name, security, updatedAt, size or relevanceScore"`
	Starred  bool   `json:"starred,omitempty" jsonschema:"only starred documents, selected across the whole vault"`
	Recent   bool   `json:"recent,omitempty" jsonschema:"only recently updated documents, selected across the whole vault"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// ItemOutput represents a single catalog item.
type ItemOutput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Security  string  `json:"security"`
	Size      int64   `json:"size,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
	Indexed   bool    `json:"indexed"`
	Starred   bool    `json:"starred,omitempty"`
	Citations int     `json:"citations,omitempty"`
	Relevance float64 `json:"relevance,omitempty"`
}

// RelatedInput is the input schema for the related_documents tool.
type RelatedInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to find neighbours of"`
}

// RelatedOutput is the output schema for the related_documents tool.
type RelatedOutput struct {
	Related []RelatedEntryOutput `json:"related"`
	Count   int                  `json:"count"`
}

// RelatedEntryOutput is one similarity-ranked neighbour.
type RelatedEntryOutput struct {
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// VerifyInput is the input schema for the verify_document tool.
type VerifyInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to verify"`
}

// VerifyOutput is the output schema for the verify_document tool.
type VerifyOutput struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List documents and folders in the vault catalog",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related_documents",
		Description: "Find documents related to a document by retrieval similarity",
	}, s.handleRelatedDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verify_document",
		Description: "Verify a document's stored content against its checksum",
	}, s.handleVerifyDocument)
}

// handleListItems handles the list_items tool invocation.
func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	if err := s.ports.Explorer.Refresh(ctx); err != nil {
		return nil, ListItemsOutput{}, err
	}

	if input.FolderID != "" {
		if _, ok := s.ports.Explorer.Folder(input.FolderID); !ok {
			return nil, ListItemsOutput{}, fmt.Errorf("folder not found: %s", input.FolderID)
		}
	}
	s.ports.Explorer.EnterFolder(input.FolderID)
	s.ports.Explorer.SetSearch(input.Search)

	if input.Sort != "" {
		field, err := parseSortField(input.Sort)
		if err != nil {
			return nil, ListItemsOutput{}, err
		}
		s.ports.Explorer.SetSort(field, false)
	}

	switch {
	case input.Starred:
		s.ports.Explorer.SetQuickFilter(domain.QuickStarred)
	case input.Recent:
		s.ports.Explorer.SetQuickFilter(domain.QuickRecent)
	default:
		s.ports.Explorer.SetQuickFilter(domain.QuickNone)
	}

	items := s.ports.Explorer.Items()
	output := ListItemsOutput{
		Items: make([]ItemOutput, len(items)),
		Count: len(items),
	}
	for i := range items {
		output.Items[i] = itemOutput(&items[i])
	}
	return nil, output, nil
}

// itemOutput maps an explorer item onto the tool schema.
func itemOutput(item *domain.ExplorerItem) ItemOutput {
	out := ItemOutput{
		ID:        item.ID,
		Name:      item.Name,
		Type:      string(item.Type),
		Security:  item.Security.String(),
		Indexed:   item.Indexed,
		Starred:   item.Starred,
		Citations: item.Citations,
		Relevance: item.Relevance,
	}
	if item.Type == domain.ItemDocument {
		out.Size = item.Size
		out.UpdatedAt = item.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

// parseSortField maps a tool argument onto a sort field.
func parseSortField(s string) (domain.SortField, error) {
	switch domain.SortField(s) {
	case domain.SortByName, domain.SortBySecurity, domain.SortByUpdatedAt,
		domain.SortBySize, domain.SortByRelevance:
		return domain.SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field: %s", s)
	}
}

// handleRelatedDocuments handles the related_documents tool invocation.
func (s *Server) handleRelatedDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	s.ports.Inspector.Select(input.DocumentID)
	defer s.ports.Inspector.Close()

	s.ports.Inspector.FetchRelated(ctx, input.DocumentID)

	state := s.ports.Inspector.State()
	if state.RelatedPhase != driving.OpSuccess {
		return nil, RelatedOutput{}, fmt.Errorf("related lookup failed: %w", state.RelatedErr)
	}

	related := state.Related.Related
	output := RelatedOutput{
		Related: make([]RelatedEntryOutput, len(related)),
		Count:   len(related),
	}
	for i := range related {
		output.Related[i] = RelatedEntryOutput{
			DocumentID: related[i].Document.ID,
			Name:       related[i].Document.Name,
			Similarity: related[i].Similarity,
		}
	}
	return nil, output, nil
}

// handleVerifyDocument handles the verify_document tool invocation.
func (s *Server) handleVerifyDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	s.ports.Inspector.Select(input.DocumentID)
	defer s.ports.Inspector.Close()

	s.ports.Inspector.FetchVerification(ctx, input.DocumentID)

	state := s.ports.Inspector.State()
	if state.VerifyPhase != driving.OpSuccess {
		return nil, VerifyOutput{}, fmt.Errorf("verification failed: %w", state.VerifyErr)
	}

	return nil, VerifyOutput{
		Valid:  state.Verify.Valid,
		Reason: state.Verify.Reason,
	}, nil
}
