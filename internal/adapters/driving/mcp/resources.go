package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// uriScheme is the custom URI scheme for vault resources.
const uriScheme = "sovereign://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the security tier model.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tiers",
		Name:        "security-tiers",
		Description: "The vault's four-level security classification model",
		MIMEType:    "application/json",
	}, s.handleTiersResource)

	// Template for document metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-metadata",
		Description: "Metadata of a specific vault document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handleTiersResource describes the tier model.
func (s *Server) handleTiersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type tierInfo struct {
		Level       int    `json:"level"`
		Name        string `json:"name"`
		Label       string `json:"label"`
		Description string `json:"description"`
	}

	tiers := domain.AllTiers()
	infos := make([]tierInfo, len(tiers))
	for i, tier := range tiers {
		infos[i] = tierInfo{
			Level:       tier.Level(),
			Name:        tier.String(),
			Label:       tier.Label(),
			Description: tier.Description(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tiers: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the metadata of a specific document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if err := s.ports.Explorer.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refreshing catalog: %w", err)
	}

	doc, ok := s.ports.Explorer.Document(docID)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type docInfo struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		FolderID  string  `json:"folder_id,omitempty"`
		Status    string  `json:"status"`
		Security  string  `json:"security"`
		Size      int64   `json:"size"`
		UpdatedAt string  `json:"updated_at"`
		Starred   bool    `json:"starred"`
		Citations int     `json:"citations"`
		Relevance float64 `json:"relevance"`
	}

	data, err := json.MarshalIndent(docInfo{
		ID:        doc.ID,
		Name:      doc.Name,
		FolderID:  doc.FolderID,
		Status:    string(doc.Status),
		Security:  domain.TierFromLevel(doc.SecurityLevel).String(),
		Size:      doc.Size,
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
		Starred:   doc.Starred,
		Citations: doc.Citations,
		Relevance: doc.Relevance,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like sovereign://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
