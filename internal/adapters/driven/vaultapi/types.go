package vaultapi

import (
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

// documentPayload is the wire shape of a document. Status arrives as a
// free-form string and is normalized at this boundary; securityTier may
// be absent and defaults downstream.
type documentPayload struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Status         string    `json:"status"`
	SecurityTier   int       `json:"securityTier,omitempty"`
	IsStarred      bool      `json:"isStarred,omitempty"`
	FolderID       string    `json:"folderId,omitempty"`
	Checksum       string    `json:"checksum,omitempty"`
	Citations      int       `json:"citations,omitempty"`
	RelevanceScore float64   `json:"relevanceScore,omitempty"`
}

func (p documentPayload) toDomain() domain.Document {
	return domain.Document{
		ID:            p.ID,
		Name:          p.Name,
		Size:          p.Size,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Status:        domain.NormalizeStatus(p.Status),
		SecurityLevel: p.SecurityTier,
		Starred:       p.IsStarred,
		FolderID:      p.FolderID,
		Checksum:      p.Checksum,
		Citations:     p.Citations,
		Relevance:     p.RelevanceScore,
	}
}

// folderPayload is the wire shape of a folder. The children and
// documents arrays are denormalized caches; membership is derived from
// parentId and folderId links after load.
type folderPayload struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ParentID  string   `json:"parentId,omitempty"`
	Children  []string `json:"children,omitempty"`
	Documents []string `json:"documents,omitempty"`
}

func (p folderPayload) toDomain() domain.Folder {
	return domain.Folder{
		ID:          p.ID,
		Name:        p.Name,
		ParentID:    p.ParentID,
		ChildIDs:    p.Children,
		DocumentIDs: p.Documents,
	}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

type setTierRequest struct {
	Tier int `json:"tier"`
}

// moveDocumentRequest carries the new parent; null means the vault root.
type moveDocumentRequest struct {
	FolderID *string `json:"folderId"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

type auditEntryPayload struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type auditResponse struct {
	Logs []auditEntryPayload `json:"logs"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type relatedEntryPayload struct {
	Document   documentPayload `json:"document"`
	Similarity float64         `json:"similarity"`
}

type relatedResponse struct {
	Related []relatedEntryPayload `json:"related"`
}

// envelope is the optional status wrapper some responses carry. A 2xx
// body with success=false is still a backend-reported failure.
type envelope struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
