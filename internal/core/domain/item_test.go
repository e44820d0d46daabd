package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectDocument_Indexed(t *testing.T) {
	now := time.Now()
	doc := Document{
		ID:            "doc-1",
		Name:          "Contract.pdf",
		Size:          2048,
		UpdatedAt:     now,
		Status:        StatusIndexed,
		SecurityLevel: 3,
		Starred:       true,
		Citations:     7,
		Relevance:     0.82,
	}

	item := ProjectDocument(doc)
	assert.Equal(t, "doc-1", item.ID)
	assert.Equal(t, ItemDocument, item.Type)
	assert.Equal(t, int64(2048), item.Size)
	assert.Equal(t, TierConfidential, item.Security)
	assert.True(t, item.Indexed)
	assert.True(t, item.Starred)
	assert.Equal(t, 7, item.Citations)
	assert.InDelta(t, 0.82, item.Relevance, 1e-9)
}

func TestProjectDocument_NotIndexedZeroesEngagement(t *testing.T) {
	// Citations and relevance must be zero whenever the document is not
	// indexed, whatever the backend reports.
	for _, status := range []DocumentStatus{StatusPending, StatusProcessing, StatusError} {
		doc := Document{ID: "doc-1", Status: status, Citations: 12, Relevance: 0.9}
		item := ProjectDocument(doc)
		assert.False(t, item.Indexed, "status %s", status)
		assert.Zero(t, item.Citations, "status %s", status)
		assert.Zero(t, item.Relevance, "status %s", status)
	}
}

func TestProjectDocument_Defaults(t *testing.T) {
	// Unset tier and size map to general and zero.
	item := ProjectDocument(Document{ID: "doc-1", Status: StatusPending})
	assert.Equal(t, TierGeneral, item.Security)
	assert.Equal(t, 1, item.Security.Level())
	assert.Zero(t, item.Size)
	assert.False(t, item.Starred)
}

func TestProjectFolder_FixedShape(t *testing.T) {
	item := ProjectFolder(Folder{ID: "f1", Name: "Reports", ParentID: "root"})
	assert.Equal(t, ItemFolder, item.Type)
	assert.Equal(t, "Reports", item.Name)
	assert.Zero(t, item.Size)
	assert.Equal(t, TierGeneral, item.Security)
	assert.True(t, item.Indexed)
	assert.False(t, item.Starred)
	assert.Zero(t, item.Citations)
	assert.Zero(t, item.Relevance)
	assert.True(t, item.UpdatedAt.IsZero())
}
