package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_handleListItems(t *testing.T) {
	ctx := context.Background()

	t.Run("lists the vault root", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		// Folders sort ahead of documents.
		assert.Equal(t, "f-fin", output.Items[0].ID)
		assert.Equal(t, "folder", output.Items[0].Type)
		assert.Equal(t, "d-contract", output.Items[1].ID)
		assert.True(t, output.Items[1].Indexed)
		assert.Equal(t, int64(52_000), output.Items[1].Size)
		assert.NotEmpty(t, output.Items[1].UpdatedAt)
	})

	t.Run("scopes listing to a folder", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{FolderID: "f-fin"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "d-notes", output.Items[0].ID)
	})

	t.Run("unknown folder returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleListItems(ctx, nil, ListItemsInput{FolderID: "f-missing"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "folder not found")
	})

	t.Run("search filters by name", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{Search: "contract"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "d-contract", output.Items[0].ID)
	})

	t.Run("starred filter spans the whole vault", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{Starred: true})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "d-notes", output.Items[0].ID)
		assert.True(t, output.Items[0].Starred)
	})

	t.Run("unknown sort field returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleListItems(ctx, nil, ListItemsInput{Sort: "colour"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown sort field")
	})
}

func TestServer_handleRelatedDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns similarity neighbours", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleRelatedDocuments(ctx, nil, RelatedInput{DocumentID: "d-contract"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "d-notes", output.Related[0].DocumentID)
		assert.Equal(t, "Notes.md", output.Related[0].Name)
		assert.InDelta(t, 0.91, output.Related[0].Similarity, 0.001)
	})

	t.Run("document without neighbours returns empty list", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleRelatedDocuments(ctx, nil, RelatedInput{DocumentID: "d-notes"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Related)
	})
}

func TestServer_handleVerifyDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("document with checksum verifies", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleVerifyDocument(ctx, nil, VerifyInput{DocumentID: "d-contract"})

		require.NoError(t, err)
		assert.True(t, output.Valid)
		assert.Empty(t, output.Reason)
	})

	t.Run("document without checksum reports invalid", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, output, err := server.handleVerifyDocument(ctx, nil, VerifyInput{DocumentID: "d-notes"})

		require.NoError(t, err)
		assert.False(t, output.Valid)
		assert.Equal(t, "no checksum recorded", output.Reason)
	})

	t.Run("unknown document returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleVerifyDocument(ctx, nil, VerifyInput{DocumentID: "d-missing"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "verification failed")
	})
}
