package vaultapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClientWithHTTPClient(srv.URL, srv.Client())
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClientWithHTTPClient("not-a-url", http.DefaultClient)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_ListDocuments(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		io.WriteString(w, `{
			"d1": {"id":"d1","name":"Contract.pdf","status":"Indexed","securityTier":3,
			       "size":2048,"citations":4,"relevanceScore":0.7,"checksum":"sha256:abc"},
			"d2": {"id":"d2","name":"Notes.txt","status":"weird-status","folderId":"f1"}
		}`)
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "secret")
	require.NoError(t, err)

	docs, err := client.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	contract := docs["d1"]
	assert.Equal(t, domain.StatusIndexed, contract.Status)
	assert.Equal(t, 3, contract.SecurityLevel)
	assert.Equal(t, int64(2048), contract.Size)
	assert.Equal(t, 4, contract.Citations)
	assert.InDelta(t, 0.7, contract.Relevance, 1e-9)

	// Unknown statuses normalize to pending at the boundary.
	assert.Equal(t, domain.StatusPending, docs["d2"].Status)
	assert.Equal(t, "f1", docs["d2"].FolderID)
}

func TestClient_ListFolders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folders", r.URL.Path)
		io.WriteString(w, `{
			"f1": {"id":"f1","name":"Finance","children":["f2"]},
			"f2": {"id":"f2","name":"Archive","parentId":"f1"}
		}`)
	}))

	folders, err := client.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "f1", folders["f2"].ParentID)
	assert.Equal(t, []string{"f2"}, folders["f1"].ChildIDs)
}

func TestClient_CreateFolder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/folders", r.URL.Path)

		var req createFolderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Reports", req.Name)
		assert.Equal(t, "f1", req.ParentID)

		io.WriteString(w, `{"id":"f9","name":"Reports","parentId":"f1"}`)
	}))

	folder, err := client.CreateFolder(context.Background(), "Reports", "f1")
	require.NoError(t, err)
	assert.Equal(t, "f9", folder.ID)
	assert.Equal(t, "f1", folder.ParentID)
}

func TestClient_SetTier(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/documents/d1/tier", r.URL.Path)

		var req setTierRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 4, req.Tier)
	}))

	require.NoError(t, client.SetTier(context.Background(), "d1", domain.TierSovereign))
}

func TestClient_Indexing(t *testing.T) {
	var gotIngest, gotChunks bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/documents/d1/ingest":
			gotIngest = true
		case r.Method == http.MethodDelete && r.URL.Path == "/documents/d1/chunks":
			gotChunks = true
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	require.NoError(t, client.StartIngest(context.Background(), "d1"))
	require.NoError(t, client.RemoveEmbeddings(context.Background(), "d1"))
	assert.True(t, gotIngest)
	assert.True(t, gotChunks)
}

func TestClient_ResolveDownload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/d1/download", r.URL.Path)
		io.WriteString(w, `{"url":"https://vault.example/dl/abc?expires=123"}`)
	}))

	url, err := client.ResolveDownload(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "https://vault.example/dl/abc?expires=123", url)
}

func TestClient_AuditLog(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audit", r.URL.Path)
		assert.Equal(t, "d1", r.URL.Query().Get("documentId"))
		io.WriteString(w, `{"logs":[
			{"id":"a1","documentId":"d1","action":"viewed","actor":"ines"},
			{"id":"a2","documentId":"d1","action":"downloaded"}
		]}`)
	}))

	entries, err := client.AuditLog(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "viewed", entries[0].Action)
	assert.Equal(t, "ines", entries[0].Actor)
}

func TestClient_VerifyIntegrity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/documents/d1/verify", r.URL.Path)
		io.WriteString(w, `{"valid":false,"reason":"checksum mismatch"}`)
	}))

	verdict, err := client.VerifyIntegrity(context.Background(), "d1")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "checksum mismatch", verdict.Reason)
}

func TestClient_RelatedDocuments(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/d1/related", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		io.WriteString(w, `{"related":[
			{"document":{"id":"d2","name":"Draft.md","status":"ready"},"similarity":0.91}
		]}`)
	}))

	related, err := client.RelatedDocuments(context.Background(), "d1", 5)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "d2", related[0].Document.ID)
	assert.Equal(t, domain.StatusIndexed, related[0].Document.Status)
	assert.InDelta(t, 0.91, related[0].Similarity, 1e-9)
}

func TestClient_MoveDocument(t *testing.T) {
	var bodies []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/documents/d1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(raw))
	}))

	require.NoError(t, client.MoveDocument(context.Background(), "d1", "f2"))
	require.NoError(t, client.MoveDocument(context.Background(), "d1", ""))

	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"folderId":"f2"}`, bodies[0])
	assert.JSONEq(t, `{"folderId":null}`, bodies[1], "empty folder id moves to the vault root")
}

func TestClient_ServerErrorMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"success":false,"error":"tier change requires sovereign clearance"}`)
	}))

	err := client.SetTier(context.Background(), "d1", domain.TierSovereign)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "tier change requires sovereign clearance", apiErr.UserMessage())
}

func TestClient_EnvelopeFailureOn200(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false,"error":"document is locked"}`)
	}))

	err := client.StartIngest(context.Background(), "d1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "document is locked", apiErr.UserMessage())
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.ResolveDownload(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// flakyTransport fails the first n round trips at the network level.
type flakyTransport struct {
	failures int32
	inner    http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if atomic.AddInt32(&f.failures, -1) >= 0 {
		return nil, errors.New("connection reset by peer")
	}
	return f.inner.RoundTrip(req)
}

func TestClient_GetRetriesOnceOnTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	hc := &http.Client{
		Transport: &flakyTransport{failures: 1, inner: http.DefaultTransport},
		Timeout:   5 * time.Second,
	}
	client, err := NewClientWithHTTPClient(srv.URL, hc)
	require.NoError(t, err)

	_, err = client.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_GetGivesUpAfterOneRetry(t *testing.T) {
	hc := &http.Client{
		Transport: &flakyTransport{failures: 10, inner: http.DefaultTransport},
		Timeout:   5 * time.Second,
	}
	client, err := NewClientWithHTTPClient("http://vault.invalid", hc)
	require.NoError(t, err)

	_, err = client.ListDocuments(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVaultUnavailable)

	// Two attempts total: the original and one retry.
	var remaining = atomic.LoadInt32(&hc.Transport.(*flakyTransport).failures)
	assert.Equal(t, int32(8), remaining)
}

func TestClient_MutationsNeverRetry(t *testing.T) {
	hc := &http.Client{
		Transport: &flakyTransport{failures: 10, inner: http.DefaultTransport},
		Timeout:   5 * time.Second,
	}
	client, err := NewClientWithHTTPClient("http://vault.invalid", hc)
	require.NoError(t, err)

	err = client.StartIngest(context.Background(), "d1")
	require.Error(t, err)

	remaining := atomic.LoadInt32(&hc.Transport.(*flakyTransport).failures)
	assert.Equal(t, int32(9), remaining, "a mutation must be sent exactly once")
}
