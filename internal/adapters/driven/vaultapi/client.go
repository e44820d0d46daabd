// Package vaultapi implements the VaultStore port against the vault
// backend's REST API.
package vaultapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// retryDelay is the pause before the single GET retry.
	retryDelay = 500 * time.Millisecond
)

// Ensure Client implements the interface.
var _ driven.VaultStore = (*Client)(nil)

// Client talks to the vault backend. Idempotent GETs are retried once on
// transient network failure; mutating requests are never retried, since a
// failed send may still have been applied server-side.
type Client struct {
	base        *url.URL
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client authenticating with a static bearer token.
func NewClient(baseURL, token string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = DefaultTimeout
	return NewClientWithHTTPClient(baseURL, hc)
}

// NewClientWithHTTPClient creates a client over a caller-supplied
// http.Client. Used by tests and by OAuth flows that manage refresh.
func NewClientWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: backend URL %q has no scheme or host", domain.ErrInvalidInput, baseURL)
	}
	return &Client{base: base, http: hc, rateLimiter: NewRateLimiter()}, nil
}

// ListDocuments fetches the full document collection.
func (c *Client) ListDocuments(ctx context.Context) (map[string]domain.Document, error) {
	var payload map[string]documentPayload
	if err := c.get(ctx, "/documents", nil, &payload); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make(map[string]domain.Document, len(payload))
	for id, p := range payload {
		if p.ID == "" {
			p.ID = id
		}
		docs[id] = p.toDomain()
	}
	return docs, nil
}

// ListFolders fetches the full folder collection.
func (c *Client) ListFolders(ctx context.Context) (map[string]domain.Folder, error) {
	var payload map[string]folderPayload
	if err := c.get(ctx, "/folders", nil, &payload); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	folders := make(map[string]domain.Folder, len(payload))
	for id, p := range payload {
		if p.ID == "" {
			p.ID = id
		}
		folders[id] = p.toDomain()
	}
	return folders, nil
}

// CreateFolder creates a folder under parentID; empty means vault root.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*domain.Folder, error) {
	var payload folderPayload
	req := createFolderRequest{Name: name, ParentID: parentID}
	if err := c.mutate(ctx, http.MethodPost, "/folders", req, &payload); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	folder := payload.toDomain()
	return &folder, nil
}

// SetTier persists a document's security tier.
func (c *Client) SetTier(ctx context.Context, documentID string, tier domain.SecurityTier) error {
	path := fmt.Sprintf("/documents/%s/tier", url.PathEscape(documentID))
	if err := c.mutate(ctx, http.MethodPatch, path, setTierRequest{Tier: tier.Level()}, nil); err != nil {
		return fmt.Errorf("set tier: %w", err)
	}
	return nil
}

// StartIngest asks the backend to index a document.
func (c *Client) StartIngest(ctx context.Context, documentID string) error {
	path := fmt.Sprintf("/documents/%s/ingest", url.PathEscape(documentID))
	if err := c.mutate(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("start ingest: %w", err)
	}
	return nil
}

// RemoveEmbeddings removes a document's chunks from the index.
func (c *Client) RemoveEmbeddings(ctx context.Context, documentID string) error {
	path := fmt.Sprintf("/documents/%s/chunks", url.PathEscape(documentID))
	if err := c.mutate(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove embeddings: %w", err)
	}
	return nil
}

// ResolveDownload returns a short-lived download URL for a document.
func (c *Client) ResolveDownload(ctx context.Context, documentID string) (string, error) {
	var payload downloadResponse
	path := fmt.Sprintf("/documents/%s/download", url.PathEscape(documentID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return "", fmt.Errorf("resolve download: %w", err)
	}
	return payload.URL, nil
}

// AuditLog fetches the audit trail for a document.
func (c *Client) AuditLog(ctx context.Context, documentID string) ([]domain.AuditEntry, error) {
	var payload auditResponse
	query := url.Values{"documentId": {documentID}}
	if err := c.get(ctx, "/audit", query, &payload); err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(payload.Logs))
	for _, e := range payload.Logs {
		entries = append(entries, domain.AuditEntry{
			ID:         e.ID,
			DocumentID: e.DocumentID,
			Action:     e.Action,
			Actor:      e.Actor,
			OccurredAt: e.OccurredAt,
		})
	}
	return entries, nil
}

// VerifyIntegrity runs a server-side checksum verification.
func (c *Client) VerifyIntegrity(ctx context.Context, documentID string) (*domain.Verification, error) {
	var payload verifyResponse
	path := fmt.Sprintf("/documents/%s/verify", url.PathEscape(documentID))
	if err := c.mutate(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("verify integrity: %w", err)
	}
	return &domain.Verification{Valid: payload.Valid, Reason: payload.Reason}, nil
}

// RelatedDocuments fetches the similarity-ranked neighbours.
func (c *Client) RelatedDocuments(ctx context.Context, documentID string, limit int) ([]domain.RelatedDocument, error) {
	var payload relatedResponse
	path := fmt.Sprintf("/documents/%s/related", url.PathEscape(documentID))
	query := url.Values{"limit": {fmt.Sprint(limit)}}
	if err := c.get(ctx, path, query, &payload); err != nil {
		return nil, fmt.Errorf("related documents: %w", err)
	}

	related := make([]domain.RelatedDocument, 0, len(payload.Related))
	for _, r := range payload.Related {
		related = append(related, domain.RelatedDocument{
			Document:   r.Document.toDomain(),
			Similarity: r.Similarity,
		})
	}
	return related, nil
}

// MoveDocument reparents a document. An empty folderID sends null, which
// the backend reads as the vault root.
func (c *Client) MoveDocument(ctx context.Context, documentID, folderID string) error {
	var req moveDocumentRequest
	if folderID != "" {
		req.FolderID = &folderID
	}
	path := fmt.Sprintf("/documents/%s", url.PathEscape(documentID))
	if err := c.mutate(ctx, http.MethodPatch, path, req, nil); err != nil {
		return fmt.Errorf("move document: %w", err)
	}
	return nil
}

// get issues an idempotent GET, retrying once on transient network
// failure.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	if err == nil || !isTransient(err) {
		return err
	}

	logger.Debug("retrying GET %s after transient failure: %v", path, err)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(retryDelay):
	}
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// mutate issues a mutating request. Never retried: a failed send may
// still have been applied server-side.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := *c.base
	u.Path, _ = url.JoinPath(u.Path, path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrVaultUnavailable, err)
	}
	defer resp.Body.Close()

	c.rateLimiter.RecordResponse(resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", domain.ErrVaultUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", u.Path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw),
			URL:        u.String(),
		}
	}

	// A 2xx body can still report failure through the envelope.
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error, URL: u.String()}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts the error message from a failure body, if any.
func serverMessage(raw []byte) string {
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Error != "" {
		return env.Error
	}
	var generic struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &generic) == nil {
		return generic.Message
	}
	return ""
}

// isTransient reports whether an error is a network-level failure worth
// one retry. Backend-reported failures and cancellations are not.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false
	}
	return errors.Is(err, domain.ErrVaultUnavailable)
}
