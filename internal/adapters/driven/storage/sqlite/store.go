package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

var _ driven.CatalogCache = (*Store)(nil)

// Store is the SQLite-backed catalog cache. It holds a single snapshot;
// saving replaces everything in one transaction.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a catalog cache at the specified data directory.
// If dataDir is empty, defaults to ~/.sovereign/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sovereign", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_catalog.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveSnapshot replaces the cached catalog in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snap driven.CatalogSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "folders", "snapshot_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)",
		snap.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving snapshot meta: %w", err)
	}

	for _, doc := range snap.Documents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents
				(id, name, size, created_at, updated_at, status,
				 security_level, starred, folder_id, checksum, citations, relevance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.Name, doc.Size,
			doc.CreatedAt.UTC().Format(time.RFC3339Nano),
			doc.UpdatedAt.UTC().Format(time.RFC3339Nano),
			string(doc.Status), doc.SecurityLevel, doc.Starred,
			doc.FolderID, doc.Checksum, doc.Citations, doc.Relevance)
		if err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}

	for _, folder := range snap.Folders {
		childIDs, err := json.Marshal(folder.ChildIDs)
		if err != nil {
			return fmt.Errorf("marshalling child ids: %w", err)
		}
		documentIDs, err := json.Marshal(folder.DocumentIDs)
		if err != nil {
			return fmt.Errorf("marshalling document ids: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO folders (id, name, parent_id, child_ids, document_ids)
			VALUES (?, ?, ?, ?, ?)`,
			folder.ID, folder.Name, folder.ParentID, string(childIDs), string(documentIDs))
		if err != nil {
			return fmt.Errorf("saving folder %s: %w", folder.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached catalog, or domain.ErrNotFound when no
// snapshot has ever been saved.
func (s *Store) LoadSnapshot(ctx context.Context) (*driven.CatalogSnapshot, error) {
	var fetchedAt string
	row := s.db.QueryRowContext(ctx, "SELECT fetched_at FROM snapshot_meta WHERE id = 1")
	if err := row.Scan(&fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading snapshot meta: %w", err)
	}

	snap := driven.CatalogSnapshot{
		Documents: make(map[string]domain.Document),
		Folders:   make(map[string]domain.Folder),
	}

	var err error
	snap.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}

	if err := s.loadDocuments(ctx, snap.Documents); err != nil {
		return nil, err
	}
	if err := s.loadFolders(ctx, snap.Folders); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) loadDocuments(ctx context.Context, out map[string]domain.Document) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, size, created_at, updated_at, status,
		       security_level, starred, folder_id, checksum, citations, relevance
		FROM documents`)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc domain.Document
		var status, createdAt, updatedAt string
		err := rows.Scan(&doc.ID, &doc.Name, &doc.Size, &createdAt, &updatedAt,
			&status, &doc.SecurityLevel, &doc.Starred, &doc.FolderID,
			&doc.Checksum, &doc.Citations, &doc.Relevance)
		if err != nil {
			return fmt.Errorf("scanning document: %w", err)
		}

		doc.Status = domain.DocumentStatus(status)
		if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return fmt.Errorf("parsing created_at for %s: %w", doc.ID, err)
		}
		if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return fmt.Errorf("parsing updated_at for %s: %w", doc.ID, err)
		}
		out[doc.ID] = doc
	}
	return rows.Err()
}

func (s *Store) loadFolders(ctx context.Context, out map[string]domain.Folder) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, parent_id, child_ids, document_ids FROM folders`)
	if err != nil {
		return fmt.Errorf("loading folders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var folder domain.Folder
		var childIDs, documentIDs string
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.ParentID, &childIDs, &documentIDs); err != nil {
			return fmt.Errorf("scanning folder: %w", err)
		}
		if err := json.Unmarshal([]byte(childIDs), &folder.ChildIDs); err != nil {
			return fmt.Errorf("unmarshalling child ids for %s: %w", folder.ID, err)
		}
		if err := json.Unmarshal([]byte(documentIDs), &folder.DocumentIDs); err != nil {
			return fmt.Errorf("unmarshalling document ids for %s: %w", folder.ID, err)
		}
		out[folder.ID] = folder
	}
	return rows.Err()
}
