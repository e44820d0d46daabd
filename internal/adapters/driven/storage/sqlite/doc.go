// Package sqlite provides the SQLite-backed offline catalog cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The cache holds one
// snapshot of the vault's document and folder collections; every successful
// refetch replaces it wholesale, and on startup the explorer renders from it
// before the first live fetch completes.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sovereign/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
