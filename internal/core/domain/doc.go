// Package domain defines the core business entities for Sovereign Explorer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external network dependencies and defines the fundamental types:
//
//   - Document: A vault document as served by the remote store
//   - Folder: A vault folder (parent-pointer tree)
//   - SecurityTier: The four-level classification ordinal
//   - ExplorerItem: The display-ready projection of a document or folder
//
// It also holds the pure derivation logic the browsing UI is built on:
// path resolution, folder-tree building and the list pipeline
// (scope, quick-access filter, search, stable multi-key sort).
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse. The only non-stdlib import is x/text
// collation for locale-aware name ordering.
package domain
