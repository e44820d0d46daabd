package mcp

import (
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explorer owns the vault browsing state.
	Explorer driving.ExplorerService

	// Inspector coordinates per-item side-channel lookups.
	Inspector driving.InspectorService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Explorer == nil {
		return ErrMissingExplorerService
	}
	if p.Inspector == nil {
		return ErrMissingInspectorService
	}
	return nil
}
