// Package tui provides the interactive vault explorer terminal interface.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explorer owns the vault browsing state.
	Explorer driving.ExplorerService

	// Inspector coordinates the per-item detail panel.
	Inspector driving.InspectorService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(explorer driving.ExplorerService, inspector driving.InspectorService) *Ports {
	return &Ports{
		Explorer:  explorer,
		Inspector: inspector,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Explorer == nil {
		return ErrMissingExplorerService
	}
	if p.Inspector == nil {
		return ErrMissingInspectorService
	}
	return nil
}
