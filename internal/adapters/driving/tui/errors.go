package tui

import "errors"

// Errors returned when required ports are missing.
var (
	// ErrMissingExplorerService indicates the explorer service port is not set.
	ErrMissingExplorerService = errors.New("explorer service is required")

	// ErrMissingInspectorService indicates the inspector service port is not set.
	ErrMissingInspectorService = errors.New("inspector service is required")
)
