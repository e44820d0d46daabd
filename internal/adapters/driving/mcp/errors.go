// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the vault explorer. It lets AI assistants browse the catalog, look up
// related documents and verify integrity through the driving ports.
package mcp

import "errors"

// ErrMissingExplorerService is returned when the explorer service is not provided.
var ErrMissingExplorerService = errors.New("mcp: explorer service is required")

// ErrMissingInspectorService is returned when the inspector service is not provided.
var ErrMissingInspectorService = errors.New("mcp: inspector service is required")
