// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VaultStore: The remote document store (the single source of truth)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CatalogCache: Local snapshot of the vault catalog. Without it the
//     explorer simply renders nothing until the first fetch completes.
//   - Notifier: Transient user-facing notifications. Without it failures
//     are still logged but not surfaced.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
