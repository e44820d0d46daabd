// Command sovereign is the terminal client for a sovereign document vault.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driven/vaultapi"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/cli"
	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui"
	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/core/services"
	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	// Hot-reload external edits to the config file. Long-running
	// commands (TUI, MCP serve) pick up token rotations without a
	// restart; one-shot commands never notice.
	watcher, err := file.NewWatcher(configStore, func() {
		logger.Info("configuration reloaded from %s", configStore.Path())
	})
	if err == nil {
		defer watcher.Close()
	} else {
		logger.Warn("config watcher unavailable: %v", err)
	}

	vault, err := newVaultStore(configStore)
	if err != nil {
		return err
	}

	cache, err := sqlite.NewStore(configStore.GetString(driven.ConfigKeyCacheDir))
	if err != nil {
		return fmt.Errorf("opening catalog cache: %w", err)
	}
	defer cache.Close()

	bridge := tui.NewNoticeBridge()
	explorerSvc := services.NewExplorerService(vault, cache, bridge)
	inspectorSvc := services.NewInspectorService(vault, bridge)

	cli.SetServices(cli.Services{
		Explorer:  explorerSvc,
		Inspector: inspectorSvc,
		Config:    configStore,
		Bridge:    bridge,
	})

	return cli.Execute()
}

// newVaultStore builds the vault backend client. Without a configured
// backend the in-memory demo vault keeps every command usable.
func newVaultStore(configStore driven.ConfigStore) (driven.VaultStore, error) {
	baseURL := configStore.GetString(driven.ConfigKeyBackendURL)
	if baseURL == "" {
		logger.Info("no backend configured, using the in-memory demo vault")
		return newDemoVault(), nil
	}

	client, err := vaultapi.NewClient(baseURL, configStore.GetString(driven.ConfigKeyAPIToken))
	if err != nil {
		return nil, fmt.Errorf("configuring vault client: %w", err)
	}
	return client, nil
}

// newDemoVault seeds a small catalog so the explorer has something to
// show before `sovereign login` has run.
func newDemoVault() *memory.VaultStore {
	vault := memory.NewVaultStore()
	now := time.Now()

	vault.PutFolder(domain.Folder{ID: "demo-finance", Name: "Finance"})
	vault.PutFolder(domain.Folder{ID: "demo-archive", Name: "Archive", ParentID: "demo-finance"})

	vault.PutDocument(domain.Document{
		ID: "demo-handbook", Name: "Handbook.pdf", Status: domain.StatusIndexed,
		Size: 482_133, SecurityLevel: 1, UpdatedAt: now.Add(-48 * time.Hour),
		Checksum: "d2b2f7", Citations: 4, Relevance: 0.61,
	})
	vault.PutDocument(domain.Document{
		ID: "demo-budget", Name: "Budget-2026.xlsx", FolderID: "demo-finance",
		Status: domain.StatusIndexed, Size: 88_204, SecurityLevel: 3,
		UpdatedAt: now.Add(-2 * time.Hour), Checksum: "91acc0",
		Starred: true, Citations: 11, Relevance: 0.87,
	})
	vault.PutDocument(domain.Document{
		ID: "demo-scan", Name: "Scan-0042.pdf", FolderID: "demo-archive",
		Status: domain.StatusPending, Size: 1_204_511, SecurityLevel: 2,
		UpdatedAt: now.Add(-30 * 24 * time.Hour),
	})

	vault.PutAudit("demo-budget", []domain.AuditEntry{
		{ID: "demo-a1", DocumentID: "demo-budget", Action: "viewed", Actor: "demo", OccurredAt: now.Add(-time.Hour)},
	})
	vault.PutRelated("demo-budget", []domain.RelatedDocument{
		{Document: domain.Document{ID: "demo-handbook", Name: "Handbook.pdf"}, Similarity: 0.44},
	})
	return vault
}
