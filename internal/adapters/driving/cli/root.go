// Package cli provides the cobra command tree for the Sovereign CLI.
// Commands talk to the core exclusively through driving ports; the
// composition root wires concrete services in via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

// Services wired in by the composition root.
var (
	explorerService  driving.ExplorerService
	inspectorService driving.InspectorService
	configStore      driven.ConfigStore
	noticeBridge     *tui.NoticeBridge
)

// Services carries the wired core services into the CLI.
type Services struct {
	Explorer  driving.ExplorerService
	Inspector driving.InspectorService
	Config    driven.ConfigStore
	Bridge    *tui.NoticeBridge
}

// SetServices injects the concrete services the commands run against.
func SetServices(s Services) {
	explorerService = s.Explorer
	inspectorService = s.Inspector
	configStore = s.Config
	noticeBridge = s.Bridge
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "sovereign",
	Short: "Browse and manage a sovereign document vault",
	Long: `Sovereign is a terminal client for a sovereign document vault.

It browses the vault's folder hierarchy, manages security tiers and
retrieval indexing, verifies document integrity and keeps an offline
catalog snapshot for degraded operation.

Run without a subcommand to launch the interactive explorer.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
