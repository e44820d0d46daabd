package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive vault explorer",
	Long: `Launch the interactive terminal user interface.

The explorer lists the current folder with breadcrumbs, a most-cited
strip and an optional folder tree. Documents can be starred, re-tiered,
indexed and inspected without leaving the keyboard.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open folder / inspect document
  /        - Filter by name
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so the terminal state and stack trace survive.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if explorerService == nil || inspectorService == nil {
		return errors.New("explorer services not configured")
	}

	ports := tui.NewPorts(explorerService, inspectorService)

	app, err := tui.NewApp(ports, noticeBridge)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
