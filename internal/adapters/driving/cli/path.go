package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path [folder-id]",
	Short: "Resolve a folder's breadcrumb path",
	Long: `Print the breadcrumb path of a folder, root first.

Broken parent links truncate the path at the last known folder rather
than failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}

	ctx := context.Background()
	if err := explorerService.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	if _, ok := explorerService.Folder(args[0]); !ok {
		return fmt.Errorf("folder not found: %s", args[0])
	}

	explorerService.EnterFolder(args[0])
	crumbs := explorerService.Breadcrumbs()

	parts := []string{"vault"}
	for _, crumb := range crumbs {
		parts = append(parts, crumb.Name)
	}
	cmd.Println(strings.Join(parts, " / "))
	return nil
}
