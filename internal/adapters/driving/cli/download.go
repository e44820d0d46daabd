package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/core/services"
)

var downloadOpen bool

var downloadCmd = &cobra.Command{
	Use:   "download [document-id]",
	Short: "Resolve a document's download URL",
	Long: `Resolve a short-lived download URL for a document.

The URL is printed by default; --open hands it to the system browser
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadOpen, "open", false, "open the URL in the browser")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if inspectorService == nil {
		return errors.New("inspector service not configured")
	}

	url, err := inspectorService.ResolveDownload(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("resolving download: %w", err)
	}

	if downloadOpen {
		if err := services.OpenURL(url); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
		cmd.Println("Opened download in browser.")
		return nil
	}

	cmd.Println(url)
	return nil
}
