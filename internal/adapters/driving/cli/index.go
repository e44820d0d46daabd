package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexRemove bool

var indexCmd = &cobra.Command{
	Use:   "index [document-id]",
	Short: "Index a document for retrieval, or remove it",
	Long: `Start ingestion for a document so it becomes retrievable, or
remove its embeddings with --remove.

Indexing is asynchronous on the backend; the document moves through
the processing state before it reports as indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRemove, "remove", false, "remove the document's embeddings")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}

	ctx := context.Background()
	if err := explorerService.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	if err := explorerService.SetIndexing(ctx, args[0], !indexRemove); err != nil {
		return fmt.Errorf("updating indexing: %w", err)
	}

	if indexRemove {
		cmd.Printf("Removed embeddings for %s\n", args[0])
	} else {
		cmd.Printf("Ingestion started for %s\n", args[0])
	}
	return nil
}
