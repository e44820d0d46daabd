package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

var relatedJSON bool

var relatedCmd = &cobra.Command{
	Use:   "related [document-id]",
	Short: "List documents related to a document",
	Long: `List the similarity-ranked neighbours of a document, as reported
by the backend's retrieval index.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	if inspectorService == nil {
		return errors.New("inspector service not configured")
	}

	docID := args[0]
	inspectorService.Select(docID)
	defer inspectorService.Close()

	inspectorService.FetchRelated(context.Background(), docID)

	state := inspectorService.State()
	if state.RelatedPhase != driving.OpSuccess {
		return fmt.Errorf("related lookup failed: %w", state.RelatedErr)
	}

	related := state.Related.Related
	if relatedJSON {
		data, err := json.MarshalIndent(related, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(related) == 0 {
		cmd.Println("No related documents.")
		return nil
	}

	cmd.Printf("Related to %s:\n\n", docID)
	for i := range related {
		cmd.Printf("  [%d] %s (%.0f%%)  %s\n",
			i+1, related[i].Document.Name, related[i].Similarity*100, related[i].Document.ID)
	}
	return nil
}
