package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driving"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [document-id]",
	Short: "Verify a document's integrity",
	Long:  `Ask the backend to verify the stored content against its checksum.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if inspectorService == nil {
		return errors.New("inspector service not configured")
	}

	docID := args[0]
	inspectorService.Select(docID)
	defer inspectorService.Close()

	inspectorService.FetchVerification(context.Background(), docID)

	state := inspectorService.State()
	if state.VerifyPhase != driving.OpSuccess {
		return fmt.Errorf("verification failed: %w", state.VerifyErr)
	}

	if state.Verify.Valid {
		cmd.Printf("Document %s: checksum valid\n", docID)
		return nil
	}

	cmd.Printf("Document %s: INVALID (%s)\n", docID, state.Verify.Reason)
	return nil
}
