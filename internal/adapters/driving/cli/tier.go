package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

var tierCmd = &cobra.Command{
	Use:   "tier [document-id] [tier]",
	Short: "Change a document's security tier",
	Long: `Set the security tier of a document.

The tier can be given by name (general, internal, confidential,
sovereign) or by level (1-4).`,
	Args: cobra.ExactArgs(2),
	RunE: runTier,
}

func init() {
	rootCmd.AddCommand(tierCmd)
}

func runTier(cmd *cobra.Command, args []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}

	tier, err := parseTier(args[1])
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := explorerService.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	if err := explorerService.SetTier(ctx, args[0], tier); err != nil {
		return fmt.Errorf("setting tier: %w", err)
	}

	cmd.Printf("Document %s is now %s\n", args[0], tier.Label())
	return nil
}

// parseTier accepts a tier slug or a numeric level.
func parseTier(s string) (domain.SecurityTier, error) {
	if level, err := strconv.Atoi(s); err == nil {
		if level < domain.TierGeneral.Level() || level > domain.TierSovereign.Level() {
			return 0, fmt.Errorf("tier level out of range: %d", level)
		}
		return domain.TierFromLevel(level), nil
	}

	for _, tier := range domain.AllTiers() {
		if tier.String() == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier: %s", s)
}
