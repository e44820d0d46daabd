package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sovereign-explorer/internal/core/domain"
)

var (
	lsJSON    bool
	lsSearch  string
	lsSort    string
	lsAsc     bool
	lsStarred bool
	lsRecent  bool
)

var lsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List documents and folders",
	Long: `List the contents of a vault folder (the root when omitted).

Folders always sort before documents. --starred and --recent select
across the whole vault rather than within the folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "output items as JSON")
	lsCmd.Flags().StringVar(&lsSearch, "search", "", "filter by name substring")
	lsCmd.Flags().StringVar(&lsSort, "sort", "updatedAt",
		"sort field (name, security, updatedAt, size, relevanceScore)")
	lsCmd.Flags().BoolVar(&lsAsc, "reverse", false, "reverse the field's natural order")
	lsCmd.Flags().BoolVar(&lsStarred, "starred", false, "only starred documents (vault-wide)")
	lsCmd.Flags().BoolVar(&lsRecent, "recent", false, "only recently updated documents (vault-wide)")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	if explorerService == nil {
		return errors.New("explorer service not configured")
	}
	if lsStarred && lsRecent {
		return errors.New("--starred and --recent are mutually exclusive")
	}

	field, err := parseSortField(lsSort)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := explorerService.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	if len(args) == 1 {
		if _, ok := explorerService.Folder(args[0]); !ok {
			return fmt.Errorf("folder not found: %s", args[0])
		}
		explorerService.EnterFolder(args[0])
	}
	explorerService.SetSearch(lsSearch)
	explorerService.SetSort(field, lsAsc)
	switch {
	case lsStarred:
		explorerService.SetQuickFilter(domain.QuickStarred)
	case lsRecent:
		explorerService.SetQuickFilter(domain.QuickRecent)
	}

	items := explorerService.Items()
	if lsJSON {
		return outputItemsJSON(cmd, items)
	}
	return outputItemsTable(cmd, items)
}

// parseSortField maps a flag value onto a sort field.
func parseSortField(s string) (domain.SortField, error) {
	switch domain.SortField(s) {
	case domain.SortByName, domain.SortBySecurity, domain.SortByUpdatedAt,
		domain.SortBySize, domain.SortByRelevance:
		return domain.SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field: %s", s)
	}
}

func outputItemsJSON(cmd *cobra.Command, items []domain.ExplorerItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputItemsTable(cmd *cobra.Command, items []domain.ExplorerItem) error {
	if len(items) == 0 {
		cmd.Println("No items.")
		return nil
	}

	for i := range items {
		item := &items[i]
		kind := "doc"
		if item.Type == domain.ItemFolder {
			kind = "dir"
		}

		star := " "
		if item.Starred {
			star = "*"
		}

		cmd.Printf("  %s %s %-40s %-12s", kind, star, item.Name, item.Security)
		if item.Type == domain.ItemDocument {
			cmd.Printf(" %8d  %s", item.Size, item.UpdatedAt.Format("2006-01-02"))
			if item.Indexed {
				cmd.Printf("  indexed")
			}
		}
		cmd.Printf("  (%s)\n", item.ID)
	}
	return nil
}
