package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sovereign-explorer/internal/core/ports/driven"
)

var loginURL string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store vault backend credentials",
	Long: `Store the backend URL and API token in the config file.

The token is prompted without echo and written to ~/.sovereign/config.toml
with owner-only permissions.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginURL, "url", "", "vault backend base URL")
	rootCmd.AddCommand(loginCmd)
}

//nolint:errcheck // CLI interactive flow
func runLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	url := loginURL
	if url == "" {
		current := configStore.GetString(driven.ConfigKeyBackendURL)
		if current != "" {
			cmd.Printf("Backend URL [%s]: ", current)
		} else {
			cmd.Print("Backend URL: ")
		}
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			url = input
		} else {
			url = current
		}
	}
	if url == "" {
		return errors.New("backend URL is required")
	}

	cmd.Print("API token: ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if len(token) == 0 {
		return errors.New("API token is required")
	}

	if err := configStore.Set(driven.ConfigKeyBackendURL, url); err != nil {
		return fmt.Errorf("saving backend URL: %w", err)
	}
	if err := configStore.Set(driven.ConfigKeyAPIToken, string(token)); err != nil {
		return fmt.Errorf("saving API token: %w", err)
	}

	cmd.Printf("Credentials saved to %s\n", configStore.Path())
	return nil
}
