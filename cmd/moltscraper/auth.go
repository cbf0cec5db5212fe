package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moltscraper/pkg/auth"
	"moltscraper/pkg/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the LangSmith API key",
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the LangSmith API key in the system keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("LangSmith API key: ")
		reader := bufio.NewReader(os.Stdin)
		key, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}

		if err := auth.NewKeyringStore().Set(key); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		ui.PrintSuccess("API key stored in system keychain")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the LangSmith API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := auth.NewEnvironmentStore().Get(); err == nil {
			ui.PrintInfo("API key", "configured via "+auth.EnvAPIKey)
			return nil
		}
		if _, err := auth.NewKeyringStore().Get(); err == nil {
			ui.PrintInfo("API key", "stored in system keychain")
			return nil
		}
		ui.PrintWarning("No API key configured")
		ui.PrintInfo("Hint", "export "+auth.EnvAPIKey+" or run 'moltscraper auth set-key'")
		return nil
	},
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored LangSmith API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.NewKeyringStore().Delete(); err != nil {
			return fmt.Errorf("failed to remove key: %w", err)
		}
		ui.PrintSuccess("API key removed from system keychain")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRemoveCmd)
}
