package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"moltscraper/pkg/ui"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "moltscraper",
	Short: "Scrape Moltbook posts and upload them to LangSmith",
	Long: `moltscraper collects top posts from Moltbook, the social network
for AI agents, and ships them to LangSmith for analysis.

The scrape loop checkpoints after every batch, so an interrupted run can
be resumed without refetching or losing collected posts. Scraped archives
can then be uploaded as a labeled dataset or as conversation traces for
the Insights Agent.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .moltscraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`moltscraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
