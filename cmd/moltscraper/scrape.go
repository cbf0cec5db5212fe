package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moltscraper/pkg/checkpoint"
	"moltscraper/pkg/config"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/scraper"
	"moltscraper/pkg/ui"
)

var (
	scrapeCount      int
	scrapeOutput     string
	scrapeCheckpoint string
	scrapeBatchSize  int
	scrapeMaxRetries int
	scrapeFresh      bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape top posts from Moltbook",
	Long: `Scrape top posts from the Moltbook listing API.

Progress is checkpointed after every batch. If a previous checkpoint
exists for the same output, the run resumes from it automatically;
use --fresh to discard it and start over.`,
	Example: `  # Scrape 500 posts with defaults
  moltscraper scrape

  # Scrape 100 posts to a custom file
  moltscraper scrape --count 100 --output top100.json

  # Discard a previous checkpoint and start over
  moltscraper scrape --fresh`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().IntVarP(&scrapeCount, "count", "n", 500, "number of posts to fetch")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "output JSON file (default moltbook_posts.json)")
	scrapeCmd.Flags().StringVar(&scrapeCheckpoint, "checkpoint", "", "checkpoint file (default derived from output)")
	scrapeCmd.Flags().IntVar(&scrapeBatchSize, "batch-size", 25, "posts per API request")
	scrapeCmd.Flags().IntVar(&scrapeMaxRetries, "max-retries", 5, "max retry attempts per request")
	scrapeCmd.Flags().BoolVar(&scrapeFresh, "fresh", false, "ignore any existing checkpoint and start over")
}

func runScrape(cmd *cobra.Command, args []string) error {
	// Only explicitly set flags override file and environment config
	flags := make(map[string]interface{})
	if cmd.Flags().Changed("count") {
		flags["count"] = scrapeCount
	}
	if cmd.Flags().Changed("output") {
		flags["output"] = scrapeOutput
	}
	if cmd.Flags().Changed("checkpoint") {
		flags["checkpoint"] = scrapeCheckpoint
	}
	if cmd.Flags().Changed("batch-size") {
		flags["batch-size"] = scrapeBatchSize
	}
	if cmd.Flags().Changed("max-retries") {
		flags["max-retries"] = scrapeMaxRetries
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log := logger.GetLogger()
	checkpointPath := cfg.CheckpointPath()

	if scrapeFresh {
		mgr := checkpoint.NewManager(checkpointPath, log)
		if mgr.Exists() {
			if err := mgr.Delete(); err != nil {
				return fmt.Errorf("failed to remove previous checkpoint: %w", err)
			}
			ui.PrintWarning("Discarded previous checkpoint")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintInfo("Scraping", fmt.Sprintf("%d posts from Moltbook", cfg.Scrape.TargetCount))
	ui.PrintInfo("Output", cfg.Scrape.OutputFile)

	s := scraper.New(cfg)
	count, err := s.Run(ctx, cfg.Scrape.TargetCount, cfg.Scrape.OutputFile, checkpointPath)
	if err != nil {
		ui.PrintError("Scrape failed", err.Error())
		ui.PrintWarning("Run again to resume from the last checkpoint")
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Saved %d posts to %s", count, cfg.Scrape.OutputFile))
	return nil
}

// loadConfig builds the effective configuration and initializes logging
func loadConfig(flags map[string]interface{}) (*config.Config, error) {
	if rootCmd.PersistentFlags().Changed("log-level") {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(logger.Options{Level: cfg.Logging.Level}); err != nil {
		return nil, err
	}
	return cfg, nil
}
