package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"moltscraper/pkg/auth"
	"moltscraper/pkg/config"
	"moltscraper/pkg/langsmith"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/ui"
	"moltscraper/pkg/uploader"
)

var (
	uploadInput   string
	uploadLimit   int
	uploadDataset string
	uploadProject string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a scraped archive to LangSmith",
}

var uploadDatasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Upload posts as a labeled LangSmith dataset",
	Long: `Upload a scraped archive to a LangSmith dataset. Each post becomes
one example: title/author/submolt as inputs, content and engagement
counts as outputs.

Requires a LangSmith API key via the LANGSMITH_API_KEY environment
variable or 'moltscraper auth set-key'.`,
	RunE: runUploadDataset,
}

var uploadTracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Upload posts as conversation traces",
	Long: `Upload a scraped archive to a LangSmith tracing project. Each post
becomes a user/assistant conversation trace suitable for the Insights
Agent. Posts already traced in the project are skipped.`,
	RunE: runUploadTraces,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.AddCommand(uploadDatasetCmd)
	uploadCmd.AddCommand(uploadTracesCmd)

	uploadCmd.PersistentFlags().StringVarP(&uploadInput, "input", "i", "moltbook_posts.json", "input JSON file")
	uploadCmd.PersistentFlags().IntVarP(&uploadLimit, "limit", "n", 0, "limit number of posts to upload (0 = all)")
	uploadDatasetCmd.Flags().StringVarP(&uploadDataset, "dataset", "d", "", "dataset name (default moltbook_posts)")
	uploadTracesCmd.Flags().StringVarP(&uploadProject, "project", "p", "", "tracing project name (default moltbook-analysis)")
}

// newLangSmithClient resolves the API key and builds the upload client
func newLangSmithClient(cfg *config.Config) (*langsmith.Client, error) {
	apiKey := cfg.LangSmith.APIKey
	if apiKey == "" {
		key, err := auth.ResolveAPIKey()
		if err != nil {
			return nil, fmt.Errorf("LangSmith API key not configured: set LANGSMITH_API_KEY or run 'moltscraper auth set-key'")
		}
		apiKey = key
	}
	return langsmith.NewClient(cfg.LangSmith.BaseURL, apiKey, logger.GetLogger()), nil
}

func runUploadDataset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(map[string]interface{}{"dataset": uploadDataset})
	if err != nil {
		return err
	}

	client, err := newLangSmithClient(cfg)
	if err != nil {
		return err
	}

	ui.PrintInfo("Uploading dataset", cfg.LangSmith.DatasetName)

	u := uploader.NewDatasetUploader(client, logger.GetLogger())
	count, err := u.Upload(context.Background(), uploadInput, cfg.LangSmith.DatasetName, uploadLimit)
	if err != nil {
		ui.PrintError("Dataset upload failed", err.Error())
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Uploaded %d posts to dataset %q", count, cfg.LangSmith.DatasetName))
	return nil
}

func runUploadTraces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(map[string]interface{}{"project": uploadProject})
	if err != nil {
		return err
	}

	client, err := newLangSmithClient(cfg)
	if err != nil {
		return err
	}

	ui.PrintInfo("Uploading traces", cfg.LangSmith.ProjectName)

	u := uploader.NewTraceUploader(client, logger.GetLogger())
	uploaded, skipped, err := u.Upload(context.Background(), uploadInput, cfg.LangSmith.ProjectName, uploadLimit)
	if err != nil {
		ui.PrintError("Trace upload failed", err.Error())
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Uploaded %d new traces to project %q", uploaded, cfg.LangSmith.ProjectName))
	if skipped > 0 {
		ui.PrintInfo("Skipped duplicates", fmt.Sprintf("%d", skipped))
	}
	return nil
}
