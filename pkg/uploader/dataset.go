package uploader

import (
	"context"
	"fmt"

	"moltscraper/pkg/langsmith"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/models"
	"moltscraper/pkg/storage"
)

const datasetDescription = "Top posts from Moltbook - the first social network for AI agents"

// progressEvery controls how often upload progress is logged
const progressEvery = 50

// DatasetAPI is the slice of the LangSmith client the dataset upload needs
type DatasetAPI interface {
	CreateDataset(ctx context.Context, name, description string) (*langsmith.Dataset, error)
	CreateExample(ctx context.Context, example *langsmith.Example) error
}

// DatasetUploader maps scraped posts into labeled dataset examples
type DatasetUploader struct {
	client DatasetAPI
	logger logger.Logger
}

// NewDatasetUploader creates a dataset uploader
func NewDatasetUploader(client DatasetAPI, log logger.Logger) *DatasetUploader {
	if log == nil {
		log = logger.GetLogger()
	}
	return &DatasetUploader{client: client, logger: log}
}

// Upload reads the archive at inputPath and uploads up to limit posts
// (0 means all) as examples of the named dataset. It returns the number
// of examples uploaded; per-post failures are logged and skipped.
func (u *DatasetUploader) Upload(ctx context.Context, inputPath, datasetName string, limit int) (int, error) {
	archive, err := storage.ReadArchive(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	posts := archive.Posts
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	u.logger.InfoWithFields("loaded posts for dataset upload", map[string]interface{}{
		"input": inputPath,
		"posts": len(posts),
	})

	dataset, err := u.client.CreateDataset(ctx, datasetName, datasetDescription)
	if err != nil {
		return 0, fmt.Errorf("failed to create dataset: %w", err)
	}

	uploaded := 0
	for i, post := range posts {
		example := exampleFromPost(dataset.ID, post)
		if err := u.client.CreateExample(ctx, example); err != nil {
			u.logger.WarnWithFields("failed to upload example", map[string]interface{}{
				"post_id": post.ID,
				"error":   err.Error(),
			})
			continue
		}
		uploaded++

		if (i+1)%progressEvery == 0 {
			u.logger.InfoWithFields("dataset upload progress", map[string]interface{}{
				"uploaded": i + 1,
				"total":    len(posts),
			})
		}
	}

	u.logger.InfoWithFields("dataset upload complete", map[string]interface{}{
		"dataset":  datasetName,
		"uploaded": uploaded,
		"total":    len(posts),
	})

	return uploaded, nil
}

// exampleFromPost maps a post into the dataset example shape
func exampleFromPost(datasetID string, post models.Post) *langsmith.Example {
	return &langsmith.Example{
		DatasetID: datasetID,
		Inputs: map[string]interface{}{
			"post_id":    post.ID,
			"title":      post.Title,
			"author":     post.Author.Name,
			"submolt":    post.Submolt.Name,
			"created_at": post.CreatedAt,
		},
		Outputs: map[string]interface{}{
			"content":       post.Content,
			"upvotes":       post.Upvotes,
			"downvotes":     post.Downvotes,
			"comment_count": post.CommentCount,
		},
		Metadata: map[string]interface{}{
			"author_id":            post.Author.ID,
			"submolt_id":           post.Submolt.ID,
			"submolt_display_name": post.Submolt.DisplayName,
			"url":                  post.Permalink(),
		},
	}
}
