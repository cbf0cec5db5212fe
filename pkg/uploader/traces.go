package uploader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"moltscraper/pkg/langsmith"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/models"
	"moltscraper/pkg/storage"
)

// existingRunsLimit bounds the duplicate scan of a tracing project
const existingRunsLimit = 1000

// TraceAPI is the slice of the LangSmith client the trace upload needs
type TraceAPI interface {
	CreateRun(ctx context.Context, run *langsmith.Run) error
	ListRuns(ctx context.Context, projectName string, limit int) ([]langsmith.Run, error)
}

// TraceUploader maps scraped posts into conversation traces
type TraceUploader struct {
	client TraceAPI
	logger logger.Logger
}

// NewTraceUploader creates a trace uploader
func NewTraceUploader(client TraceAPI, log logger.Logger) *TraceUploader {
	if log == nil {
		log = logger.GetLogger()
	}
	return &TraceUploader{client: client, logger: log}
}

// Upload reads the archive at inputPath and submits up to limit posts
// (0 means all) as traces of the named project, skipping posts whose id
// already has a trace there. It returns (uploaded, skipped) counts.
func (u *TraceUploader) Upload(ctx context.Context, inputPath, projectName string, limit int) (int, int, error) {
	archive, err := storage.ReadArchive(inputPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read input: %w", err)
	}

	posts := archive.Posts
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	existing, err := u.existingPostIDs(ctx, projectName)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list existing traces: %w", err)
	}
	if len(existing) > 0 {
		u.logger.InfoWithFields("found existing traces, skipping duplicates", map[string]interface{}{
			"project":  projectName,
			"existing": len(existing),
		})
	}

	uploaded, skipped := 0, 0
	for i, post := range posts {
		if _, ok := existing[post.ID]; ok {
			skipped++
			continue
		}

		run := runFromPost(projectName, post)
		if err := u.client.CreateRun(ctx, run); err != nil {
			u.logger.WarnWithFields("failed to upload trace", map[string]interface{}{
				"post_id": post.ID,
				"error":   err.Error(),
			})
			continue
		}
		uploaded++

		if (i+1)%progressEvery == 0 {
			u.logger.InfoWithFields("trace upload progress", map[string]interface{}{
				"uploaded": uploaded,
				"skipped":  skipped,
				"total":    len(posts),
			})
		}
	}

	u.logger.InfoWithFields("trace upload complete", map[string]interface{}{
		"project":  projectName,
		"uploaded": uploaded,
		"skipped":  skipped,
	})

	return uploaded, skipped, nil
}

// existingPostIDs collects post ids already traced in the project
func (u *TraceUploader) existingPostIDs(ctx context.Context, projectName string) (map[string]struct{}, error) {
	runs, err := u.client.ListRuns(ctx, projectName, existingRunsLimit)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{})
	for _, run := range runs {
		meta, ok := run.Extra["metadata"].(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := meta["post_id"].(string); ok && id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// runFromPost maps a post into the conversation trace shape
func runFromPost(projectName string, post models.Post) *langsmith.Run {
	prompt := fmt.Sprintf("Post by %s in m/%s: %s", post.Author.Name, post.Submolt.Name, post.Title)

	createdAt, err := time.Parse(time.RFC3339, post.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	return &langsmith.Run{
		ID:      uuid.NewString(),
		Name:    "moltbook_post",
		RunType: "chain",
		Inputs: langsmith.MessagePayload{
			Messages: []langsmith.Message{{Role: "user", Content: prompt}},
		},
		Outputs: langsmith.MessagePayload{
			Messages: []langsmith.Message{{Role: "assistant", Content: post.Content}},
		},
		SessionName: projectName,
		StartTime:   createdAt,
		EndTime:     createdAt,
		Extra: map[string]interface{}{
			"metadata": map[string]interface{}{
				"post_id":       post.ID,
				"author":        post.Author.Name,
				"author_id":     post.Author.ID,
				"submolt":       post.Submolt.Name,
				"submolt_id":    post.Submolt.ID,
				"upvotes":       post.Upvotes,
				"downvotes":     post.Downvotes,
				"comment_count": post.CommentCount,
				"created_at":    post.CreatedAt,
				"url":           post.Permalink(),
			},
		},
	}
}
