package scraper

import (
	"context"
	"fmt"

	"moltscraper/pkg/checkpoint"
	"moltscraper/pkg/config"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/moltbook"
	"moltscraper/pkg/models"
	"moltscraper/pkg/retry"
	"moltscraper/pkg/storage"
)

// Scraper drives the batch fetch loop: paginate the listing endpoint,
// validate and deduplicate posts, checkpoint after every batch, and
// write the final archive once the target count is reached.
type Scraper struct {
	fetcher PostFetcher
	config  *config.Config
	logger  logger.Logger
}

// New creates a Scraper backed by the Moltbook API client
func New(cfg *config.Config) *Scraper {
	log := logger.GetLogger()
	return &Scraper{
		fetcher: moltbook.NewClient(cfg.Moltbook, log),
		config:  cfg,
		logger:  log,
	}
}

// NewWithFetcher creates a Scraper with an injected fetcher, used in tests
func NewWithFetcher(cfg *config.Config, fetcher PostFetcher, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{
		fetcher: fetcher,
		config:  cfg,
		logger:  log,
	}
}

// Run scrapes up to targetCount valid posts, resuming from the checkpoint
// at checkpointPath when one exists, and writes the result to outputPath.
// It returns the number of posts written.
//
// Invariants: the final collection contains no duplicate ids and no post
// with an empty title or content; an interrupted run loses at most one
// in-flight batch because the checkpoint is rewritten after every batch.
func (s *Scraper) Run(ctx context.Context, targetCount int, outputPath, checkpointPath string) (int, error) {
	if targetCount <= 0 {
		return 0, fmt.Errorf("target count must be positive, got %d", targetCount)
	}

	cpMgr := checkpoint.NewManager(checkpointPath, s.logger)

	cp, err := cpMgr.Load()
	if err != nil {
		return 0, fmt.Errorf("cannot resume: %w", err)
	}
	if cp == nil {
		cp = checkpoint.New()
		s.logger.InfoWithFields("starting fresh scrape", map[string]interface{}{
			"target":     targetCount,
			"batch_size": s.config.Scrape.BatchSize,
		})
	} else {
		s.logger.InfoWithFields("resuming from checkpoint", map[string]interface{}{
			"collected": len(cp.Posts),
			"offset":    cp.Offset,
		})
	}

	posts := cp.Posts
	seen := cp.SeenIDs()
	offset := cp.Offset
	batchSize := s.config.Scrape.BatchSize

	retryCfg := &retry.Config{
		MaxAttempts: s.config.Retry.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    s.config.Retry.BaseDelay,
			MaxDelay:     s.config.Retry.MaxDelay,
			Multiplier:   s.config.Retry.Multiplier,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Context: ctx,
		Logger:  s.logger,
	}

	batchNum := 0
	for len(posts) < targetCount {
		batchNum++
		fetchOffset := offset

		resp, err := retry.DoWithResult(func() (*models.ListResponse, error) {
			return s.fetcher.FetchPosts(ctx, fetchOffset, batchSize)
		}, retryCfg)
		if err != nil {
			// The last successful checkpoint stays on disk for resumption.
			return len(posts), fmt.Errorf("fetch at offset %d failed: %w", fetchOffset, err)
		}

		if !resp.Success || len(resp.Posts) == 0 {
			s.logger.InfoWithFields("no more posts available", map[string]interface{}{
				"offset":    fetchOffset,
				"collected": len(posts),
			})
			break
		}

		kept, dropped, duplicates := 0, 0, 0
		for _, p := range resp.Posts {
			if !p.IsValid() {
				dropped++
				continue
			}
			if _, ok := seen[p.ID]; ok {
				duplicates++
				continue
			}
			seen[p.ID] = struct{}{}
			posts = append(posts, p)
			kept++
		}

		nextOffset := resp.NextOffset
		if nextOffset <= fetchOffset {
			nextOffset = fetchOffset + batchSize
		}

		cp.Offset = nextOffset
		cp.Posts = posts
		if err := cpMgr.Save(cp); err != nil {
			return len(posts), fmt.Errorf("failed to save checkpoint: %w", err)
		}

		s.logger.InfoWithFields("batch processed", map[string]interface{}{
			"batch":      batchNum,
			"offset":     fetchOffset,
			"kept":       kept,
			"dropped":    dropped,
			"duplicates": duplicates,
			"collected":  len(posts),
			"target":     targetCount,
		})

		if !resp.HasMore {
			break
		}
		offset = nextOffset
	}

	if len(posts) > targetCount {
		posts = posts[:targetCount]
	}

	if err := storage.WriteArchive(outputPath, posts); err != nil {
		return len(posts), fmt.Errorf("failed to write output: %w", err)
	}

	s.logger.InfoWithFields("scrape complete", map[string]interface{}{
		"written": len(posts),
		"output":  outputPath,
	})

	return len(posts), nil
}
