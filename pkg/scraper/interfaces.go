package scraper

import (
	"context"

	"moltscraper/pkg/models"
)

// PostFetcher fetches one page of posts from the listing endpoint
type PostFetcher interface {
	FetchPosts(ctx context.Context, offset, limit int) (*models.ListResponse, error)
}
