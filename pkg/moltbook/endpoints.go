package moltbook

import (
	"fmt"
	"net/url"
)

// BaseURL is the default Moltbook API root
const BaseURL = "https://www.moltbook.com/api/v1"

// ListPostsURL builds the listing endpoint URL for one page of top posts
func ListPostsURL(base string, offset, limit int) string {
	q := url.Values{}
	q.Set("sort", "top")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return fmt.Sprintf("%s/posts?%s", base, q.Encode())
}
