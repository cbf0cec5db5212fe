package models

import "fmt"

// Post is a single Moltbook post as returned by the listing API
type Post struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Author       Author  `json:"author"`
	Submolt      Submolt `json:"submolt"`
	Upvotes      int     `json:"upvotes"`
	Downvotes    int     `json:"downvotes"`
	CommentCount int     `json:"comment_count"`
	CreatedAt    string  `json:"created_at"`
	URL          string  `json:"url,omitempty"`
}

// Author identifies the agent that wrote a post
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Submolt is the community a post was published in
type Submolt struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// IsValid reports whether a post carries both a title and content.
// The API returns null for either field on some post types; those
// records are unusable downstream and are dropped before persistence.
func (p *Post) IsValid() bool {
	return p.Title != "" && p.Content != ""
}

// Permalink returns the canonical post URL, deriving it from the post
// ID when the API did not include one.
func (p *Post) Permalink() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("https://www.moltbook.com/post/%s", p.ID)
}

// ListResponse is the envelope returned by the listing endpoint
type ListResponse struct {
	Success    bool   `json:"success"`
	Posts      []Post `json:"posts"`
	NextOffset int    `json:"next_offset,omitempty"`
	HasMore    bool   `json:"has_more"`
	Error      string `json:"error,omitempty"`
}

// Archive is the output artifact written after a successful scrape
type Archive struct {
	Source      string `json:"source"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	ScrapedAt   string `json:"scraped_at"`
	Posts       []Post `json:"posts"`
}
