package moltbook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"moltscraper/pkg/config"
	"moltscraper/pkg/errors"
	"moltscraper/pkg/logger"
	"moltscraper/pkg/models"
)

// Client talks to the Moltbook listing API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient creates a Moltbook API client. Requests are paced by a rate
// limiter so consecutive batch fetches stay polite to the remote.
func NewClient(cfg config.MoltbookConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	base := cfg.BaseURL
	if base == "" {
		base = BaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   base,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    log,
	}
}

// FetchPosts fetches one batch of posts starting at the given offset
func (c *Client) FetchPosts(ctx context.Context, offset, limit int) (*models.ListResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeNetwork, err, "rate limiter wait interrupted")
	}

	url := ListPostsURL(c.baseURL, offset, limit)

	c.logger.DebugWithFields("fetching posts batch", map[string]interface{}{
		"offset": offset,
		"limit":  limit,
		"url":    url,
	})

	var response models.ListResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("fetched posts batch", map[string]interface{}{
		"offset":   offset,
		"returned": len(response.Posts),
		"has_more": response.HasMore,
	})

	return &response, nil
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeUnknown, err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return errors.Wrap(errors.ErrorTypeNetwork, err, "network error")
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeNetwork, err, "failed to read response body").
			WithCode(resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return errors.Wrap(errors.ErrorTypeParsing, err, "failed to parse response envelope").
			WithCode(resp.StatusCode)
	}

	return nil
}

// checkResponseStatus maps HTTP status codes to typed errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrorTypeAuth, "authentication rejected").
			WithCode(resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrorTypeNotFound, "resource not found").
			WithCode(resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return errors.New(errors.ErrorTypeRateLimit, "rate limit exceeded").
			WithCode(resp.StatusCode)
	case resp.StatusCode >= 500:
		return errors.Newf(errors.ErrorTypeServerError, "server returned status %d", resp.StatusCode).
			WithCode(resp.StatusCode)
	default:
		return errors.Newf(errors.ErrorTypeUnknown, "unexpected status code: %d", resp.StatusCode).
			WithCode(resp.StatusCode)
	}
}
