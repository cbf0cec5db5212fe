package langsmith

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"moltscraper/pkg/errors"
	"moltscraper/pkg/logger"
)

// DefaultBaseURL is the LangSmith API root
const DefaultBaseURL = "https://api.smith.langchain.com"

// Client talks to the LangSmith ingestion API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logger.Logger
}

// NewClient creates a LangSmith API client
func NewClient(baseURL, apiKey string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     log,
	}
}

// CreateDataset creates a dataset, reusing an existing one with the same name
func (c *Client) CreateDataset(ctx context.Context, name, description string) (*Dataset, error) {
	body := map[string]string{"name": name, "description": description}

	var dataset Dataset
	err := c.doJSON(ctx, http.MethodPost, "/datasets", body, &dataset)
	if err == nil {
		c.logger.InfoWithFields("created dataset", map[string]interface{}{
			"name": name,
			"id":   dataset.ID,
		})
		return &dataset, nil
	}

	var apiErr *errors.Error
	if stderrors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
		c.logger.InfoWithFields("dataset exists, reusing", map[string]interface{}{"name": name})
		return c.ReadDataset(ctx, name)
	}
	return nil, err
}

// ReadDataset looks up a dataset by name
func (c *Client) ReadDataset(ctx context.Context, name string) (*Dataset, error) {
	path := "/datasets?name=" + url.QueryEscape(name)

	var datasets datasetList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &datasets); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "dataset %q not found", name)
	}
	return &datasets[0], nil
}

// CreateExample adds one example to a dataset
func (c *Client) CreateExample(ctx context.Context, example *Example) error {
	return c.doJSON(ctx, http.MethodPost, "/examples", example, nil)
}

// CreateRun submits one trace to a tracing project
func (c *Client) CreateRun(ctx context.Context, run *Run) error {
	return c.doJSON(ctx, http.MethodPost, "/runs", run, nil)
}

// ListRuns returns up to limit existing runs in a project. A missing
// project is not an error; it just has no runs yet.
func (c *Client) ListRuns(ctx context.Context, projectName string, limit int) ([]Run, error) {
	query := runQuery{SessionName: projectName, Limit: limit}

	var result runList
	if err := c.doJSON(ctx, http.MethodPost, "/runs/query", query, &result); err != nil {
		var apiErr *errors.Error
		if stderrors.As(err, &apiErr) && apiErr.Type == errors.ErrorTypeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return result.Runs, nil
}

// doJSON performs a request with the API key header, encoding body and
// decoding the response into target when non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, target interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrorTypeUnknown, err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeUnknown, err, "failed to create request")
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeNetwork, err, "network error")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WarnWithFields("LangSmith API error", map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
			"body":   string(raw),
		})
		return errors.Newf(errors.TypeFromStatusCode(resp.StatusCode),
			"langsmith %s %s failed: %s", method, path, string(raw)).
			WithCode(resp.StatusCode)
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrap(errors.ErrorTypeParsing, err, "failed to parse response").
			WithCode(resp.StatusCode)
	}
	return nil
}
