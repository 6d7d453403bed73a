package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a typed client for the catalog API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a catalog API client for the given base URL.
func NewClient(rawURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL: %w", err)
	}
	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// envelope is the catalog API response wrapper. Data is present on success,
// Message explains an error status.
type envelope struct {
	Status  string                  `json:"status"`
	Data    map[string][]Descriptor `json:"data,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}

// FetchModels retrieves the grouped model catalog from GET /api/models.
// Any transport failure, non-200 status, malformed body, or non-"success"
// envelope status is returned as an error; the caller decides recovery.
func (c *Client) FetchModels(ctx context.Context) (Catalog, error) {
	endpoint := c.baseURL.JoinPath("api", "models").String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result envelope
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	if result.Status != "success" {
		if result.Message != "" {
			return nil, fmt.Errorf("catalog returned status %q: %s", result.Status, result.Message)
		}
		return nil, fmt.Errorf("catalog returned status %q", result.Status)
	}

	models := make(Catalog, len(result.Data))
	for name, descriptors := range result.Data {
		models[Category(name)] = descriptors
	}
	return models, nil
}
