// Package googlebooks is a minimal client for the Google Books volumes API,
// used to search for books and resolve volume metadata when a user adds a
// book to their shelf.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the default Google Books volumes endpoint
	DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"
	// DefaultTimeout is the default HTTP timeout for Google Books requests
	DefaultTimeout = 15 * time.Second
	// maxSearchResults caps how many volumes a search returns
	maxSearchResults = 15
)

// Volume is the subset of a Google Books volume the app cares about
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the display metadata for a volume
type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
}

type searchResponse struct {
	Items []Volume `json:"items"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the Google Books volumes API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Google Books client
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewClientWithConfig creates a Google Books client with custom configuration
func NewClientWithConfig(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search queries volumes matching the query string, capped at 15 results
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	endpoint := fmt.Sprintf("%s?q=%s&projection=full", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := parsed.Items
	if len(items) > maxSearchResults {
		items = items[:maxSearchResults]
	}
	return items, nil
}

// GetVolume fetches a single volume by ID
func (c *Client) GetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(volumeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create volume request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var volume Volume
	if err := json.NewDecoder(resp.Body).Decode(&volume); err != nil {
		return nil, fmt.Errorf("decode volume response: %w", err)
	}

	return &volume, nil
}

// apiError extracts the API error message from a non-200 response
func apiError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("google books: status %d", resp.StatusCode)
	}

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return fmt.Errorf("google books: status %d: %s", resp.StatusCode, parsed.Error.Message)
	}
	return fmt.Errorf("google books: status %d", resp.StatusCode)
}
