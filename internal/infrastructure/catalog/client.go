// Package catalog implements the typed HTTP accessor for the upstream
// video-catalog backend.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shindora/nesubtv/internal/domain/model"
	"github.com/shindora/nesubtv/internal/domain/repository"
	"github.com/shindora/nesubtv/internal/infrastructure/metrics"
)

// HTTPClient is the subset of *http.Client the catalog client needs;
// it allows injection for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to the catalog REST API. Every method is one round-trip:
// no retry, no caching. Non-2xx statuses map onto the repository error
// taxonomy.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a catalog client for the given base URL, e.g.
// "http://backend:8000/api".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListVideos retrieves videos, optionally filtered by category name.
func (c *Client) ListVideos(ctx context.Context, filter repository.VideoFilter) ([]model.Video, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	endpoint := c.baseURL + "/videos"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var videos []model.Video
	if err := c.getJSON(ctx, "videos", endpoint, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetVideo retrieves a single video by id.
func (c *Client) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	endpoint := c.baseURL + "/videos/" + url.PathEscape(id)
	if err := c.getSingle(ctx, "video", endpoint, &video, repository.ErrVideoNotFound); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListCategories retrieves all categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.getJSON(ctx, "categories", c.baseURL+"/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListTrending retrieves the trending list.
func (c *Client) ListTrending(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := c.getJSON(ctx, "trending", c.baseURL+"/trending", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Search retrieves videos matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]model.Video, error) {
	endpoint := c.baseURL + "/search?q=" + url.QueryEscape(query)
	var videos []model.Video
	if err := c.getJSON(ctx, "search", endpoint, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetPage retrieves a static page by slug.
func (c *Client) GetPage(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	endpoint := c.baseURL + "/pages/" + url.PathEscape(slug)
	if err := c.getSingle(ctx, "page", endpoint, &page, repository.ErrPageNotFound); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetSettings retrieves the authoritative theme settings.
func (c *Client) GetSettings(ctx context.Context) (*model.ThemeSettings, error) {
	var settings model.ThemeSettings
	if err := c.getJSON(ctx, "settings", c.baseURL+"/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Login exchanges the admin password for a bearer token.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	body := struct {
		Password string `json:"password"`
	}{Password: password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, "admin", http.MethodPost, c.baseURL+"/admin/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// UpdateSettings pushes a partial settings update upstream.
func (c *Client) UpdateSettings(ctx context.Context, token string, update model.SettingsUpdate) (*model.ThemeSettings, error) {
	var settings model.ThemeSettings
	if err := c.doJSON(ctx, "admin", http.MethodPut, c.baseURL+"/settings", token, update, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateVideo creates a video upstream.
func (c *Client) CreateVideo(ctx context.Context, token string, input model.VideoInput) (*model.Video, error) {
	var video model.Video
	if err := c.doJSON(ctx, "admin", http.MethodPost, c.baseURL+"/videos", token, input, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateVideo applies a partial update to a video upstream.
func (c *Client) UpdateVideo(ctx context.Context, token, id string, update model.VideoUpdate) (*model.Video, error) {
	var video model.Video
	endpoint := c.baseURL + "/videos/" + url.PathEscape(id)
	if err := c.doJSON(ctx, "admin", http.MethodPut, endpoint, token, update, &video); err != nil {
		return nil, mapNotFound(err, repository.ErrVideoNotFound)
	}
	return &video, nil
}

// DeleteVideo removes a video upstream.
func (c *Client) DeleteVideo(ctx context.Context, token, id string) error {
	endpoint := c.baseURL + "/videos/" + url.PathEscape(id)
	if err := c.doJSON(ctx, "admin", http.MethodDelete, endpoint, token, nil, nil); err != nil {
		return mapNotFound(err, repository.ErrVideoNotFound)
	}
	return nil
}

// CreateCategory creates a category upstream.
func (c *Client) CreateCategory(ctx context.Context, token string, input model.CategoryInput) (*model.Category, error) {
	var category model.Category
	if err := c.doJSON(ctx, "admin", http.MethodPost, c.baseURL+"/categories", token, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category upstream. Renaming orphans existing
// video associations; the backend owns fixing that relation.
func (c *Client) UpdateCategory(ctx context.Context, token, id string, input model.CategoryInput) (*model.Category, error) {
	var category model.Category
	endpoint := c.baseURL + "/categories/" + url.PathEscape(id)
	if err := c.doJSON(ctx, "admin", http.MethodPut, endpoint, token, input, &category); err != nil {
		return nil, mapNotFound(err, repository.ErrCategoryNotFound)
	}
	return &category, nil
}

// DeleteCategory removes a category upstream.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	endpoint := c.baseURL + "/categories/" + url.PathEscape(id)
	if err := c.doJSON(ctx, "admin", http.MethodDelete, endpoint, token, nil, nil); err != nil {
		return mapNotFound(err, repository.ErrCategoryNotFound)
	}
	return nil
}

// UpdatePage applies a partial update to a static page upstream.
func (c *Client) UpdatePage(ctx context.Context, token, slug string, update model.PageUpdate) (*model.Page, error) {
	var page model.Page
	endpoint := c.baseURL + "/pages/" + url.PathEscape(slug)
	if err := c.doJSON(ctx, "admin", http.MethodPut, endpoint, token, update, &page); err != nil {
		return nil, mapNotFound(err, repository.ErrPageNotFound)
	}
	return &page, nil
}

// errStatusNotFound is the internal marker for an upstream 404. Each
// accessor maps it onto its own sentinel before returning.
var errStatusNotFound = errors.New("upstream returned 404")

// getJSON performs a GET where any non-2xx status is an upstream failure.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	err := c.doJSON(ctx, endpoint, http.MethodGet, rawURL, "", nil, out)
	if errors.Is(err, errStatusNotFound) {
		return fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	return err
}

// getSingle performs a GET where a 404 maps to the given sentinel.
func (c *Client) getSingle(ctx context.Context, endpoint, rawURL string, out any, notFound error) error {
	return mapNotFound(c.doJSON(ctx, endpoint, http.MethodGet, rawURL, "", nil, out), notFound)
}

// mapNotFound converts the internal 404 marker into the caller's sentinel.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, errStatusNotFound) {
		return sentinel
	}
	return err
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, rawURL, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, metrics.CatalogStatusError).Inc()
		return fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, metrics.CatalogStatusUnauthorized).Inc()
		return repository.ErrUnauthorized
	}

	if resp.StatusCode == http.StatusNotFound {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, metrics.CatalogStatusNotFound).Inc()
		return errStatusNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, metrics.CatalogStatusError).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", repository.ErrUpstream, resp.StatusCode, string(body))
	}

	metrics.CatalogRequestsTotal.WithLabelValues(endpoint, metrics.CatalogStatusOK).Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", repository.ErrUpstream, err)
	}
	return nil
}

// Compile-time verification that Client implements repository.Catalog.
var _ repository.Catalog = (*Client)(nil)
