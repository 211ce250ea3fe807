// Package crawler fetches the featured categories document from the storefront.
package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"steamfeatured/internal/config"
	"steamfeatured/internal/logger"
	"steamfeatured/internal/store"
)

// FeaturedPath is the featured categories endpoint below the base URL.
const FeaturedPath = "/api/featuredcategories"

// ErrNotAnObject is returned when the response body is JSON but not an object.
var ErrNotAnObject = errors.New("response is not a JSON object")

// Client fetches storefront documents.
type Client struct {
	scraper *Scraper
	log     *logger.Logger
}

// NewClient creates a client for the configured source.
func NewClient(src config.SourceConfig, log *logger.Logger) *Client {
	return NewClientWithDeps(NewScraper(src), log)
}

// NewClientWithDeps creates a client with an injected scraper.
func NewClientWithDeps(scraper *Scraper, log *logger.Logger) *Client {
	return &Client{
		scraper: scraper,
		log:     log,
	}
}

// FetchFeatured performs one GET of the featured categories endpoint and
// returns the decoded object with numbers kept as json.Number.
func (c *Client) FetchFeatured(ctx context.Context) (map[string]any, error) {
	body, status, duration, err := c.scraper.ScrapeWithMetrics(ctx, FeaturedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", FeaturedPath, err)
	}

	c.log.Debug("fetched featured categories",
		"status", status,
		"bytes", len(body),
		"duration", duration,
	)

	doc, err := store.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}

	return obj, nil
}
