package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steamfeatured/internal/config"

	"github.com/go-resty/resty/v2"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper performs single-attempt GET requests against the storefront host.
type Scraper struct {
	client *resty.Client
}

// NewScraper creates a scraper from the source configuration.
func NewScraper(src config.SourceConfig) *Scraper {
	client := resty.New().
		SetBaseURL(src.BaseURL).
		SetTimeout(src.GetTimeout()).
		SetRetryCount(0).
		SetHeader("User-Agent", src.UserAgent).
		SetHeader("Accept", "application/json")

	return &Scraper{client: client}
}

// ScrapeWithMetrics returns (body, statusCode, duration, error). A non-2xx
// status is an error; the body is still returned for logging.
func (s *Scraper) ScrapeWithMetrics(ctx context.Context, path string) ([]byte, int, time.Duration, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return resp.Body(), resp.StatusCode(), resp.Time(), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode())
	}

	return resp.Body(), resp.StatusCode(), resp.Time(), nil
}
