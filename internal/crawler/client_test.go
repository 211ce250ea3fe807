package crawler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"steamfeatured/internal/config"
	"steamfeatured/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	src := config.Default().Source
	src.BaseURL = srv.URL

	return NewClient(src, logger.New(io.Discard, "debug", "text"))
}

func TestFetchFeatured_Success(t *testing.T) {
	var gotPath, gotAgent string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"specials":{"id":"cat_specials","items":[{"id":42,"type":0,"final_price":1999}]},"status":1}`)
	})

	doc, err := client.FetchFeatured(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/featuredcategories", gotPath)
	assert.Equal(t, "steam-data-pipeline/1.0", gotAgent)

	specials, ok := doc["specials"].(map[string]any)
	require.True(t, ok)

	items, ok := specials["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1999"), item["final_price"])
}

func TestFetchFeatured_UnexpectedStatus(t *testing.T) {
	calls := 0

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++

		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchFeatured(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatusCode)
	assert.Equal(t, 1, calls, "capture must not retry")
}

func TestFetchFeatured_NotAnObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[1, 2, 3]`)
	})

	_, err := client.FetchFeatured(context.Background())
	assert.ErrorIs(t, err, ErrNotAnObject)
}

func TestFetchFeatured_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := client.FetchFeatured(context.Background())
	assert.Error(t, err)
}

func TestFetchFeatured_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	src := config.Default().Source
	src.BaseURL = srv.URL

	client := NewClient(src, logger.New(io.Discard, "info", "text"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchFeatured(ctx)
	assert.Error(t, err)
}
