package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()

	s, err := New(t.TempDir(), fixedClock(now))
	require.NoError(t, err)

	return s
}

func TestNew_EmptyRoot(t *testing.T) {
	_, err := New("", nil)
	assert.ErrorIs(t, err, ErrEmptyDataRoot)
}

func TestWriteJSON_NameAndFormat(t *testing.T) {
	now := time.Date(2025, 11, 27, 15, 22, 44, 0, time.Local)
	s := newTestStore(t, now)

	path, err := s.WriteJSON(Silver, SilverPrefix, map[string]any{"items": []any{map[string]any{"name": "Pokémon <Deluxe> & 東方"}}})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.Dir(Silver), "silver_featured_20251127_152244.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.Contains(t, content, "Pokémon <Deluxe> & 東方")
	assert.Contains(t, content, "\n  \"items\": [")
}

func TestAllBronze_SortedByName(t *testing.T) {
	s := newTestStore(t, time.Now())

	for _, name := range []string{
		"raw_featured_20251128_080000.json",
		"raw_featured_20251127_080000.json",
		"other_20251126_080000.json",
		"raw_featured_notes.txt",
	} {
		_, err := s.WriteFile(Bronze, name, []byte("{}"))
		require.NoError(t, err)
	}

	files, err := s.AllBronze()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "raw_featured_20251127_080000.json", filepath.Base(files[0]))
	assert.Equal(t, "raw_featured_20251128_080000.json", filepath.Base(files[1]))
}

func TestAllBronze_MissingDirectory(t *testing.T) {
	s := newTestStore(t, time.Now())

	files, err := s.AllBronze()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLatestSilver_NewestModTime(t *testing.T) {
	s := newTestStore(t, time.Now())

	older, err := s.WriteFile(Silver, "silver_featured_20251129_000000.json", []byte(`{"items":[]}`))
	require.NoError(t, err)
	newer, err := s.WriteFile(Silver, "silver_featured_20251128_000000.json", []byte(`{"items":[]}`))
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, base, base))
	require.NoError(t, os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)))

	latest, err := s.LatestSilver()
	require.NoError(t, err)
	assert.Equal(t, newer, latest)
}

func TestLatestSilver_TieBrokenByName(t *testing.T) {
	s := newTestStore(t, time.Now())

	a, err := s.WriteFile(Silver, "silver_featured_20251127_000000.json", []byte(`{}`))
	require.NoError(t, err)
	b, err := s.WriteFile(Silver, "silver_featured_20251128_000000.json", []byte(`{}`))
	require.NoError(t, err)

	same := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(a, same, same))
	require.NoError(t, os.Chtimes(b, same, same))

	latest, err := s.LatestSilver()
	require.NoError(t, err)
	assert.Equal(t, b, latest)
}

func TestLatestSilver_None(t *testing.T) {
	s := newTestStore(t, time.Now())

	_, err := s.LatestSilver()
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestDecode(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"price": 1999, "ratio": 0.5}`))
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1999"), obj["price"])
	assert.Equal(t, json.Number("0.5"), obj["ratio"])

	_, err = Decode(strings.NewReader(`{"a":1} {"b":2}`))
	assert.ErrorIs(t, err, ErrTrailingData)

	_, err = Decode(strings.NewReader(`{"a":`))
	assert.Error(t, err)
}

func TestReadDocument_Missing(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCaptureTime(t *testing.T) {
	got, err := CaptureTime("/data/bronze/raw_featured_20251127_152244.json", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 27, 15, 22, 44, 0, time.UTC), got)

	_, err = CaptureTime("raw_featured_latest.json", time.UTC)
	assert.ErrorIs(t, err, ErrNoTimestamp)

	_, err = CaptureTime("x.json", time.UTC)
	assert.ErrorIs(t, err, ErrNoTimestamp)
}
