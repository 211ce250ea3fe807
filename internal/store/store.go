// Package store keeps the bronze, silver and gold layer files on disk.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"steamfeatured/internal/models"
)

// Layer names a stage directory.
type Layer string

// Layers.
const (
	Bronze Layer = "bronze"
	Silver Layer = "silver"
	Gold   Layer = "gold"
)

// File name prefixes per layer.
const (
	BronzePrefix = "raw_featured"
	SilverPrefix = "silver_featured"
	GoldPrefix   = "gold_featured_facts"
)

// Store errors.
var (
	ErrNoFiles       = errors.New("no matching files")
	ErrTrailingData  = errors.New("unexpected data after JSON document")
	ErrNoTimestamp   = errors.New("file name carries no timestamp")
	ErrEmptyDataRoot = errors.New("data root is empty")
)

// Store reads and writes layer files below a root directory.
type Store struct {
	now  func() time.Time
	root string
}

// New creates a store rooted at root. now supplies the file name timestamps;
// nil means time.Now.
func New(root string, now func() time.Time) (*Store, error) {
	if root == "" {
		return nil, ErrEmptyDataRoot
	}

	if now == nil {
		now = time.Now
	}

	return &Store{root: root, now: now}, nil
}

// Dir returns the directory of layer.
func (s *Store) Dir(layer Layer) string {
	return filepath.Join(s.root, string(layer))
}

// FileName returns "<prefix>_<YYYYMMDD_HHMMSS><ext>" for the current time.
func (s *Store) FileName(prefix, ext string) string {
	return prefix + "_" + s.now().Format(models.FileTimestampLayout) + ext
}

// WriteJSON writes v as indented JSON to a new timestamped file in layer and
// returns its path. A file written in the same second is replaced.
func (s *Store) WriteJSON(layer Layer, prefix string, v any) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return s.WriteFile(layer, s.FileName(prefix, ".json"), buf.Bytes())
}

// WriteFile writes data to name inside layer, creating the directory.
func (s *Store) WriteFile(layer Layer, name string, data []byte) (string, error) {
	dir := s.Dir(layer)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return path, nil
}

// AllBronze returns every captured bronze file in name order, which is
// capture order. The silver stage reprocesses all of them on each run.
func (s *Store) AllBronze() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir(Bronze), BronzePrefix+"_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list bronze files: %w", err)
	}

	sort.Strings(matches)

	return matches, nil
}

// LatestSilver returns the most recently written silver file. The gold stage
// reads only this one.
func (s *Store) LatestSilver() (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir(Silver), SilverPrefix+"_*.json"))
	if err != nil {
		return "", fmt.Errorf("failed to list silver files: %w", err)
	}

	var (
		latest     string
		latestTime time.Time
	)

	for _, path := range matches {
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}

		mod := info.ModTime()
		if latest == "" || mod.After(latestTime) || (mod.Equal(latestTime) && path > latest) {
			latest = path
			latestTime = mod
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w: %s", ErrNoFiles, filepath.Join(s.Dir(Silver), SilverPrefix+"_*.json"))
	}

	return latest, nil
}

// ReadDocument decodes one JSON document, keeping numbers as json.Number.
func ReadDocument(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads exactly one JSON value from r, keeping numbers as json.Number.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return v, nil
}

// Encode writes v as two-space indented JSON. Non-ASCII text and HTML
// characters are written literally.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// CaptureTime parses the timestamp embedded in a layer file name such as
// raw_featured_20251127_152244.json, interpreting it in loc.
func CaptureTime(path string, loc *time.Location) (time.Time, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(name) < len(models.FileTimestampLayout) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoTimestamp, path)
	}

	stamp := name[len(name)-len(models.FileTimestampLayout):]

	t, err := time.ParseInLocation(models.FileTimestampLayout, stamp, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoTimestamp, path)
	}

	return t, nil
}
