package normalizer

import (
	"errors"

	"steamfeatured/internal/models"
)

// ErrNotAnObject is returned for documents whose top level is not a JSON object.
var ErrNotAnObject = errors.New("document is not a JSON object")

// Metadata is attached to every item of a processed document.
type Metadata struct {
	Source       string
	Endpoint     string
	CapturedAt   string
	NormalizedAt string
}

// Stats counts what happened to the items of one document.
type Stats struct {
	Categories int
	Items      int
	NotGames   int
	Discarded  int
	Valid      int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Categories += other.Categories
	s.Items += other.Items
	s.NotGames += other.NotGames
	s.Discarded += other.Discarded
	s.Valid += other.Valid
}

// Processor runs extraction, normalization and validation over one captured document.
type Processor struct {
	validator *Validator
}

// NewProcessor creates a new processor instance.
func NewProcessor(validator *Validator) *Processor {
	return &Processor{
		validator: validator,
	}
}

// Process returns the clean records of doc in category order. doc may be a
// verbatim storefront response or an envelope; envelope fields take
// precedence over meta. Records are not deduplicated.
func (p *Processor) Process(doc any, meta Metadata) ([]models.GameRecord, Stats, error) {
	var stats Stats

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, stats, ErrNotAnObject
	}

	data := obj
	if env, isEnvelope := models.UnwrapEnvelope(obj); isEnvelope {
		data = env.Data
		meta = mergeEnvelope(meta, env)
	}

	var records []models.GameRecord

	for _, category := range ExtractCategories(data) {
		stats.Categories++

		for _, rawItem := range category.Items() {
			stats.Items++

			item, ok := rawItem.(map[string]any)
			if !ok {
				stats.NotGames++

				continue
			}

			game, isGame := NormalizeItem(item)
			if !isGame {
				stats.NotGames++

				continue
			}

			game["source"] = meta.Source
			game["endpoint"] = meta.Endpoint
			game["category"] = category.Name
			game["captured_at"] = meta.CapturedAt
			game["normalized_at"] = meta.NormalizedAt

			rec, err := p.validator.Clean(game)
			if err != nil {
				stats.Discarded++

				continue
			}

			stats.Valid++

			records = append(records, rec)
		}
	}

	return records, stats, nil
}

func mergeEnvelope(meta Metadata, env *models.Envelope) Metadata {
	if env.Source != "" {
		meta.Source = env.Source
	}

	if env.Endpoint != "" {
		meta.Endpoint = env.Endpoint
	}

	if env.CapturedAt != "" {
		meta.CapturedAt = env.CapturedAt
	}

	return meta
}
