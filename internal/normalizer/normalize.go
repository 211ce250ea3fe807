// Package normalizer turns captured featured-category documents into clean,
// deduplicated game records.
package normalizer

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"steamfeatured/internal/models"
)

var priceFields = []string{models.FieldOriginalPrice, models.FieldFinalPrice}

// NormalizeItem renames id to game_id and converts integer minor-unit prices
// to currency units. It returns false for items that are not games (no id or
// no type). raw is left untouched; the result is a fresh map.
func NormalizeItem(raw map[string]any) (map[string]any, bool) {
	id, ok := raw["id"]
	if !ok {
		return nil, false
	}

	if _, ok := raw["type"]; !ok {
		return nil, false
	}

	out := make(map[string]any, len(raw))

	for k, v := range raw {
		if k == "id" {
			continue
		}

		out[k] = v
	}

	out[models.FieldGameID] = id

	for _, field := range priceFields {
		v, ok := out[field]
		if !ok {
			continue
		}

		if cents, isInt := integerValue(v); isInt {
			out[field] = CentsToCurrency(cents)
		}
	}

	return out, true
}

// CentsToCurrency divides a minor-unit amount by 100. Zero and negative
// amounts map to 0.
func CentsToCurrency(cents int64) float64 {
	if cents <= 0 {
		return 0
	}

	return decimal.New(cents, -2).InexactFloat64()
}

// integerValue reports whether v is an integer literal. Floats such as 10.0
// and booleans are not integers.
func integerValue(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}

		return i, true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	}

	return 0, false
}
