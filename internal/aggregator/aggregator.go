// Package aggregator flattens silver documents into gold fact rows.
package aggregator

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"steamfeatured/internal/models"
)

// Aggregation errors. Each one drops a single document, never the whole run.
var (
	ErrNotADocument = errors.New("silver item is not an object")
	ErrInvalidPrice = errors.New("price is not numeric")
)

var hundred = decimal.NewFromInt(100)

// Aggregate builds fact rows from a silver file body of the form
// {"items": [...]}. Each item is either a captured document carrying a "data"
// map of categories, or a clean record carrying game_id at the top level.
//
// A document that cannot be converted is left out and reported in the
// returned errors; the rows of every other document are still returned.
func Aggregate(silver any, processedAt string) ([]models.FactRow, []error) {
	body, ok := silver.(map[string]any)
	if !ok {
		return nil, nil
	}

	items, ok := body["items"].([]any)
	if !ok {
		return nil, nil
	}

	var (
		rows []models.FactRow
		errs []error
	)

	for i, item := range items {
		doc, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("item %d: %w", i, ErrNotADocument))

			continue
		}

		docRows, err := aggregateItem(doc, processedAt)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))

			continue
		}

		rows = append(rows, docRows...)
	}

	return rows, errs
}

func aggregateItem(doc map[string]any, processedAt string) ([]models.FactRow, error) {
	data, ok := doc["data"].(map[string]any)
	if !ok {
		if _, isRecord := doc[models.FieldGameID]; isRecord {
			row, err := factFromRecord(doc, processedAt)
			if err != nil {
				return nil, err
			}

			return []models.FactRow{row}, nil
		}

		return nil, nil
	}

	categories, ok := categoriesOf(data)
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}

	sort.Strings(names)

	var rows []models.FactRow

	for _, name := range names {
		games, isList := IsGameList(categories[name])
		if !isList {
			continue
		}

		for _, game := range games {
			row, err := factFromGame(game, name, doc, processedAt)
			if err != nil {
				return nil, fmt.Errorf("category %s: %w", name, err)
			}

			rows = append(rows, row)
		}
	}

	return rows, nil
}

// categoriesOf picks data["categories"] when it is present and non-empty,
// otherwise data itself.
func categoriesOf(data map[string]any) (map[string]any, bool) {
	nested, present := data["categories"]
	if !present || isEmpty(nested) {
		return data, true
	}

	categories, ok := nested.(map[string]any)

	return categories, ok
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	}

	return false
}

// IsGameList reports whether v is a list whose elements are all objects with
// an "id" key, and returns those objects. An empty list qualifies.
func IsGameList(v any) ([]map[string]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}

	games := make([]map[string]any, 0, len(list))

	for _, elem := range list {
		game, ok := elem.(map[string]any)
		if !ok {
			return nil, false
		}

		if _, hasID := game["id"]; !hasID {
			return nil, false
		}

		games = append(games, game)
	}

	return games, true
}

func factFromGame(game map[string]any, category string, doc map[string]any, processedAt string) (models.FactRow, error) {
	original, err := centsField(game, models.FieldOriginalPrice)
	if err != nil {
		return models.FactRow{}, err
	}

	final, err := centsField(game, models.FieldFinalPrice)
	if err != nil {
		return models.FactRow{}, err
	}

	return models.FactRow{
		GameID:            game["id"],
		GameName:          game["name"],
		GameType:          game["type"],
		IsDiscounted:      game["discounted"],
		DiscountPercent:   discountPercent(game),
		OriginalPrice:     original,
		FinalPrice:        final,
		Category:          category,
		Source:            doc["source"],
		CaptureDateUTC:    doc["captured_at"],
		ProcessingDateUTC: processedAt,
	}, nil
}

// factFromRecord maps a clean silver record. Its prices are already in
// currency units.
func factFromRecord(rec map[string]any, processedAt string) (models.FactRow, error) {
	original, err := amountField(rec, models.FieldOriginalPrice)
	if err != nil {
		return models.FactRow{}, err
	}

	final, err := amountField(rec, models.FieldFinalPrice)
	if err != nil {
		return models.FactRow{}, err
	}

	return models.FactRow{
		GameID:            rec[models.FieldGameID],
		GameName:          rec["name"],
		GameType:          rec["type"],
		IsDiscounted:      rec["discounted"],
		DiscountPercent:   discountPercent(rec),
		OriginalPrice:     original,
		FinalPrice:        final,
		Category:          rec["category"],
		Source:            rec["source"],
		CaptureDateUTC:    rec["captured_at"],
		ProcessingDateUTC: processedAt,
	}, nil
}

func discountPercent(m map[string]any) any {
	v, ok := m["discount_percent"]
	if !ok {
		return 0
	}

	return v
}

func centsField(m map[string]any, field string) (*float64, error) {
	d, err := decimalField(m, field)
	if err != nil || d == nil {
		return nil, err
	}

	f := d.Div(hundred).InexactFloat64()

	return &f, nil
}

func amountField(m map[string]any, field string) (*float64, error) {
	d, err := decimalField(m, field)
	if err != nil || d == nil {
		return nil, err
	}

	f := d.InexactFloat64()

	return &f, nil
}

func decimalField(m map[string]any, field string) (*decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)

	switch v := m[field].(type) {
	case nil:
		return nil, nil
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case float64:
		d = decimal.NewFromFloat(v)
	case int64:
		d = decimal.NewFromInt(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	default:
		err = fmt.Errorf("%w: %s=%v", ErrInvalidPrice, field, v)
	}

	if err != nil {
		if !errors.Is(err, ErrInvalidPrice) {
			err = fmt.Errorf("%w: %s: %w", ErrInvalidPrice, field, err)
		}

		return nil, err
	}

	return &d, nil
}
