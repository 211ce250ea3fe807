package normalizer

import (
	"errors"
	"fmt"

	"steamfeatured/internal/models"
)

// Validation errors.
var (
	ErrMissingGameID   = errors.New("missing game_id")
	ErrInvalidGameID   = errors.New("game_id is not an integer")
	ErrMissingRequired = errors.New("required field is missing")
	ErrFieldConversion = errors.New("field conversion failed")
)

// Validator cleans normalized items against a field schema.
//
// In the default lenient mode only game_id can reject a record; any other
// field that is absent or fails to convert becomes nil. Strict mode rejects
// the record when a required field is missing or any conversion fails.
type Validator struct {
	schema models.FieldSchema
	strict bool
}

// NewValidator creates a validator for schema.
func NewValidator(schema models.FieldSchema, strict bool) *Validator {
	return &Validator{
		schema: schema,
		strict: strict,
	}
}

// Clean returns a record holding every schema field, or an error when the
// item must be discarded.
func (v *Validator) Clean(item map[string]any) (models.GameRecord, error) {
	if v.strict {
		return v.cleanStrict(item)
	}

	raw, ok := item[models.FieldGameID]
	if !ok || raw == nil {
		return nil, ErrMissingGameID
	}

	id, ok := toInt(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGameID, raw)
	}

	rec := make(models.GameRecord, len(v.schema))
	rec[models.FieldGameID] = id

	for _, field := range v.schema {
		if field.Name == models.FieldGameID {
			continue
		}

		value, _ := convertField(field, item[field.Name])
		rec[field.Name] = value
	}

	return rec, nil
}

func (v *Validator) cleanStrict(item map[string]any) (models.GameRecord, error) {
	rec := make(models.GameRecord, len(v.schema))

	for _, field := range v.schema {
		raw := item[field.Name]
		if raw == nil {
			if field.Required {
				return nil, fmt.Errorf("%w: %s", ErrMissingRequired, field.Name)
			}

			rec[field.Name] = nil

			continue
		}

		value, ok := convertField(field, raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%v (want %s)", ErrFieldConversion, field.Name, raw, field.Type)
		}

		rec[field.Name] = value
	}

	return rec, nil
}

// convertField returns nil, true for a nil input and nil, false when the
// value cannot be converted.
func convertField(field models.FieldSpec, raw any) (any, bool) {
	if raw == nil {
		return nil, true
	}

	if field.Name == models.FieldOriginalPrice || field.Name == models.FieldFinalPrice {
		return wrap(toPrice(raw))
	}

	return convert(field.Type, raw)
}
