package normalizer

import (
	"encoding/json"
	"errors"
	"testing"

	"steamfeatured/internal/models"
)

func newLenient() *Validator {
	return NewValidator(models.FeaturedGameSchema, false)
}

func TestValidator_Clean_GameID(t *testing.T) {
	tests := []struct {
		name    string
		item    map[string]any
		wantID  int64
		wantErr error
	}{
		{"number", map[string]any{"game_id": json.Number("42")}, 42, nil},
		{"numeric string", map[string]any{"game_id": " 42 "}, 42, nil},
		{"float truncates", map[string]any{"game_id": 42.9}, 42, nil},
		{"missing", map[string]any{"name": "x"}, 0, ErrMissingGameID},
		{"null", map[string]any{"game_id": nil}, 0, ErrMissingGameID},
		{"non-numeric", map[string]any{"game_id": "abc"}, 0, ErrInvalidGameID},
		{"object", map[string]any{"game_id": map[string]any{}}, 0, ErrInvalidGameID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newLenient().Clean(tt.item)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Clean() error = %v, want %v", err, tt.wantErr)
				}

				if rec != nil {
					t.Errorf("expected no record, got %v", rec)
				}

				return
			}

			if err != nil {
				t.Fatalf("Clean() unexpected error: %v", err)
			}

			if id, ok := rec.GameID(); !ok || id != tt.wantID {
				t.Errorf("game_id = %v, want %d", rec[models.FieldGameID], tt.wantID)
			}
		})
	}
}

func TestValidator_Clean_AllSchemaKeysPresent(t *testing.T) {
	rec, err := newLenient().Clean(map[string]any{"game_id": json.Number("1")})
	if err != nil {
		t.Fatalf("Clean() unexpected error: %v", err)
	}

	if len(rec) != len(models.FeaturedGameSchema) {
		t.Errorf("record has %d keys, want %d", len(rec), len(models.FeaturedGameSchema))
	}

	for _, name := range models.FeaturedGameSchema.Names() {
		value, ok := rec[name]
		if !ok {
			t.Errorf("missing key %q", name)

			continue
		}

		if name != models.FieldGameID && value != nil {
			t.Errorf("%s = %v, want nil", name, value)
		}
	}
}

func TestValidator_Clean_DropsUnknownFields(t *testing.T) {
	rec, err := newLenient().Clean(map[string]any{"game_id": json.Number("1"), "headline": "Big Sale"})
	if err != nil {
		t.Fatalf("Clean() unexpected error: %v", err)
	}

	if _, ok := rec["headline"]; ok {
		t.Error("fields outside the schema should not be kept")
	}
}

func TestValidator_Clean_Prices(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"float", 19.99, 19.99},
		{"number", json.Number("5"), 5.0},
		{"real prefix", "R$ 22,50", 22.5},
		{"dollar prefix", "$9.99", 9.99},
		{"euro prefix", "€7", 7.0},
		{"garbage", "free", nil},
		{"bool", true, nil},
		{"nan", "NaN", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newLenient().Clean(map[string]any{"game_id": json.Number("1"), "final_price": tt.value})
			if err != nil {
				t.Fatalf("Clean() unexpected error: %v", err)
			}

			if rec["final_price"] != tt.want {
				t.Errorf("final_price = %#v, want %#v", rec["final_price"], tt.want)
			}
		})
	}
}

func TestValidator_Clean_FieldConversions(t *testing.T) {
	item := map[string]any{
		"game_id":             json.Number("10"),
		"type":                json.Number("0"),
		"name":                "Hades",
		"discounted":          json.Number("1"),
		"discount_percent":    json.Number("50"),
		"windows_available":   true,
		"mac_available":       json.Number("0"),
		"linux_available":     "maybe",
		"currency":            "BRL",
		"discount_expiration": "not-a-time",
		"controller_support":  json.Number("3"),
		"header_image":        []any{"a", "b"},
	}

	rec, err := newLenient().Clean(item)
	if err != nil {
		t.Fatalf("Clean() unexpected error: %v", err)
	}

	want := map[string]any{
		"type":                int64(0),
		"name":                "Hades",
		"discounted":          true,
		"discount_percent":    int64(50),
		"windows_available":   true,
		"mac_available":       false,
		"linux_available":     nil,
		"currency":            "BRL",
		"discount_expiration": nil,
		"controller_support":  "3",
		"header_image":        nil,
	}

	for field, w := range want {
		if rec[field] != w {
			t.Errorf("%s = %#v, want %#v", field, rec[field], w)
		}
	}
}

func TestValidator_CleanStrict(t *testing.T) {
	v := NewValidator(models.FeaturedGameSchema, true)

	valid := map[string]any{"game_id": json.Number("1"), "type": json.Number("0"), "name": "Celeste"}
	if _, err := v.Clean(valid); err != nil {
		t.Fatalf("Clean() unexpected error: %v", err)
	}

	missingName := map[string]any{"game_id": json.Number("1"), "type": json.Number("0")}
	if _, err := v.Clean(missingName); !errors.Is(err, ErrMissingRequired) {
		t.Errorf("Clean() error = %v, want ErrMissingRequired", err)
	}

	badPrice := map[string]any{"game_id": json.Number("1"), "type": json.Number("0"), "name": "Celeste", "final_price": "free"}
	if _, err := v.Clean(badPrice); !errors.Is(err, ErrFieldConversion) {
		t.Errorf("Clean() error = %v, want ErrFieldConversion", err)
	}
}
