package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"steamfeatured/internal/models"
)

// toInt converts v the way an integer cast would: numbers truncate toward
// zero, booleans become 0/1 and strings must hold a base-10 integer.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}

		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return truncate(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}

		return i, true
	case float64:
		return truncate(n)
	case float32:
		return truncate(float64(n))
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	}

	return 0, false
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int64(f), true
}

func toFloat(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	default:
		return 0, false
	}

	// NaN and Inf are not representable in the JSON output.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// toString renders scalars as text. Objects and arrays have no string form.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	}

	return "", false
}

// toBool accepts booleans, numbers (non-zero is true) and the strings
// understood by strconv.ParseBool.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}

		return parsed, true
	}

	if f, ok := toFloat(v); ok {
		return f != 0, true
	}

	return false, false
}

// toPrice parses a decimal currency amount such as "R$ 22,99" or 22.99.
func toPrice(v any) (float64, bool) {
	s, ok := toString(v)
	if !ok {
		return 0, false
	}

	s = strings.TrimLeftFunc(s, isCurrencyPrefixRune)
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))

	return toFloat(s)
}

func isCurrencyPrefixRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}

// convert applies the declared type of a schema field to v.
func convert(t models.FieldType, v any) (any, bool) {
	switch t {
	case models.FieldInt:
		return wrap(toInt(v))
	case models.FieldFloat:
		return wrap(toFloat(v))
	case models.FieldString:
		return wrap(toString(v))
	case models.FieldBool:
		return wrap(toBool(v))
	}

	return nil, false
}

func wrap[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}

	return v, true
}
