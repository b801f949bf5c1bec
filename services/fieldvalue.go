package services

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submitted field values arrive in two shapes: a bare scalar, or an object
// wrapping {"value": ...}. Everything below resolves the shape once, at the
// extraction boundary, so the aggregators only ever see unwrapped values.
// Depending on whether a payload came straight off the wire or through a
// Mongo decode, maps and lists show up as map[string]any / []any or as
// primitive.M / primitive.A.

// UnwrapValue resolves the {"value": ...} wrapper, recursively.
func UnwrapValue(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		if inner, ok := v["value"]; ok {
			return UnwrapValue(inner)
		}
	case primitive.M:
		if inner, ok := v["value"]; ok {
			return UnwrapValue(inner)
		}
	}
	return raw
}

// HasValue classifies presence: nil, whitespace-only strings and empty lists
// are absent; everything else, including 0 and false, is present.
func HasValue(raw any) bool {
	switch v := UnwrapValue(raw).(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case primitive.A:
		return len(v) > 0
	}
	return true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case primitive.M:
		return map[string]any(m), true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return []any(s), true
	}
	return nil, false
}

// toFloat coerces a value to a number; non-numeric values are discarded by
// the numeric aggregators.
func toFloat(raw any) (float64, bool) {
	switch v := UnwrapValue(raw).(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// isTruthy counts boolean true and the strings "true"/"yes" as positive.
func isTruthy(raw any) bool {
	switch v := UnwrapValue(raw).(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "yes"
	}
	return false
}
