package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePrice coerces v to a price. Numeric values pass through; strings are
// stripped of everything but digits, dots, and a leading minus before parsing,
// so display values like "PKR 1,000" become 1000. Anything unparseable falls
// back to def.
func ParsePrice(v interface{}, def float64) float64 {
	switch t := v.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return def
		}
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		f, err := strconv.ParseFloat(stripNonNumeric(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return f
	default:
		return def
	}
}

// ParseQuantity coerces v to a whole quantity, falling back to def when the
// value is missing or unparseable. It does not clamp; callers decide minimums.
func ParseQuantity(v interface{}, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return def
		}
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return def
		}
		return int(n)
	case string:
		f, err := strconv.ParseFloat(stripNonNumeric(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return def
		}
		return int(f)
	default:
		return def
	}
}

// stripNonNumeric keeps digits, dots, and a minus sign in the first position.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
