// Package docrepo implements the domain repositories on top of the document
// store. Documents come back loosely typed, so every repo decodes through the
// helpers here and tolerates the numeric widening JSON round-trips introduce.
package docrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"stockbook/internal/core/types"
)

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt64 accepts the integer encodings a JSON round-trip can produce.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	}
	return 0
}

// asMoney accepts numeric or string-encoded monetary values.
func asMoney(v any) types.Money {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	case decimal.Decimal:
		return n
	}
	return decimal.Zero
}

// asTime accepts native times and their RFC 3339 string encoding.
func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func asStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func asMapSlice(v any) []map[string]any {
	switch s := v.(type) {
	case []map[string]any:
		return s
	case []any:
		out := make([]map[string]any, 0, len(s))
		for _, item := range s {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// moneyValue renders Money for storage. Stored as a string to keep decimal
// precision through the JSON round-trip.
func moneyValue(m types.Money) any {
	return m.String()
}
