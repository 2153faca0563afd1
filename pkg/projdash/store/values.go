package store

import "strconv"

// parseValue turns a raw cell string into a scalar: nil for blank, int64 for
// integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
