// utils/params.go - Query parameter helpers
package utils

import "strconv"

// ParseIntDefault parses s, falling back to def on empty or invalid input.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ClampInt clamps v into [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ParseUintList parses a list of uint strings, dropping anything unparsable.
func ParseUintList(values []string) []uint {
	out := make([]uint, 0, len(values))
	for _, s := range values {
		if v, err := strconv.ParseUint(s, 10, 32); err == nil {
			out = append(out, uint(v))
		}
	}
	return out
}
