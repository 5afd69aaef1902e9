package util

import (
	"sort"
	"strings"
)

// NormalizeToken lowercases and trims a single profile field.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeList normalizes each element, drops empties, and sorts the result
// so callers get an order-independent representation of the input.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := NormalizeToken(item); n != "" {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
