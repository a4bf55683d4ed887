package importer

import (
	"strings"
)

// Record is one raw row or item read from a source file. Err is set when the
// reader could not turn the row into a key/value mapping.
type Record struct {
	RowNumber int
	Values    map[string]string
	Err       error
}

// Get returns the first present value among keys with surrounding whitespace
// removed.
func (r Record) Get(keys ...string) string {
	value, _ := r.Lookup(keys...)
	return strings.TrimSpace(value)
}

// Lookup returns the first present value among keys, as read, and whether any
// key was present.
func (r Record) Lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return value, true
		}
	}
	return "", false
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
