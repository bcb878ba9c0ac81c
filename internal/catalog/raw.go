// Package catalog normalizes loosely-shaped rules data into the canonical
// entities used by the rest of the application. Source records arrive with
// arbitrary key casing and synonyms, so every field is resolved through a
// priority-ordered key list instead of direct access.
package catalog

import (
	"encoding/json"
	"sort"
	"strconv"
)

// RawEntry is an untyped record as it arrives from a remote catalog or a
// bundled stub. Keys may appear under several casings or synonyms and values
// take whatever shape the source chose. RawEntry is never persisted.
type RawEntry map[string]any

// firstValue returns the first present, non-nil value among keys.
func firstValue(entry RawEntry, keys ...string) any {
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first non-empty string among keys.
func firstString(entry RawEntry, keys ...string) string {
	for _, k := range keys {
		if s, ok := entry[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the first value among keys that coerces to a number.
func firstNumber(entry RawEntry, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			if n, ok := toNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// toNumber coerces JSON scalar shapes to a float64. Strings are accepted
// because sources routinely quote their numbers.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	}
	return 0, false
}

// asEntry converts a decoded JSON value to a RawEntry when it is an object.
func asEntry(v any) (RawEntry, bool) {
	switch t := v.(type) {
	case RawEntry:
		return t, true
	case map[string]any:
		return RawEntry(t), true
	}
	return nil, false
}

// sortedKeys keeps object traversal deterministic when flattening maps.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// entryID derives the primary key for an entry: an explicit id or slug wins,
// otherwise the display name is slugified. Empty means the record is unusable
// and should be dropped.
func entryID(entry RawEntry) string {
	if id := firstString(entry, "id", "slug"); id != "" {
		return id
	}
	return Slugify(firstString(entry, "name", "Name"))
}
