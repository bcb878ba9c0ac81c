package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Splits list-shaped text on commas, semicolons, slashes and the list
// conjunctions "and" / "e" (the sources mix English and Italian).
var listSeparators = regexp.MustCompile(`(?i)[,;/]|\band\b|\be\b`)

// ParseStringList flattens v into a flat list of strings. Arrays and objects
// are walked recursively (objects through their values, in key order);
// strings are split on list separators, trimmed, with empties dropped.
// This is how source text like "Light, Medium and Heavy" becomes three items.
func ParseStringList(v any) []string {
	out := []string{}
	var walk func(any)
	walk = func(item any) {
		switch t := item.(type) {
		case nil:
		case string:
			for _, piece := range listSeparators.Split(t, -1) {
				if piece = strings.TrimSpace(piece); piece != "" {
					out = append(out, piece)
				}
			}
		case []string:
			for _, el := range t {
				walk(el)
			}
		case []any:
			for _, el := range t {
				walk(el)
			}
		case map[string]any:
			for _, k := range sortedKeys(t) {
				walk(t[k])
			}
		case RawEntry:
			walk(map[string]any(t))
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(t))
		}
	}
	walk(v)
	return out
}

// UniqueStrings parses v as a string list and removes case-insensitive
// duplicates, keeping first-seen order and the casing of the first occurrence.
func UniqueStrings(v any) []string {
	parsed := ParseStringList(v)
	seen := make(map[string]bool, len(parsed))
	out := make([]string, 0, len(parsed))
	for _, s := range parsed {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// uniqueSlugs parses v as a string list and slugifies every item, dropping
// duplicates and unsluggable entries.
func uniqueSlugs(v any) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range ParseStringList(v) {
		slug := Slugify(s)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}
