package catalog

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable identifier from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, edge hyphens
// stripped. Slugifying an already-slugified string returns it unchanged.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
