// Package rules loads the optional rule variant datasets and answers
// level-dependent bonus queries against them.
package rules

import (
	"sort"
	"strconv"
)

// ProgressionRow is one step of a variant's level progression.
type ProgressionRow struct {
	Level   int            `json:"level"`
	Bonuses map[string]int `json:"bonuses,omitempty"`
	Note    string         `json:"note,omitempty"`
}

// Variant is a rule variant dataset, such as the automatic bonus
// progression or the elephant-in-the-room feat tax rules.
type Variant struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Summary     string            `json:"summary,omitempty"`
	Progression []ProgressionRow  `json:"progression,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	// Order fixes the display order of bonus kinds in summaries; kinds
	// missing from it sort alphabetically at the end.
	Order      []string `json:"order,omitempty"`
	Details    []string `json:"details,omitempty"`
	Conversion string   `json:"conversion,omitempty"`
	Notes      []string `json:"notes,omitempty"`
	Sources    []string `json:"sources,omitempty"`
}

// BonusesAtLevel returns the active bonuses at the given level. Each row at
// or below the level overwrites the kinds it names, so the result is the
// latest value per kind, not a running sum.
func (v *Variant) BonusesAtLevel(level int) map[string]int {
	active := make(map[string]int)
	for _, row := range v.Progression {
		if row.Level > level {
			continue
		}
		for kind, bonus := range row.Bonuses {
			active[kind] = bonus
		}
	}
	return active
}

// FormatSummary renders the active bonuses at the given level as a short
// human-readable line, "Label +N" fragments joined by commas.
func (v *Variant) FormatSummary(level int) string {
	active := v.BonusesAtLevel(level)
	if len(active) == 0 {
		return ""
	}

	kinds := make([]string, 0, len(active))
	for kind := range active {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		ri, oki := v.orderRank(kinds[i])
		rj, okj := v.orderRank(kinds[j])
		if oki != okj {
			return oki
		}
		if oki && okj {
			return ri < rj
		}
		return kinds[i] < kinds[j]
	})

	out := ""
	for _, kind := range kinds {
		label := v.Labels[kind]
		if label == "" {
			label = kind
		}
		if out != "" {
			out += ", "
		}
		out += label + " " + formatBonus(active[kind])
	}
	return out
}

func (v *Variant) orderRank(kind string) (int, bool) {
	for i, k := range v.Order {
		if k == kind {
			return i, true
		}
	}
	return 0, false
}

func formatBonus(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
