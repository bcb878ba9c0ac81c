package catalog

import "regexp"

var embeddedIntegers = regexp.MustCompile(`[0-9]+`)

// Range is a measurement with optional bounds. When the source value carries
// no parseable numbers, Text holds the original string instead. Min > Max is
// not corrected: the normalizer takes whatever the source provides.
type Range struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Unit string   `json:"unit,omitempty"`
	Text string   `json:"text,omitempty"`
}

// NormaliseRange folds the shapes a measurement arrives in into a Range:
// a bare number, a string with embedded integers, an object with min/max
// synonyms, or free text. Absent or empty input yields nil.
func NormaliseRange(v any, defaultUnit string) *Range {
	if v == nil || v == "" {
		return nil
	}
	if n, ok := toNumber(v); ok {
		if _, isString := v.(string); !isString {
			// zero means the field was never filled in upstream
			if n == 0 {
				return nil
			}
			return &Range{Min: &n, Max: &n, Unit: defaultUnit}
		}
	}
	if s, ok := v.(string); ok {
		matches := embeddedIntegers.FindAllString(s, -1)
		if len(matches) == 0 {
			return &Range{Text: s}
		}
		var lo, hi float64
		for i, m := range matches {
			n, _ := toNumber(m)
			if i == 0 || n < lo {
				lo = n
			}
			if i == 0 || n > hi {
				hi = n
			}
		}
		low, high := lo, hi
		return &Range{Min: &low, Max: &high, Unit: defaultUnit}
	}
	out := &Range{Unit: defaultUnit}
	if entry, ok := asEntry(v); ok {
		if unit := firstString(entry, "unit", "Unit"); unit != "" {
			out.Unit = unit
		}
		// the first present value wins; a bound that fails to coerce is
		// dropped individually, partial ranges are valid
		if v := firstValue(entry, "min", "Min", "low", "Low"); v != nil {
			if min, ok := toNumber(v); ok {
				out.Min = &min
			}
		}
		if v := firstValue(entry, "max", "Max", "high", "High"); v != nil {
			if max, ok := toNumber(v); ok {
				out.Max = &max
			}
		}
	}
	return out
}
