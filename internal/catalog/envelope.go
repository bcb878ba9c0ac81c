package catalog

// UnwrapEntries extracts the entry list from the envelope shapes catalogs
// ship in: a bare array, an "entries" wrapper, a named plural key, or an
// arbitrary object whose values are taken wholesale. The last form is
// best-effort: unusable values fall out later when identifier derivation
// fails. Never errors.
func UnwrapEntries(raw any, preferredKeys ...string) []RawEntry {
	switch t := raw.(type) {
	case []any:
		return toEntries(t)
	case map[string]any:
		keys := append([]string{"entries"}, preferredKeys...)
		for _, k := range keys {
			if list, ok := t[k].([]any); ok {
				return toEntries(list)
			}
		}
		return toEntries(flattenValues(t))
	}
	return nil
}

// flattenValues collects an object's values, splicing in nested lists, in
// deterministic key order.
func flattenValues(m map[string]any) []any {
	var out []any
	for _, k := range sortedKeys(m) {
		if list, ok := m[k].([]any); ok {
			out = append(out, list...)
			continue
		}
		out = append(out, m[k])
	}
	return out
}

func toEntries(items []any) []RawEntry {
	out := make([]RawEntry, 0, len(items))
	for _, item := range items {
		if entry, ok := asEntry(item); ok {
			out = append(out, entry)
		}
	}
	return out
}
