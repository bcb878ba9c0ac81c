package catalog

// NormaliseTrait converts a raw trait or drawback record; the two share a
// shape and are told apart by Category.
func NormaliseTrait(entry RawEntry) *Trait {
	if entry == nil {
		return nil
	}
	id := entryID(entry)
	if id == "" {
		return nil
	}
	name := firstString(entry, "name", "Name")
	if name == "" {
		name = id
	}
	return &Trait{
		ID:       id,
		Name:     name,
		Summary:  firstString(entry, "summary", "Summary", "description", "Description"),
		Category: firstString(entry, "category", "Category", "type", "Type"),
	}
}

// drawbackCategory is the type discriminator that routes a record to the
// drawback set.
const drawbackCategory = "Drawback"

// NormaliseTraitBundle splits a raw trait payload into traits and drawbacks.
// Explicit traits/drawbacks keys win; otherwise the whole payload is
// flattened and partitioned on the type discriminator.
func NormaliseTraitBundle(raw any) *TraitBundle {
	bundle := &TraitBundle{Traits: []Trait{}, Drawbacks: []Trait{}}

	var traitItems, drawbackItems []any
	explicitTraits := false
	explicitDrawbacks := false

	switch t := raw.(type) {
	case []any:
		traitItems = t
		explicitTraits = true
	case map[string]any:
		entry := RawEntry(t)
		if list, ok := firstValue(entry, "traits", "Traits").([]any); ok {
			traitItems = list
			explicitTraits = true
		}
		if list, ok := firstValue(entry, "drawbacks", "Drawbacks").([]any); ok {
			drawbackItems = list
			explicitDrawbacks = true
		}
	}

	if !explicitTraits || !explicitDrawbacks {
		if entry, ok := raw.(map[string]any); ok {
			flattened := flattenValues(entry)
			if !explicitTraits {
				traitItems = filterByCategory(flattened, false)
			}
			if !explicitDrawbacks {
				drawbackItems = filterByCategory(flattened, true)
			}
		}
	}

	for _, item := range traitItems {
		if sub, ok := asEntry(item); ok {
			if trait := NormaliseTrait(sub); trait != nil {
				bundle.Traits = append(bundle.Traits, *trait)
			}
		}
	}
	for _, item := range drawbackItems {
		if sub, ok := asEntry(item); ok {
			if trait := NormaliseTrait(sub); trait != nil {
				bundle.Drawbacks = append(bundle.Drawbacks, *trait)
			}
		}
	}
	return bundle
}

func filterByCategory(items []any, drawbacks bool) []any {
	var out []any
	for _, item := range items {
		isDrawback := false
		if sub, ok := asEntry(item); ok {
			isDrawback = firstString(sub, "type", "Type") == drawbackCategory
		}
		if isDrawback == drawbacks {
			out = append(out, item)
		}
	}
	return out
}
