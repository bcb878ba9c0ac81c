package catalog

// NormaliseClass converts a raw class record into a Class. When the record
// embeds its own archetype list those are used directly; otherwise the
// separately-fetched archetype index is scanned and every archetype whose
// class reference matches this class is attached.
func NormaliseClass(entry RawEntry, archetypeIndex []RawEntry) *Class {
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

	class := &Class{
		ID:         id,
		Name:       name,
		Source:     firstString(entry, "source", "Source"),
		BonusFeats: UniqueStrings(firstValue(entry, "bonusFeats", "BonusFeats", "bonus_feats")),
	}

	if embedded, ok := firstValue(entry, "archetypes", "Archetypes").([]any); ok {
		for _, item := range embedded {
			sub, ok := asEntry(item)
			if !ok {
				continue
			}
			if arch := NormaliseArchetype(sub); arch != nil {
				class.Archetypes = append(class.Archetypes, *arch)
			}
		}
	} else {
		for _, candidate := range archetypeIndex {
			if !archetypeMatchesClass(candidate, id, name) {
				continue
			}
			if arch := NormaliseArchetype(candidate); arch != nil {
				class.Archetypes = append(class.Archetypes, *arch)
			}
		}
	}

	if raw := firstValue(entry, "features", "Features", "classFeatures", "ClassFeatures"); raw != nil {
		for _, item := range flattenItems(raw) {
			if feature := NormaliseClassFeature(item); feature != nil {
				class.Features = append(class.Features, *feature)
			}
		}
	}

	if raw := firstValue(entry, "focusOptions", "FocusOptions", "focus", "Focus"); raw != nil {
		for _, item := range flattenItems(raw) {
			if opt := NormaliseFocusOption(item); opt != nil {
				class.FocusOptions = append(class.FocusOptions, *opt)
			}
		}
	}

	class.Proficiencies = NormaliseProficiencies(entry)
	return class
}

// archetypeMatchesClass reports whether an archetype-index record references
// the given class. References come as a "classes" array or a single "class"
// value, each item either a literal name/id string or an object carrying its
// own id/slug/name.
func archetypeMatchesClass(entry RawEntry, classID, className string) bool {
	if entry == nil {
		return false
	}
	var refs []any
	if list, ok := firstValue(entry, "classes", "Classes").([]any); ok {
		refs = list
	} else if single := firstValue(entry, "class", "Class"); single != nil {
		refs = []any{single}
	}
	for _, ref := range refs {
		switch t := ref.(type) {
		case string:
			if t == classID || t == className {
				return true
			}
		default:
			sub, ok := asEntry(ref)
			if !ok {
				continue
			}
			if entryID(sub) == classID {
				return true
			}
		}
	}
	return false
}

// NormaliseArchetype converts a raw archetype record. The replaces/modifies/
// conflicts lists are slugified so they can be joined against feature and
// archetype ids.
func NormaliseArchetype(entry RawEntry) *Archetype {
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
	return &Archetype{
		ID:            id,
		Name:          name,
		Summary:       firstString(entry, "summary", "Summary", "description", "Description"),
		Replaces:      uniqueSlugs(firstValue(entry, "replaces", "Replaces", "replacedFeatures")),
		Modifies:      uniqueSlugs(firstValue(entry, "modifies", "Modifies", "modifiedFeatures")),
		ConflictsWith: uniqueSlugs(firstValue(entry, "conflictsWith", "ConflictsWith", "conflicts", "Conflicts")),
	}
}

// NormaliseClassFeature resolves the two shapes a feature arrives in, a bare
// name string or a full record, into one canonical variant.
func NormaliseClassFeature(v any) *ClassFeature {
	switch t := v.(type) {
	case string:
		id := Slugify(t)
		if id == "" {
			return nil
		}
		return &ClassFeature{ID: id, Name: t}
	default:
		entry, ok := asEntry(v)
		if !ok {
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
		feature := &ClassFeature{
			ID:      id,
			Name:    name,
			Summary: firstString(entry, "summary", "Summary", "description", "Description"),
			Type:    firstString(entry, "type", "Type", "category", "Category"),
		}
		if n, ok := firstNumber(entry, "level", "Level"); ok {
			level := int(n)
			feature.Level = &level
		}
		return feature
	}
}

// NormaliseFocusOption resolves a choice point: either a bare label string or
// a record with an option list and a pick count. The count stays a number or
// free text depending on what the source wrote.
func NormaliseFocusOption(v any) *FocusOption {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return &FocusOption{Label: t}
	default:
		entry, ok := asEntry(v)
		if !ok {
			return nil
		}
		opt := &FocusOption{
			Label:   firstString(entry, "label", "Label", "name", "Name"),
			Options: UniqueStrings(firstValue(entry, "options", "Options", "choices", "Choices", "from", "From")),
			Summary: firstString(entry, "summary", "Summary", "description", "Description"),
		}
		if opt.Label == "" && len(opt.Options) == 0 {
			return nil
		}
		switch count := firstValue(entry, "count", "Count", "choose", "Choose").(type) {
		case nil:
		case string:
			if count != "" {
				opt.Count = &Count{Text: count}
			}
		default:
			if n, ok := toNumber(count); ok {
				picks := int(n)
				opt.Count = &Count{N: &picks}
			}
		}
		return opt
	}
}

// Proficiency synonym key groups. Armor weights are probed both nested under
// an armor sub-object and spelled flatly at the top level; the two locations
// are merged.
var (
	weaponKeys      = []string{"weapons", "Weapons", "weapon", "Weapon", "weaponProficiencies", "WeaponProficiencies"}
	armorGroupKeys  = []string{"armor", "Armor", "armour", "Armour"}
	lightArmorKeys  = []string{"light", "Light", "lightArmor", "LightArmor", "light_armor"}
	mediumArmorKeys = []string{"medium", "Medium", "mediumArmor", "MediumArmor", "medium_armor"}
	heavyArmorKeys  = []string{"heavy", "Heavy", "heavyArmor", "HeavyArmor", "heavy_armor"}
	shieldKeys      = []string{"shields", "Shields", "shield", "Shield"}
	otherProfKeys   = []string{"other", "Other", "misc", "Misc", "tools", "Tools"}
)

// NormaliseProficiencies merges every proficiency synonym group found on a
// class record. Returns nil when every resulting list is empty so callers can
// tell "no proficiency data supplied" from "supplied but empty".
func NormaliseProficiencies(entry RawEntry) *Proficiencies {
	if entry == nil {
		return nil
	}
	p := &Proficiencies{
		Weapons: mergeKeyGroups(entry, weaponKeys),
		Shields: mergeKeyGroups(entry, shieldKeys),
		Other:   mergeKeyGroups(entry, otherProfKeys),
	}
	light := collectKeyGroups(entry, lightArmorKeys)
	medium := collectKeyGroups(entry, mediumArmorKeys)
	heavy := collectKeyGroups(entry, heavyArmorKeys)
	for _, k := range armorGroupKeys {
		if nested, ok := asEntry(entry[k]); ok {
			light = append(light, collectKeyGroups(nested, lightArmorKeys)...)
			medium = append(medium, collectKeyGroups(nested, mediumArmorKeys)...)
			heavy = append(heavy, collectKeyGroups(nested, heavyArmorKeys)...)
		}
	}
	p.Armor.Light = UniqueStrings(light)
	p.Armor.Medium = UniqueStrings(medium)
	p.Armor.Heavy = UniqueStrings(heavy)

	if p.isEmpty() {
		return nil
	}
	return p
}

// collectKeyGroups gathers every value present under the given keys.
func collectKeyGroups(entry RawEntry, keys []string) []any {
	var out []any
	for _, k := range keys {
		if v, ok := entry[k]; ok && v != nil {
			out = append(out, v)
		}
	}
	return out
}

func mergeKeyGroups(entry RawEntry, keys []string) []string {
	return UniqueStrings(collectKeyGroups(entry, keys))
}

// flattenItems yields the elements of a list-shaped value, or the value
// itself when it is a single record or string.
func flattenItems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	default:
		return []any{v}
	}
}
