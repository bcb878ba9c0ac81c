package catalog

// NormaliseRace converts a raw race record into a Race. Returns nil when no
// identifier can be derived, which signals "drop this record".
func NormaliseRace(entry RawEntry) *Race {
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

	race := &Race{
		ID:     id,
		Name:   name,
		Source: firstString(entry, "source", "Source", "book"),
		Size:   firstString(entry, "size", "Size"),
		Height: NormaliseRange(firstValue(entry, "height", "Height"), "cm"),
		Weight: NormaliseRange(firstValue(entry, "weight", "Weight"), "kg"),
	}

	raw := firstValue(entry, "altTraits", "alternateTraits", "AltTraits", "AlternateTraits")
	if list, ok := raw.([]any); ok {
		for _, item := range list {
			sub, ok := asEntry(item)
			if !ok {
				continue
			}
			if trait := NormaliseAltTrait(sub); trait != nil {
				trait.RaceID = race.ID
				trait.RaceName = race.Name
				race.AltTraits = append(race.AltTraits, *trait)
			}
		}
	}
	return race
}

// NormaliseAltTrait converts a raw alternate-trait record. The size synonym
// keys double as the override: a plain "size" on an alt trait means the race
// size changes when the trait is taken.
func NormaliseAltTrait(entry RawEntry) *AltTrait {
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
	return &AltTrait{
		ID:           id,
		Name:         name,
		Summary:      firstString(entry, "summary", "Summary", "description", "Description"),
		SizeOverride: firstString(entry, "sizeOverride", "SizeOverride", "size", "Size"),
	}
}
