package catalog

// AltTrait is a race-specific alternate trait. It may override the size of
// the race it belongs to. RaceID/RaceName tie the trait back to its race when
// traits are flattened into their own dataset.
type AltTrait struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Summary      string `json:"summary"`
	SizeOverride string `json:"sizeOverride,omitempty"`
	RaceID       string `json:"raceId,omitempty"`
	RaceName     string `json:"raceName,omitempty"`
}

// Race is a playable race with optional measurement ranges and alt traits.
type Race struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Source    string     `json:"source"`
	Size      string     `json:"size,omitempty"`
	Height    *Range     `json:"height,omitempty"`
	Weight    *Range     `json:"weight,omitempty"`
	AltTraits []AltTrait `json:"altTraits,omitempty"`
}

// Archetype is a class variant. Replaces/Modifies/ConflictsWith are slug
// lists referring to class features and sibling archetypes.
type Archetype struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Summary       string   `json:"summary"`
	Replaces      []string `json:"replaces,omitempty"`
	Modifies      []string `json:"modifies,omitempty"`
	ConflictsWith []string `json:"conflictsWith,omitempty"`
}

// ClassFeature is a leveled class ability. Level is nil when the source
// doesn't say at which level the feature comes online.
type ClassFeature struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
	Level   *int   `json:"level,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Count is a pick count that sources encode either numerically or as free
// text ("all", "uno per livello").
type Count struct {
	N    *int   `json:"n,omitempty"`
	Text string `json:"text,omitempty"`
}

// FocusOption is a player-facing choice point: pick Count entries from
// Options.
type FocusOption struct {
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
	Count   *Count   `json:"count,omitempty"`
	Summary string   `json:"summary,omitempty"`
}

// ArmorProficiencies holds the three armor weight classes.
type ArmorProficiencies struct {
	Light  []string `json:"light,omitempty"`
	Medium []string `json:"medium,omitempty"`
	Heavy  []string `json:"heavy,omitempty"`
}

// Proficiencies groups what a class is trained with. A nil Proficiencies
// means the source supplied no proficiency data at all, as opposed to data
// that parsed to nothing.
type Proficiencies struct {
	Weapons []string           `json:"weapons,omitempty"`
	Armor   ArmorProficiencies `json:"armor"`
	Shields []string           `json:"shields,omitempty"`
	Other   []string           `json:"other,omitempty"`
}

func (p *Proficiencies) isEmpty() bool {
	return len(p.Weapons) == 0 &&
		len(p.Armor.Light) == 0 && len(p.Armor.Medium) == 0 && len(p.Armor.Heavy) == 0 &&
		len(p.Shields) == 0 && len(p.Other) == 0
}

// Class is a playable class together with its archetypes, features, focus
// options, bonus feats and proficiencies.
type Class struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Source        string         `json:"source"`
	Archetypes    []Archetype    `json:"archetypes,omitempty"`
	Features      []ClassFeature `json:"features,omitempty"`
	FocusOptions  []FocusOption  `json:"focusOptions,omitempty"`
	BonusFeats    []string       `json:"bonusFeats,omitempty"`
	Proficiencies *Proficiencies `json:"proficiencies,omitempty"`
}

// Trait is a character trait or drawback; the two share a shape and are
// partitioned by Category.
type Trait struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Category string `json:"category,omitempty"`
}

// TraitBundle is the trait catalog split into traits proper and drawbacks.
type TraitBundle struct {
	Traits    []Trait `json:"traits"`
	Drawbacks []Trait `json:"drawbacks"`
}
