package sheet

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
)

// compute builds the value of one computed field from the current state and
// the hydrated catalogs. Caller holds the lock.
func (o *Orchestrator) compute(ctx context.Context, key string) string {
	switch key {
	case ComputedAlignment:
		return joinParts(" · ",
			o.state.String(FieldAlignment),
			o.state.String(FieldDeity))

	case ComputedAnagraphics:
		age := o.state.String(FieldAge)
		if age != "" {
			age += " anni"
		}
		size := o.state.String(FieldSize)
		if size != "" {
			size = "Taglia " + size
		}
		return joinParts(", ",
			o.state.String(FieldGender),
			age,
			o.state.String(FieldAgeStage),
			size)

	case ComputedClassDetail:
		return o.classDetail()

	case ComputedRaceClass:
		race := o.state.String(FieldRace)
		if r, ok := o.races[race]; ok {
			race = r.Name
		}
		level := o.state.String(FieldLevel)
		if level != "" {
			level = "liv. " + level
		}
		return joinParts(" · ", race, o.state.String(ComputedClassDetail), level)

	case ComputedMeasures:
		height := o.state.String(FieldHeight)
		if height != "" {
			height += " cm"
		}
		weight := o.state.String(FieldWeight)
		if weight != "" {
			weight += " kg"
		}
		return joinParts(", ", height, weight)

	case ComputedTraitNotes:
		return o.traitNotes(o.state.List(FieldTraits), o.traits)

	case ComputedDrawbackNotes:
		return o.traitNotes(o.state.List(FieldDrawbacks), o.drawbacks)

	case ComputedRules:
		return o.ruleSummary(ctx)
	}
	return ""
}

// classDetail renders the class name with the selected archetypes in
// parentheses, e.g. "Guerriero (Arciere, Duellante)".
func (o *Orchestrator) classDetail() string {
	classID := o.state.String(FieldClass)
	if classID == "" {
		return ""
	}
	class, ok := o.classes[classID]
	if !ok {
		return classID
	}

	names := make(map[string]string, len(class.Archetypes))
	for _, a := range class.Archetypes {
		names[a.ID] = a.Name
	}
	var selected []string
	for _, id := range o.state.List(FieldArchetypes) {
		if name, ok := names[id]; ok {
			selected = append(selected, name)
		}
	}
	if len(selected) == 0 {
		return class.Name
	}
	return class.Name + " (" + strings.Join(selected, ", ") + ")"
}

// traitNotes renders one "Name: summary" line per selected entry.
func (o *Orchestrator) traitNotes(selected []string, index map[string]catalog.Trait) string {
	var lines []string
	for _, id := range selected {
		trait, ok := index[id]
		if !ok {
			continue
		}
		line := trait.Name
		if trait.Summary != "" {
			line += ": " + trait.Summary
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ruleSummary renders one fragment per enabled rule variant, with the
// leveled bonus total in parentheses for variants that carry a progression.
func (o *Orchestrator) ruleSummary(ctx context.Context) string {
	level := o.level()
	var fragments []string
	for _, id := range knownVariants {
		if !o.state.Bool(RuleField(id)) {
			continue
		}
		variant, err := o.rules.Load(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "rule variant unavailable, omitting from summary",
				"variant", id,
				"error", err.Error())
			continue
		}
		fragment := variant.Name
		if bonuses := variant.FormatSummary(level); bonuses != "" {
			fragment += " (" + bonuses + ")"
		}
		fragments = append(fragments, fragment)
	}
	return strings.Join(fragments, "; ")
}

// level parses the level field, defaulting to 1 when empty or malformed.
func (o *Orchestrator) level() int {
	n, err := strconv.Atoi(strings.TrimSpace(o.state.String(FieldLevel)))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// joinParts joins the non-empty parts with the separator.
func joinParts(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
