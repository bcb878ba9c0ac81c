// Package sheet keeps the character state consistent: it applies user edits,
// re-derives every dependent field reachable from the edit, and persists the
// result. It is a pure state reconciler; DOM mirroring is the UI layer's
// problem and happens off the FieldUpdate stream it emits.
package sheet

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
	"github.com/torneo-cremesi/sheet-api/internal/clients/aon"
	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/pkg/debounce"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/appstate"
	"github.com/torneo-cremesi/sheet-api/internal/rules"
)

// knownVariants lists the rule variants the sheet can toggle.
var knownVariants = []string{rules.VariantEITR, rules.VariantABP}

// cascade maps a field to the fields that must be re-derived when it
// changes. Recomputation follows these edges transitively.
var cascade = map[string][]string{
	FieldAlignment:      {ComputedAlignment},
	FieldDeity:          {ComputedAlignment},
	FieldRace:           {FieldSize, ComputedRaceClass},
	FieldAltTraits:      {FieldSize, ComputedRaceClass},
	FieldClass:          {ComputedClassDetail},
	FieldArchetypes:     {ComputedClassDetail},
	ComputedClassDetail: {ComputedRaceClass},
	FieldLevel:          {ComputedRaceClass, ComputedRules},
	FieldSize:           {ComputedAnagraphics},
	FieldAge:            {ComputedAnagraphics},
	FieldAgeStage:       {ComputedAnagraphics},
	FieldGender:         {ComputedAnagraphics},
	FieldHeight:         {ComputedMeasures},
	FieldWeight:         {ComputedMeasures},
	FieldTraits:         {ComputedTraitNotes},
	FieldDrawbacks:      {ComputedDrawbackNotes},
	RuleField(rules.VariantEITR): {ComputedRules},
	RuleField(rules.VariantABP):  {ComputedRules},
}

// computedOrder fixes recompute order so that computed fields feeding other
// computed fields (the class detail feeds the race/class summary) are fresh
// before their dependents run.
var computedOrder = []string{
	ComputedClassDetail,
	ComputedAlignment,
	ComputedAnagraphics,
	ComputedRaceClass,
	ComputedMeasures,
	ComputedTraitNotes,
	ComputedDrawbackNotes,
	ComputedRules,
}

// Config holds the dependencies for the sheet orchestrator.
type Config struct {
	Catalogs aon.Client
	Rules    *rules.Service
	AppState appstate.Repository
	// SaveDelay is the quiescence window before an edit burst is persisted.
	// Zero persists synchronously.
	SaveDelay time.Duration
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalogs == nil {
		return errors.InvalidArgument("catalog client cannot be nil")
	}
	if cfg.Rules == nil {
		return errors.InvalidArgument("rules service cannot be nil")
	}
	if cfg.AppState == nil {
		return errors.InvalidArgument("appstate repository cannot be nil")
	}
	return nil
}

// Orchestrator is the derived-field reconciler for one character sheet.
type Orchestrator struct {
	catalogs aon.Client
	rules    *rules.Service
	appState appstate.Repository
	saver    *debounce.Debouncer

	mu       sync.Mutex
	hydrated bool
	state    entities.CharacterState

	races     map[string]catalog.Race
	classes   map[string]catalog.Class
	traits    map[string]catalog.Trait
	drawbacks map[string]catalog.Trait
}

// New creates a sheet orchestrator. Hydrate must complete before edits are
// accepted.
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		catalogs: cfg.Catalogs,
		rules:    cfg.Rules,
		appState: cfg.AppState,
		saver:    debounce.New(cfg.SaveDelay),
	}, nil
}

// Hydrate loads the persisted state and every catalog, then runs a full
// reconciliation pass. Selections referencing catalog entries that no longer
// exist are dropped, and a drop is persisted like any other change.
func (o *Orchestrator) Hydrate(ctx context.Context) error {
	var (
		races  []catalog.Race
		class  []catalog.Class
		bundle *catalog.TraitBundle
		loaded *appstate.LoadOutput
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		races, err = o.catalogs.GetRaces(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		class, err = o.catalogs.GetClasses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bundle, err = o.catalogs.GetTraitsAndDrawbacks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loaded, err = o.appState.Load(gctx, &appstate.LoadInput{})
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "failed to hydrate sheet")
	}

	o.mu.Lock()
	o.state = loaded.State
	o.races = make(map[string]catalog.Race, len(races))
	for _, r := range races {
		o.races[r.ID] = r
	}
	o.classes = make(map[string]catalog.Class, len(class))
	for _, c := range class {
		o.classes[c.ID] = c
	}
	o.traits = make(map[string]catalog.Trait, len(bundle.Traits))
	for _, t := range bundle.Traits {
		o.traits[t.ID] = t
	}
	o.drawbacks = make(map[string]catalog.Trait, len(bundle.Drawbacks))
	for _, t := range bundle.Drawbacks {
		o.drawbacks[t.ID] = t
	}
	o.hydrated = true

	updates := o.reconcileAll(ctx)
	o.mu.Unlock()

	if len(updates) > 0 {
		o.scheduleSave()
	}
	return nil
}

// ApplyEdit applies one user edit and re-derives everything downstream of
// it. The returned updates include the edited field and, in cascade order,
// every derived field whose value actually changed. An edit that leaves the
// field's value unchanged is a no-op.
func (o *Orchestrator) ApplyEdit(ctx context.Context, input *ApplyEditInput) (*ApplyEditOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Key == "" {
		return nil, errors.InvalidArgument("field key cannot be empty")
	}

	o.mu.Lock()
	if !o.hydrated {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("sheet is not hydrated yet")
	}

	if valueEqual(o.state[input.Key], input.Value) {
		o.mu.Unlock()
		return &ApplyEditOutput{}, nil
	}

	updates := make([]FieldUpdate, 0, 4)
	dirty := map[string]bool{input.Key: true}

	o.state[input.Key] = input.Value
	updates = append(updates, FieldUpdate{Key: input.Key, Value: input.Value})

	// A direct size edit detaches size from automatic derivation. There is
	// no edit path that clears the flag.
	if input.Key == FieldSize && !o.state.Bool(FieldSizeManual) {
		o.state[FieldSizeManual] = true
		updates = append(updates, FieldUpdate{Key: FieldSizeManual, Value: true})
	}

	updates = append(updates, o.revalidateSelections(input.Key, dirty)...)
	updates = append(updates, o.deriveSize(dirty)...)
	updates = append(updates, o.recompute(ctx, dirty)...)
	o.mu.Unlock()

	o.scheduleSave()
	return &ApplyEditOutput{Updates: updates}, nil
}

// State returns a copy of the current character state.
func (o *Orchestrator) State() entities.CharacterState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Clone()
}

// Flush persists any pending debounced save before returning.
func (o *Orchestrator) Flush() {
	o.saver.Flush()
}

// Close stops the debounced saver without flushing.
func (o *Orchestrator) Close() {
	o.saver.Stop()
}

// reconcileAll treats every raw field as dirty. Caller holds the lock.
func (o *Orchestrator) reconcileAll(ctx context.Context) []FieldUpdate {
	updates := make([]FieldUpdate, 0, 4)
	dirty := make(map[string]bool, len(cascade))
	for key := range cascade {
		dirty[key] = true
	}

	updates = append(updates, o.revalidateSelections(FieldRace, dirty)...)
	updates = append(updates, o.revalidateSelections(FieldClass, dirty)...)
	updates = append(updates, o.revalidateCatalogLists(dirty)...)
	updates = append(updates, o.deriveSize(dirty)...)
	updates = append(updates, o.recompute(ctx, dirty)...)
	return updates
}

// revalidateSelections drops selections that the newly-relevant catalog no
// longer offers. Changing race invalidates alt traits, changing class
// invalidates archetypes. Caller holds the lock.
func (o *Orchestrator) revalidateSelections(editedKey string, dirty map[string]bool) []FieldUpdate {
	var updates []FieldUpdate

	switch editedKey {
	case FieldRace:
		valid := make(map[string]bool)
		if race, ok := o.races[o.state.String(FieldRace)]; ok {
			for _, at := range race.AltTraits {
				valid[at.ID] = true
			}
		}
		if kept, changed := filterSelection(o.state.List(FieldAltTraits), valid); changed {
			o.state[FieldAltTraits] = kept
			dirty[FieldAltTraits] = true
			updates = append(updates, FieldUpdate{Key: FieldAltTraits, Value: kept})
		}
	case FieldClass:
		valid := make(map[string]bool)
		if class, ok := o.classes[o.state.String(FieldClass)]; ok {
			for _, a := range class.Archetypes {
				valid[a.ID] = true
			}
		}
		if kept, changed := filterSelection(o.state.List(FieldArchetypes), valid); changed {
			o.state[FieldArchetypes] = kept
			dirty[FieldArchetypes] = true
			updates = append(updates, FieldUpdate{Key: FieldArchetypes, Value: kept})
		}
	}
	return updates
}

// revalidateCatalogLists drops trait and drawback selections missing from
// the hydrated catalogs. Caller holds the lock.
func (o *Orchestrator) revalidateCatalogLists(dirty map[string]bool) []FieldUpdate {
	var updates []FieldUpdate

	validTraits := make(map[string]bool, len(o.traits))
	for id := range o.traits {
		validTraits[id] = true
	}
	if kept, changed := filterSelection(o.state.List(FieldTraits), validTraits); changed {
		o.state[FieldTraits] = kept
		dirty[FieldTraits] = true
		updates = append(updates, FieldUpdate{Key: FieldTraits, Value: kept})
	}

	validDrawbacks := make(map[string]bool, len(o.drawbacks))
	for id := range o.drawbacks {
		validDrawbacks[id] = true
	}
	if kept, changed := filterSelection(o.state.List(FieldDrawbacks), validDrawbacks); changed {
		o.state[FieldDrawbacks] = kept
		dirty[FieldDrawbacks] = true
		updates = append(updates, FieldUpdate{Key: FieldDrawbacks, Value: kept})
	}
	return updates
}

// deriveSize runs the size resolution algorithm when race or alt traits are
// dirty and the user has not taken manual control of size. Caller holds the
// lock.
func (o *Orchestrator) deriveSize(dirty map[string]bool) []FieldUpdate {
	if !dirty[FieldRace] && !dirty[FieldAltTraits] {
		return nil
	}
	if o.state.Bool(FieldSizeManual) {
		return nil
	}

	resolved := o.resolveSize()
	if o.state.String(FieldSize) == resolved {
		return nil
	}
	o.state[FieldSize] = resolved
	dirty[FieldSize] = true
	return []FieldUpdate{{Key: FieldSize, Value: resolved}}
}

// resolveSize starts from the selected race's base size and applies alt
// trait overrides in selection order, last override winning. Caller holds
// the lock.
func (o *Orchestrator) resolveSize() string {
	race, ok := o.races[o.state.String(FieldRace)]
	if !ok {
		return ""
	}

	overrides := make(map[string]string, len(race.AltTraits))
	for _, at := range race.AltTraits {
		if at.SizeOverride != "" {
			overrides[at.ID] = at.SizeOverride
		}
	}

	size := race.Size
	for _, id := range o.state.List(FieldAltTraits) {
		if override, ok := overrides[id]; ok {
			size = override
		}
	}
	return size
}

// recompute re-derives every computed field reachable from the dirty set,
// once each, writing only values that actually changed. Caller holds the
// lock.
func (o *Orchestrator) recompute(ctx context.Context, dirty map[string]bool) []FieldUpdate {
	reachable := make(map[string]bool)
	queue := make([]string, 0, len(dirty))
	for key := range dirty {
		queue = append(queue, key)
	}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		for _, next := range cascade[key] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}

	var updates []FieldUpdate
	for _, key := range computedOrder {
		if !reachable[key] {
			continue
		}
		value := o.compute(ctx, key)
		if o.state.String(key) == value {
			continue
		}
		o.state[key] = value
		updates = append(updates, FieldUpdate{Key: key, Value: value})
	}
	return updates
}

func (o *Orchestrator) scheduleSave() {
	o.saver.Trigger(o.persist)
}

// persist snapshots the state and writes it through the repository, which
// skips the write when nothing changed on the wire.
func (o *Orchestrator) persist() {
	o.mu.Lock()
	snapshot := o.state.Clone()
	o.mu.Unlock()

	ctx := context.Background()
	if _, err := o.appState.Save(ctx, &appstate.SaveInput{State: snapshot}); err != nil {
		slog.ErrorContext(ctx, "failed to persist character state",
			"error", err.Error())
	}
}

// filterSelection keeps the selected IDs present in valid, preserving
// selection order.
func filterSelection(selected []string, valid map[string]bool) ([]string, bool) {
	kept := make([]string, 0, len(selected))
	for _, id := range selected {
		if valid[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(selected) {
		return selected, false
	}
	return kept, true
}

// valueEqual compares field values by canonical JSON, so []string and the
// []any a JSON round-trip produces compare equal.
func valueEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aj) == string(bj)
}
