package sheet

// User-editable field keys. Keys match the historical persisted payload, so
// older saves hydrate without migration.
const (
	FieldRace       = "razza"
	FieldAltTraits  = "trattiAlternativi"
	FieldClass      = "classe"
	FieldArchetypes = "archetipi"
	FieldLevel      = "livello"
	FieldAlignment  = "allineamento"
	FieldDeity      = "divinita"
	FieldSize       = "taglia"
	FieldSizeManual = "tagliaManuale"
	FieldAge        = "eta"
	FieldAgeStage   = "fasciaEta"
	FieldGender     = "genere"
	FieldHeight     = "altezza"
	FieldWeight     = "peso"
	FieldTraits     = "tratti"
	FieldDrawbacks  = "difetti"
)

// Computed field keys, written only by the reconciler.
const (
	ComputedAlignment     = "riassAllineamento"
	ComputedAnagraphics   = "riassAnagrafica"
	ComputedRaceClass     = "riassRazzaClassi"
	ComputedClassDetail   = "dettaglioClasse"
	ComputedMeasures      = "riassMisure"
	ComputedTraitNotes    = "noteTratti"
	ComputedDrawbackNotes = "noteDifetti"
	ComputedRules         = "riassRegole"
)

// ruleFieldPrefix prefixes the per-variant toggle keys, e.g. "regola_abp".
const ruleFieldPrefix = "regola_"

// RuleField returns the toggle field key for a rule variant.
func RuleField(variantID string) string {
	return ruleFieldPrefix + variantID
}

// FieldUpdate is one field write the reconciler performed. The UI-binding
// layer mirrors these to every bound element.
type FieldUpdate struct {
	Key   string
	Value any
}

// ApplyEditInput carries a single user edit.
type ApplyEditInput struct {
	Key   string
	Value any
}

// ApplyEditOutput carries every field the edit changed, the edited field
// included, in a stable order.
type ApplyEditOutput struct {
	Updates []FieldUpdate
}
