package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
)

func TestNormaliseClassEmbeddedArchetypes(t *testing.T) {
	class := catalog.NormaliseClass(catalog.RawEntry{
		"Name": "Guerriero",
		"Archetypes": []any{
			map[string]any{"Name": "Maestro d'Armi", "Summary": "Specialista di un gruppo di armi."},
		},
	}, nil)
	require.NotNil(t, class)
	assert.Equal(t, "guerriero", class.ID)
	require.Len(t, class.Archetypes, 1)
	assert.Equal(t, "maestro-d-armi", class.Archetypes[0].ID)
}

func TestNormaliseClassPullsFromArchetypeIndex(t *testing.T) {
	index := []catalog.RawEntry{
		{"Name": "Arciere", "classes": []any{map[string]any{"name": "Guerriero"}}},
		{"Name": "Predatore", "classes": []any{"Ranger"}},
		{"Name": "Duellante", "class": "guerriero"},
	}
	class := catalog.NormaliseClass(catalog.RawEntry{"Name": "Guerriero"}, index)
	require.NotNil(t, class)
	require.Len(t, class.Archetypes, 2)
	assert.Equal(t, "arciere", class.Archetypes[0].ID)
	assert.Equal(t, "duellante", class.Archetypes[1].ID)
}

func TestNormaliseClassArchetypeLiteralNameMatch(t *testing.T) {
	index := []catalog.RawEntry{
		{"Name": "Campione", "classes": []any{"Guerriero"}},
	}
	class := catalog.NormaliseClass(catalog.RawEntry{"Name": "Guerriero"}, index)
	require.NotNil(t, class)
	require.Len(t, class.Archetypes, 1)
	assert.Equal(t, "campione", class.Archetypes[0].ID)
}

func TestNormaliseArchetypeCrossReferences(t *testing.T) {
	arch := catalog.NormaliseArchetype(catalog.RawEntry{
		"Name":      "Maestro d'Armi",
		"Replaces":  "Addestramento con le Armi, Coraggio",
		"conflicts": []any{"Arciere"},
		"modifies":  []any{"Talento Bonus"},
	})
	require.NotNil(t, arch)
	assert.Equal(t, []string{"addestramento-con-le-armi", "coraggio"}, arch.Replaces)
	assert.Equal(t, []string{"talento-bonus"}, arch.Modifies)
	assert.Equal(t, []string{"arciere"}, arch.ConflictsWith)
}

func TestNormaliseClassFeatureShapes(t *testing.T) {
	feature := catalog.NormaliseClassFeature("Coraggio")
	require.NotNil(t, feature)
	assert.Equal(t, "coraggio", feature.ID)
	assert.Equal(t, "Coraggio", feature.Name)
	assert.Nil(t, feature.Level)

	feature = catalog.NormaliseClassFeature(map[string]any{
		"Name":        "Addestramento con le Armi",
		"Level":       float64(5),
		"Type":        "Ex",
		"Description": "Bonus crescente con un gruppo di armi.",
	})
	require.NotNil(t, feature)
	assert.Equal(t, "addestramento-con-le-armi", feature.ID)
	require.NotNil(t, feature.Level)
	assert.Equal(t, 5, *feature.Level)
	assert.Equal(t, "Ex", feature.Type)

	assert.Nil(t, catalog.NormaliseClassFeature(""))
	assert.Nil(t, catalog.NormaliseClassFeature(float64(3)))
}

func TestNormaliseFocusOptionShapes(t *testing.T) {
	opt := catalog.NormaliseFocusOption("Scuola di magia")
	require.NotNil(t, opt)
	assert.Equal(t, "Scuola di magia", opt.Label)

	opt = catalog.NormaliseFocusOption(map[string]any{
		"Label":   "Gruppi di armi",
		"Options": "Lame pesanti, Lame leggere, lame pesanti e Archi",
		"Count":   float64(2),
	})
	require.NotNil(t, opt)
	assert.Equal(t, []string{"Lame pesanti", "Lame leggere", "Archi"}, opt.Options)
	require.NotNil(t, opt.Count)
	require.NotNil(t, opt.Count.N)
	assert.Equal(t, 2, *opt.Count.N)

	opt = catalog.NormaliseFocusOption(map[string]any{"name": "Benedizioni", "count": "una per livello"})
	require.NotNil(t, opt)
	require.NotNil(t, opt.Count)
	assert.Equal(t, "una per livello", opt.Count.Text)

	assert.Nil(t, catalog.NormaliseFocusOption(map[string]any{"summary": "niente label"}))
}

func TestNormaliseProficienciesMergesNestedAndFlat(t *testing.T) {
	class := catalog.NormaliseClass(catalog.RawEntry{
		"Name":    "Guerriero",
		"Weapons": "Semplici e Marziali",
		"Armor": map[string]any{
			"Light":  "Leggere",
			"Medium": []any{"Medie"},
		},
		"heavyArmor": "Pesanti",
		"Shields":    "Scudi, scudi torre",
		"Other":      []any{"Attrezzi da fabbro"},
	}, nil)
	require.NotNil(t, class)
	p := class.Proficiencies
	require.NotNil(t, p)
	assert.Equal(t, []string{"Semplici", "Marziali"}, p.Weapons)
	assert.Equal(t, []string{"Leggere"}, p.Armor.Light)
	assert.Equal(t, []string{"Medie"}, p.Armor.Medium)
	assert.Equal(t, []string{"Pesanti"}, p.Armor.Heavy)
	assert.Equal(t, []string{"Scudi", "scudi torre"}, p.Shields)
	assert.Equal(t, []string{"Attrezzi da fabbro"}, p.Other)
}

func TestNormaliseProficienciesNilWhenEmpty(t *testing.T) {
	class := catalog.NormaliseClass(catalog.RawEntry{"Name": "Mago"}, nil)
	require.NotNil(t, class)
	assert.Nil(t, class.Proficiencies)

	// supplied but empty still collapses to nil
	class = catalog.NormaliseClass(catalog.RawEntry{"Name": "Monaco", "Weapons": " , "}, nil)
	require.NotNil(t, class)
	assert.Nil(t, class.Proficiencies)
}

func TestNormaliseClassBonusFeats(t *testing.T) {
	class := catalog.NormaliseClass(catalog.RawEntry{
		"Name":       "Guerriero",
		"BonusFeats": "Arma Focalizzata, Maestria in Combattimento e arma focalizzata",
	}, nil)
	require.NotNil(t, class)
	assert.Equal(t, []string{"Arma Focalizzata", "Maestria in Combattimento"}, class.BonusFeats)
}

func TestNormaliseClassWithoutIdentifier(t *testing.T) {
	assert.Nil(t, catalog.NormaliseClass(nil, nil))
	assert.Nil(t, catalog.NormaliseClass(catalog.RawEntry{"Source": "x"}, nil))
}
