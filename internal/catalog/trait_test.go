package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
)

func TestNormaliseTrait(t *testing.T) {
	trait := catalog.NormaliseTrait(catalog.RawEntry{
		"Name":        "Riflessi dell'Arena",
		"Description": "+2 a Iniziativa durante il primo round.",
		"Type":        "Combat",
	})
	require.NotNil(t, trait)
	assert.Equal(t, "riflessi-dell-arena", trait.ID)
	assert.Equal(t, "Combat", trait.Category)
	assert.Nil(t, catalog.NormaliseTrait(catalog.RawEntry{"Type": "Combat"}))
}

func TestNormaliseTraitBundleExplicitKeys(t *testing.T) {
	bundle := catalog.NormaliseTraitBundle(map[string]any{
		"Traits": []any{
			map[string]any{"Name": "Coraggioso"},
		},
		"Drawbacks": []any{
			map[string]any{"Name": "Superbo", "Type": "Drawback"},
		},
	})
	require.Len(t, bundle.Traits, 1)
	require.Len(t, bundle.Drawbacks, 1)
	assert.Equal(t, "coraggioso", bundle.Traits[0].ID)
	assert.Equal(t, "superbo", bundle.Drawbacks[0].ID)
}

func TestNormaliseTraitBundlePartitionsOnType(t *testing.T) {
	bundle := catalog.NormaliseTraitBundle(map[string]any{
		"regionali": []any{
			map[string]any{"Name": "Figlio dell'Arena"},
			map[string]any{"Name": "Avido", "Type": "Drawback"},
		},
		"sociali": []any{
			map[string]any{"Name": "Mercante"},
		},
	})
	require.Len(t, bundle.Traits, 2)
	require.Len(t, bundle.Drawbacks, 1)
	assert.Equal(t, "avido", bundle.Drawbacks[0].ID)
}

func TestNormaliseTraitBundleBareArray(t *testing.T) {
	bundle := catalog.NormaliseTraitBundle([]any{
		map[string]any{"Name": "Coraggioso"},
	})
	require.Len(t, bundle.Traits, 1)
	assert.Empty(t, bundle.Drawbacks)
}
