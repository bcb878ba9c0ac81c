package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
)

func decode(t *testing.T, payload string) any {
	t.Helper()
	var raw any
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestUnwrapEntriesBareArray(t *testing.T) {
	raw := decode(t, `[{"name":"Umano"},{"name":"Halfling"}]`)
	entries := catalog.UnwrapEntries(raw, "Races")
	require.Len(t, entries, 2)
}

func TestUnwrapEntriesEnvelope(t *testing.T) {
	raw := decode(t, `{"entries":[{"name":"Umano"}]}`)
	assert.Len(t, catalog.UnwrapEntries(raw, "Races"), 1)

	raw = decode(t, `{"Races":[{"name":"Umano"}]}`)
	assert.Len(t, catalog.UnwrapEntries(raw, "Races"), 1)
}

func TestUnwrapEntriesValuesFallback(t *testing.T) {
	raw := decode(t, `{"umano":{"name":"Umano"},"extra":[{"name":"Halfling"}]}`)
	entries := catalog.UnwrapEntries(raw, "Races")
	require.Len(t, entries, 2)
}

func TestUnwrapEntriesDropsNonObjects(t *testing.T) {
	raw := decode(t, `[{"name":"Umano"},"spazzatura",42]`)
	entries := catalog.UnwrapEntries(raw, "Races")
	require.Len(t, entries, 1)
	assert.Equal(t, "Umano", entries[0]["name"])
}

func TestUnwrapEntriesUnrecognised(t *testing.T) {
	assert.Nil(t, catalog.UnwrapEntries(decode(t, `"stringa"`)))
	assert.Nil(t, catalog.UnwrapEntries(nil))
}
