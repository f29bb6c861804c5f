package document_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
)

func TestParseRecords_PreservesNumbers(t *testing.T) {
	records, err := document.ParseRecords([]byte(`[{"id": "x", "damage": 12345678901234567890}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "x", records[0].ID())
	assert.Equal(t, json.Number("12345678901234567890"), records[0].Field("damage"))
}

func TestParseRecords_RejectsTrailingData(t *testing.T) {
	for _, raw := range []string{`[] []`, `[] ]`, `{} x`} {
		_, err := document.ParseRecords([]byte(raw))
		assert.Error(t, err, raw)
		assert.NotErrorIs(t, err, document.ErrNotArray, raw)
	}
}

func TestParseRecords_ValidJSONThatIsNotAnArray(t *testing.T) {
	for _, raw := range []string{`{}`, `null`, `"x"`, `7`, `true`} {
		_, err := document.ParseRecords([]byte(raw))
		assert.ErrorIs(t, err, document.ErrNotArray, raw)
	}
}

func TestParseRecords_KeepsElementsOfAnyShape(t *testing.T) {
	raw := `[{"id": "keep", "name": "Heirloom"}, 5, "x", null, [1]]`

	records, err := document.ParseRecords([]byte(raw))
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "keep", records[0].ID())
	for _, r := range records[1:] {
		assert.Empty(t, r.ID())
		assert.Nil(t, r.Field("name"))
	}

	data, err := document.EncodeRecords(records)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestRecord_IDMissingOrNotString(t *testing.T) {
	assert.Empty(t, document.Record{}.ID())
	records := document.MustParseRecords([]byte(`[{"id": 7}, {"name": "x"}]`))
	assert.Empty(t, records[0].ID())
	assert.Empty(t, records[1].ID())
}

func TestToRecordFromRecord(t *testing.T) {
	type item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Qty  int    `json:"qty"`
	}

	record, err := document.ToRecord(item{ID: "i1", Name: "Rope", Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, "i1", record.ID())
	assert.Equal(t, json.Number("3"), record.Field("qty"))

	var back item
	require.NoError(t, document.FromRecord(record, &back))
	assert.Equal(t, item{ID: "i1", Name: "Rope", Qty: 3}, back)
}

func TestEncodeRecords_Indented(t *testing.T) {
	data, err := document.EncodeRecords(document.MustParseRecords([]byte(`[{"id": "a"}]`)))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"a\"\n  }\n]", string(data))
}
