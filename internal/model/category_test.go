package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryCategoryHasTreatment(t *testing.T) {
	table := Treatments()
	for _, c := range AllCategories() {
		_, ok := table[c]
		assert.True(t, ok, "missing treatment for %s", c)
	}
	assert.Len(t, table, len(AllCategories()))
}

func TestNeutralHasNoStyling(t *testing.T) {
	assert.False(t, TreatmentFor(CategoryNeutral).Styled)
	assert.Equal(t, "amber", TreatmentFor(CategoryWarning).Accent)
	assert.Equal(t, TreatmentFor(CategoryNeutral), TreatmentFor(Category("bogus")))
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(Entry{Category: CategoryNeutral})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":null`)

	data, err = json.Marshal(Entry{Category: CategoryWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"warning"`)

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"category":null}`), &e))
	assert.Equal(t, CategoryNeutral, e.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"category":"info"}`), &e))
	assert.Equal(t, CategoryInfo, e.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"loud"}`), &e))
}
