package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/health-assistant/internal/engine"
	"github.com/capitalize-ai/health-assistant/internal/model"
)

func TestSuggestionsShape(t *testing.T) {
	s := Suggestions()
	require.Len(t, s.Categories, 4)
	for _, c := range s.Categories {
		assert.Len(t, c.Suggestions, 4, c.Title)
	}
	require.Len(t, s.PopularTopics, 6)
	assert.Equal(t, "Tell me about baby care", s.PopularTopics[1].Prompt)
}

func TestPreventionShape(t *testing.T) {
	p := Prevention()
	require.Len(t, p.Categories, 4)
	for _, c := range p.Categories {
		assert.Len(t, c.Tips, 5, c.Title)
	}
	assert.Equal(t, "Tell me more about personal hygiene", p.Categories[0].Prompt)
	assert.Len(t, p.Seasonal, 3)
}

func TestSuggestedQuestionsRouteToExpectedCategory(t *testing.T) {
	s := Suggestions()
	assert.Equal(t, model.CategoryWarning, engine.Classify(s.Categories[0].Suggestions[0].Prompt).Category)
	assert.Equal(t, model.CategoryInfo, engine.Classify(s.Categories[1].Suggestions[0].Prompt).Category)
	assert.Equal(t, model.CategorySuccess, engine.Classify(s.Categories[2].Suggestions[0].Prompt).Category)
	// "How to prevent malaria transmission?" mentions malaria, which outranks prevention.
	assert.Equal(t, model.CategoryWarning, engine.Classify(s.Categories[2].Suggestions[1].Prompt).Category)
	assert.Equal(t, model.CategoryNeutral, engine.Classify(s.Categories[3].Suggestions[0].Prompt).Category)
}

func TestLanguages(t *testing.T) {
	assert.Len(t, Languages(), 5)
	assert.True(t, IsSupportedLanguage("te"))
	assert.False(t, IsSupportedLanguage("fr"))

	langs := Languages()
	langs[0].Code = "xx"
	assert.True(t, IsSupportedLanguage("en"))
}

func TestNavigation(t *testing.T) {
	nav := Navigation()
	require.Len(t, nav, 5)
	assert.Equal(t, "/chat", nav[1].Path)
}
