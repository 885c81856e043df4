// Package model defines data structures for the health assistant.
package model

import (
	"encoding/json"
	"fmt"
)

// Category is the semantic weight of an engine response.
type Category string

const (
	CategoryWarning Category = "warning"
	CategoryInfo    Category = "info"
	CategorySuccess Category = "success"
	// CategoryNeutral means "no category" and carries no styling hint.
	CategoryNeutral Category = "neutral"
)

// AllCategories returns every category in a stable order.
func AllCategories() []Category {
	return []Category{CategoryWarning, CategoryInfo, CategorySuccess, CategoryNeutral}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryWarning, CategoryInfo, CategorySuccess, CategoryNeutral:
		return true
	}
	return false
}

// MarshalJSON encodes neutral (and the zero value) as null.
func (c Category) MarshalJSON() ([]byte, error) {
	if c == "" || c == CategoryNeutral {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON decodes null as neutral.
func (c *Category) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = CategoryNeutral
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	cat := Category(s)
	if cat == "" {
		cat = CategoryNeutral
	}
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", s)
	}
	*c = cat
	return nil
}

// Treatment is the visual treatment a renderer applies to a category.
type Treatment struct {
	Accent string `json:"accent"`
	Icon   string `json:"icon"`
	Styled bool   `json:"styled"`
}

var treatments = map[Category]Treatment{
	CategoryWarning: {Accent: "amber", Icon: "alert-triangle", Styled: true},
	CategoryInfo:    {Accent: "blue", Icon: "info", Styled: true},
	CategorySuccess: {Accent: "emerald", Icon: "check-circle", Styled: true},
	CategoryNeutral: {Accent: "slate", Icon: "bot", Styled: false},
}

// TreatmentFor returns the treatment for c. Unknown categories fall back to neutral.
func TreatmentFor(c Category) Treatment {
	if t, ok := treatments[c]; ok {
		return t
	}
	return treatments[CategoryNeutral]
}

// Treatments returns a copy of the full category to treatment table.
func Treatments() map[Category]Treatment {
	out := make(map[Category]Treatment, len(treatments))
	for k, v := range treatments {
		out[k] = v
	}
	return out
}

// EngineResponse is the response engine's output.
type EngineResponse struct {
	Body     string   `json:"body"`
	Category Category `json:"category"`
}
