package types

import (
	"slices"
	"time"
)

// PlaceholderTitle stands in for a blank title.
const PlaceholderTitle = "Untitled recipe"

// Recipe is a single stored recipe.
//
// The JSON layout is the persisted slot layout: an array of these objects.
// Notes and UpdatedAt are omitted while empty, so never-edited records
// (the seed in particular) carry neither field.
type Recipe struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Category    Category  `json:"category" yaml:"category" validate:"required,category"`
	Ingredients []string  `json:"ingredients" yaml:"ingredients" validate:"dive,notblank"`
	Steps       string    `json:"steps" yaml:"steps"`
	Notes       string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// Clone returns a deep copy of the recipe. The ingredient slice is never
// shared between the copy and the original.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = slices.Clone(r.Ingredients)
	if c.Ingredients == nil {
		c.Ingredients = []string{}
	}
	return c
}

// LastModified returns UpdatedAt, or CreatedAt for never-edited records.
func (r Recipe) LastModified() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// Patch specifies fields to replace on a recipe.
// Nil fields are left untouched. ID and CreatedAt cannot be patched.
type Patch struct {
	Title       *string
	Category    *Category
	Ingredients []string // nil leaves ingredients unchanged, empty clears them
	Steps       *string
	Notes       *string
	UpdatedAt   *time.Time
}

// Apply returns a copy of r with the patch applied.
func (p Patch) Apply(r Recipe) Recipe {
	out := r.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Ingredients != nil {
		out.Ingredients = slices.Clone(p.Ingredients)
	}
	if p.Steps != nil {
		out.Steps = *p.Steps
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.UpdatedAt != nil {
		out.UpdatedAt = *p.UpdatedAt
	}
	return out
}

// CloneAll deep-copies a recipe list. A nil input yields an empty list.
func CloneAll(recipes []Recipe) []Recipe {
	out := make([]Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}
