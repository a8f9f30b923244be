// Package search filters recipe lists by category and free-text query.
//
// Everything here is a pure function over a slice: nothing is reordered,
// nothing is mutated, and applying the same Criteria twice gives the same
// result as applying it once.
package search

import (
	"strings"

	"github.com/arthur-debert/nanorecipes/types"
)

// Criteria is the filter state of the list view
type Criteria struct {
	// Category restricts results to one category. types.All and the empty
	// value let every category through.
	Category types.Category

	// Query is matched case-insensitively as a substring of the title, each
	// ingredient and the steps. Spaces in it are matched like any other
	// character; a query of only whitespace matches everything.
	Query string
}

// IsZero reports whether the criteria let everything through
func (c Criteria) IsZero() bool {
	return (c.Category == "" || c.Category == types.All) && strings.TrimSpace(c.Query) == ""
}

// Filter returns the recipes matching c in their original order.
func Filter(recipes []types.Recipe, c Criteria) []types.Recipe {
	out := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single recipe passes both filters.
func Matches(r types.Recipe, c Criteria) bool {
	if c.Category != "" && c.Category != types.All && r.Category != c.Category {
		return false
	}

	if strings.TrimSpace(c.Query) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack(r)), strings.ToLower(c.Query))
}

// haystack is the text a query is matched against. Fields are joined with
// newlines, which a one-line query cannot contain, so no match spans two fields.
func haystack(r types.Recipe) string {
	parts := make([]string, 0, len(r.Ingredients)+2)
	parts = append(parts, r.Title)
	parts = append(parts, r.Ingredients...)
	parts = append(parts, r.Steps)
	return strings.Join(parts, "\n")
}

// Field names reported by MatchedFields
const (
	FieldTitle       = "title"
	FieldIngredients = "ingredients"
	FieldSteps       = "steps"
)

// MatchedFields lists the fields of r that contain query, in display order.
// A blank query matches no field.
func MatchedFields(r types.Recipe, query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	query = strings.ToLower(query)

	var fields []string
	if strings.Contains(strings.ToLower(r.Title), query) {
		fields = append(fields, FieldTitle)
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			fields = append(fields, FieldIngredients)
			break
		}
	}
	if strings.Contains(strings.ToLower(r.Steps), query) {
		fields = append(fields, FieldSteps)
	}
	return fields
}

// CountByCategory counts recipes per category. The types.All entry holds
// the total.
func CountByCategory(recipes []types.Recipe) map[types.Category]int {
	counts := make(map[types.Category]int, len(types.Categories())+1)
	for _, c := range types.Categories() {
		counts[c] = 0
	}
	for _, r := range recipes {
		counts[r.Category]++
	}
	counts[types.All] = len(recipes)
	return counts
}
