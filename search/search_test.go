package search

import (
	"testing"
	"unicode/utf8"

	"github.com/arthur-debert/nanorecipes/testutil"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/google/go-cmp/cmp"
)

func ids(recipes []types.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	k := testutil.Kitchen(t)

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "zero criteria pass everything",
			criteria: Criteria{},
			want:     ids(k.Recipes),
		},
		{
			name:     "All passes everything",
			criteria: Criteria{Category: types.All, Query: "   "},
			want:     ids(k.Recipes),
		},
		{
			name:     "exact category",
			criteria: Criteria{Category: types.Drinks},
			want:     []string{"drink-lemonade"},
		},
		{
			name:     "query matches title case-insensitively",
			criteria: Criteria{Query: "CHOCOLATE"},
			want:     []string{"dessert-cake"},
		},
		{
			name:     "query matches ingredients and keeps order",
			criteria: Criteria{Query: "garlic"},
			want:     []string{"soup-tomato", "main-chicken"},
		},
		{
			name:     "query matches steps",
			criteria: Criteria{Query: "dutch oven"},
			want:     []string{"bake-sourdough"},
		},
		{
			name:     "surrounding spaces are part of the query",
			criteria: Criteria{Query: "lemon "},
			want:     []string{"main-chicken"},
		},
		{
			name:     "matches do not span fields",
			criteria: Criteria{Query: "soup 6"},
			want:     []string{},
		},
		{
			name:     "filters are ANDed",
			criteria: Criteria{Category: types.Salads, Query: "tomato"},
			want:     []string{"salad-greek"},
		},
		{
			name:     "notes are not searched",
			criteria: Criteria{Query: "summer"},
			want:     []string{},
		},
		{
			name:     "empty category",
			criteria: Criteria{Category: types.Other},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(k.Recipes, tt.criteria)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}

			again := Filter(got, tt.criteria)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("Filter() is not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestFilterIdempotentForEveryCategory(t *testing.T) {
	k := testutil.Kitchen(t)

	for _, c := range types.FilterCategories() {
		for _, q := range []string{"", "o", "tomato", "zzz"} {
			crit := Criteria{Category: c, Query: q}
			once := Filter(k.Recipes, crit)
			if diff := cmp.Diff(once, Filter(once, crit)); diff != "" {
				t.Errorf("%s/%q not idempotent:\n%s", c, q, diff)
			}
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	k := testutil.Kitchen(t)
	before := types.CloneAll(k.Recipes)

	_ = Filter(k.Recipes, Criteria{Category: types.Soups, Query: "soup"})

	if diff := cmp.Diff(before, k.Recipes); diff != "" {
		t.Errorf("Filter mutated its input:\n%s", diff)
	}
}

func TestMatchedFields(t *testing.T) {
	k := testutil.Kitchen(t)

	if got := MatchedFields(k.TomatoSoup, "tomato"); !cmp.Equal(got, []string{FieldTitle, FieldIngredients, FieldSteps}) {
		t.Errorf("MatchedFields(soup, tomato) = %v", got)
	}
	if got := MatchedFields(k.RoastChicken, "ROAST"); !cmp.Equal(got, []string{FieldTitle, FieldSteps}) {
		t.Errorf("MatchedFields(chicken, ROAST) = %v", got)
	}
	if got := MatchedFields(k.Lemonade, " "); got != nil {
		t.Errorf("blank query should match nothing, got %v", got)
	}
}

func TestCountByCategory(t *testing.T) {
	k := testutil.Kitchen(t)
	counts := CountByCategory(k.Recipes)

	if counts[types.All] != len(k.Recipes) {
		t.Errorf("All = %d, want %d", counts[types.All], len(k.Recipes))
	}
	if counts[types.Soups] != 1 || counts[types.Drinks] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if n, ok := counts[types.Other]; !ok || n != 0 {
		t.Errorf("empty categories should be present with zero, got %d, %v", n, ok)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		text, query, want string
	}{
		{"Tomato Soup", "tomato", "[Tomato] Soup"},
		{"banana", "an", "b[an][an]a"},
		{"aaa", "aa", "[aa]a"},
		{"Lemonade", "", "Lemonade"},
		{"Lemonade", "xyz", "Lemonade"},
		{"Lemonade", "   ", "Lemonade"},
		{"Iced tea", " tea", "Iced[ tea]"},
		// U+023A grows and U+212A (Kelvin) shrinks when lowercased
		{"\u023a\u212a tea", "tea", "\u023a\u212a [tea]"},
		{"\u212aiwi", "k", "[\u212a]iwi"},
		{"Crème brûlée", "BRÛLÉE", "Crème [brûlée]"},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.query, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query, "[", "]"); got != tt.want {
				t.Errorf("Highlight() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchSpansFallOnRuneBoundaries(t *testing.T) {
	text := "\u023a\u212a tea \u212a"
	spans := MatchSpans(text, "k")
	want := []Span{{Start: 2, End: 5}, {Start: 10, End: 13}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Fatalf("MatchSpans() mismatch (-want +got):\n%s", diff)
	}
	for _, sp := range spans {
		if !utf8.ValidString(text[sp.Start:sp.End]) {
			t.Errorf("span %v cuts a rune", sp)
		}
	}
}
