package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/nanorecipes/testutil"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	if diff := cmp.Diff([]string{"markdown", "plaintext"}, List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Get("docx"); err == nil {
		t.Error("Get of unknown format should fail")
	}

	f, err := ForPath("/tmp/Borscht.MD")
	if err != nil || f != Markdown {
		t.Errorf("ForPath(.MD) = %v, %v", f, err)
	}
	if _, err := ForPath("recipe.pdf"); err == nil {
		t.Error("ForPath of unknown extension should fail")
	}

	tests := []struct {
		name    string
		format  *RecipeFormat
		wantErr bool
	}{
		{"duplicate", &RecipeFormat{Name: "markdown", Extension: ".md"}, true},
		{"uppercase", &RecipeFormat{Name: "HTML", Extension: ".html"}, true},
		{"empty", &RecipeFormat{Name: ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Register(tt.format); (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarkdownRender(t *testing.T) {
	k := testutil.Kitchen(t)
	doc := Markdown.Render(k.GreekSalad)

	for _, want := range []string{
		"# Greek Salad\n",
		"*Category: Salads*",
		"## Ingredients\n\n- 2 tomatoes\n- 1 cucumber\n",
		"## Steps\n\n1. Chop the vegetables.\n2. Top with feta",
		"## Notes\n\nBest with summer tomatoes.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("markdown missing %q:\n%s", want, doc)
		}
	}

	bare := Markdown.Render(types.Recipe{Title: "Water", Category: types.Drinks})
	if strings.Contains(bare, "## Steps") || strings.Contains(bare, "## Notes") {
		t.Errorf("empty sections should be omitted:\n%s", bare)
	}
	if !strings.Contains(bare, "_None listed._") {
		t.Errorf("empty ingredient list should say so:\n%s", bare)
	}
}

func TestRoundTrip(t *testing.T) {
	k := testutil.Kitchen(t)

	for _, format := range []*RecipeFormat{Markdown, PlainText} {
		for _, r := range k.Recipes {
			t.Run(format.Name+"/"+r.ID, func(t *testing.T) {
				got, err := format.Parse(format.Render(r))
				if err != nil {
					t.Fatalf("Parse failed: %v", err)
				}

				want := r.Clone()
				if format == Markdown {
					// Markdown carries no id or timestamps
					want.ID, want.CreatedAt, want.UpdatedAt = "", got.CreatedAt, got.UpdatedAt
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, format := range []*RecipeFormat{Markdown, PlainText} {
		t.Run(format.Name, func(t *testing.T) {
			if _, err := format.Parse("  \n "); !errors.Is(err, ErrEmptyDocument) {
				t.Errorf("Parse(blank) = %v, want ErrEmptyDocument", err)
			}
		})
	}

	if _, err := Markdown.Parse("# Pie\n\n*Category: Pies*\n"); !errors.Is(err, types.ErrInvalidCategory) {
		t.Errorf("unknown markdown category = %v", err)
	}
	if _, err := PlainText.Parse("category: Soups\ncreated: yesterday\n---\n\nPie\n"); err == nil {
		t.Error("bad timestamp should fail")
	}
}

func TestPlainTextWithoutMetadata(t *testing.T) {
	r, err := PlainText.Parse("Toast\n\nIngredients:\n- bread\n-\n\nSteps:\nToast it.\nButter it.\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := types.Recipe{
		Title:       "Toast",
		Category:    types.DefaultCategory,
		Ingredients: []string{"bread"},
		Steps:       "Toast it.\nButter it.",
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}
