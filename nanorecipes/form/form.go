// Package form holds the draft a recipe is edited in before it is saved.
//
// A Form is a value. Every setter returns a new Form and leaves the
// receiver alone; slices are copied, never shared, so earlier snapshots
// stay valid (the TUI keeps the previous form around while rendering).
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/types"
)

// PlaceholderTitle replaces a blank title on commit.
const PlaceholderTitle = types.PlaceholderTitle

// ErrIndex is returned for ingredient positions outside the list.
var ErrIndex = errors.New("ingredient index out of range")

// Form is a draft recipe. An empty ID means the draft is new.
type Form struct {
	draft types.Recipe
}

// Blank returns the template for a new recipe: default category and a
// single empty ingredient row.
func Blank() Form {
	return Form{draft: types.Recipe{
		Category:    types.DefaultCategory,
		Ingredients: []string{""},
	}}
}

// FromRecipe loads an existing recipe. A recipe with no ingredients shows
// one blank row.
func FromRecipe(r types.Recipe) Form {
	d := r.Clone()
	if len(d.Ingredients) == 0 {
		d.Ingredients = []string{""}
	}
	return Form{draft: d}
}

// IsNew reports whether committing will create a recipe
func (f Form) IsNew() bool {
	return f.draft.ID == ""
}

// ID returns the id of the recipe being edited, or "" for a new one
func (f Form) ID() string {
	return f.draft.ID
}

// Draft returns a copy of the current draft, uncommitted and unnormalized.
func (f Form) Draft() types.Recipe {
	return f.draft.Clone()
}

// Title returns the draft title
func (f Form) Title() string { return f.draft.Title }

// Category returns the draft category
func (f Form) Category() types.Category { return f.draft.Category }

// Steps returns the draft steps
func (f Form) Steps() string { return f.draft.Steps }

// Notes returns the draft notes
func (f Form) Notes() string { return f.draft.Notes }

// Ingredients returns a copy of the ingredient rows
func (f Form) Ingredients() []string {
	return slices.Clone(f.draft.Ingredients)
}

// SetTitle replaces the title
func (f Form) SetTitle(title string) Form {
	f.draft = f.draft.Clone()
	f.draft.Title = title
	return f
}

// SetCategory replaces the category. Only storable categories are accepted.
func (f Form) SetCategory(c types.Category) (Form, error) {
	if !c.IsValid() {
		return f, fmt.Errorf("%w: %q", types.ErrInvalidCategory, c)
	}
	f.draft = f.draft.Clone()
	f.draft.Category = c
	return f, nil
}

// SetSteps replaces the steps
func (f Form) SetSteps(steps string) Form {
	f.draft = f.draft.Clone()
	f.draft.Steps = steps
	return f
}

// SetNotes replaces the notes
func (f Form) SetNotes(notes string) Form {
	f.draft = f.draft.Clone()
	f.draft.Notes = notes
	return f
}

// AddIngredient appends a blank ingredient row
func (f Form) AddIngredient() Form {
	f.draft = f.draft.Clone()
	f.draft.Ingredients = append(f.draft.Ingredients, "")
	return f
}

// SetIngredients replaces every row. An empty list leaves one blank row.
func (f Form) SetIngredients(rows []string) Form {
	f.draft = f.draft.Clone()
	f.draft.Ingredients = slices.Clone(rows)
	if len(f.draft.Ingredients) == 0 {
		f.draft.Ingredients = []string{""}
	}
	return f
}

// SetIngredient replaces the row at i
func (f Form) SetIngredient(i int, value string) (Form, error) {
	if i < 0 || i >= len(f.draft.Ingredients) {
		return f, fmt.Errorf("%w: %d of %d", ErrIndex, i, len(f.draft.Ingredients))
	}
	f.draft = f.draft.Clone()
	f.draft.Ingredients[i] = value
	return f, nil
}

// RemoveIngredient deletes the row at i. Removing the last row leaves a
// single blank one.
func (f Form) RemoveIngredient(i int) (Form, error) {
	if i < 0 || i >= len(f.draft.Ingredients) {
		return f, fmt.Errorf("%w: %d of %d", ErrIndex, i, len(f.draft.Ingredients))
	}
	f.draft = f.draft.Clone()
	f.draft.Ingredients = slices.Delete(f.draft.Ingredients, i, i+1)
	if len(f.draft.Ingredients) == 0 {
		f.draft.Ingredients = []string{""}
	}
	return f, nil
}

// Normalized returns the draft as it will be stored: title trimmed (or the
// placeholder), ingredients trimmed with blank rows dropped, and
// whitespace-only notes cleared.
func (f Form) Normalized() types.Recipe {
	r := f.draft.Clone()

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		r.Title = PlaceholderTitle
	}

	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	r.Ingredients = ingredients

	if strings.TrimSpace(r.Notes) == "" {
		r.Notes = ""
	}
	return r
}

// Commit saves the draft into c and returns the stored recipe.
//
// A new draft gets an id from gen, createdAt and updatedAt set to now, and
// is prepended. An existing draft replaces the fields of the recipe with
// the same id; its id and createdAt are kept. A *collection.PersistError
// is returned together with the stored recipe when only the write failed.
func (f Form) Commit(c *collection.Collection, gen ids.Generator, now time.Time) (types.Recipe, error) {
	r := f.Normalized()

	if f.IsNew() {
		r.ID = gen.NewID()
		r.CreatedAt = now
		r.UpdatedAt = now
		if err := c.Add(r); err != nil {
			if collection.IsPersistError(err) {
				return r, err
			}
			return types.Recipe{}, fmt.Errorf("failed to add recipe: %w", err)
		}
		return r, nil
	}

	updated, err := c.Update(r.ID, types.Patch{
		Title:       &r.Title,
		Category:    &r.Category,
		Ingredients: r.Ingredients,
		Steps:       &r.Steps,
		Notes:       &r.Notes,
		UpdatedAt:   &now,
	})
	if err != nil && !collection.IsPersistError(err) {
		return types.Recipe{}, fmt.Errorf("failed to update recipe %s: %w", r.ID, err)
	}
	return updated, err
}
