package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/nanorecipes/formats"
	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// recipeFlags are the field flags shared by add and edit
type recipeFlags struct {
	title       string
	category    string
	ingredients []string
	steps       string
	notes       string
	from        string
	interactive bool
}

func (rf *recipeFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&rf.title, "title", "t", "", "recipe title")
	flags.StringVarP(&rf.category, "category", "c", "", "recipe category")
	flags.StringArrayVarP(&rf.ingredients, "ingredient", "i", nil, "an ingredient (repeat for each one)")
	flags.StringVar(&rf.steps, "steps", "", "preparation steps")
	flags.StringVar(&rf.notes, "notes", "", "free-form notes")
	flags.StringVar(&rf.from, "from", "", "read the recipe from a markdown or plaintext file")
	flags.BoolVarP(&rf.interactive, "interactive", "I", false, "fill the recipe in an interactive form")
}

// anyField reports whether a field flag or --from was given
func (rf *recipeFlags) anyField(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "category", "ingredient", "steps", "notes", "from"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies --from and the changed flags onto the draft. Flags win over
// the file; fields given by neither keep their draft value.
func (rf *recipeFlags) apply(cmd *cobra.Command, f form.Form) (form.Form, error) {
	if rf.from != "" {
		r, err := readRecipeFile(rf.from)
		if err != nil {
			return f, err
		}
		f = f.SetTitle(r.Title).SetIngredients(r.Ingredients).SetSteps(r.Steps).SetNotes(r.Notes)
		if r.Category != "" {
			if f, err = f.SetCategory(r.Category); err != nil {
				return f, err
			}
		}
	}

	changed := cmd.Flags().Changed
	if changed("title") {
		f = f.SetTitle(rf.title)
	}
	if changed("category") {
		cat, err := types.ParseCategory(rf.category)
		if err != nil {
			return f, err
		}
		if f, err = f.SetCategory(cat); err != nil {
			return f, err
		}
	}
	if changed("ingredient") {
		f = f.SetIngredients(rf.ingredients)
	}
	if changed("steps") {
		f = f.SetSteps(rf.steps)
	}
	if changed("notes") {
		f = f.SetNotes(rf.notes)
	}
	return f, nil
}

func readRecipeFile(path string) (types.Recipe, error) {
	format, err := formats.ForPath(path)
	if err != nil {
		return types.Recipe{}, NewValidationError("read recipe file", "file type", path,
			"Use a .md or .txt file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Recipe{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	r, err := format.Parse(string(data))
	if err != nil {
		return types.Recipe{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return r, nil
}
