package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/nanorecipes/view"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/charmbracelet/huh"
)

// errCancelled is returned when the user aborts a prompt
var errCancelled = errors.New("cancelled")

// confirmer returns the confirmation used by destructive verbs. Without a
// terminal there is nobody to ask, so the caller must pass --yes.
func (cli *CLI) confirmer(yes bool) (view.Confirmer, error) {
	if yes {
		return view.Always(true), nil
	}
	if !cli.interactive() {
		return nil, &CLIError{
			Operation:   "delete recipe",
			Cause:       "confirmation needed but no terminal is attached",
			Suggestions: []string{"Pass --yes to delete without asking"},
		}
	}
	return view.ConfirmFunc(cli.promptConfirm), nil
}

func (cli *CLI) promptConfirm(prompt string) (bool, error) {
	var yes bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Keep").
				Value(&yes),
		),
	).WithInput(cli.in).WithOutput(cli.errOut).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return yes, err
}

// promptRecipe edits the draft in an interactive form. Ingredients are
// entered one per line.
func (cli *CLI) promptRecipe(f form.Form) (form.Form, error) {
	title := f.Title()
	category := f.Category()
	ingredients := strings.Join(f.Ingredients(), "\n")
	steps := f.Steps()
	notes := f.Notes()

	categoryOptions := make([]huh.Option[types.Category], 0, len(types.Categories()))
	for _, c := range types.Categories() {
		categoryOptions = append(categoryOptions, huh.NewOption(string(c), c))
	}

	heading := "New recipe"
	if !f.IsNew() {
		heading = "Edit recipe"
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(heading).
				Description("Title (left blank, it is saved as \""+form.PlaceholderTitle+"\")").
				Placeholder("e.g., Mushroom risotto").
				Value(&title),

			huh.NewSelect[types.Category]().
				Title("Category").
				Options(categoryOptions...).
				Value(&category),

			huh.NewText().
				Title("Ingredients").
				Description("One per line").
				Placeholder("200 g arborio rice\n1 onion").
				Value(&ingredients),
		),

		huh.NewGroup(
			huh.NewText().
				Title("Steps").
				Placeholder("Describe how to cook it...").
				CharLimit(10000).
				Value(&steps),

			huh.NewText().
				Title("Notes").
				Description("Optional").
				Value(&notes),
		),
	).WithTheme(huh.ThemeCharm()).WithInput(cli.in).WithOutput(cli.errOut).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return f, errCancelled
		}
		return f, fmt.Errorf("form error: %w", err)
	}

	f = f.SetTitle(title).
		SetIngredients(strings.Split(ingredients, "\n")).
		SetSteps(steps).
		SetNotes(notes)
	return f.SetCategory(category)
}
