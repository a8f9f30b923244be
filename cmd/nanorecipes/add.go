package main

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) newAddCommand() *cobra.Command {
	rf := &recipeFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add a recipe from flags, from a file, or through an interactive form.

A blank title is saved as "` + form.PlaceholderTitle + `". Blank ingredients are dropped.
Without any field flags in a terminal, the interactive form opens.

Examples:
  nanorecipes add --title "Lemonade" --category drinks --ingredient "4 lemons" --ingredient "1 l water"
  nanorecipes add --from risotto.md
  nanorecipes add -I`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("add recipe", true)
			if err != nil {
				return err
			}
			defer s.Close()

			interactive := rf.interactive || (!rf.anyField(cmd) && cli.interactive())
			if !interactive && !rf.anyField(cmd) {
				return &CLIError{
					Operation:   "add recipe",
					Cause:       "no recipe fields given",
					Suggestions: []string{"Pass --title and the other field flags, --from <file>, or --interactive"},
				}
			}

			if err := s.ctrl.New(); err != nil {
				return WrapError("add recipe", err)
			}
			return cli.fillAndSave(cmd, s, rf, interactive, "added")
		},
	}

	rf.register(cmd.Flags())
	return cmd
}

// fillAndSave applies the flags (and the form when interactive) to the
// open draft and commits it
func (cli *CLI) fillAndSave(cmd *cobra.Command, s *session, rf *recipeFlags, interactive bool, verb string) error {
	operation := "save recipe"

	err := s.ctrl.UpdateForm(func(f form.Form) (form.Form, error) {
		f, err := rf.apply(cmd, f)
		if err != nil || !interactive {
			return f, err
		}
		return cli.promptRecipe(f)
	})
	if err != nil {
		_ = s.ctrl.Cancel()
		switch {
		case errors.Is(err, errCancelled):
			fmt.Fprintln(cli.out, "Cancelled, nothing saved.")
			return nil
		case errors.Is(err, types.ErrInvalidCategory):
			return NewValidationError(operation, "category", rf.category, CommonSuggestions.ListCategories)
		}
		return WrapError(operation, err)
	}

	r, err := s.ctrl.Save()
	if err != nil {
		return NewStoreError(operation, err)
	}

	fmt.Fprintf(cli.out, "Recipe %q %s with ID: %s\n", r.Title, verb, r.ID)
	return nil
}
