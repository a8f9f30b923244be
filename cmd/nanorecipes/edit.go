package main

import (
	"github.com/spf13/cobra"
)

func (cli *CLI) newEditCommand() *cobra.Command {
	rf := &recipeFlags{}

	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Edit a recipe",
		Long: `Edit a recipe. Only the fields given as flags change; --ingredient
replaces the whole ingredient list. The id and creation time are kept.

Without any field flags in a terminal, the interactive form opens with the
current values.

Examples:
  nanorecipes edit 2 --title "Greek salad with feta"
  nanorecipes edit 3f2a --ingredient "1 chicken" --ingredient "2 lemons"
  nanorecipes edit 1 -I`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("edit recipe", true)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.resolve("edit recipe", args[0])
			if err != nil {
				return err
			}

			interactive := rf.interactive || (!rf.anyField(cmd) && cli.interactive())
			if !interactive && !rf.anyField(cmd) {
				return &CLIError{
					Operation:   "edit recipe",
					Cause:       "no changes given",
					Suggestions: []string{"Pass the fields to change as flags, --from <file>, or --interactive"},
				}
			}

			if err := s.ctrl.Edit(id); err != nil {
				return WrapError("edit recipe", err)
			}
			return cli.fillAndSave(cmd, s, rf, interactive, "updated")
		},
	}

	rf.register(cmd.Flags())
	return cmd
}
