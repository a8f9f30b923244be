package main

import (
	"fmt"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/spf13/cobra"
)

func (cli *CLI) newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <ref>",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Long: `Delete a recipe after confirmation. There is no undo.

Examples:
  nanorecipes delete 2
  nanorecipes delete 3f2a --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("delete recipe", true)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.resolve("delete recipe", args[0])
			if err != nil {
				return err
			}

			confirm, err := cli.confirmer(yes)
			if err != nil {
				return err
			}

			removed, err := s.ctrl.Delete(id, confirm)
			if err != nil {
				if removed && collection.IsPersistError(err) {
					return NewStoreError("delete recipe", err)
				}
				return WrapError("delete recipe", err)
			}
			if !removed {
				fmt.Fprintln(cli.out, "Kept, nothing deleted.")
				return nil
			}

			fmt.Fprintln(cli.out, s.ctrl.Notice())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
