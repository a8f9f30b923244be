package main

import (
	"fmt"

	"github.com/arthur-debert/nanorecipes/nanorecipes/export"
	"github.com/spf13/cobra"
)

func (cli *CLI) newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import recipes from an export file",
		Long: `Import recipes from a json, yaml or zip export. Recipes whose id is
already in the collection are skipped. Nothing is imported if any recipe
in the file is invalid.

Examples:
  nanorecipes import recipes.json
  nanorecipes import backup.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("import recipes", true)
			if err != nil {
				return err
			}
			defer s.Close()

			incoming, err := export.ReadFile(args[0])
			if err != nil {
				return NewStoreError("import recipes", err, CommonSuggestions.CheckFormat)
			}

			added, err := s.coll.Import(incoming)
			if err != nil {
				return NewStoreError("import recipes", err)
			}

			fmt.Fprintf(cli.out, "Imported %d recipe(s), skipped %d already present\n", added, len(incoming)-added)
			return nil
		},
	}
}
