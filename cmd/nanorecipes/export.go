package main

import (
	"fmt"

	"github.com/arthur-debert/nanorecipes/nanorecipes/export"
	"github.com/arthur-debert/nanorecipes/search"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) newExportCommand() *cobra.Command {
	var format, output, category, query string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recipes to a file or stdout",
		Long: `Export recipes as json, yaml, markdown or a zip archive.

With --output the format defaults to the file extension. A zip archive
holds recipes.json plus one markdown file per recipe. Use - or leave
--output empty to write to stdout.

Examples:
  nanorecipes export --output recipes.json
  nanorecipes export --format markdown --category desserts
  nanorecipes export --output backup.zip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("export recipes", false)
			if err != nil {
				return err
			}
			defer s.Close()

			criteria := search.Criteria{Category: types.All, Query: query}
			if category != "" {
				if criteria.Category, err = types.ParseCategory(category); err != nil {
					return NewValidationError("export recipes", "category", category, CommonSuggestions.ListCategories)
				}
			}
			recipes := search.Filter(s.coll.All(), criteria)

			var f export.Format
			if format != "" {
				if f, err = export.ParseFormat(format); err != nil {
					return NewValidationError("export recipes", "format", format, CommonSuggestions.CheckFormat)
				}
			}

			if output == "" || output == "-" {
				if f == "" {
					f = export.JSON
				}
				return WrapError("export recipes", export.Write(cli.out, recipes, f))
			}

			if err := export.WriteFile(output, recipes, f); err != nil {
				return NewStoreError("export recipes", err, CommonSuggestions.CheckFormat)
			}
			fmt.Fprintf(cli.errOut, "Exported %d recipe(s) to %s\n", len(recipes), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format (json|yaml|markdown|zip)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only export this category")
	cmd.Flags().StringVarP(&query, "search", "s", "", "only export recipes containing this text")
	return cmd
}
