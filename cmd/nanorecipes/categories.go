package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/arthur-debert/nanorecipes/search"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the categories with recipe counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("list categories", false)
			if err != nil {
				return err
			}
			defer s.Close()

			counts := search.CountByCategory(s.coll.All())
			w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
			for _, c := range types.FilterCategories() {
				fmt.Fprintf(w, "%s\t%d\n", c, counts[c])
			}
			return w.Flush()
		},
	}
}
