package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/nanorecipes/nanorecipes/export"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type listOptions struct {
	category string
	search   string
	format   string
}

func (cli *CLI) newListCommand() *cobra.Command {
	opts := listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recipes",
		Long: `List recipes, newest first, optionally filtered by category and text.

The search text is matched case-insensitively against titles, ingredients
and steps. The position shown in the first column can be used wherever a
recipe reference is expected.

Examples:
  nanorecipes list
  nanorecipes list --category desserts
  nanorecipes list --search lemon --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runList(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "only show recipes in this category")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only show recipes containing this text")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table|json|yaml)")
	return cmd
}

func (cli *CLI) runList(opts listOptions) error {
	s, err := cli.openSession("list recipes", false)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.category != "" {
		cat, err := types.ParseCategory(opts.category)
		if err != nil {
			return NewValidationError("list recipes", "category", opts.category, CommonSuggestions.ListCategories)
		}
		if err := s.ctrl.SetCategory(cat); err != nil {
			return WrapError("list recipes", err)
		}
	}
	s.ctrl.SetQuery(opts.search)

	visible := s.ctrl.Visible()

	switch strings.ToLower(opts.format) {
	case "table", "":
	case "json":
		return WrapError("list recipes", export.Write(cli.out, visible, export.JSON))
	case "yaml", "yml":
		return WrapError("list recipes", export.Write(cli.out, visible, export.YAML))
	default:
		return NewValidationError("list recipes", "format", opts.format, "Supported formats: table, json, yaml")
	}

	if len(visible) == 0 {
		if s.coll.Len() == 0 {
			fmt.Fprintln(cli.out, "No recipes yet. Add one with 'nanorecipes add'.")
		} else {
			fmt.Fprintln(cli.out, "No recipes match.")
		}
		return nil
	}

	// Positions follow the unfiltered order so they stay valid references
	position := make(map[string]int, s.coll.Len())
	for i, id := range s.coll.IDs() {
		position[id] = i + 1
	}

	now := cli.now()
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tCATEGORY\tINGREDIENTS\tUPDATED")
	for _, r := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			position[r.ID], r.Title, r.Category, len(r.Ingredients),
			humanize.RelTime(r.LastModified(), now, "ago", "from now"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "\nShowing %d of %d recipe(s)\n", len(visible), s.coll.Len())
	return nil
}
