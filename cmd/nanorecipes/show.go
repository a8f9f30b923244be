package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/nanorecipes/formats"
	"github.com/arthur-debert/nanorecipes/internal/ui"
	"github.com/arthur-debert/nanorecipes/nanorecipes/export"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) newShowCommand() *cobra.Command {
	var format string
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one recipe",
		Long: `Show one recipe. The reference is a list position, a full id or a
unique id prefix of at least 4 characters.

In a terminal the markdown rendering is styled; use --raw to print the
plain markdown.

Examples:
  nanorecipes show 1
  nanorecipes show 3f2a --format plaintext
  nanorecipes show 2 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("show recipe", false)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.resolve("show recipe", args[0])
			if err != nil {
				return err
			}
			if err := s.ctrl.Open(id); err != nil {
				return WrapError("show recipe", err)
			}
			r, ok := s.ctrl.Selected()
			if !ok {
				return NewNotFoundError("show recipe", args[0], nil)
			}

			return cli.printRecipe(r, format, raw)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format ("+strings.Join(showFormats(), "|")+")")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func showFormats() []string {
	return append(formats.List(), "json", "yaml")
}

func (cli *CLI) printRecipe(r types.Recipe, format string, raw bool) error {
	switch strings.ToLower(format) {
	case "json":
		return WrapError("show recipe", export.Write(cli.out, []types.Recipe{r}, export.JSON))
	case "yaml", "yml":
		return WrapError("show recipe", export.Write(cli.out, []types.Recipe{r}, export.YAML))
	}

	f, err := formats.Get(strings.ToLower(format))
	if err != nil {
		return NewValidationError("show recipe", "format", format,
			"Supported formats: "+strings.Join(showFormats(), ", "))
	}

	doc := f.Render(r)
	if f.Name == "markdown" && !raw && isTerminal(cli.out) {
		out, _ := cli.out.(*os.File)
		doc = ui.RenderMarkdown(doc, ui.TerminalWidth(out))
	}
	_, err = fmt.Fprint(cli.out, doc)
	return err
}
