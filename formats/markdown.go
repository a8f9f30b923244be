package formats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/nanorecipes/types"
)

var (
	// markdownTitleRegex matches markdown h1 headers (must be at very start, no leading space)
	markdownTitleRegex   = regexp.MustCompile(`^#\s+(.+?)[\s]*$`)
	markdownSectionRegex = regexp.MustCompile(`^##\s+(.+?)[\s]*$`)
	markdownCategory     = regexp.MustCompile(`^\*Category:\s*(.+?)\*$`)
	markdownBullet       = regexp.MustCompile(`^[-*]\s+(.*)$`)
	markdownNumbered     = regexp.MustCompile(`^\d+\.\s+(.*)$`)
)

// Markdown renders a recipe as a markdown document:
//
//	# Title
//
//	*Category: Soups*
//
//	## Ingredients
//
//	- first
//
//	## Steps
//
//	1. first line
//
//	## Notes
//
//	free text
//
// Each non-blank line of the steps becomes one numbered item.
var Markdown = &RecipeFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(r types.Recipe) string {
		var b strings.Builder

		title := r.Title
		if title == "" {
			title = types.PlaceholderTitle
		}
		b.WriteString("# " + title + "\n\n")
		b.WriteString("*Category: " + string(r.Category) + "*\n")

		b.WriteString("\n## Ingredients\n\n")
		if len(r.Ingredients) == 0 {
			b.WriteString("_None listed._\n")
		}
		for _, ing := range r.Ingredients {
			b.WriteString("- " + ing + "\n")
		}

		if steps := splitSteps(r.Steps); len(steps) > 0 {
			b.WriteString("\n## Steps\n\n")
			for i, step := range steps {
				b.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
			}
		}

		if notes := strings.TrimSpace(r.Notes); notes != "" {
			b.WriteString("\n## Notes\n\n" + notes + "\n")
		}
		return b.String()
	},
	Parse: func(document string) (types.Recipe, error) {
		if strings.TrimSpace(document) == "" {
			return types.Recipe{}, ErrEmptyDocument
		}

		r := types.Recipe{Category: types.DefaultCategory, Ingredients: []string{}}
		var (
			section string
			steps   []string
			notes   []string
		)

		for _, line := range strings.Split(document, "\n") {
			trimmed := strings.TrimSpace(line)

			if m := markdownTitleRegex.FindStringSubmatch(line); m != nil && r.Title == "" && section == "" {
				r.Title = strings.TrimSpace(m[1])
				continue
			}
			if m := markdownSectionRegex.FindStringSubmatch(line); m != nil {
				section = strings.ToLower(m[1])
				continue
			}
			if m := markdownCategory.FindStringSubmatch(trimmed); m != nil && section == "" {
				c, err := types.ParseCategory(m[1])
				if err != nil {
					return types.Recipe{}, fmt.Errorf("markdown: %w", err)
				}
				r.Category = c
				continue
			}

			switch section {
			case "ingredients":
				if m := markdownBullet.FindStringSubmatch(trimmed); m != nil {
					if ing := strings.TrimSpace(m[1]); ing != "" {
						r.Ingredients = append(r.Ingredients, ing)
					}
				}
			case "steps":
				if m := markdownNumbered.FindStringSubmatch(trimmed); m != nil {
					steps = append(steps, strings.TrimSpace(m[1]))
				} else if trimmed != "" {
					steps = append(steps, trimmed)
				}
			case "notes":
				notes = append(notes, line)
			}
		}

		if r.Title == "" && len(r.Ingredients) == 0 && len(steps) == 0 {
			return types.Recipe{}, ErrEmptyDocument
		}
		r.Steps = strings.Join(steps, "\n")
		r.Notes = strings.TrimSpace(strings.Join(notes, "\n"))
		return r, nil
	},
}

func init() {
	if err := Register(Markdown); err != nil {
		panic(fmt.Sprintf("failed to register Markdown format: %v", err))
	}
}
