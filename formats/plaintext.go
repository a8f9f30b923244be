package formats

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/nanorecipes/types"
)

// PlainText renders a recipe as a metadata header, a separator (---), the
// title and one labelled section per field:
//
//	id: r-1
//	category: Soups
//	created: 2024-01-02T03:04:05Z
//	---
//
//	Title
//
//	Ingredients:
//	- first
//
//	Steps:
//	free text
//
// Sections with no content are left out.
var PlainText = &RecipeFormat{
	Name:      "plaintext",
	Extension: ".txt",
	Render: func(r types.Recipe) string {
		var b strings.Builder

		meta := [][2]string{{"id", r.ID}, {"category", string(r.Category)}}
		if !r.CreatedAt.IsZero() {
			meta = append(meta, [2]string{"created", r.CreatedAt.Format(time.RFC3339)})
		}
		if !r.UpdatedAt.IsZero() {
			meta = append(meta, [2]string{"updated", r.UpdatedAt.Format(time.RFC3339)})
		}
		for _, kv := range meta {
			if kv[1] == "" {
				continue
			}
			b.WriteString(kv[0] + ": " + kv[1] + "\n")
		}
		b.WriteString("---\n\n")

		b.WriteString(r.Title + "\n")

		if len(r.Ingredients) > 0 {
			b.WriteString("\nIngredients:\n")
			for _, ing := range r.Ingredients {
				b.WriteString("- " + ing + "\n")
			}
		}
		if steps := strings.TrimSpace(r.Steps); steps != "" {
			b.WriteString("\nSteps:\n" + steps + "\n")
		}
		if notes := strings.TrimSpace(r.Notes); notes != "" {
			b.WriteString("\nNotes:\n" + notes + "\n")
		}
		return b.String()
	},
	Parse: func(document string) (types.Recipe, error) {
		if strings.TrimSpace(document) == "" {
			return types.Recipe{}, ErrEmptyDocument
		}

		lines := strings.Split(document, "\n")
		r := types.Recipe{Category: types.DefaultCategory, Ingredients: []string{}}

		if hasMetadataSection(lines) {
			meta, start, err := parseMetadataSection(lines)
			if err != nil {
				return types.Recipe{}, err
			}
			if err := applyMetadata(&r, meta); err != nil {
				return types.Recipe{}, err
			}
			lines = lines[start:]
		}

		var section string
		sections := map[string][]string{}
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			switch {
			case section == "" && r.Title == "" && trimmed != "":
				r.Title = trimmed
				continue
			case trimmed == "Ingredients:" || trimmed == "Steps:" || trimmed == "Notes:":
				section = strings.TrimSuffix(strings.ToLower(trimmed), ":")
				continue
			}
			if section != "" {
				sections[section] = append(sections[section], line)
			}
		}

		for _, line := range sections["ingredients"] {
			if ing := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- ")); ing != "" && ing != "-" {
				r.Ingredients = append(r.Ingredients, ing)
			}
		}
		r.Steps = strings.TrimSpace(strings.Join(sections["steps"], "\n"))
		r.Notes = strings.TrimSpace(strings.Join(sections["notes"], "\n"))

		if r.Title == "" {
			return types.Recipe{}, ErrEmptyDocument
		}
		return r, nil
	},
}

func init() {
	if err := Register(PlainText); err != nil {
		panic(fmt.Sprintf("failed to register PlainText format: %v", err))
	}
}

// hasMetadataSection checks if the document starts with a metadata section
func hasMetadataSection(lines []string) bool {
	if len(lines) < 2 {
		return false
	}

	if !strings.Contains(lines[0], ": ") {
		return false
	}

	// Look for separator line within first 20 lines
	for i := 1; i < len(lines) && i < 20; i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return true
		}
	}

	return false
}

// parseMetadataSection parses the metadata section and returns the metadata and index where content starts
func parseMetadataSection(lines []string) (map[string]string, int, error) {
	metadata := make(map[string]string)
	separatorIndex := -1

	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			separatorIndex = i
			break
		}
	}

	if separatorIndex == -1 {
		return nil, 0, fmt.Errorf("metadata section found but no separator")
	}

	for i := 0; i < separatorIndex; i++ {
		parts := strings.SplitN(lines[i], ": ", 2)
		if len(parts) == 2 {
			metadata[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}

	// Skip separator and any blank lines after it
	contentStart := separatorIndex + 1
	for contentStart < len(lines) && isBlankLine(lines[contentStart]) {
		contentStart++
	}

	return metadata, contentStart, nil
}

func applyMetadata(r *types.Recipe, meta map[string]string) error {
	r.ID = meta["id"]
	if v, ok := meta["category"]; ok {
		c, err := types.ParseCategory(v)
		if err != nil {
			return fmt.Errorf("plaintext: %w", err)
		}
		r.Category = c
	}
	for key, dst := range map[string]*time.Time{"created": &r.CreatedAt, "updated": &r.UpdatedAt} {
		v, ok := meta[key]
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("plaintext: invalid %s time %q: %w", key, v, err)
		}
		*dst = t
	}
	return nil
}
