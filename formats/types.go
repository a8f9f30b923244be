// Package formats renders single recipes as text documents and parses
// them back.
//
// Formats live in a registry keyed by name. The CLI picks one with
// --format, the TUI detail view renders the markdown one through glamour.
package formats

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/nanorecipes/types"
)

// RecipeFormat defines how a recipe is rendered as a document and read back
type RecipeFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".txt", ".md")
	Extension string

	// Render converts a recipe into the formatted document
	Render func(r types.Recipe) string

	// Parse extracts a recipe from a document. Id and timestamps are not
	// part of every format and may come back zero.
	Parse func(document string) (types.Recipe, error)
}

// registry holds all available recipe formats
var registry = make(map[string]*RecipeFormat)

// Register adds a new recipe format to the registry
func Register(format *RecipeFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a recipe format by name
func Get(name string) (*RecipeFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// ForPath returns the format whose extension matches path
func ForPath(path string) (*RecipeFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, name := range List() {
		if registry[name].Extension == ext {
			return registry[name], nil
		}
	}
	return nil, fmt.Errorf("no recipe format for extension %q", ext)
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
