// Package export writes recipe lists to files other tools can read and
// reads them back for import.
//
// The json format is the slot layout itself. yaml carries the same fields.
// markdown concatenates the per-recipe documents from the formats package
// and is write-only. zip bundles recipes.json with one markdown file per
// recipe; importing a zip reads recipes.json.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanorecipes/formats"
	"github.com/arthur-debert/nanorecipes/types"
	"gopkg.in/yaml.v3"
)

// Format names an export layout
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	Zip      Format = "zip"
)

var (
	// ErrUnknownFormat is returned for format names and extensions that are not supported
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrNotReadable is returned when importing from a write-only format
	ErrNotReadable = errors.New("format cannot be imported")
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{JSON, YAML, Markdown, Zip}
}

// ParseFormat resolves a format name. "yml" and "md" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	case "zip":
		return Zip, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath picks the format from a file extension
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for f, including the dot
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	default:
		return "." + string(f)
	}
}

// Write encodes recipes to w in format f.
func Write(w io.Writer, recipes []types.Recipe, f Format) error {
	if recipes == nil {
		recipes = []types.Recipe{}
	}

	switch f {
	case JSON:
		data, err := json.MarshalIndent(recipes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal recipes: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recipes); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	case Markdown:
		for i, r := range recipes {
			if i > 0 {
				if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, formats.Markdown.Render(r)); err != nil {
				return err
			}
		}
		return nil

	case Zip:
		return writeArchive(w, recipes)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Read decodes recipes from r. Only json and yaml can be read from a
// stream; use ReadFile for zip archives.
func Read(r io.Reader, f Format) ([]types.Recipe, error) {
	switch f {
	case JSON:
		var recipes []types.Recipe
		if err := json.NewDecoder(r).Decode(&recipes); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
		return normalize(recipes), nil

	case YAML:
		var recipes []types.Recipe
		if err := yaml.NewDecoder(r).Decode(&recipes); err != nil {
			if errors.Is(err, io.EOF) {
				return []types.Recipe{}, nil
			}
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		return normalize(recipes), nil

	case Zip:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return readArchive(bytes.NewReader(data), int64(len(data)))

	case Markdown:
		return nil, fmt.Errorf("%w: %s", ErrNotReadable, f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile writes recipes to path, picking the format from the extension
// when f is empty.
func WriteFile(path string, recipes []types.Recipe, f Format) error {
	if f == "" {
		var err error
		if f, err = FormatForPath(path); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, recipes, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads recipes from path, picking the format from the extension.
func ReadFile(path string) ([]types.Recipe, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, f)
}

func normalize(recipes []types.Recipe) []types.Recipe {
	if recipes == nil {
		return []types.Recipe{}
	}
	for i := range recipes {
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []string{}
		}
	}
	return recipes
}
