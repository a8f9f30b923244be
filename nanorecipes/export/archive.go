package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/nanorecipes/formats"
	"github.com/arthur-debert/nanorecipes/types"
)

// archiveIndex is the file in a zip export that holds the full collection
const archiveIndex = "recipes.json"

// writeArchive writes recipes.json plus one markdown file per recipe.
// Each entry carries the recipe's last modification time.
func writeArchive(w io.Writer, recipes []types.Recipe) error {
	zipWriter := zip.NewWriter(w)

	var index bytes.Buffer
	if err := Write(&index, recipes, JSON); err != nil {
		return err
	}
	if err := addFile(zipWriter, &zip.FileHeader{Name: archiveIndex, Method: zip.Deflate}, index.Bytes()); err != nil {
		return err
	}

	for _, r := range recipes {
		header := &zip.FileHeader{
			Name:     recipeFilename(r),
			Method:   zip.Deflate,
			Modified: r.LastModified(),
		}
		if err := addFile(zipWriter, header, []byte(formats.Markdown.Render(r))); err != nil {
			return err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, header *zip.FileHeader, content []byte) error {
	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", header.Name, err)
	}
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", header.Name, err)
	}
	return nil
}

// readArchive loads the collection from recipes.json inside a zip export
func readArchive(r io.ReaderAt, size int64) ([]types.Recipe, error) {
	reader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != archiveIndex {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", archiveIndex, err)
		}
		defer func() { _ = rc.Close() }()

		var recipes []types.Recipe
		if err := json.NewDecoder(rc).Decode(&recipes); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", archiveIndex, err)
		}
		return normalize(recipes), nil
	}
	return nil, fmt.Errorf("archive has no %s", archiveIndex)
}

var dashRuns = regexp.MustCompile("-+")

// recipeFilename builds <id>-<title>.md, with the title sanitized:
// lowercase, spaces to dashes, only letters, digits, dash and underscore,
// at most 40 characters.
func recipeFilename(r types.Recipe) string {
	id := sanitize(r.ID)
	if id == "" {
		id = "recipe"
	}
	title := sanitize(r.Title)
	if title == "" {
		title = "untitled"
	}
	return id + "-" + title + formats.Markdown.Extension
}

func sanitize(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "-")

	var builder strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}

	result := dashRuns.ReplaceAllString(builder.String(), "-")
	result = strings.Trim(result, "-")

	// Truncate on a rune boundary
	if runes := []rune(result); len(runes) > 40 {
		result = strings.TrimRight(string(runes[:40]), "-")
	}
	return result
}
