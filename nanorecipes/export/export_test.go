package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/nanorecipes/testutil"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/google/go-cmp/cmp"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"YAML", YAML, false},
		{"yml", YAML, false},
		{"md", Markdown, false},
		{" zip ", Zip, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("error should wrap ErrUnknownFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := FormatForPath("recipes"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatForPath without extension = %v", err)
	}
	if f, _ := FormatForPath("/tmp/backup.yml"); f != YAML {
		t.Errorf("FormatForPath(.yml) = %q", f)
	}
}

func TestRoundTrip(t *testing.T) {
	k := testutil.Kitchen(t)

	for _, f := range []Format{JSON, YAML, Zip} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, k.Recipes, f); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			got, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if diff := cmp.Diff(k.Recipes, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmptyList(t *testing.T) {
	for _, f := range []Format{JSON, YAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, nil, f); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			got, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Read() = %v, want empty list", got)
			}
		})
	}
}

func TestYAMLLayout(t *testing.T) {
	k := testutil.Kitchen(t)

	var buf bytes.Buffer
	if err := Write(&buf, []types.Recipe{k.Lemonade}, YAML); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"- id: drink-lemonade", "  category: Drinks", "  createdAt: 2024-01-04T12:00:00Z"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "updatedAt") || strings.Contains(out, "notes") {
		t.Errorf("empty fields should be omitted:\n%s", out)
	}
}

func TestMarkdownIsWriteOnly(t *testing.T) {
	k := testutil.Kitchen(t)

	var buf bytes.Buffer
	if err := Write(&buf, k.Recipes[:2], Markdown); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n---\n"); got != 1 {
		t.Errorf("expected one separator between two recipes, got %d", got)
	}
	if !strings.Contains(buf.String(), "# Tomato Soup") || !strings.Contains(buf.String(), "# Greek Salad") {
		t.Errorf("markdown export missing titles:\n%s", buf.String())
	}

	if _, err := Read(&buf, Markdown); !errors.Is(err, ErrNotReadable) {
		t.Errorf("Read(markdown) = %v, want ErrNotReadable", err)
	}
}

func TestArchiveContents(t *testing.T) {
	k := testutil.Kitchen(t)

	var buf bytes.Buffer
	if err := Write(&buf, k.Recipes, Zip); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"recipes.json", "soup-tomato-tomato-soup.md", "bake-sourdough-sourdough-loaf.md"} {
		if !names[want] {
			t.Errorf("archive missing %s, has %v", want, names)
		}
	}
	if len(zr.File) != len(k.Recipes)+1 {
		t.Errorf("archive has %d files, want %d", len(zr.File), len(k.Recipes)+1)
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"Tomato Soup":      "tomato-soup",
		"  Crème brûlée! ": "crème-brûlée",
		"a -- b":           "a-b",
		"!!!":              "",
	}
	tests[strings.Repeat("long ", 20)] = strings.TrimRight(strings.Repeat("long-", 8), "-")
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}

	if got := recipeFilename(types.Recipe{Title: "?"}); got != "recipe-untitled.md" {
		t.Errorf("recipeFilename of blank recipe = %q", got)
	}
}

func TestFiles(t *testing.T) {
	k := testutil.Kitchen(t)
	dir := t.TempDir()

	for _, name := range []string{"out.json", "out.yaml", "out.zip"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, k.Recipes, ""); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if len(got) != len(k.Recipes) {
				t.Errorf("read %d recipes, want %d", len(got), len(k.Recipes))
			}
		})
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ReadFile of missing file should fail")
	}
}
