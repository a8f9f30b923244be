package formats

import (
	"errors"
	"strings"
)

// ErrEmptyDocument is returned when a document has neither a title nor a body
var ErrEmptyDocument = errors.New("empty document")

// isBlankLine checks if a line contains only whitespace
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// splitSteps breaks free-text steps into their non-blank lines
func splitSteps(steps string) []string {
	var out []string
	for _, line := range strings.Split(steps, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
