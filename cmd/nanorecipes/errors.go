package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanorecipes/internal/validation"
	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/export"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/types"
)

// CLIError is what a verb returns when it fails. main prints it as is, so
// the message has to make sense to someone who never read the code.
type CLIError struct {
	Operation   string // what the user asked for, e.g. "show recipe"
	Cause       string // short reason in plain words
	Details     string // text of the underlying error, if any
	Suggestions []string
	Underlying  error
}

func (e *CLIError) Error() string {
	op := "Operation failed"
	if e.Operation != "" {
		op = "Failed to " + e.Operation
	}

	lines := []string{op}
	if e.Cause != "" {
		lines[0] += ": " + e.Cause
	}
	if e.Details != "" {
		lines[0] += " (" + e.Details + ")"
	}
	if len(e.Suggestions) > 0 {
		lines = append(lines, "", "Suggestions:")
		for i, s := range e.Suggestions {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, s))
		}
	}
	return strings.Join(lines, "\n")
}

func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for invalid flag or argument values
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for recipe references that do not resolve
func NewNotFoundError(operation, ref string, underlying error) *CLIError {
	cause := fmt.Sprintf("recipe %q not found", ref)
	suggestions := []string{CommonSuggestions.CheckID}

	var rerr *ids.ResolutionError
	if errors.As(underlying, &rerr) && len(rerr.Candidates) > 0 {
		cause = fmt.Sprintf("recipe reference %q is ambiguous", ref)
		suggestions = []string{fmt.Sprintf("Matching ids: %s", strings.Join(rerr.Candidates, ", ")), "Type more characters of the id"}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for storage failures, naming the common causes
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "storage operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		switch {
		case errors.Is(underlying, storage.ErrLocked):
			cause = "the recipe file is locked by another nanorecipes process"
			suggestions = append(suggestions, "Close the other session or retry in a moment")
		case errors.Is(underlying, storage.ErrUnavailable):
			cause = "recipe storage could not be read"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		case errors.Is(underlying, storage.ErrCorrupt):
			cause = "stored recipes were corrupt"
		case errors.Is(underlying, storage.ErrInvalidKey):
			cause = "invalid storage key"
			suggestions = append(suggestions, CommonSuggestions.CheckConfig)
		case collection.IsPersistError(underlying):
			cause = "the change could not be written to disk"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		case errors.Is(underlying, validation.ErrInvalidRecipe):
			cause = "invalid recipe data"
		case errors.Is(underlying, types.ErrInvalidCategory):
			cause = "unknown category"
			suggestions = append(suggestions, CommonSuggestions.ListCategories)
		case errors.Is(underlying, export.ErrUnknownFormat), errors.Is(underlying, export.ErrNotReadable):
			cause = "unsupported file format"
			suggestions = append(suggestions, CommonSuggestions.CheckFormat)
		case strings.Contains(strings.ToLower(details), "permission denied"):
			cause = "insufficient permissions to access the recipe data"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// CommonSuggestions are the hints shared between verbs
var (
	CommonSuggestions = struct {
		CheckID        string
		CheckConfig    string
		CheckFormat    string
		CheckPerms     string
		ListCategories string
		RunHelp        string
	}{
		CheckID:        "Verify the recipe id exists (try 'nanorecipes list' first)",
		CheckConfig:    "Check your configuration file or RECIPES_* environment variables",
		CheckFormat:    "Supported formats: json, yaml, markdown, zip",
		CheckPerms:     "Check file permissions on the data directory",
		ListCategories: "Run 'nanorecipes categories' to see the valid categories",
		RunHelp:        "Run command with --help for usage information",
	}
)
