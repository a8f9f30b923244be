package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
)

func TestNewStoreErrorCauses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"locked", fmt.Errorf("set: %w", storage.ErrLocked), "locked by another"},
		{"unavailable", storage.ErrUnavailable, "could not be read"},
		{"persist", &collection.PersistError{Op: "add", Err: errors.New("disk full")}, "could not be written"},
		{"invalid key", fmt.Errorf("%w: %q", storage.ErrInvalidKey, ".."), "invalid storage key"},
		{"other", errors.New("boom"), "storage operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStoreError("save recipe", tt.err)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("CLIError should unwrap to the underlying error")
			}
		})
	}
}

func TestNotFoundErrorListsCandidates(t *testing.T) {
	_, rerr := ids.Resolve([]string{"abcd-1", "abcd-2"}, "abcd")
	err := NewNotFoundError("show recipe", "abcd", rerr)

	msg := err.Error()
	if !strings.Contains(msg, "ambiguous") || !strings.Contains(msg, "abcd-1, abcd-2") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestWrapErrorKeepsCLIError(t *testing.T) {
	original := &CLIError{Cause: "no changes given"}
	err := WrapError("edit recipe", original)

	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr != original {
		t.Fatalf("WrapError should return the same CLIError, got %v", err)
	}
	if cliErr.Operation != "edit recipe" {
		t.Errorf("operation = %q", cliErr.Operation)
	}
	if WrapError("x", nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}
}
