package ids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinPrefixLength is the shortest prefix accepted for identifier lookup.
const MinPrefixLength = 4

var (
	// ErrNoMatch is returned when a reference matches no identifier.
	ErrNoMatch = errors.New("no recipe matches")

	// ErrAmbiguous is returned when a prefix matches several identifiers.
	ErrAmbiguous = errors.New("reference is ambiguous")
)

// ResolutionError indicates that a reference could not be resolved
type ResolutionError struct {
	Ref          string
	Candidates   []string
	WrappedError error
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("failed to resolve %q: %v (candidates: %s)",
			e.Ref, e.WrappedError, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("failed to resolve %q: %v", e.Ref, e.WrappedError)
}

// Unwrap allows error unwrapping
func (e *ResolutionError) Unwrap() error {
	return e.WrappedError
}

// Resolve maps a user-facing reference to one of the given identifiers,
// which must be in listing order.
func Resolve(known []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &ResolutionError{Ref: ref, WrappedError: ErrNoMatch}
	}

	for _, id := range known {
		if id == ref {
			return id, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(known) {
			return known[n-1], nil
		}
		// ids may start with digits, so a long enough number can still be a prefix
		if len(ref) < MinPrefixLength {
			return "", &ResolutionError{Ref: ref, WrappedError: fmt.Errorf("%w: position out of range 1..%d", ErrNoMatch, len(known))}
		}
	}

	if len(ref) < MinPrefixLength {
		return "", &ResolutionError{Ref: ref, WrappedError: fmt.Errorf("%w: prefix shorter than %d characters", ErrNoMatch, MinPrefixLength)}
	}

	var matches []string
	for _, id := range known {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &ResolutionError{Ref: ref, WrappedError: ErrNoMatch}
	case 1:
		return matches[0], nil
	default:
		return "", &ResolutionError{Ref: ref, Candidates: matches, WrappedError: ErrAmbiguous}
	}
}
