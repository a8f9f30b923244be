package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces fresh, collection-unique identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates "<prefix>-1", "<prefix>-2", ... and is safe for
// concurrent use. The zero value uses the prefix "r".
type Sequence struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewSequence creates a sequence generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "r"
	}
	return fmt.Sprintf("%s-%d", prefix, s.next)
}

// Func adapts a plain function to the Generator interface.
type Func func() string

// NewID implements Generator.
func (f Func) NewID() string {
	return f()
}
