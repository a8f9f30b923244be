// Package storage provides the persistence layer for nanorecipes.
//
// Persistence is split in two. A KeyValue backend stores opaque byte values
// in named slots (a JSON file per slot, a SQLite table, or memory). The
// Adapter on top of it reads and writes the whole recipe collection as one
// JSON array in a single fixed slot, seeding a default recipe when the slot
// has never been written.
package storage

import (
	"errors"

	"github.com/arthur-debert/nanorecipes/types"
)

// Store is the contract the recipe collection persists through.
// Both operations handle the entire collection as a single unit.
type Store interface {
	// Load reads the collection. It always returns a usable collection;
	// a non-nil error reports how loading degraded.
	Load() ([]types.Recipe, error)

	// Save overwrites the stored collection
	Save(recipes []types.Recipe) error
}

// KeyValue is a persistent key-value facility holding one value per slot.
type KeyValue interface {
	// Get returns the slot value. found is false when the slot was never written.
	Get(key string) (value []byte, found bool, err error)

	// Set overwrites the slot value
	Set(key string, value []byte) error

	// Close releases any resources held by the backend
	Close() error
}

var (
	// ErrCorrupt is returned when the stored collection cannot be decoded
	// or violates the data model.
	ErrCorrupt = errors.New("stored recipes are corrupt")

	// ErrUnavailable is returned when the backend could not be read at all.
	ErrUnavailable = errors.New("recipe storage unavailable")

	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("storage is closed")

	// ErrInvalidKey is returned for slot names that cannot be stored.
	ErrInvalidKey = errors.New("invalid slot key")

	// ErrLocked is returned when the slot lock could not be acquired in time.
	ErrLocked = errors.New("slot is locked by another process")
)
