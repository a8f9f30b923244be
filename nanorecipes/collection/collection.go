// Package collection holds the in-memory, ordered recipe list for a session.
//
// The Collection is the source of truth while the program runs. Every
// successful mutation writes the whole list through to a storage.Store.
// A failed write is reported as a *PersistError, but the in-memory change
// is kept so the session can carry on.
package collection

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/arthur-debert/nanorecipes/internal/validation"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/types"
)

var (
	// ErrNotFound is returned when no recipe has the requested id.
	ErrNotFound = errors.New("recipe not found")

	// ErrDuplicateID is returned when adding a recipe whose id is taken.
	ErrDuplicateID = errors.New("duplicate recipe id")
)

// PersistError reports that a mutation was applied in memory but could not
// be written to storage.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: recipe kept in memory but not saved: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err is, or wraps, a *PersistError.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}

// Collection is an ordered recipe list backed by a store. Newest entries
// come first.
type Collection struct {
	mu      sync.RWMutex
	store   storage.Store
	recipes []types.Recipe
	logger  *slog.Logger
}

// Option configures a Collection
type Option func(*Collection)

// WithLogger sets the logger used to report persistence failures
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		c.logger = logger
	}
}

// New creates a collection holding recipes, without touching the store.
func New(store storage.Store, recipes []types.Recipe, opts ...Option) *Collection {
	c := &Collection{
		store:   store,
		recipes: types.CloneAll(recipes),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the store and builds a collection from it. The collection is
// always usable; a non-nil error tells how loading degraded (see
// storage.Adapter.Load).
func Load(store storage.Store, opts ...Option) (*Collection, error) {
	recipes, err := store.Load()
	return New(store, recipes, opts...), err
}

// All returns a copy of every recipe in collection order.
func (c *Collection) All() []types.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return types.CloneAll(c.recipes)
}

// Len returns the number of recipes
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}

// IDs returns the recipe ids in collection order
func (c *Collection) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.ID
	}
	return out
}

// Get returns a copy of the recipe with the given id.
func (c *Collection) Get(id string) (types.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return types.Recipe{}, false
	}
	return c.recipes[i].Clone(), true
}

// Add prepends r.
func (c *Collection) Add(r types.Recipe) error {
	if err := validation.Recipe(r); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(r.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	c.recipes = slices.Insert(c.recipes, 0, r.Clone())
	return c.persist("add")
}

// Update applies p to the recipe with the given id and returns the result.
// The id and creation time are never changed.
func (c *Collection) Update(id string, p types.Patch) (types.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return types.Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := p.Apply(c.recipes[i])
	if err := validation.Recipe(updated); err != nil {
		return types.Recipe{}, err
	}
	c.recipes[i] = updated
	return updated.Clone(), c.persist("update")
}

// Remove deletes exactly the recipe with the given id.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.recipes = slices.Delete(c.recipes, i, i+1)
	return c.persist("remove")
}

// Reset replaces the contents without writing to the store. It is used
// when the stored collection changed underneath the session.
func (c *Collection) Reset(recipes []types.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes = types.CloneAll(recipes)
}

// Import prepends the incoming recipes whose ids are not yet present,
// keeping their relative order, and writes once. It returns how many were
// added. Invalid input is rejected as a whole.
func (c *Collection) Import(incoming []types.Recipe) (int, error) {
	if err := validation.Collection(incoming); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var fresh []types.Recipe
	for _, r := range incoming {
		if c.indexOf(r.ID) >= 0 {
			continue
		}
		fresh = append(fresh, r.Clone())
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	c.recipes = append(fresh, c.recipes...)
	return len(fresh), c.persist("import")
}

func (c *Collection) indexOf(id string) int {
	return slices.IndexFunc(c.recipes, func(r types.Recipe) bool { return r.ID == id })
}

// persist must be called with the write lock held.
func (c *Collection) persist(op string) error {
	if err := c.store.Save(types.CloneAll(c.recipes)); err != nil {
		c.logger.Error("failed to persist recipes", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}
