package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arthur-debert/nanorecipes/internal/validation"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/types"
)

// Adapter stores the recipe collection as a JSON array in one slot of a
// KeyValue backend. It implements Store.
type Adapter struct {
	kv     KeyValue
	key    string
	now    func() time.Time
	ids    ids.Generator
	logger *slog.Logger
}

var _ Store = (*Adapter)(nil)

// NewAdapter creates an adapter over kv using DefaultKey.
func NewAdapter(kv KeyValue, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    DefaultKey,
		now:    time.Now,
		ids:    ids.UUID{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the slot name
func (a *Adapter) Key() string {
	return a.key
}

// Read decodes the slot without seeding. found is false when the slot is
// absent or holds only whitespace. Blank ingredient rows and blank titles
// are repaired in the result, not reported as corruption.
func (a *Adapter) Read() ([]types.Recipe, bool, error) {
	data, found, err := a.kv.Get(a.key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !found || len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}

	var recipes []types.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	// "null" decodes without error but is not a collection
	if recipes == nil {
		return nil, true, fmt.Errorf("%w: slot does not hold an array", ErrCorrupt)
	}
	repaired := 0
	for i := range recipes {
		var changed bool
		if recipes[i], changed = repair(recipes[i]); changed {
			repaired++
		}
	}
	if err := validation.Collection(recipes); err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if repaired > 0 {
		a.logger.Warn("repaired stored recipes", "key", a.key, "count", repaired)
	}
	return recipes, true, nil
}

// repair fixes what a hand-edited or older slot may hold without losing the
// record: blank ingredient rows are dropped and a blank title gets the
// placeholder. Missing ids and unknown categories are left for validation.
func repair(r types.Recipe) (types.Recipe, bool) {
	changed := false
	if strings.TrimSpace(r.Title) == "" {
		r.Title = types.PlaceholderTitle
		changed = true
	}

	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing) == "" {
			changed = true
			continue
		}
		ingredients = append(ingredients, ing)
	}
	r.Ingredients = ingredients
	return r, changed
}

// Load implements Store.Load.
//
// An absent or blank slot is seeded and the seed persisted. A corrupt slot
// is replaced by the seed and ErrCorrupt is returned with it. When the
// backend cannot be read at all the seed is returned unpersisted, so the
// stored data is not overwritten, together with ErrUnavailable.
func (a *Adapter) Load() ([]types.Recipe, error) {
	recipes, found, err := a.Read()
	switch {
	case err == nil && found:
		a.logger.Debug("loaded recipes", "key", a.key, "count", len(recipes))
		return recipes, nil

	case errors.Is(err, ErrUnavailable):
		a.logger.Warn("recipe storage unreadable, using seed without saving", "key", a.key, "error", err)
		return a.seed(), err

	case err != nil:
		a.logger.Warn("stored recipes are corrupt, reseeding", "key", a.key, "error", err)
		seeded := a.seed()
		if serr := a.Save(seeded); serr != nil {
			return seeded, errors.Join(err, serr)
		}
		return seeded, err

	default:
		a.logger.Info("recipe slot is empty, seeding", "key", a.key)
		seeded := a.seed()
		if serr := a.Save(seeded); serr != nil {
			return seeded, serr
		}
		return seeded, nil
	}
}

// Save implements Store.Save
func (a *Adapter) Save(recipes []types.Recipe) error {
	if recipes == nil {
		recipes = []types.Recipe{}
	}
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}
	if err := a.kv.Set(a.key, data); err != nil {
		a.logger.Error("failed to save recipes", "key", a.key, "error", err)
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	a.logger.Debug("saved recipes", "key", a.key, "count", len(recipes))
	return nil
}

func (a *Adapter) seed() []types.Recipe {
	return []types.Recipe{Seed(a.ids.NewID(), a.now())}
}
