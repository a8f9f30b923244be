// Package testutil provides shared fixtures for nanorecipes tests.
package testutil

import (
	_ "embed"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/types"
)

//go:embed testdata/kitchen.json
var kitchenJSON []byte

// Epoch is the fixed "now" used by fixtures and clocks.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// KitchenData provides typed access to the kitchen fixture. Recipes is in
// collection order (newest first).
type KitchenData struct {
	Recipes []types.Recipe

	TomatoSoup     types.Recipe // Soups, has updatedAt
	GreekSalad     types.Recipe // Salads, has notes, shares "tomato" with the soup
	RoastChicken   types.Recipe // Main courses, shares "garlic" with the soup
	MashedPotatoes types.Recipe // Side dishes
	Sourdough      types.Recipe // Baking, has notes
	ChocolateCake  types.Recipe // Desserts
	Lemonade       types.Recipe // Drinks

	ByID map[string]types.Recipe
}

// Kitchen parses the fixture. Every call returns independent copies.
func Kitchen(t testing.TB) *KitchenData {
	t.Helper()

	var recipes []types.Recipe
	if err := json.Unmarshal(kitchenJSON, &recipes); err != nil {
		t.Fatalf("failed to parse kitchen fixture: %v", err)
	}

	k := &KitchenData{
		Recipes: recipes,
		ByID:    make(map[string]types.Recipe, len(recipes)),
	}
	for _, r := range recipes {
		k.ByID[r.ID] = r
	}

	get := func(id string) types.Recipe {
		r, ok := k.ByID[id]
		if !ok {
			t.Fatalf("kitchen fixture is missing %s", id)
		}
		return r
	}
	k.TomatoSoup = get("soup-tomato")
	k.GreekSalad = get("salad-greek")
	k.RoastChicken = get("main-chicken")
	k.MashedPotatoes = get("side-mash")
	k.Sourdough = get("bake-sourdough")
	k.ChocolateCake = get("dessert-cake")
	k.Lemonade = get("drink-lemonade")

	return k
}

// NewStore returns an adapter over a memory backend that already holds
// recipes. Passing nil leaves the slot absent so the first load seeds it.
func NewStore(t testing.TB, recipes []types.Recipe) (*storage.Adapter, *storage.MemoryKV) {
	t.Helper()

	kv := storage.NewMemoryKV()
	adapter := storage.NewAdapter(kv, storage.WithClock(FixedClock(Epoch)))
	if recipes != nil {
		if err := adapter.Save(recipes); err != nil {
			t.Fatalf("failed to save fixture recipes: %v", err)
		}
		kv.Sets = 0
	}
	return adapter, kv
}

// FixedClock returns a time function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Clock is a manual clock. Each call to Now advances it by Step.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewClock creates a clock starting at start that advances by step.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, Step: step}
}

// Now returns the current time and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}
