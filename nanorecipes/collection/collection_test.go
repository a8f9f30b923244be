package collection

import (
	"errors"
	"testing"
	"time"

	"github.com/arthur-debert/nanorecipes/internal/validation"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/testutil"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/google/go-cmp/cmp"
)

func loadKitchen(t *testing.T) (*Collection, *storage.Adapter, *storage.MemoryKV, *testutil.KitchenData) {
	t.Helper()
	k := testutil.Kitchen(t)
	adapter, kv := testutil.NewStore(t, k.Recipes)
	c, err := Load(adapter)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c, adapter, kv, k
}

func stored(t *testing.T, a *storage.Adapter) []types.Recipe {
	t.Helper()
	recipes, _, err := a.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return recipes
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	adapter, _ := testutil.NewStore(t, nil)

	c, err := Load(adapter)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 1 || c.All()[0].Title != "Borscht" {
		t.Errorf("expected the seed recipe, got %v", c.All())
	}
}

func TestLoadKeepsCorruptError(t *testing.T) {
	kv := storage.NewMemoryKV()
	_ = kv.Set(storage.DefaultKey, []byte("{not json"))

	c, err := Load(storage.NewAdapter(kv))
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
	if c == nil || c.Len() != 1 {
		t.Fatal("corrupt load should still return a usable collection")
	}
}

func TestAdd(t *testing.T) {
	c, adapter, kv, k := loadKitchen(t)

	r := types.Recipe{ID: "new", Title: "Toast", Category: types.Baking, Ingredients: []string{"bread"}, CreatedAt: testutil.Epoch}
	if err := c.Add(r); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	all := c.All()
	if all[0].ID != "new" {
		t.Errorf("Add should prepend, first is %s", all[0].ID)
	}
	if len(all) != len(k.Recipes)+1 {
		t.Errorf("Len = %d, want %d", len(all), len(k.Recipes)+1)
	}
	if kv.Sets != 1 {
		t.Errorf("Sets = %d, want 1 write-through", kv.Sets)
	}
	if diff := cmp.Diff(all, stored(t, adapter)); diff != "" {
		t.Errorf("store out of sync (-memory +stored):\n%s", diff)
	}

	t.Run("duplicate id", func(t *testing.T) {
		err := c.Add(k.Lemonade)
		if !errors.Is(err, ErrDuplicateID) {
			t.Errorf("Add duplicate = %v, want ErrDuplicateID", err)
		}
	})

	t.Run("invalid recipe", func(t *testing.T) {
		err := c.Add(types.Recipe{ID: "x", Title: "x", Category: types.All})
		if !errors.Is(err, validation.ErrInvalidRecipe) {
			t.Errorf("Add with All category = %v, want ErrInvalidRecipe", err)
		}
	})
}

func TestUpdatePreservesIdentity(t *testing.T) {
	c, adapter, _, k := loadKitchen(t)

	title := "Spicy Tomato Soup"
	now := testutil.Epoch.Add(time.Hour)
	got, err := c.Update(k.TomatoSoup.ID, types.Patch{
		Title:       &title,
		Ingredients: []string{"tomatoes", "chili"},
		UpdatedAt:   &now,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := k.TomatoSoup
	want.Title = title
	want.Ingredients = []string{"tomatoes", "chili"}
	want.UpdatedAt = now
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Update mismatch (-want +got):\n%s", diff)
	}

	fromStore := stored(t, adapter)[0]
	if fromStore.ID != k.TomatoSoup.ID || !fromStore.CreatedAt.Equal(k.TomatoSoup.CreatedAt) {
		t.Errorf("Update changed identity: %+v", fromStore)
	}

	if _, err := c.Update("missing", types.Patch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestRemoveExactlyOne(t *testing.T) {
	c, adapter, _, k := loadKitchen(t)

	if err := c.Remove(k.RoastChicken.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if c.Len() != len(k.Recipes)-1 {
		t.Errorf("Len = %d, want %d", c.Len(), len(k.Recipes)-1)
	}
	if _, ok := c.Get(k.RoastChicken.ID); ok {
		t.Error("removed recipe still present")
	}
	for _, r := range k.Recipes {
		if r.ID == k.RoastChicken.ID {
			continue
		}
		if _, ok := c.Get(r.ID); !ok {
			t.Errorf("Remove also dropped %s", r.ID)
		}
	}
	if len(stored(t, adapter)) != c.Len() {
		t.Error("store not updated after Remove")
	}

	if err := c.Remove(k.RoastChicken.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove = %v, want ErrNotFound", err)
	}
}

func TestPersistFailureKeepsMemory(t *testing.T) {
	c, _, kv, k := loadKitchen(t)
	kv.SetError = errors.New("quota exceeded")

	err := c.Remove(k.Lemonade.ID)
	if !IsPersistError(err) {
		t.Fatalf("Remove error = %v, want PersistError", err)
	}
	var pe *PersistError
	if !errors.As(err, &pe) || pe.Op != "remove" {
		t.Errorf("PersistError = %+v", pe)
	}
	if _, ok := c.Get(k.Lemonade.ID); ok {
		t.Error("in-memory removal should be kept")
	}
}

func TestAllReturnsCopies(t *testing.T) {
	c, _, _, k := loadKitchen(t)

	all := c.All()
	all[0].Ingredients[0] = "changed"
	all[0].Title = "changed"

	got, _ := c.Get(k.TomatoSoup.ID)
	if got.Title == "changed" || got.Ingredients[0] == "changed" {
		t.Error("All() leaked internal state")
	}
}

func TestResetDoesNotPersist(t *testing.T) {
	c, _, kv, k := loadKitchen(t)

	c.Reset([]types.Recipe{k.Lemonade})
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if kv.Sets != 0 {
		t.Errorf("Reset wrote to the store")
	}
}

func TestImport(t *testing.T) {
	c, _, kv, k := loadKitchen(t)

	incoming := []types.Recipe{
		{ID: "imp-1", Title: "Pancakes", Category: types.Desserts, Ingredients: []string{}, CreatedAt: testutil.Epoch},
		k.Lemonade,
		{ID: "imp-2", Title: "Iced Tea", Category: types.Drinks, Ingredients: []string{}, CreatedAt: testutil.Epoch},
	}

	n, err := c.Import(incoming)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"imp-1", "imp-2"}, c.IDs()[:2]); diff != "" {
		t.Errorf("import order mismatch (-want +got):\n%s", diff)
	}
	if kv.Sets != 1 {
		t.Errorf("Sets = %d, want a single write", kv.Sets)
	}

	t.Run("nothing new", func(t *testing.T) {
		n, err := c.Import([]types.Recipe{k.Lemonade})
		if err != nil || n != 0 {
			t.Errorf("Import = %d, %v", n, err)
		}
	})

	t.Run("invalid input rejected whole", func(t *testing.T) {
		before := c.Len()
		_, err := c.Import([]types.Recipe{
			{ID: "ok", Title: "Ok", Category: types.Other, CreatedAt: testutil.Epoch},
			{ID: "bad", Title: "Bad", Category: "Pizza"},
		})
		if !errors.Is(err, validation.ErrInvalidRecipe) {
			t.Errorf("Import invalid = %v", err)
		}
		if c.Len() != before {
			t.Error("invalid import changed the collection")
		}
	})
}
