package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/nanorecipes/storage"
	"github.com/arthur-debert/nanorecipes/nanorecipes/view"
	"github.com/arthur-debert/nanorecipes/testutil"
	"github.com/arthur-debert/nanorecipes/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	m       *Model
	ctrl    *view.Controller
	coll    *collection.Collection
	kv      *storage.MemoryKV
	kitchen *testutil.KitchenData
}

func setup(t *testing.T) *fixture {
	t.Helper()
	k := testutil.Kitchen(t)
	adapter, kv := testutil.NewStore(t, k.Recipes)
	coll, err := collection.Load(adapter)
	require.NoError(t, err)

	ctrl := view.New(coll,
		view.WithIDGenerator(ids.NewSequence("t")),
		view.WithClock(testutil.FixedClock(testutil.Epoch)),
	)
	m := New(ctrl, WithClock(testutil.FixedClock(testutil.Epoch)))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &fixture{m: m, ctrl: ctrl, coll: coll, kv: kv, kitchen: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestListNavigationAndOpen(t *testing.T) {
	f := setup(t)

	press(f.m, runes("j"), runes("j"), runes("k"))
	assert.Equal(t, 1, f.m.cursor)

	press(f.m, runes("k"), runes("k"))
	assert.Equal(t, 0, f.m.cursor, "cursor must not move above the first row")

	press(f.m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, view.StateDetail, f.ctrl.State())
	r, ok := f.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, f.kitchen.GreekSalad.ID, r.ID)
	assert.Equal(t, r.ID, f.m.detailID)

	press(f.m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, view.StateList, f.ctrl.State())
}

func TestCategoryTabs(t *testing.T) {
	f := setup(t)

	press(f.m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, types.Soups, f.ctrl.Criteria().Category)
	visible := f.ctrl.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, f.kitchen.TomatoSoup.ID, visible[0].ID)

	press(f.m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, types.Other, f.ctrl.Criteria().Category, "tabs wrap around")
	assert.Empty(t, f.ctrl.Visible())
	assert.Contains(t, f.m.View(), "No recipes match.")
}

func TestSearch(t *testing.T) {
	f := setup(t)

	press(f.m, runes("/"), runes("lemon"))
	require.True(t, f.m.searching)
	assert.Equal(t, "lemon", f.ctrl.Criteria().Query)
	assert.Len(t, f.ctrl.Visible(), 2)

	// Keys go to the search box while it is focused
	press(f.m, runes("n"))
	assert.Equal(t, view.StateList, f.ctrl.State())
	assert.Equal(t, "lemonn", f.ctrl.Criteria().Query)

	press(f.m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.m.searching)
	assert.Empty(t, f.ctrl.Criteria().Query)
	assert.Len(t, f.ctrl.Visible(), len(f.kitchen.Recipes))
}

func TestNewRecipeIsTrimmedAndPrepended(t *testing.T) {
	f := setup(t)

	press(f.m, runes("n"))
	require.Equal(t, view.StateForm, f.ctrl.State())
	require.NotNil(t, f.m.editor)

	press(f.m,
		runes("  Tea  "),
		tea.KeyMsg{Type: tea.KeyTab}, // category
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyTab}, // first ingredient
		runes("  "),
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)

	require.Equal(t, view.StateList, f.ctrl.State())
	assert.Nil(t, f.m.editor)
	require.Equal(t, len(f.kitchen.Recipes)+1, f.coll.Len())

	first := f.coll.All()[0]
	assert.Equal(t, "Tea", first.Title)
	assert.Equal(t, types.Salads, first.Category)
	assert.Empty(t, first.Ingredients)
	assert.Equal(t, "t-1", first.ID)
	assert.Equal(t, 1, f.kv.Sets)
	assert.Equal(t, 0, f.m.cursor)
	assert.Contains(t, f.m.View(), `Saved "Tea"`)
}

func TestCancelDiscardsDraft(t *testing.T) {
	f := setup(t)

	press(f.m, runes("n"), runes("Draft"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, view.StateList, f.ctrl.State())
	assert.Equal(t, len(f.kitchen.Recipes), f.coll.Len())
	assert.Equal(t, 0, f.kv.Sets)
}

func TestIngredientRows(t *testing.T) {
	f := setup(t)

	press(f.m, runes("n"), tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Len(t, f.m.editor.ingredients, 2)
	idx, ok := f.m.editor.ingredientIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx, "new row takes the focus")

	press(f.m, runes("salt"), tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Len(t, f.m.editor.ingredients, 1)

	press(f.m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Len(t, f.m.editor.ingredients, 1, "removing the last row leaves one blank row")
	assert.Equal(t, "", f.m.editor.ingredients[0].Value())
}

func TestEditFromDetailKeepsIdentity(t *testing.T) {
	f := setup(t)
	soup := f.kitchen.TomatoSoup

	press(f.m, tea.KeyMsg{Type: tea.KeyEnter}, runes("e"))
	require.Equal(t, view.StateForm, f.ctrl.State())
	assert.Equal(t, soup.ID, f.ctrl.Form().ID())
	assert.Equal(t, soup.Title, f.m.editor.title.Value())

	press(f.m, runes("!"), tea.KeyMsg{Type: tea.KeyCtrlS})

	r, ok := f.coll.Get(soup.ID)
	require.True(t, ok)
	assert.Equal(t, soup.Title+"!", r.Title)
	assert.Equal(t, soup.CreatedAt, r.CreatedAt)
	assert.Equal(t, testutil.Epoch, r.UpdatedAt)
}

func TestInlineDeleteConfirmation(t *testing.T) {
	f := setup(t)
	first := f.kitchen.Recipes[0]

	press(f.m, runes("d"))
	assert.Equal(t, first.ID, f.m.pendingDelete)
	assert.Contains(t, f.m.View(), "(y/n)")

	press(f.m, runes("n"))
	assert.Empty(t, f.m.pendingDelete)
	assert.Equal(t, len(f.kitchen.Recipes), f.coll.Len())
	assert.Equal(t, view.StateList, f.ctrl.State(), "declining must not start a new recipe")

	press(f.m, runes("d"), runes("y"))
	assert.Equal(t, len(f.kitchen.Recipes)-1, f.coll.Len())
	_, ok := f.coll.Get(first.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, f.kv.Sets)
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	f := setup(t)

	press(f.m, tea.KeyMsg{Type: tea.KeyEnter}, runes("d"), runes("y"))

	assert.Equal(t, view.StateList, f.ctrl.State())
	assert.Equal(t, len(f.kitchen.Recipes)-1, f.coll.Len())
}

func TestReloadShowsNotFoundForVanishedRecipe(t *testing.T) {
	f := setup(t)

	press(f.m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, view.StateDetail, f.ctrl.State())

	f.m.Update(reloadedMsg{recipes: f.kitchen.Recipes[1:]})

	assert.Equal(t, view.StateDetail, f.ctrl.State())
	assert.Contains(t, f.m.View(), "Recipe not found")
	assert.Equal(t, len(f.kitchen.Recipes)-1, f.coll.Len())
}

func TestReloadError(t *testing.T) {
	f := setup(t)

	f.m.Update(reloadedMsg{err: errors.New("disk gone")})

	assert.Equal(t, len(f.kitchen.Recipes), f.coll.Len())
	assert.Contains(t, f.m.View(), "reload failed")
}

func TestWatchCommands(t *testing.T) {
	f := setup(t)
	assert.Nil(t, f.m.waitForChange(), "no watcher, no command")

	changes := make(chan struct{}, 1)
	m := New(f.ctrl, WithReload(changes, func() ([]types.Recipe, error) {
		return f.kitchen.Recipes[:2], nil
	}))

	cmd := m.waitForChange()
	require.NotNil(t, cmd)
	changes <- struct{}{}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		assert.IsType(t, changedMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("waitForChange did not return after a change")
	}

	msg := m.loadRecipes()()
	reloaded, ok := msg.(reloadedMsg)
	require.True(t, ok)
	require.NoError(t, reloaded.err)
	assert.Len(t, reloaded.recipes, 2)

	close(changes)
	assert.Nil(t, m.waitForChange()(), "closed watcher ends the loop")
}

func TestEmptyCollectionHint(t *testing.T) {
	adapter, _ := testutil.NewStore(t, []types.Recipe{})
	coll, err := collection.Load(adapter)
	require.NoError(t, err)

	m := New(view.New(coll))
	assert.Contains(t, m.View(), "No recipes yet")
}

func TestHighlight(t *testing.T) {
	out := highlight("Tomato Soup", "tom")
	assert.Contains(t, out, "Tom")
	assert.Contains(t, out, "ato Soup")

	out = highlight("Crème Brûlée", "BRÛ")
	assert.Contains(t, out, "Brû")
	assert.Contains(t, out, "lée")

	assert.Contains(t, highlight("Lemonade", ""), "Lemonade")
}
