// Package view holds the UI state machine shared by every front end.
//
// A Controller tracks which of the three views is active (list, detail,
// form), the selected recipe, the list filter and the recipe being edited.
// It owns no rendering: the TUI and the CLI drive it and draw from it.
package view

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthur-debert/nanorecipes/nanorecipes/collection"
	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/nanorecipes/ids"
	"github.com/arthur-debert/nanorecipes/search"
	"github.com/arthur-debert/nanorecipes/types"
)

// ErrEmptyID is returned by Open when no id is given
var ErrEmptyID = errors.New("recipe id is required")

// Controller is the single source of UI state. It is not safe for
// concurrent use; front ends call it from their event loop.
type Controller struct {
	coll   *collection.Collection
	ids    ids.Generator
	now    func() time.Time
	logger *slog.Logger

	state    State
	selected string
	form     form.Form
	criteria search.Criteria
	notice   string
}

// Option configures a Controller
type Option func(*Controller)

// WithIDGenerator sets the generator used for new recipes
func WithIDGenerator(gen ids.Generator) Option {
	return func(c *Controller) {
		c.ids = gen
	}
}

// WithClock sets a custom time function for testing
func WithClock(fn func() time.Time) Option {
	return func(c *Controller) {
		c.now = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a controller in the list view with no filter.
func New(coll *collection.Collection, opts ...Option) *Controller {
	c := &Controller{
		coll:     coll,
		ids:      ids.UUID{},
		now:      time.Now,
		logger:   slog.Default(),
		state:    StateList,
		criteria: search.Criteria{Category: types.All},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the active view
func (c *Controller) State() State { return c.state }

// Collection returns the collection the controller works on
func (c *Controller) Collection() *collection.Collection { return c.coll }

// Criteria returns the current list filter
func (c *Controller) Criteria() search.Criteria { return c.criteria }

// SelectedID returns the id shown in the detail view, or ""
func (c *Controller) SelectedID() string { return c.selected }

// Notice returns the last status message for the user
func (c *Controller) Notice() string { return c.notice }

// ClearNotice drops the status message
func (c *Controller) ClearNotice() { c.notice = "" }

// Open shows the detail view for id. An id that no longer exists still
// opens the view; Selected then reports it as not found.
func (c *Controller) Open(id string) error {
	if c.state != StateList {
		return &TransitionError{From: c.state, Action: "open a recipe"}
	}
	if id == "" {
		return ErrEmptyID
	}
	c.state = StateDetail
	c.selected = id
	c.notice = ""
	if _, ok := c.coll.Get(id); !ok {
		c.notice = "Recipe not found"
	}
	return nil
}

// New starts a blank form
func (c *Controller) New() error {
	if c.state != StateList {
		return &TransitionError{From: c.state, Action: "create a recipe"}
	}
	c.state = StateForm
	c.form = form.Blank()
	c.notice = ""
	return nil
}

// Edit loads the recipe with id into the form. A missing id is ignored
// and the list stays shown.
func (c *Controller) Edit(id string) error {
	if c.state != StateList {
		return &TransitionError{From: c.state, Action: "edit a recipe"}
	}
	r, ok := c.coll.Get(id)
	if !ok {
		c.logger.Debug("edit of unknown recipe ignored", "id", id)
		return nil
	}
	c.state = StateForm
	c.form = form.FromRecipe(r)
	c.notice = ""
	return nil
}

// Back returns from the detail view to the list
func (c *Controller) Back() error {
	if c.state != StateDetail {
		return &TransitionError{From: c.state, Action: "go back"}
	}
	c.state = StateList
	c.selected = ""
	return nil
}

// Form returns the draft being edited
func (c *Controller) Form() form.Form { return c.form }

// SetForm replaces the draft. Front ends call it after each field edit.
func (c *Controller) SetForm(f form.Form) error {
	if c.state != StateForm {
		return &TransitionError{From: c.state, Action: "edit the form"}
	}
	c.form = f
	return nil
}

// UpdateForm applies fn to the draft. The draft is unchanged if fn fails.
func (c *Controller) UpdateForm(fn func(form.Form) (form.Form, error)) error {
	if c.state != StateForm {
		return &TransitionError{From: c.state, Action: "edit the form"}
	}
	f, err := fn(c.form)
	if err != nil {
		return err
	}
	c.form = f
	return nil
}

// Save commits the form and returns to the list. A commit failure is
// logged and returned, and the list is shown anyway.
func (c *Controller) Save() (types.Recipe, error) {
	if c.state != StateForm {
		return types.Recipe{}, &TransitionError{From: c.state, Action: "save"}
	}

	r, err := c.form.Commit(c.coll, c.ids, c.now())
	c.state = StateList
	c.form = form.Form{}

	switch {
	case err == nil:
		c.notice = fmt.Sprintf("Saved %q", r.Title)
	case collection.IsPersistError(err):
		c.logger.Error("recipe saved in memory only", "id", r.ID, "error", err)
		c.notice = fmt.Sprintf("Saved %q, but it could not be written to disk", r.Title)
	case errors.Is(err, collection.ErrNotFound):
		c.logger.Warn("edited recipe no longer exists", "error", err)
		c.notice = "Recipe not found, changes discarded"
	default:
		c.logger.Error("failed to save recipe", "error", err)
		c.notice = "Could not save recipe"
	}
	return r, err
}

// Cancel discards the draft and returns to the list
func (c *Controller) Cancel() error {
	if c.state != StateForm {
		return &TransitionError{From: c.state, Action: "cancel"}
	}
	c.state = StateList
	c.form = form.Form{}
	c.notice = ""
	return nil
}

// Delete removes the recipe after the confirmer approves. It reports
// whether a recipe was removed. Deleting the recipe shown in the detail
// view returns to the list.
func (c *Controller) Delete(id string, confirm Confirmer) (bool, error) {
	if c.state == StateForm {
		return false, &TransitionError{From: c.state, Action: "delete"}
	}

	r, ok := c.coll.Get(id)
	if !ok {
		c.notice = "Recipe not found"
		return false, fmt.Errorf("%w: %s", collection.ErrNotFound, id)
	}

	yes, err := confirm.Confirm(fmt.Sprintf("Delete %q?", r.Title))
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !yes {
		return false, nil
	}

	err = c.coll.Remove(id)
	if err != nil && !collection.IsPersistError(err) {
		c.logger.Error("failed to delete recipe", "id", id, "error", err)
		c.notice = "Could not delete recipe"
		return false, err
	}

	if c.state == StateDetail && c.selected == id {
		c.state = StateList
		c.selected = ""
	}
	if err != nil {
		c.logger.Error("recipe deleted in memory only", "id", id, "error", err)
		c.notice = fmt.Sprintf("Deleted %q, but the change could not be written to disk", r.Title)
		return true, err
	}
	c.notice = fmt.Sprintf("Deleted %q", r.Title)
	return true, nil
}

// SetCategory changes the category filter. types.All clears it.
func (c *Controller) SetCategory(cat types.Category) error {
	if !cat.IsFilter() {
		return fmt.Errorf("%w: %q", types.ErrInvalidCategory, cat)
	}
	c.criteria.Category = cat
	return nil
}

// SetQuery changes the search text
func (c *Controller) SetQuery(q string) {
	c.criteria.Query = q
}

// Visible returns the recipes passing the current filter, in collection order.
func (c *Controller) Visible() []types.Recipe {
	return search.Filter(c.coll.All(), c.criteria)
}

// Selected returns the recipe shown in the detail view. ok is false when
// nothing is selected or the recipe is gone.
func (c *Controller) Selected() (types.Recipe, bool) {
	if c.selected == "" {
		return types.Recipe{}, false
	}
	return c.coll.Get(c.selected)
}

// Reload swaps in recipes changed outside this session. A selected recipe
// that vanished shows as not found; a form keeps its draft.
func (c *Controller) Reload(recipes []types.Recipe) {
	c.coll.Reset(recipes)
	c.notice = "Recipes reloaded"

	switch c.state {
	case StateDetail:
		if _, ok := c.coll.Get(c.selected); !ok {
			c.notice = "Recipe not found"
		}
	case StateForm:
		if id := c.form.ID(); id != "" {
			if _, ok := c.coll.Get(id); !ok {
				c.notice = "The recipe being edited was deleted elsewhere"
			}
		}
	}
	c.logger.Debug("collection reloaded", "count", c.coll.Len(), "state", c.state)
}
