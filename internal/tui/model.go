// Package tui is the interactive terminal front end. It draws the list,
// detail and form views of a view.Controller and turns key presses into
// controller calls.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/nanorecipes/formats"
	"github.com/arthur-debert/nanorecipes/internal/ui"
	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/nanorecipes/view"
	"github.com/arthur-debert/nanorecipes/search"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Model is the Bubbletea model for the recipe TUI.
type Model struct {
	ctrl *view.Controller

	// Dimensions
	width, height int

	// List state
	cursor        int
	search        textinput.Model
	searching     bool
	pendingDelete string

	// Detail state
	detail      viewport.Model
	detailID    string
	detailWidth int

	// Form state
	editor *editor

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	err      error

	now     func() time.Time
	changes <-chan struct{}
	reload  func() ([]types.Recipe, error)
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the time used for relative timestamps
func WithClock(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// WithReload makes the model reload the collection with load whenever
// changes fires.
func WithReload(changes <-chan struct{}, load func() ([]types.Recipe, error)) Option {
	return func(m *Model) {
		m.changes = changes
		m.reload = load
	}
}

// New creates a model drawing ctrl
func New(ctrl *view.Controller, opts ...Option) *Model {
	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "search title, ingredients, steps"

	h := help.New()
	h.ShowAll = false

	m := &Model{
		ctrl:   ctrl,
		search: si,
		detail: viewport.New(0, 0),
		keys:   DefaultKeyMap(),
		help:   h,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Controller returns the controller the model drives
func (m *Model) Controller() *view.Controller { return m.ctrl }

// changedMsg is sent when the stored collection changed on disk
type changedMsg struct{}

// reloadedMsg carries a freshly read collection
type reloadedMsg struct {
	recipes []types.Recipe
	err     error
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("nanorecipes"),
		m.waitForChange(),
	)
}

// waitForChange blocks until the watcher reports a change
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil || m.reload == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m *Model) loadRecipes() tea.Cmd {
	load := m.reload
	return func() tea.Msg {
		recipes, err := load()
		return reloadedMsg{recipes: recipes, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(10, msg.Width-4)
		m.detail.Width = msg.Width
		m.detail.Height = max(3, msg.Height-4)
		if m.editor != nil {
			m.editor.resize(msg.Width)
		}
		m.refreshDetail()
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.loadRecipes(), m.waitForChange())

	case reloadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("reload failed: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.ctrl.Reload(msg.recipes)
		m.clampCursor()
		m.detailID = ""
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		if m.pendingDelete != "" {
			return m.handleConfirm(msg)
		}
		switch m.ctrl.State() {
		case view.StateDetail:
			return m.updateDetail(msg)
		case view.StateForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blinks and other widget messages
	switch {
	case m.ctrl.State() == view.StateForm && m.editor != nil:
		return m, m.editor.update(msg)
	case m.searching:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleConfirm answers the inline delete question
func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = ""

	if key.Matches(msg, m.keys.Confirm) {
		// The question was already answered here
		if _, err := m.ctrl.Delete(id, view.Always(true)); err != nil {
			m.err = err
		}
		m.clampCursor()
		return m, nil
	}
	m.ctrl.ClearNotice()
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}
	m.ctrl.ClearNotice()
	m.err = nil

	visible := m.ctrl.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextTab):
		m.shiftCategory(1)

	case key.Matches(msg, m.keys.PrevTab):
		m.shiftCategory(-1)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.ctrl.SetQuery("")
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Open):
		if r, ok := m.current(); ok {
			if err := m.ctrl.Open(r.ID); err != nil {
				m.err = err
			}
			m.refreshDetail()
		}

	case key.Matches(msg, m.keys.New):
		if err := m.ctrl.New(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.openEditor()

	case key.Matches(msg, m.keys.Edit):
		if r, ok := m.current(); ok {
			return m, m.edit(r.ID)
		}

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.current(); ok {
			m.pendingDelete = r.ID
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.SetQuery("")
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ctrl.ClearNotice()
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Back):
		if err := m.ctrl.Back(); err != nil {
			m.err = err
		}
		m.detailID = ""

	case key.Matches(msg, m.keys.Edit):
		id := m.ctrl.SelectedID()
		if _, ok := m.ctrl.Selected(); !ok {
			return m, nil
		}
		if err := m.ctrl.Back(); err != nil {
			m.err = err
			return m, nil
		}
		m.detailID = ""
		return m, m.edit(id)

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.ctrl.Selected(); ok {
			m.pendingDelete = r.ID
		}

	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor
	if e == nil {
		e = newEditor(m.ctrl.Form(), m.width)
		m.editor = e
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		if err := m.ctrl.UpdateForm(e.apply); err != nil {
			m.err = err
			return m, nil
		}
		r, err := m.ctrl.Save()
		m.editor = nil
		if err != nil {
			m.err = err
		}
		m.focusRecipe(r.ID)
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if err := m.ctrl.Cancel(); err != nil {
			m.err = err
		}
		m.editor = nil
		return m, nil

	case key.Matches(msg, m.keys.NextItem):
		return m, e.focusField(e.focus + 1)

	case key.Matches(msg, m.keys.PrevItem):
		return m, e.focusField(e.focus - 1)

	case key.Matches(msg, m.keys.AddRow):
		if err := m.ctrl.UpdateForm(e.apply); err != nil {
			m.err = err
			return m, nil
		}
		_ = m.ctrl.UpdateForm(func(f form.Form) (form.Form, error) { return f.AddIngredient(), nil })
		e.setIngredients(m.ctrl.Form().Ingredients())
		return m, e.focusField(fieldFirstIngredient + len(e.ingredients) - 1)

	case key.Matches(msg, m.keys.DelRow):
		idx, ok := e.ingredientIndex()
		if !ok {
			return m, nil
		}
		if err := m.ctrl.UpdateForm(e.apply); err != nil {
			m.err = err
			return m, nil
		}
		if err := m.ctrl.UpdateForm(func(f form.Form) (form.Form, error) { return f.RemoveIngredient(idx) }); err != nil {
			m.err = err
			return m, nil
		}
		e.setIngredients(m.ctrl.Form().Ingredients())
		return m, e.focusField(fieldFirstIngredient + min(idx, len(e.ingredients)-1))
	}

	return m, e.update(msg)
}

// openEditor builds the form widgets for the controller's draft
func (m *Model) openEditor() tea.Cmd {
	m.editor = newEditor(m.ctrl.Form(), m.width)
	return m.editor.focusField(fieldTitle)
}

// edit opens the form on id. A vanished id leaves the list as it is.
func (m *Model) edit(id string) tea.Cmd {
	if err := m.ctrl.Edit(id); err != nil {
		m.err = err
		return nil
	}
	if m.ctrl.State() != view.StateForm {
		return nil
	}
	return m.openEditor()
}

// current returns the recipe under the cursor
func (m *Model) current() (types.Recipe, bool) {
	visible := m.ctrl.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return types.Recipe{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// focusRecipe moves the cursor onto id if it is visible
func (m *Model) focusRecipe(id string) {
	for i, r := range m.ctrl.Visible() {
		if r.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) shiftCategory(delta int) {
	cats := types.FilterCategories()
	current := 0
	for i, c := range cats {
		if c == m.ctrl.Criteria().Category {
			current = i
		}
	}
	next := cats[(current+delta+len(cats))%len(cats)]
	if err := m.ctrl.SetCategory(next); err != nil {
		m.err = err
		return
	}
	m.cursor = 0
}

// refreshDetail re-renders the detail document when the recipe or the
// width changed
func (m *Model) refreshDetail() {
	if m.ctrl.State() != view.StateDetail {
		return
	}
	r, ok := m.ctrl.Selected()
	if !ok {
		m.detailID = ""
		m.detail.SetContent("")
		return
	}
	if r.ID == m.detailID && m.width == m.detailWidth {
		return
	}
	m.detail.SetContent(ui.RenderMarkdown(formats.Markdown.Render(r), m.contentWidth()))
	m.detail.GotoTop()
	m.detailID = r.ID
	m.detailWidth = m.width
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return min(m.width, 100)
}

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder

	switch m.ctrl.State() {
	case view.StateDetail:
		b.WriteString(m.renderDetail())
	case view.StateForm:
		if m.editor != nil {
			b.WriteString(m.editor.view())
		}
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString(m.help.View(stateKeys{keys: m.keys, state: m.ctrl.State()}))
	return b.String()
}

func (m *Model) renderList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipes"))
	b.WriteString("\n")

	counts := search.CountByCategory(m.ctrl.Collection().All())
	active := m.ctrl.Criteria().Category
	for _, c := range types.FilterCategories() {
		label := fmt.Sprintf("%s %d", c, counts[c])
		if c == active {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		if m.ctrl.Collection().Len() == 0 {
			b.WriteString(mutedStyle.Render("No recipes yet. Press n to add one."))
		} else {
			b.WriteString(mutedStyle.Render("No recipes match."))
		}
		b.WriteString("\n")
		return b.String()
	}

	start, end := m.window(len(visible))
	now := m.now()
	query := m.ctrl.Criteria().Query
	for i := start; i < end; i++ {
		r := visible[i]
		when := humanize.RelTime(r.LastModified(), now, "ago", "from now")
		meta := mutedStyle.Render(fmt.Sprintf("  %s · %s", r.Category, when))
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("› "+r.Title) + meta)
		} else {
			b.WriteString(normalItemStyle.Render("  ") + highlight(r.Title, query) + meta)
		}
		b.WriteString("\n")
	}
	if end-start < len(visible) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(visible))))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the slice of rows that fits the screen around the cursor
func (m *Model) window(n int) (int, int) {
	rows := n
	if m.height > 0 {
		rows = max(3, m.height-10)
	}
	if rows >= n {
		return 0, n
	}
	start := max(0, m.cursor-rows/2)
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func (m *Model) renderDetail() string {
	if _, ok := m.ctrl.Selected(); !ok {
		return errorStyle.Render("Recipe not found") + "\n" +
			mutedStyle.Render("It may have been deleted. Press esc to go back.") + "\n"
	}
	return m.detail.View() + "\n"
}

func (m *Model) renderStatus() string {
	var b strings.Builder
	if m.pendingDelete != "" {
		if r, ok := m.ctrl.Collection().Get(m.pendingDelete); ok {
			b.WriteString(confirmStyle.Render(fmt.Sprintf("Delete %q? (y/n)", r.Title)))
			b.WriteString("\n")
		}
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if notice := m.ctrl.Notice(); notice != "" {
		b.WriteString(noticeStyle.Render(notice))
		b.WriteString("\n")
	}
	return b.String()
}

// highlight styles the parts of text matching query
func highlight(text, query string) string {
	spans := search.MatchSpans(text, query)
	if len(spans) == 0 {
		return normalItemStyle.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.Start > last {
			b.WriteString(normalItemStyle.Render(text[last:sp.Start]))
		}
		b.WriteString(matchStyle.Render(text[sp.Start:sp.End]))
		last = sp.End
	}
	if last < len(text) {
		b.WriteString(normalItemStyle.Render(text[last:]))
	}
	return b.String()
}
