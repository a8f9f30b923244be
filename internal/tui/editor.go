package tui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanorecipes/nanorecipes/form"
	"github.com/arthur-debert/nanorecipes/types"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field positions before and after the ingredient rows
const (
	fieldTitle = iota
	fieldCategory
	fieldFirstIngredient
)

// editor holds the widgets of the form view. The controller's form.Form is
// the source of truth; widget values are pushed into it with apply.
type editor struct {
	isNew       bool
	title       textinput.Model
	category    int
	ingredients []textinput.Model
	steps       textarea.Model
	notes       textarea.Model
	focus       int
	width       int
}

func newEditor(f form.Form, width int) *editor {
	e := &editor{isNew: f.IsNew(), width: width}

	e.title = textinput.New()
	e.title.Placeholder = form.PlaceholderTitle
	e.title.Prompt = ""
	e.title.CharLimit = 200
	e.title.SetValue(f.Title())

	for i, c := range types.Categories() {
		if c == f.Category() {
			e.category = i
		}
	}

	e.steps = textarea.New()
	e.steps.Placeholder = "Describe how to cook it..."
	e.steps.ShowLineNumbers = false
	e.steps.SetHeight(5)
	e.steps.SetValue(f.Steps())

	e.notes = textarea.New()
	e.notes.Placeholder = "Optional notes"
	e.notes.ShowLineNumbers = false
	e.notes.SetHeight(3)
	e.notes.SetValue(f.Notes())

	e.setIngredients(f.Ingredients())
	e.resize(width)
	return e
}

// setIngredients rebuilds the ingredient rows from the form
func (e *editor) setIngredients(rows []string) {
	e.ingredients = make([]textinput.Model, len(rows))
	for i, row := range rows {
		in := textinput.New()
		in.Prompt = "• "
		in.Placeholder = "ingredient"
		in.SetValue(row)
		in.Width = e.inputWidth()
		e.ingredients[i] = in
	}
	if e.focus >= e.fieldCount() {
		e.focus = e.fieldCount() - 1
	}
}

func (e *editor) inputWidth() int {
	if e.width <= 0 {
		return 60
	}
	return max(10, e.width-6)
}

func (e *editor) resize(width int) {
	e.width = width
	w := e.inputWidth()
	e.title.Width = w
	for i := range e.ingredients {
		e.ingredients[i].Width = w
	}
	e.steps.SetWidth(w)
	e.notes.SetWidth(w)
}

func (e *editor) fieldCount() int {
	return fieldFirstIngredient + len(e.ingredients) + 2
}

func (e *editor) stepsField() int { return fieldFirstIngredient + len(e.ingredients) }

func (e *editor) notesField() int { return e.stepsField() + 1 }

// ingredientIndex returns the ingredient row under focus
func (e *editor) ingredientIndex() (int, bool) {
	i := e.focus - fieldFirstIngredient
	return i, i >= 0 && i < len(e.ingredients)
}

// focusField moves the focus to field i, wrapping around
func (e *editor) focusField(i int) tea.Cmd {
	n := e.fieldCount()
	e.focus = ((i % n) + n) % n

	e.title.Blur()
	for j := range e.ingredients {
		e.ingredients[j].Blur()
	}
	e.steps.Blur()
	e.notes.Blur()

	switch {
	case e.focus == fieldTitle:
		return e.title.Focus()
	case e.focus == fieldCategory:
		return nil
	case e.focus == e.stepsField():
		return e.steps.Focus()
	case e.focus == e.notesField():
		return e.notes.Focus()
	default:
		idx, _ := e.ingredientIndex()
		return e.ingredients[idx].Focus()
	}
}

// apply copies the widget values into the draft
func (e *editor) apply(f form.Form) (form.Form, error) {
	rows := make([]string, len(e.ingredients))
	for i, in := range e.ingredients {
		rows[i] = in.Value()
	}

	f = f.SetTitle(e.title.Value()).
		SetIngredients(rows).
		SetSteps(e.steps.Value()).
		SetNotes(e.notes.Value())
	return f.SetCategory(types.Categories()[e.category])
}

// update routes a message to the focused widget
func (e *editor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case e.focus == fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case e.focus == fieldCategory:
		if k, ok := msg.(tea.KeyMsg); ok {
			n := len(types.Categories())
			switch k.String() {
			case "right", "l", " ", "down", "j":
				e.category = (e.category + 1) % n
			case "left", "h", "up", "k":
				e.category = (e.category + n - 1) % n
			}
		}
	case e.focus == e.stepsField():
		e.steps, cmd = e.steps.Update(msg)
	case e.focus == e.notesField():
		e.notes, cmd = e.notes.Update(msg)
	default:
		idx, _ := e.ingredientIndex()
		e.ingredients[idx], cmd = e.ingredients[idx].Update(msg)
	}
	return cmd
}

func (e *editor) label(field int, text string) string {
	if e.focus == field {
		return focusedLabelStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (e *editor) view() string {
	var b strings.Builder

	heading := "Edit recipe"
	if e.isNew {
		heading = "New recipe"
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	b.WriteString(e.label(fieldTitle, "Title") + "\n")
	b.WriteString("  " + e.title.View() + "\n\n")

	b.WriteString(e.label(fieldCategory, "Category") + "\n  ")
	for i, c := range types.Categories() {
		if i == e.category {
			b.WriteString(activeTabStyle.Render(string(c)))
		} else {
			b.WriteString(tabStyle.Render(string(c)))
		}
	}
	b.WriteString("\n\n")

	ingredientsLabel := "Ingredients"
	if _, ok := e.ingredientIndex(); ok {
		b.WriteString(focusedLabelStyle.Render("› "+ingredientsLabel) + "\n")
	} else {
		b.WriteString(labelStyle.Render("  "+ingredientsLabel) + "\n")
	}
	for _, in := range e.ingredients {
		b.WriteString("  " + in.View() + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d row(s), ctrl+n adds, ctrl+d removes", len(e.ingredients))))
	b.WriteString("\n\n")

	b.WriteString(e.label(e.stepsField(), "Steps") + "\n")
	b.WriteString(e.steps.View() + "\n\n")

	b.WriteString(e.label(e.notesField(), "Notes") + "\n")
	b.WriteString(e.notes.View() + "\n")

	return b.String()
}
