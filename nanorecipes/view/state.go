package view

import "fmt"

// State is the view currently shown
type State int

const (
	// StateList shows the filtered recipe list. It is the initial state.
	StateList State = iota
	// StateDetail shows one recipe
	StateDetail
	// StateForm edits a new or existing recipe
	StateForm
)

func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateDetail:
		return "detail"
	case StateForm:
		return "form"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TransitionError is returned when an action is not allowed in the
// current state. The controller is left unchanged.
type TransitionError struct {
	From   State
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from the %s view", e.Action, e.From)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Always is a Confirmer that answers with a fixed value.
type Always bool

// Confirm implements Confirmer
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}
