// Package validation checks recipe records against the data model invariants.
//
// Field rules live as `validate` struct tags on types.Recipe and are enforced
// by go-playground/validator. Two custom rules are registered here:
// "category" (value must be a storable category) and "notblank" (value must
// contain something other than whitespace). Collection-level rules, such as id
// uniqueness, are checked by hand because struct tags cannot see siblings.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/arthur-debert/nanorecipes/types"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecipe is wrapped by every validation failure.
var ErrInvalidRecipe = errors.New("invalid recipe")

// FieldError describes one violated rule.
type FieldError struct {
	RecipeID string
	Field    string
	Rule     string
	Value    interface{}
}

// String renders the problem for humans.
func (fe FieldError) String() string {
	id := fe.RecipeID
	if id == "" {
		id = "<no id>"
	}
	switch fe.Rule {
	case "required":
		return fmt.Sprintf("recipe %s: %s is required", id, fe.Field)
	case "category":
		return fmt.Sprintf("recipe %s: %q is not a category", id, fe.Value)
	case "notblank":
		return fmt.Sprintf("recipe %s: %s must not be blank", id, fe.Field)
	case "unique":
		return fmt.Sprintf("recipe %s: duplicate id", id)
	default:
		return fmt.Sprintf("recipe %s: %s failed %s", id, fe.Field, fe.Rule)
	}
}

// Error aggregates every problem found in one validation pass
type Error struct {
	Problems []FieldError
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidRecipe, strings.Join(parts, "; "))
}

// Unwrap allows errors.Is(err, ErrInvalidRecipe)
func (e *Error) Unwrap() error {
	return ErrInvalidRecipe
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report json field names so messages match the persisted layout
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return types.Category(fl.Field().String()).IsValid()
		}); err != nil {
			panic(fmt.Sprintf("failed to register category rule: %v", err))
		}
		if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}); err != nil {
			panic(fmt.Sprintf("failed to register notblank rule: %v", err))
		}

		instance = v
	})
	return instance
}

// Recipe validates a single record.
func Recipe(r types.Recipe) error {
	problems := check(r)
	if len(problems) == 0 {
		return nil
	}
	return &Error{Problems: problems}
}

// Collection validates every record and the uniqueness of ids.
func Collection(recipes []types.Recipe) error {
	var problems []FieldError
	seen := make(map[string]bool, len(recipes))

	for _, r := range recipes {
		problems = append(problems, check(r)...)
		if r.ID == "" {
			continue
		}
		if seen[r.ID] {
			problems = append(problems, FieldError{RecipeID: r.ID, Field: "id", Rule: "unique", Value: r.ID})
		}
		seen[r.ID] = true
	}

	if len(problems) == 0 {
		return nil
	}
	return &Error{Problems: problems}
}

func check(r types.Recipe) []FieldError {
	err := get().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{RecipeID: r.ID, Field: "recipe", Rule: err.Error()}}
	}

	problems := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, FieldError{
			RecipeID: r.ID,
			Field:    fe.Field(),
			Rule:     fe.Tag(),
			Value:    fe.Value(),
		})
	}
	return problems
}
