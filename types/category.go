package types

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one value of the fixed recipe category set.
type Category string

const (
	Soups       Category = "Soups"
	Salads      Category = "Salads"
	MainCourses Category = "Main courses"
	SideDishes  Category = "Side dishes"
	Baking      Category = "Baking"
	Desserts    Category = "Desserts"
	Drinks      Category = "Drinks"
	Other       Category = "Other"

	// All is the filter-only sentinel. It is never stored on a recipe.
	All Category = "All"
)

// DefaultCategory is the category of a blank form.
const DefaultCategory = Soups

// ErrInvalidCategory is returned when a value is not in the category set.
var ErrInvalidCategory = errors.New("invalid category")

var categories = []Category{Soups, Salads, MainCourses, SideDishes, Baking, Desserts, Drinks, Other}

// Categories returns the storable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FilterCategories returns All followed by every storable category.
func FilterCategories() []Category {
	return append([]Category{All}, categories...)
}

// IsValid reports whether c may be stored on a recipe.
func (c Category) IsValid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// IsFilter reports whether c may be used as a filter value.
func (c Category) IsFilter() bool {
	return c == All || c.IsValid()
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves user input to a category, ignoring case and
// surrounding whitespace. "all" resolves to the All sentinel.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(All)) {
		return All, nil
	}
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}
