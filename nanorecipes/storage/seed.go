package storage

import (
	"time"

	"github.com/arthur-debert/nanorecipes/types"
)

// DefaultKey is the slot the collection lives in unless configured otherwise.
const DefaultKey = "nanorecipes.recipes"

// Seed returns the recipe installed when the slot has never been written.
func Seed(id string, now time.Time) types.Recipe {
	return types.Recipe{
		ID:       id,
		Title:    "Borscht",
		Category: types.Soups,
		Ingredients: []string{
			"2 beets",
			"1/4 head of cabbage",
			"2 potatoes",
			"1 carrot",
			"1 onion",
			"2 l beef stock",
		},
		Steps: "Simmer the stock and add the diced potatoes.\n" +
			"Fry the onion and carrot, then add the grated beets.\n" +
			"Add the shredded cabbage and the fried vegetables to the pot.\n" +
			"Cook for 10 more minutes and serve with sour cream.",
		CreatedAt: now,
	}
}
