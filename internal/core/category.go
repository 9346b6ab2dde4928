package core

import (
	"strconv"
	"strings"
)

// DefaultCategories are seeded into the store on first run.
var DefaultCategories = []string{
	"Food & Drink",
	"Transport",
	"Shopping",
	"Entertainment",
	"Health",
	"Education",
	"Bills",
	"Other",
}

// categoryAliases maps common free-text shorthands (English and Indonesian,
// kept from the data this tracker grew up with) to canonical category names.
var categoryAliases = map[string]string{
	"food":          "Food & Drink",
	"drink":         "Food & Drink",
	"makanan":       "Food & Drink",
	"minuman":       "Food & Drink",
	"transport":     "Transport",
	"transportasi":  "Transport",
	"travel":        "Transport",
	"shopping":      "Shopping",
	"belanja":       "Shopping",
	"entertainment": "Entertainment",
	"hiburan":       "Entertainment",
	"fun":           "Entertainment",
	"health":        "Health",
	"kesehatan":     "Health",
	"medical":       "Health",
	"education":     "Education",
	"pendidikan":    "Education",
	"bills":         "Bills",
	"tagihan":       "Bills",
	"utilities":     "Bills",
	"other":         "Other",
	"misc":          "Other",
	"lain-lain":     "Other",
}

// ResolveCategory matches free-form user input against the known categories.
//
// Matching order: exact name (case-insensitive), then 1-based menu index,
// then the static alias table. The alias target must itself exist in cats;
// an alias pointing at a category the user has deleted does not match.
// Fails with a ValidationError wrapping ErrUnknownCategory.
func ResolveCategory(input string, cats []Category) (Category, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Category{}, invalidField("category", "empty", ErrUnknownCategory)
	}

	lower := strings.ToLower(trimmed)
	for _, c := range cats {
		if strings.ToLower(c.Name) == lower {
			return c, nil
		}
	}

	if idx, err := strconv.Atoi(trimmed); err == nil {
		if idx >= 1 && idx <= len(cats) {
			return cats[idx-1], nil
		}
		return Category{}, invalidField("category", "index out of range", ErrUnknownCategory)
	}

	if canonical, ok := categoryAliases[lower]; ok {
		for _, c := range cats {
			if c.Name == canonical {
				return c, nil
			}
		}
	}

	return Category{}, invalidField("category", "no category matches "+strconv.Quote(trimmed), ErrUnknownCategory)
}
