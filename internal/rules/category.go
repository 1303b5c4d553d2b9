package rules

import "fmt"

// Category groups correction rules by the kind of mistake they fix.
type Category string

const (
	CategoryToneError      Category = "tone_error"
	CategoryTypoError      Category = "typo_error"
	CategoryStickyTyping   Category = "sticky_typing"
	CategoryCapitalization Category = "capitalization"
	CategorySpacing        Category = "spacing_punctuation"
	CategoryCompoundWord   Category = "compound_word"
	CategoryUnknown        Category = "unknown"
)

// Lower priority values are applied first.
var priorities = map[Category]int{
	CategoryStickyTyping:   1,
	CategoryCompoundWord:   2,
	CategoryToneError:      3,
	CategoryTypoError:      4,
	CategoryCapitalization: 5,
	CategorySpacing:        6,
	CategoryUnknown:        7,
}

// orderedCategories lists the known categories in application order.
var orderedCategories = []Category{
	CategoryStickyTyping,
	CategoryCompoundWord,
	CategoryToneError,
	CategoryTypoError,
	CategoryCapitalization,
	CategorySpacing,
}

// Priority returns the application rank of the category. Unrecognised
// categories rank with CategoryUnknown.
func (c Category) Priority() int {
	if p, ok := priorities[c]; ok {
		return p
	}
	return priorities[CategoryUnknown]
}

// Valid reports whether c is one of the six rule categories.
func (c Category) Valid() bool {
	_, ok := priorities[c]
	return ok && c != CategoryUnknown
}

// ParseCategory converts a data-file category name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
