package games

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
)

// Category is the closed set of tip categories shown on the tips board.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryAll
	CategorySure
	CategoryOverUnder
	CategoryBonus
	CategoryVIP
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryAll, CategorySure, CategoryOverUnder, CategoryBonus, CategoryVIP}

var categoryNames = map[Category]string{
	CategoryAll:       "All Tips",
	CategorySure:      "Sure Tips",
	CategoryOverUnder: "Over/Under Tips",
	CategoryBonus:     "Bonus",
	CategoryVIP:       "VIP Tips",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

func (c Category) Known() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory maps a wire name to its Category. Matching is exact, as on the backend.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", apperrors.ErrUnknownCategory, name)
}

// LookupCategory is a lenient ParseCategory for user input: case and surrounding space
// are ignored and short aliases ("all", "sure", "over/under", "bonus", "vip") accepted.
func LookupCategory(input string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for c, n := range categoryNames {
		name := strings.ToLower(n)
		if normalized == name || normalized == strings.TrimSuffix(name, " tips") {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", apperrors.ErrUnknownCategory, input)
}
