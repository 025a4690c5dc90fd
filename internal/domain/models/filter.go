package models

import (
	"errors"
	"fmt"
)

// ErrInvalidYearRange is returned when a filter's lower year exceeds its upper year.
var ErrInvalidYearRange = errors.New("invalid year range")

// FilterContext holds the analysis parameters selected for a session.
// HasYears is false when the expense data carries no valid year; every
// range-filtered view is then empty.
type FilterContext struct {
	YearFrom int    `json:"year_from"`
	YearTo   int    `json:"year_to"`
	Category string `json:"category,omitempty"` // empty means all categories
	HasYears bool   `json:"has_years"`
}

// NewFilterContext builds a bounded filter.
func NewFilterContext(from, to int, category string) (FilterContext, error) {
	if from > to {
		return FilterContext{}, fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, from, to)
	}
	return FilterContext{YearFrom: from, YearTo: to, Category: category, HasYears: true}, nil
}

// YearInRange reports whether year falls inside [YearFrom, YearTo].
func (f FilterContext) YearInRange(year int) bool {
	return f.HasYears && year >= f.YearFrom && year <= f.YearTo
}

// MatchesCategory applies the optional category restriction.
func (f FilterContext) MatchesCategory(category string) bool {
	return f.Category == "" || f.Category == category
}

// FilterOptions lists the selectable years and categories.
type FilterOptions struct {
	Years      []int    `json:"years"`
	Categories []string `json:"categories"`
}
