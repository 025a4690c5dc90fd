package reporting

import (
	"slices"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// BuildFilterOptions derives the selectable years and categories from the
// expense records. Years come only from parseable timestamps; categories are
// taken from every record, raw, in first-appearance order.
func BuildFilterOptions(expenses []models.ExpenseRecord) models.FilterOptions {
	years := make([]int, 0)
	seenYears := make(map[int]struct{})
	categories := make([]string, 0)
	seenCategories := make(map[string]struct{})

	for _, e := range expenses {
		if e.HasDate {
			y := e.Date.Year()
			if _, ok := seenYears[y]; !ok {
				seenYears[y] = struct{}{}
				years = append(years, y)
			}
		}
		if _, ok := seenCategories[e.Category]; !ok {
			seenCategories[e.Category] = struct{}{}
			categories = append(categories, e.Category)
		}
	}

	slices.Sort(years)
	return models.FilterOptions{Years: years, Categories: categories}
}

// DefaultFilter spans every available year with no category restriction.
// Without any year the filter excludes everything.
func DefaultFilter(opts models.FilterOptions) models.FilterContext {
	if len(opts.Years) == 0 {
		return models.FilterContext{}
	}
	return models.FilterContext{
		YearFrom: opts.Years[0],
		YearTo:   opts.Years[len(opts.Years)-1],
		HasYears: true,
	}
}
