package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestBuildFilterOptions(t *testing.T) {
	recs := expenses(
		models.RawRecord{"Timestamp": "2024-01-10", "Category": "Feed", "Rs": "1"},
		models.RawRecord{"Timestamp": "not a date", "Category": "Labour", "Rs": "1"},
		models.RawRecord{"Timestamp": "15/03/2022", "Rs": "1"},
		models.RawRecord{"Timestamp": "2023-06-01", "Category": "Feed", "Rs": "1"},
	)

	opts := BuildFilterOptions(recs)

	assert.Equal(t, []int{2022, 2023, 2024}, opts.Years)
	assert.Equal(t, []string{"Feed", "Labour", ""}, opts.Categories)

	f := DefaultFilter(opts)
	assert.Equal(t, models.FilterContext{YearFrom: 2022, YearTo: 2024, HasYears: true}, f)
}

func TestDefaultFilter_NoYearsExcludesEverything(t *testing.T) {
	opts := BuildFilterOptions(nil)
	assert.Empty(t, opts.Years)

	f := DefaultFilter(opts)
	assert.False(t, f.HasYears)
	assert.False(t, f.YearInRange(0))
	assert.False(t, f.YearInRange(2023))
}
