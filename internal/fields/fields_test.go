package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_ISORoundTrip(t *testing.T) {
	for _, raw := range []string{"2023-01-10", "2024-02-29", "1999-12-31", "2025-07-04"} {
		got, ok := ParseDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, raw, FormatDate(got))
	}
}

func TestParseDate_Forms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{name: "day first", raw: "15/03/2023", want: date(2023, time.March, 15), ok: true},
		{name: "day first unpadded", raw: "5/3/2023", want: date(2023, time.March, 5), ok: true},
		{name: "form timestamp", raw: "15/03/2023 10:22:11", want: date(2023, time.March, 15), ok: true},
		{name: "iso with time", raw: "2023-03-15T18:30:00Z", want: date(2023, time.March, 15), ok: true},
		{name: "iso with space time", raw: "2023-03-15 08:00:00", want: date(2023, time.March, 15), ok: true},
		{name: "surrounding spaces", raw: "  2023-03-15 ", want: date(2023, time.March, 15), ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "blank", raw: "   ", ok: false},
		{name: "garbage", raw: "not a date", ok: false},
		{name: "garbage with slash", raw: "n/a", ok: false},
		{name: "impossible day", raw: "31/02/2023", ok: false},
		{name: "short year", raw: "15/03/23", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestFormatDate_Zero(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestAddDays_CrossesBoundaries(t *testing.T) {
	assert.Equal(t, "2024-03-01", FormatDate(AddDays(date(2024, time.February, 29), 1)))
	assert.Equal(t, "2023-03-01", FormatDate(AddDays(date(2023, time.February, 28), 1)))
	assert.Equal(t, "2024-01-11", FormatDate(AddDays(date(2023, time.December, 21), 21)))
	assert.Equal(t, "2024-10-19", FormatDate(AddDays(date(2024, time.January, 13), 280)))
	assert.Equal(t, "2022-12-31", FormatDate(AddDays(date(2023, time.January, 1), -1)))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2023-02", MonthKey(date(2023, time.February, 5)))
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"":        0,
		"   ":     0,
		"abc":     0,
		"123.45":  123.45,
		" 50 ":    50,
		"-12.5":   -12.5,
		"120 L":   120,
		".5":      0.5,
		"1e3":     1000,
		"NaN":     0,
		"1e999":   0,
		"Rs 100":  0,
		"1,200":   1,
		"+7":      7,
		"0042.10": 42.1,
	}
	for raw, want := range tests {
		assert.InDelta(t, want, ParseAmount(raw), 1e-9, "raw=%q", raw)
	}
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "Cow", CleanHeader("\ufeffCow"))
	assert.Equal(t, "Start Date", CleanHeader("  Start Date \t"))
	assert.Equal(t, "Rs", CleanHeader(" \ufeffRs"))
}
