// Package fields holds the tolerant cell parsers shared by every dataset mapper.
// None of them fail: a malformed cell degrades to "absent" for dates and to 0 for amounts.
package fields

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical rendering of a calendar date.
	DateLayout = "2006-01-02"
	// MonthLayout is the month bucket key used by every monthly series.
	MonthLayout = "2006-01"

	byteOrderMark = "\ufeff"
)

var isoLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
}

var amountPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDate converts a sheet cell into a calendar date (UTC midnight).
// ISO-like values are tried first; values containing a slash are then read as day/month/year.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncate(t), true
		}
	}

	if !strings.Contains(value, "/") {
		return time.Time{}, false
	}

	return parseDayFirst(value)
}

// parseDayFirst handles dd/mm/yyyy, tolerating a trailing time on the year part
// ("15/03/2023 10:22:11" as exported by form timestamps).
func parseDayFirst(value string) (time.Time, bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	yearPart := strings.Fields(parts[2])
	if len(yearPart) == 0 || len(yearPart[0]) != 4 {
		return time.Time{}, false
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errYear := strconv.Atoi(yearPart[0])
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, false
	}

	t, err := time.Parse(DateLayout, fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders YYYY-MM-DD; the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// MonthKey renders the YYYY-MM bucket of t.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// AddDays adds n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ParseAmount reads the leading decimal number of raw, the way spreadsheet
// exports are usually consumed ("120 L" reads as 120). Anything else is 0.
func ParseAmount(raw string) float64 {
	match := amountPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CleanHeader normalises a header cell before it is used as a field name.
func CleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(h), byteOrderMark))
}
