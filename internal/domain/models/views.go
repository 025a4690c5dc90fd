package models

// Summary holds income, expense and profit over the selected years.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Profit  float64 `json:"profit"`
}

// CategoryKeying selects how a missing expense category is grouped.
type CategoryKeying string

const (
	// KeyingTable groups a missing category under OtherCategory.
	KeyingTable CategoryKeying = "table"
	// KeyingChart groups a missing category under its raw (empty) value.
	KeyingChart CategoryKeying = "chart"
)

// OtherCategory labels expenses without a category in the totals table.
const OtherCategory = "Other"

// CategoryTotal is one group of a CategoryTotals view.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryTotals lists expense sums per category in first-appearance order.
type CategoryTotals struct {
	Keying CategoryKeying  `json:"keying"`
	Groups []CategoryTotal `json:"groups"`
	Total  float64         `json:"total"`
}

// Amount returns the sum recorded for category.
func (c CategoryTotals) Amount(category string) (float64, bool) {
	for _, g := range c.Groups {
		if g.Category == category {
			return g.Amount, true
		}
	}
	return 0, false
}

// Labels returns the group names in order.
func (c CategoryTotals) Labels() []string {
	out := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		out[i] = g.Category
	}
	return out
}

// Values returns the group sums in order.
func (c CategoryTotals) Values() []float64 {
	out := make([]float64, len(c.Groups))
	for i, g := range c.Groups {
		out[i] = g.Amount
	}
	return out
}

// Granularity is the period size of a TimeSeries.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// Point is a (period, value) pair. Period is YYYY-MM-DD or YYYY-MM.
type Point struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// TimeSeries is an ordered sequence of points.
type TimeSeries struct {
	Granularity Granularity `json:"granularity"`
	Points      []Point     `json:"points"`
}

// Labels returns the period keys in order.
func (s TimeSeries) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Period
	}
	return out
}

// Values returns the point values in order.
func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// IncomeExpenseSeries pairs monthly income and expense over identical month keys.
type IncomeExpenseSeries struct {
	Income  TimeSeries `json:"income"`
	Expense TimeSeries `json:"expense"`
}

// MilkSeries holds the daily and monthly milk yield series.
type MilkSeries struct {
	Daily   TimeSeries `json:"daily"`
	Monthly TimeSeries `json:"monthly"`
}
