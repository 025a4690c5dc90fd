// Package reporting computes the dashboard views from typed farm records.
// Every function here is pure: identical inputs always give identical views.
package reporting

import (
	"slices"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/fields"
)

// ComputeSummary totals income from milk payments and spend from expenses over
// the filter's years. The category restriction does not apply here.
func ComputeSummary(expenses []models.ExpenseRecord, productions []models.ProductionRecord, f models.FilterContext) models.Summary {
	var s models.Summary

	for _, p := range productions {
		if !p.HasDate || !f.YearInRange(p.Date.Year()) {
			continue
		}
		s.Income += p.Payment
	}

	for _, e := range expenses {
		if !e.HasDate || !f.YearInRange(e.Date.Year()) {
			continue
		}
		s.Expense += e.Amount
	}

	s.Profit = s.Income - s.Expense
	return s
}

// ComputeCategoryTotals sums in-range expenses per category. With KeyingTable a
// missing category is reported as models.OtherCategory; with KeyingChart it
// keeps its raw empty label.
func ComputeCategoryTotals(expenses []models.ExpenseRecord, f models.FilterContext, keying models.CategoryKeying) models.CategoryTotals {
	out := models.CategoryTotals{Keying: keying, Groups: make([]models.CategoryTotal, 0)}
	index := make(map[string]int)

	for _, e := range expenses {
		if !e.HasDate || !f.YearInRange(e.Date.Year()) || !f.MatchesCategory(e.Category) {
			continue
		}

		label := e.Category
		if keying == models.KeyingTable && label == "" {
			label = models.OtherCategory
		}

		i, ok := index[label]
		if !ok {
			i = len(out.Groups)
			index[label] = i
			out.Groups = append(out.Groups, models.CategoryTotal{Category: label})
		}
		out.Groups[i].Amount += e.Amount
		out.Total += e.Amount
	}

	return out
}

// ComputeIncomeExpenseSeries buckets payments and expenses by month over all
// loaded data, ignoring any filter. Both series share the sorted union of months.
func ComputeIncomeExpenseSeries(expenses []models.ExpenseRecord, productions []models.ProductionRecord) models.IncomeExpenseSeries {
	income := make(map[string]float64)
	spend := make(map[string]float64)

	for _, p := range productions {
		if p.HasDate {
			income[fields.MonthKey(p.Date)] += p.Payment
		}
	}
	for _, e := range expenses {
		if e.HasDate {
			spend[fields.MonthKey(e.Date)] += e.Amount
		}
	}

	months := make([]string, 0, len(income)+len(spend))
	for m := range income {
		months = append(months, m)
	}
	for m := range spend {
		if _, ok := income[m]; !ok {
			months = append(months, m)
		}
	}
	slices.Sort(months)

	out := models.IncomeExpenseSeries{
		Income:  models.TimeSeries{Granularity: models.GranularityMonth, Points: make([]models.Point, len(months))},
		Expense: models.TimeSeries{Granularity: models.GranularityMonth, Points: make([]models.Point, len(months))},
	}
	for i, m := range months {
		out.Income.Points[i] = models.Point{Period: m, Value: income[m]}
		out.Expense.Points[i] = models.Point{Period: m, Value: spend[m]}
	}
	return out
}

// ComputeMilkSeries lists one daily point per dated production record, sorted
// by date with ties kept in input order, and the per-month sums of those points.
func ComputeMilkSeries(productions []models.ProductionRecord) models.MilkSeries {
	dated := make([]models.ProductionRecord, 0, len(productions))
	for _, p := range productions {
		if p.HasDate {
			dated = append(dated, p)
		}
	}
	slices.SortStableFunc(dated, func(a, b models.ProductionRecord) int {
		return a.Date.Compare(b.Date)
	})

	daily := models.TimeSeries{Granularity: models.GranularityDay, Points: make([]models.Point, len(dated))}
	monthly := models.TimeSeries{Granularity: models.GranularityMonth, Points: make([]models.Point, 0)}
	index := make(map[string]int)

	for i, p := range dated {
		daily.Points[i] = models.Point{Period: fields.FormatDate(p.Date), Value: p.Yield}

		key := fields.MonthKey(p.Date)
		j, ok := index[key]
		if !ok {
			j = len(monthly.Points)
			index[key] = j
			monthly.Points = append(monthly.Points, models.Point{Period: key})
		}
		monthly.Points[j].Value += p.Yield
	}

	return models.MilkSeries{Daily: daily, Monthly: monthly}
}
