package dashboard

import (
	"github.com/mamadbah2/dairy/internal/chart"
)

// Chart targets rendered on every analytics refresh.
const (
	TargetExpenseBar    = "expenseBarChart"
	TargetExpensePie    = "expensePieChart"
	TargetIncomeExpense = "incomeExpenseChart"
	TargetMilkDaily     = "milkLineChart"
	TargetMilkMonthly   = "monthlyMilkChart"
)

func renderCharts(sink chart.Sink, b Bundle) {
	labels := b.ExpenseChart.Labels()
	values := b.ExpenseChart.Values()

	sink.Render(TargetExpenseBar, chart.Chart{
		Kind:   chart.KindBar,
		Labels: labels,
		Series: []chart.Series{{Values: values, Color: "skyblue"}},
	})

	sink.Render(TargetExpensePie, chart.Chart{
		Kind:   chart.KindPie,
		Labels: labels,
		Series: []chart.Series{{Values: values}},
	})

	sink.Render(TargetIncomeExpense, chart.Chart{
		Kind:   chart.KindLine,
		Labels: b.IncomeExpense.Income.Labels(),
		Series: []chart.Series{
			{Name: "Income", Values: b.IncomeExpense.Income.Values(), Color: "green"},
			{Name: "Expense", Values: b.IncomeExpense.Expense.Values(), Color: "red"},
		},
	})

	sink.Render(TargetMilkDaily, chart.Chart{
		Kind:   chart.KindLine,
		Labels: b.Milk.Daily.Labels(),
		Series: []chart.Series{{Name: "Daily Milk", Values: b.Milk.Daily.Values(), Color: "blue"}},
	})

	sink.Render(TargetMilkMonthly, chart.Chart{
		Kind:   chart.KindLine,
		Labels: b.Milk.Monthly.Labels(),
		Series: []chart.Series{{Name: "Monthly Milk", Values: b.Milk.Monthly.Values(), Color: "purple"}},
	})
}
