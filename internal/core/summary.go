package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategorySummary is one category's slice of a monthly total.
type CategorySummary struct {
	Name       string
	Subtotal   Money
	Percentage float64 // share of the month total, one decimal place
	Count      int
}

// MonthlySummary aggregates one month of expenses.
type MonthlySummary struct {
	Year       int
	Month      int // 1-12
	Total      Money
	Count      int
	Categories []CategorySummary
}

// Summarize computes the monthly summary for a set of expense records.
//
// Categories are ordered by subtotal descending, ties alphabetically, so
// identical input sets always produce identical output. An empty input
// yields a zero total and no categories; percentages are 0.0 whenever the
// total is zero.
func Summarize(year, month int, expenses []Expense) MonthlySummary {
	summary := MonthlySummary{Year: year, Month: month}

	subtotals := make(map[string]*CategorySummary)
	for _, e := range expenses {
		cs, ok := subtotals[e.Category]
		if !ok {
			cs = &CategorySummary{Name: e.Category}
			subtotals[e.Category] = cs
		}
		cs.Subtotal = cs.Subtotal.Add(e.Amount)
		cs.Count++
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++
	}

	for _, cs := range subtotals {
		cs.Percentage = percentage(cs.Subtotal, summary.Total)
		summary.Categories = append(summary.Categories, *cs)
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Subtotal.Cents != b.Subtotal.Cents {
			return a.Subtotal.Cents > b.Subtotal.Cents
		}
		return a.Name < b.Name
	})

	return summary
}

// percentage computes part/total*100 rounded half-up to one decimal place.
// A zero total yields 0.0 rather than a division by zero.
func percentage(part, total Money) float64 {
	if total.Cents == 0 {
		return 0.0
	}
	pct := decimal.NewFromInt(part.Cents).
		Div(decimal.NewFromInt(total.Cents)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := pct.Float64()
	return f
}
