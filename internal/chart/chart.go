// Package chart renders monthly summaries as PNG images. It consumes only
// the aggregated summary structures; nothing here reads the store.
package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"spendtrack/internal/core"
)

// ErrNoData means there is nothing to draw for the requested period.
var ErrNoData = errors.New("no data to chart")

// TrendPoint is one month on the spending trend chart.
type TrendPoint struct {
	Label string // e.g. "2025-04"
	Total core.Money
}

// RenderCategoryPie draws the per-category distribution of one month as a
// pie chart PNG.
func RenderCategoryPie(w io.Writer, summary core.MonthlySummary) error {
	if summary.Total.Cents == 0 || len(summary.Categories) == 0 {
		return fmt.Errorf("pie chart for %04d-%02d: %w", summary.Year, summary.Month, ErrNoData)
	}

	values := make([]gochart.Value, 0, len(summary.Categories))
	for _, cs := range summary.Categories {
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", cs.Name, cs.Percentage),
			Value: cs.Subtotal.Units(),
		})
	}

	pie := gochart.PieChart{
		Title:  fmt.Sprintf("Spending by category %04d-%02d", summary.Year, summary.Month),
		Width:  800,
		Height: 600,
		Values: values,
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// RenderMonthlyTrend draws month totals as a bar chart PNG, one bar per
// month in the given order.
func RenderMonthlyTrend(w io.Writer, points []TrendPoint) error {
	var total int64
	for _, p := range points {
		total += p.Total.Cents
	}
	if len(points) == 0 || total == 0 {
		return fmt.Errorf("trend chart: %w", ErrNoData)
	}

	bars := make([]gochart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, gochart.Value{
			Label: p.Label,
			Value: p.Total.Units(),
		})
	}

	bc := gochart.BarChart{
		Title:    "Monthly spending",
		Width:    800,
		Height:   600,
		BarWidth: 48,
		Bars:     bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render trend chart: %w", err)
	}
	return nil
}
