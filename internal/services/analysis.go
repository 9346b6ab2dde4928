package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// MonthTotal is one month's point in a spending trend.
type MonthTotal struct {
	Year  int
	Month int
	Total core.Money
	Count int
}

// BudgetStatus compares a month's spending in a category against its limit.
type BudgetStatus struct {
	Category string
	Limit    core.Money
	Spent    core.Money
	Over     bool
}

// MonthlySummary loads one month of expenses and aggregates them.
func (s *ExpenseService) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{Year: year, Month: month})
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("load month %d-%02d: %w", year, month, err)
	}
	return core.Summarize(year, month, expenses), nil
}

// MonthlyTrend returns totals for the n months ending at year+month, oldest
// first. The months are fetched concurrently; each slot lands at a fixed
// index so the result order does not depend on completion order.
func (s *ExpenseService) MonthlyTrend(ctx context.Context, year, month, n int) ([]MonthTotal, error) {
	if n < 1 {
		return nil, fmt.Errorf("trend length %d: must be at least 1", n)
	}

	totals := make([]MonthTotal, n)
	g, gctx := errgroup.WithContext(ctx)

	y, m := year, month
	for i := n - 1; i >= 0; i-- {
		i, y, m := i, y, m
		g.Go(func() error {
			summary, err := s.MonthlySummary(gctx, y, m)
			if err != nil {
				return err
			}
			totals[i] = MonthTotal{Year: y, Month: m, Total: summary.Total, Count: summary.Count}
			return nil
		})
		y, m = core.PreviousMonth(y, m)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}

// BudgetStatuses reports, for every category with a budget limit, how the
// given month's spending compares to it.
func (s *ExpenseService) BudgetStatuses(ctx context.Context, year, month int) ([]BudgetStatus, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	summary, err := s.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]core.Money, len(summary.Categories))
	for _, cs := range summary.Categories {
		spent[cs.Name] = cs.Subtotal
	}

	var statuses []BudgetStatus
	for _, c := range cats {
		if c.BudgetLimit == nil {
			continue
		}
		used := spent[c.Name]
		statuses = append(statuses, BudgetStatus{
			Category: c.Name,
			Limit:    *c.BudgetLimit,
			Spent:    used,
			Over:     used.Cents > c.BudgetLimit.Cents,
		})
	}
	return statuses, nil
}
