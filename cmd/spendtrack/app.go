package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"spendtrack/internal/chart"
	"spendtrack/internal/config"
	"spendtrack/internal/core"
	"spendtrack/internal/export"
	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

// app drives the interactive numbered menu. All state lives in the store;
// the app only holds handles.
type app struct {
	service *services.ExpenseService
	cfg     *config.Config
	logger  *applog.Logger
	in      *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

func newApp(service *services.ExpenseService, cfg *config.Config, logger *applog.Logger, in io.Reader, out io.Writer) *app {
	return &app{
		service: service,
		cfg:     cfg,
		logger:  logger.WithComponent("menu"),
		in:      bufio.NewScanner(in),
		out:     out,
		now:     time.Now,
	}
}

func (a *app) Run(ctx context.Context) error {
	a.printf("spendtrack — personal expense tracker\n")

	for {
		a.printf("\n")
		a.printf(" 1. Add expense\n")
		a.printf(" 2. List expenses\n")
		a.printf(" 3. Monthly summary\n")
		a.printf(" 4. Charts\n")
		a.printf(" 5. Export\n")
		a.printf(" 6. Import CSV\n")
		a.printf(" 7. Categories\n")
		a.printf(" 8. Edit expense\n")
		a.printf(" 9. Delete expense\n")
		a.printf(" 0. Exit\n")

		choice, ok := a.prompt("Choose")
		if !ok {
			return nil // input closed, treat as exit
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = a.addExpense(ctx)
		case "2":
			err = a.listExpenses(ctx)
		case "3":
			err = a.monthlySummary(ctx)
		case "4":
			err = a.charts(ctx)
		case "5":
			err = a.exportData(ctx)
		case "6":
			err = a.importCSV(ctx)
		case "7":
			err = a.categories(ctx)
		case "8":
			err = a.editExpense(ctx)
		case "9":
			err = a.deleteExpense(ctx)
		case "0", "q", "exit":
			a.printf("Bye.\n")
			return nil
		default:
			a.printf("Unknown choice %q\n", choice)
			continue
		}

		if err != nil {
			// Storage failures abort the operation but never the app.
			a.logger.Error("Operation failed", "error", err)
			a.printf("Error: %v\n", err)
		}
	}
}

func (a *app) addExpense(ctx context.Context) error {
	cats, err := a.service.Categories(ctx)
	if err != nil {
		return err
	}
	a.printCategories(cats)

	raw := services.RawExpense{}
	raw.Date, _ = a.prompt("Date (YYYY-MM-DD, DD/MM/YYYY, today, yesterday; empty = today)")
	raw.Category, _ = a.prompt("Category (name, number or alias)")
	raw.Amount, _ = a.prompt("Amount")
	raw.Description, _ = a.prompt("Description (optional)")

	stored, err := a.service.AddExpense(ctx, raw)
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		a.printf("Rejected: %v\n", verr)
		return nil // recoverable, back to the menu
	}
	if err != nil {
		return err
	}

	a.printf("Saved expense #%d: %s %s %s\n",
		stored.ID, stored.Date, stored.Category, core.FormatAmount(stored.Amount))

	a.warnBudget(ctx, stored)
	return nil
}

// warnBudget tells the user when the new expense pushed its category over
// the configured limit. Purely informative; the expense is already saved.
func (a *app) warnBudget(ctx context.Context, e core.Expense) {
	statuses, err := a.service.BudgetStatuses(ctx, e.Date.Year(), e.Date.Month())
	if err != nil {
		a.logger.Warn("Budget check failed", "error", err)
		return
	}
	for _, st := range statuses {
		if st.Category == e.Category && st.Over {
			a.printf("Note: %s is over budget this month (%s of %s spent)\n",
				st.Category, core.FormatAmount(st.Spent), core.FormatAmount(st.Limit))
		}
	}
}

func (a *app) listExpenses(ctx context.Context) error {
	filter, err := a.promptFilter()
	if err != nil {
		a.printf("Rejected: %v\n", err)
		return nil
	}

	expenses, err := a.service.ListExpenses(ctx, filter)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		a.printf("No expenses found.\n")
		return nil
	}

	a.printf("%-6s %-12s %-16s %12s  %s\n", "ID", "DATE", "CATEGORY", "AMOUNT", "DESCRIPTION")
	for _, e := range expenses {
		a.printf("%-6d %-12s %-16s %12s  %s\n",
			e.ID, e.Date, e.Category, core.FormatAmount(e.Amount), e.Description)
	}
	return nil
}

func (a *app) monthlySummary(ctx context.Context) error {
	year, month, ok := a.promptMonth()
	if !ok {
		return nil
	}

	summary, err := a.service.MonthlySummary(ctx, year, month)
	if err != nil {
		return err
	}

	a.printf("Summary for %04d-%02d: total %s over %d transactions\n",
		year, month, core.FormatAmount(summary.Total), summary.Count)
	for _, cs := range summary.Categories {
		a.printf("  %-16s %12s  %5.1f%%  (%d)\n",
			cs.Name, core.FormatAmount(cs.Subtotal), cs.Percentage, cs.Count)
	}
	return nil
}

func (a *app) charts(ctx context.Context) error {
	choice, _ := a.prompt("Chart: 1 = category pie, 2 = six-month trend")

	switch strings.TrimSpace(choice) {
	case "1":
		year, month, ok := a.promptMonth()
		if !ok {
			return nil
		}
		summary, err := a.service.MonthlySummary(ctx, year, month)
		if err != nil {
			return err
		}
		name := export.ExportFilename(fmt.Sprintf("expense_chart_%04d_%02d", year, month), "png", a.now())
		return a.writeChart(name, func(w io.Writer) error {
			return chart.RenderCategoryPie(w, summary)
		})

	case "2":
		now := a.now()
		trend, err := a.service.MonthlyTrend(ctx, now.Year(), int(now.Month()), 6)
		if err != nil {
			return err
		}
		points := make([]chart.TrendPoint, len(trend))
		for i, mt := range trend {
			points[i] = chart.TrendPoint{
				Label: fmt.Sprintf("%04d-%02d", mt.Year, mt.Month),
				Total: mt.Total,
			}
		}
		name := export.ExportFilename("expense_trend", "png", a.now())
		return a.writeChart(name, func(w io.Writer) error {
			return chart.RenderMonthlyTrend(w, points)
		})

	default:
		a.printf("Unknown chart choice.\n")
		return nil
	}
}

func (a *app) writeChart(name string, render func(io.Writer) error) error {
	path := filepath.Join(a.cfg.ChartDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		os.Remove(path)
		if errors.Is(err, chart.ErrNoData) {
			a.printf("Nothing to chart for that period.\n")
			return nil
		}
		return err
	}
	a.printf("Chart written to %s\n", path)
	return nil
}

func (a *app) exportData(ctx context.Context) error {
	choice, _ := a.prompt("Export: 1 = all expenses to CSV, 2 = monthly Excel report")

	switch strings.TrimSpace(choice) {
	case "1":
		expenses, err := a.service.ListExpenses(ctx, storage.ExpenseFilter{})
		if err != nil {
			return err
		}
		path := filepath.Join(a.cfg.ExportDir, export.ExportFilename("expenses_export", "csv", a.now()))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		if err := export.WriteExpenses(f, expenses); err != nil {
			return err
		}
		a.printf("Exported %d expenses to %s\n", len(expenses), path)
		return nil

	case "2":
		year, month, ok := a.promptMonth()
		if !ok {
			return nil
		}
		summary, err := a.service.MonthlySummary(ctx, year, month)
		if err != nil {
			return err
		}
		expenses, err := a.service.ListExpenses(ctx, storage.ExpenseFilter{Year: year, Month: month})
		if err != nil {
			return err
		}
		name := export.ExportFilename(fmt.Sprintf("monthly_report_%04d_%02d", year, month), "xlsx", a.now())
		path := filepath.Join(a.cfg.ExportDir, name)
		if err := export.WriteMonthlyReport(path, summary, expenses); err != nil {
			return err
		}
		a.printf("Report written to %s\n", path)
		return nil

	default:
		a.printf("Unknown export choice.\n")
		return nil
	}
}

func (a *app) importCSV(ctx context.Context) error {
	path, ok := a.prompt("CSV file to import")
	if !ok || strings.TrimSpace(path) == "" {
		return nil
	}

	f, err := os.Open(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	records, err := export.ReadExpenses(f)
	if err != nil {
		return err
	}

	rows := make([]services.RawExpense, len(records))
	for i, rec := range records {
		rows[i] = services.RawExpense{
			Date:        rec.Date,
			Category:    rec.Category,
			Amount:      rec.Amount,
			Description: rec.Description,
		}
	}

	n, err := a.service.ImportExpenses(ctx, rows)
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		a.printf("Import rejected: %v (nothing was imported)\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Imported %d expenses.\n", n)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	cats, err := a.service.Categories(ctx)
	if err != nil {
		return err
	}
	a.printCategories(cats)

	choice, _ := a.prompt("Categories: 1 = add, 2 = set budget, 3 = delete, empty = back")
	switch strings.TrimSpace(choice) {
	case "":
		return nil
	case "1":
		name, _ := a.prompt("New category name")
		budget, _ := a.prompt("Budget limit (optional)")
		created, err := a.service.AddCategory(ctx, strings.TrimSpace(name), strings.TrimSpace(budget))
		if err != nil {
			a.printf("Rejected: %v\n", err)
			return nil
		}
		a.printf("Created category %s\n", created.Name)
	case "2":
		name, _ := a.prompt("Category name")
		budget, _ := a.prompt("Budget limit (empty clears it)")
		if err := a.service.SetCategoryBudget(ctx, strings.TrimSpace(name), strings.TrimSpace(budget)); err != nil {
			a.printf("Rejected: %v\n", err)
			return nil
		}
		a.printf("Budget updated.\n")
	case "3":
		name, _ := a.prompt("Category name to delete")
		err := a.service.DeleteCategory(ctx, strings.TrimSpace(name))
		if errors.Is(err, storage.ErrCategoryInUse) {
			a.printf("Cannot delete: expenses still reference this category.\n")
			return nil
		}
		if err != nil {
			a.printf("Rejected: %v\n", err)
			return nil
		}
		a.printf("Category deleted.\n")
	default:
		a.printf("Unknown choice.\n")
	}
	return nil
}

func (a *app) editExpense(ctx context.Context) error {
	id, ok := a.promptID()
	if !ok {
		return nil
	}

	current, err := a.service.GetExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		a.printf("No expense with id %d.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Editing #%d: %s %s %s %q (empty keeps the current value)\n",
		current.ID, current.Date, current.Category, core.FormatAmount(current.Amount), current.Description)

	raw := services.RawExpense{
		Date:        current.Date.String(),
		Category:    current.Category,
		Amount:      core.FormatAmount(current.Amount),
		Description: current.Description,
	}
	if v, _ := a.prompt("Date"); strings.TrimSpace(v) != "" {
		raw.Date = v
	}
	if v, _ := a.prompt("Category"); strings.TrimSpace(v) != "" {
		raw.Category = v
	}
	if v, _ := a.prompt("Amount"); strings.TrimSpace(v) != "" {
		raw.Amount = v
	}
	if v, _ := a.prompt("Description"); strings.TrimSpace(v) != "" {
		raw.Description = v
	}

	err = a.service.UpdateExpense(ctx, id, raw)
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		a.printf("Rejected: %v\n", verr)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Expense #%d updated.\n", id)
	return nil
}

func (a *app) deleteExpense(ctx context.Context) error {
	id, ok := a.promptID()
	if !ok {
		return nil
	}
	err := a.service.DeleteExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		a.printf("No expense with id %d.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Expense #%d deleted.\n", id)
	return nil
}

func (a *app) printCategories(cats []core.Category) {
	a.printf("Categories:\n")
	for i, c := range cats {
		if c.BudgetLimit != nil {
			a.printf(" %2d. %s (budget %s)\n", i+1, c.Name, core.FormatAmount(*c.BudgetLimit))
		} else {
			a.printf(" %2d. %s\n", i+1, c.Name)
		}
	}
}

// promptFilter asks for optional list filters; empty answers mean no filter.
func (a *app) promptFilter() (storage.ExpenseFilter, error) {
	var filter storage.ExpenseFilter

	if v, _ := a.prompt("Month (YYYY-MM, empty = no month filter)"); strings.TrimSpace(v) != "" {
		t, err := time.Parse("2006-01", strings.TrimSpace(v))
		if err != nil {
			return filter, &core.ValidationError{Field: "month", Reason: "use YYYY-MM", Err: core.ErrInvalidDate}
		}
		filter.Year, filter.Month = t.Year(), int(t.Month())
	}
	if v, _ := a.prompt("Category (empty = all)"); strings.TrimSpace(v) != "" {
		filter.Category = strings.TrimSpace(v)
	}
	return filter, nil
}

// promptMonth asks for a month, defaulting to the current one.
func (a *app) promptMonth() (int, int, bool) {
	v, ok := a.prompt("Month (YYYY-MM, empty = current)")
	if !ok {
		return 0, 0, false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		now := a.now()
		return now.Year(), int(now.Month()), true
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		a.printf("Rejected: use YYYY-MM\n")
		return 0, 0, false
	}
	return t.Year(), int(t.Month()), true
}

func (a *app) promptID() (int64, bool) {
	v, ok := a.prompt("Expense id")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id < 1 {
		a.printf("Rejected: id must be a positive number\n")
		return 0, false
	}
	return id, true
}

func (a *app) prompt(label string) (string, bool) {
	a.printf("%s: ", label)
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
