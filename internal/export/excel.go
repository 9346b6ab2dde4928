package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"spendtrack/internal/core"
)

const (
	sheetSummary    = "Summary"
	sheetCategories = "Categories"
	sheetExpenses   = "Expenses"
)

// WriteMonthlyReport writes a three-sheet workbook for one month: a Summary
// sheet with headline numbers, a Categories sheet with the per-category
// breakdown and an Expenses sheet listing every transaction.
func WriteMonthlyReport(path string, summary core.MonthlySummary, expenses []core.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}
	if err := writeCategoriesSheet(f, summary); err != nil {
		return err
	}
	if err := writeExpensesSheet(f, expenses); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary core.MonthlySummary) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Month", fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)},
		{"Total", core.FormatAmount(summary.Total)},
		{"Transactions", summary.Count},
		{"Categories", len(summary.Categories)},
	}
	if err := writeRows(f, sheetSummary, rows); err != nil {
		return err
	}
	return sizeColumns(f, sheetSummary, "B", 18)
}

func writeCategoriesSheet(f *excelize.File, summary core.MonthlySummary) error {
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return fmt.Errorf("create categories sheet: %w", err)
	}

	rows := [][]any{{"Category", "Subtotal", "Percentage", "Transactions"}}
	for _, cs := range summary.Categories {
		rows = append(rows, []any{
			cs.Name,
			core.FormatAmount(cs.Subtotal),
			fmt.Sprintf("%.1f%%", cs.Percentage),
			cs.Count,
		})
	}
	if err := writeRows(f, sheetCategories, rows); err != nil {
		return err
	}
	return sizeColumns(f, sheetCategories, "D", 16)
}

func writeExpensesSheet(f *excelize.File, expenses []core.Expense) error {
	if _, err := f.NewSheet(sheetExpenses); err != nil {
		return fmt.Errorf("create expenses sheet: %w", err)
	}

	rows := [][]any{{"ID", "Date", "Category", "Amount", "Description", "Created At"}}
	for _, e := range expenses {
		rows = append(rows, []any{
			e.ID,
			e.Date.String(),
			e.Category,
			core.FormatAmount(e.Amount),
			e.Description,
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err := writeRows(f, sheetExpenses, rows); err != nil {
		return err
	}
	return sizeColumns(f, sheetExpenses, "F", 20)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func sizeColumns(f *excelize.File, sheet, lastCol string, width float64) error {
	if err := f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}
	return nil
}
