package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spendtrack/internal/core"
)

func TestWriteMonthlyReport(t *testing.T) {
	expenses := sampleExpenses()
	summary := core.Summarize(2025, 4, expenses)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteMonthlyReport(path, summary, expenses))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetSummary, sheetCategories, sheetExpenses}, f.GetSheetList())

	total, err := f.GetCellValue(sheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, core.FormatAmount(summary.Total), total)

	// Categories sheet is ordered by subtotal descending; Transport has the
	// larger share of the sample data.
	first, err := f.GetCellValue(sheetCategories, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Transport", first)

	rows, err := f.GetRows(sheetExpenses)
	require.NoError(t, err)
	require.Len(t, rows, len(expenses)+1) // header + one row per expense
	assert.Equal(t, "Date", rows[0][1])
	assert.Equal(t, "2025-04-10", rows[1][1])
}

func TestWriteMonthlyReportEmptyMonth(t *testing.T) {
	summary := core.Summarize(2025, 4, nil)

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteMonthlyReport(path, summary, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(sheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "0.00", total)
}
