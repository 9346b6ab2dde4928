package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
)

func sampleExpenses() []core.Expense {
	createdAt := time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)
	return []core.Expense{
		{
			ID:          1,
			Date:        core.NewDate(2025, 4, 10),
			Category:    "Food & Drink",
			Amount:      core.Money{Cents: 1250},
			Description: "lunch, with a comma",
			CreatedAt:   createdAt,
		},
		{
			ID:          2,
			Date:        core.NewDate(2025, 4, 9),
			Category:    "Transport",
			Amount:      core.Money{Cents: 99999},
			Description: "",
			CreatedAt:   createdAt,
		},
	}
}

func TestWriteExpensesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, sampleExpenses()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,date,category,amount,description,created_at", lines[0])
	assert.Contains(t, lines[1], "2025-04-10")
	assert.Contains(t, lines[1], "12.50")
	assert.Contains(t, lines[1], `"lunch, with a comma"`)
	assert.Contains(t, lines[2], "999.99")
}

func TestCSVRoundTrip(t *testing.T) {
	expenses := sampleExpenses()

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))

	records, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, records, len(expenses))

	for i, rec := range records {
		want := expenses[i]
		assert.Equal(t, want.Date.String(), rec.Date)
		assert.Equal(t, want.Category, rec.Category)
		assert.Equal(t, want.Description, rec.Description)

		// Amount must survive the trip with exact precision.
		back, err := core.ParseAmount(rec.Amount)
		require.NoError(t, err)
		assert.Equal(t, want.Amount.Cents, back.Cents)
	}
}

func TestReadExpensesForeignColumnOrder(t *testing.T) {
	in := strings.Join([]string{
		"amount,description,date,category",
		"10.00,coffee,2025-04-01,Food & Drink",
	}, "\n")

	records, err := ReadExpenses(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-04-01", records[0].Date)
	assert.Equal(t, "Food & Drink", records[0].Category)
	assert.Equal(t, "10.00", records[0].Amount)
	assert.Equal(t, "coffee", records[0].Description)
}

func TestReadExpensesMissingColumn(t *testing.T) {
	in := "date,category\n2025-04-01,Transport\n"
	_, err := ReadExpenses(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestReadExpensesEmptyFile(t *testing.T) {
	_, err := ReadExpenses(strings.NewReader(""))
	require.Error(t, err)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 4, 30, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "expenses_export_20250430_153000.csv", ExportFilename("expenses_export", "csv", now))
}
