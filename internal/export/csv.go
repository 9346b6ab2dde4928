// Package export serializes expense data for external consumption: CSV for
// plain tabular dumps and re-import, Excel for the monthly report workbook.
// It only reads fully-populated core structures and never reaches into the
// store itself.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"spendtrack/internal/core"
)

var csvHeader = []string{"id", "date", "category", "amount", "description", "created_at"}

// Record is one parsed CSV row, still in raw string form; validation happens
// in the service layer when the row is re-ingested.
type Record struct {
	Date        string
	Category    string
	Amount      string
	Description string
}

// WriteExpenses writes expenses as UTF-8 CSV, one transaction per line.
// Amounts use the canonical two-decimal form so a re-parse loses nothing.
func WriteExpenses(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			core.FormatAmount(e.Amount),
			e.Description,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for expense %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadExpenses parses a CSV produced by WriteExpenses (or any file with at
// least date, category, amount and description columns, matched by header
// name). id and created_at columns are ignored: the store assigns fresh ones
// on import.
func ReadExpenses(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "category", "amount"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv missing %q column", required)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec := Record{
			Date:     field(row, col, "date"),
			Category: field(row, col, "category"),
			Amount:   field(row, col, "amount"),
		}
		if _, ok := col["description"]; ok {
			rec.Description = field(row, col, "description")
		}
		records = append(records, rec)
	}
	return records, nil
}

func field(row []string, col map[string]int, name string) string {
	i := col[name]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// ExportFilename builds a timestamped file name like the exports directory
// has always used, e.g. expenses_export_20250430_153000.csv.
func ExportFilename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), ext)
}
