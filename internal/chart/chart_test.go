package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderCategoryPie(t *testing.T) {
	summary := core.Summarize(2025, 4, []core.Expense{
		{Date: core.NewDate(2025, 4, 1), Category: "Food & Drink", Amount: core.Money{Cents: 15000}},
		{Date: core.NewDate(2025, 4, 2), Category: "Transport", Amount: core.Money{Cents: 5000}},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderCategoryPie(&buf, summary))
	assert.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRenderCategoryPieEmptyMonth(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCategoryPie(&buf, core.Summarize(2025, 4, nil))
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestRenderMonthlyTrend(t *testing.T) {
	points := []TrendPoint{
		{Label: "2025-02", Total: core.Money{Cents: 120000}},
		{Label: "2025-03", Total: core.Money{Cents: 80000}},
		{Label: "2025-04", Total: core.Money{Cents: 150000}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderMonthlyTrend(&buf, points))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRenderMonthlyTrendNoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderMonthlyTrend(&buf, nil), ErrNoData)

	zeros := []TrendPoint{{Label: "2025-04"}}
	assert.ErrorIs(t, RenderMonthlyTrend(&buf, zeros), ErrNoData)
}
