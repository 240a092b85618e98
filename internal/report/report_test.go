package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"spendwise/internal/models"
)

func septemberExpenses() []models.Expense {
	sept := func(day int) time.Time {
		return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
	}
	return []models.Expense{
		{ID: "e1", Amount: decimal.RequireFromString("42.50"), Category: "Food", Description: "Lunch", Date: sept(1), IsShared: true},
		{ID: "e2", Amount: decimal.RequireFromString("8.00"), Category: "Transport", Description: "Bus", Date: sept(3)},
		{ID: "e3", Amount: decimal.RequireFromString("12.25"), Category: "Food", Description: "Dinner", Date: sept(10), IsShared: true, IsSettled: true},
		// Different month, counted only in the pending total.
		{ID: "e4", Amount: decimal.RequireFromString("99.99"), Category: "Bills", Description: "Power", Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), IsShared: true},
	}
}

func TestMonthlySummary(t *testing.T) {
	t.Parallel()

	t.Run("aggregates the selected month", func(t *testing.T) {
		t.Parallel()
		summary := MonthlySummary(septemberExpenses(), 2026, time.September)

		require.True(t, summary.Total.Equal(decimal.RequireFromString("62.75")))
		require.Equal(t, 3, summary.Transactions)
		require.True(t, summary.ByCategory["Food"].Equal(decimal.RequireFromString("54.75")))
		require.True(t, summary.ByCategory["Transport"].Equal(decimal.RequireFromString("8.00")))
	})

	t.Run("pending shared spans all months and skips settled", func(t *testing.T) {
		t.Parallel()
		summary := MonthlySummary(septemberExpenses(), 2026, time.September)

		require.True(t, summary.SharedPending.Equal(decimal.RequireFromString("142.49")))
		require.Equal(t, 2, summary.PendingCount)
	})

	t.Run("settling decreases the pending total", func(t *testing.T) {
		t.Parallel()
		expenses := septemberExpenses()
		before := MonthlySummary(expenses, 2026, time.September)

		expenses[0].IsSettled = true
		after := MonthlySummary(expenses, 2026, time.September)

		require.True(t, before.SharedPending.Sub(after.SharedPending).Equal(decimal.RequireFromString("42.50")))
		require.Equal(t, before.PendingCount-1, after.PendingCount)
	})

	t.Run("empty month", func(t *testing.T) {
		t.Parallel()
		summary := MonthlySummary(septemberExpenses(), 2027, time.January)
		require.True(t, summary.Total.IsZero())
		require.Zero(t, summary.Transactions)
		require.Empty(t, summary.ByCategory)
	})
}

func TestMonthlyCSV(t *testing.T) {
	t.Parallel()

	t.Run("writes header and month rows", func(t *testing.T) {
		t.Parallel()
		data, err := MonthlyCSV(septemberExpenses(), 2026, time.September)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4) // header + 3 September rows

		require.Equal(t, []string{"Date", "Category", "Description", "Amount", "Shared", "Shared Note", "Settled"}, records[0])
		require.Equal(t, []string{"2026-09-01", "Food", "Lunch", "42.50", "Yes", "", "No"}, records[1])
		require.Equal(t, []string{"2026-09-10", "Food", "Dinner", "12.25", "Yes", "", "Yes"}, records[3])
	})

	t.Run("amounts always carry two fractional digits", func(t *testing.T) {
		t.Parallel()
		expenses := []models.Expense{{
			Amount: decimal.RequireFromString("5"), Category: "Food", Description: "Snack",
			Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		}}
		data, err := MonthlyCSV(expenses, 2026, time.September)
		require.NoError(t, err)
		require.Contains(t, string(data), "5.00")
	})

	t.Run("doubles embedded quotes in free text", func(t *testing.T) {
		t.Parallel()
		expenses := []models.Expense{{
			Amount:      decimal.RequireFromString("10"),
			Category:    "Food",
			Description: `Lunch at "Le Cafe"`,
			SharedNote:  `Alice said "split it"`,
			IsShared:    true,
			Date:        time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		}}
		data, err := MonthlyCSV(expenses, 2026, time.September)
		require.NoError(t, err)
		require.Contains(t, string(data), `"Lunch at ""Le Cafe"""`)
		require.Contains(t, string(data), `"Alice said ""split it"""`)

		// The encoded form still parses back to the original text.
		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Equal(t, `Lunch at "Le Cafe"`, records[1][2])
		require.Equal(t, `Alice said "split it"`, records[1][5])
	})

	t.Run("empty month yields header only", func(t *testing.T) {
		t.Parallel()
		data, err := MonthlyCSV(septemberExpenses(), 2027, time.January)
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "expenses_2026_09.csv", ExportFilename(2026, time.September))
	require.Equal(t, "expenses_2026_12.csv", ExportFilename(2026, time.December))
}

func TestCategoryPieChart(t *testing.T) {
	t.Parallel()

	t.Run("renders PNG bytes", func(t *testing.T) {
		t.Parallel()
		data, err := CategoryPieChart(septemberExpenses(), 2026, time.September)
		require.NoError(t, err)
		require.NotEmpty(t, data)
		// PNG signature.
		require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
	})

	t.Run("errors when the month has no expenses", func(t *testing.T) {
		t.Parallel()
		_, err := CategoryPieChart(septemberExpenses(), 2027, time.January)
		require.Error(t, err)
	})
}
