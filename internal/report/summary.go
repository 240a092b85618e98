// Package report provides pure projections of the expense list: the monthly
// dashboard summary, the CSV export and the category breakdown chart.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// inMonth reports whether the expense's user-chosen date falls in the given
// calendar month.
func inMonth(e models.Expense, year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}

// MonthlySummary aggregates the given month's spending plus the all-time
// pending shared total.
func MonthlySummary(expenses []models.Expense, year int, month time.Month) models.Summary {
	summary := models.Summary{
		ByCategory: make(map[string]decimal.Decimal),
	}

	for _, e := range expenses {
		if e.IsShared && !e.IsSettled {
			summary.SharedPending = summary.SharedPending.Add(e.Amount)
			summary.PendingCount++
		}
		if !inMonth(e, year, month) {
			continue
		}
		summary.Total = summary.Total.Add(e.Amount)
		summary.Transactions++
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
	}

	return summary
}
