package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// CategoryPieChart creates a pie chart showing the month's spending split by
// category. Returns PNG image bytes.
func CategoryPieChart(expenses []models.Expense, year int, month time.Month) ([]byte, error) {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if !inMonth(e, year, month) {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("no expenses to chart for %04d-%02d", year, int(month))
	}

	// Stable slice order so renders are reproducible.
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, 0, len(names))
	for _, name := range names {
		values = append(values, totals[name].InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Spending by Category - %s %d", month, year),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
