package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"spendwise/internal/models"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// MonthlyCSV renders the selected month's expenses as CSV, one row per
// expense. Embedded quotes in free-text fields are doubled by the encoder;
// amounts carry exactly two fractional digits.
func MonthlyCSV(expenses []models.Expense, year int, month time.Month) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Date", "Category", "Description", "Amount", "Shared", "Shared Note", "Settled"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		if !inMonth(expenses[i], year, month) {
			continue
		}

		row := []string{
			expenses[i].Date.Format("2006-01-02"),
			expenses[i].Category,
			expenses[i].Description,
			expenses[i].Amount.StringFixed(2),
			yesNo(expenses[i].IsShared),
			expenses[i].SharedNote,
			yesNo(expenses[i].IsSettled),
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFilename creates a descriptive filename like "expenses_2026_09.csv".
func ExportFilename(year int, month time.Month) string {
	return fmt.Sprintf("expenses_%04d_%02d.csv", year, int(month))
}
