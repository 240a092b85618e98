// Package models defines the domain entities for the expense tracker.
package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Theme values for the UI preference stored in UserSettings.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultReminderTime is the reminder time for new installations.
const DefaultReminderTime = "22:00"

// CurrencySymbols lists the display symbols a user can pick from.
var CurrencySymbols = []string{"$", "€", "£", "¥", "₹", "₽", "₩", "R", "kr"}

// DefaultCategories is the category list for new installations.
var DefaultCategories = []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Other"}

// Expense represents a single recorded transaction. ID, IsShared and
// CreatedAt are immutable after creation; IsSettled changes only through the
// settle/unsettle lifecycle.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	IsShared    bool            `json:"isShared"`
	SharedNote  string          `json:"sharedNote,omitempty"`
	IsSettled   bool            `json:"isSettled"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UserSettings is the singleton per-installation configuration. Category
// order is display order.
type UserSettings struct {
	ReminderTime    string   `json:"reminderTime"`
	EnableReminders bool     `json:"enableReminders"`
	Currency        string   `json:"currency"`
	Categories      []string `json:"categories"`
	Theme           string   `json:"theme"`
}

// DefaultSettings returns the hard-coded defaults that persisted payloads
// are merged on top of.
func DefaultSettings() UserSettings {
	return UserSettings{
		ReminderTime:    DefaultReminderTime,
		EnableReminders: true,
		Currency:        "$",
		Categories:      slices.Clone(DefaultCategories),
		Theme:           ThemeLight,
	}
}

// Clone returns a deep copy of the settings.
func (s UserSettings) Clone() UserSettings {
	out := s
	out.Categories = slices.Clone(s.Categories)
	return out
}

// ValidTheme reports whether theme is one of the supported values.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// ValidCurrency reports whether symbol is one of the supported symbols.
func ValidCurrency(symbol string) bool {
	return slices.Contains(CurrencySymbols, symbol)
}

// ValidReminderTime reports whether s is a well-formed "HH:MM" local time.
func ValidReminderTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Summary aggregates spending for the dashboard and shared-expenses views.
// Total, ByCategory and Transactions cover the selected month; SharedPending
// and PendingCount cover unsettled shared expenses across all time.
type Summary struct {
	Total         decimal.Decimal            `json:"total"`
	ByCategory    map[string]decimal.Decimal `json:"byCategory"`
	Transactions  int                        `json:"transactions"`
	SharedPending decimal.Decimal            `json:"sharedPending"`
	PendingCount  int                        `json:"pendingCount"`
}
