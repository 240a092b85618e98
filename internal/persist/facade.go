// Package persist unifies the configured stores behind one interface for the
// two persisted aggregates: the expense list and the user settings. Loads
// degrade to empty/default values and saves are best-effort; storage
// failures are logged, never returned.
package persist

import (
	"context"
	"encoding/json"
	"errors"

	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/store"
)

// Keys under which the aggregates are persisted, in both stores.
const (
	expensesKey = "expenses"
	settingsKey = "settings"
)

// Facade is the single persistence entry point for the ledger and the
// settings store. The read store is expected to be the fallback composition
// and the write store the mirror when a remote store is configured.
type Facade struct {
	read  store.Store
	write store.Store
}

// New creates a facade over the given read and write stores. They may be the
// same store in local-only mode.
func New(read, write store.Store) *Facade {
	return &Facade{read: read, write: write}
}

// LoadExpenses returns the persisted expense list. Absence, read failure and
// malformed payloads all yield an empty list.
func (f *Facade) LoadExpenses(ctx context.Context) []models.Expense {
	raw, err := f.read.Get(ctx, expensesKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Log.Warn().Err(err).Msg("Failed to load expenses, starting empty")
		}
		return nil
	}

	var expenses []models.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		logger.Log.Warn().Err(err).Msg("Malformed expenses payload, starting empty")
		return nil
	}
	return expenses
}

// LoadSettings returns the persisted settings shallow-merged on top of the
// defaults: fields absent from the payload keep their default value, present
// fields (including the category list) replace it wholesale. Absence, read
// failure and malformed payloads yield pure defaults.
func (f *Facade) LoadSettings(ctx context.Context) models.UserSettings {
	settings := models.DefaultSettings()

	raw, err := f.read.Get(ctx, settingsKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Log.Warn().Err(err).Msg("Failed to load settings, using defaults")
		}
		return settings
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		logger.Log.Warn().Err(err).Msg("Malformed settings payload, using defaults")
		return models.DefaultSettings()
	}
	return settings
}

// SaveExpenses persists the expense list. Failures are logged and swallowed;
// the persisted state simply stays stale until the next successful flush.
func (f *Facade) SaveExpenses(ctx context.Context, expenses []models.Expense) {
	if expenses == nil {
		expenses = []models.Expense{}
	}
	raw, err := json.Marshal(expenses)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode expenses")
		return
	}
	if err := f.write.Put(ctx, expensesKey, raw); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to save expenses")
	}
}

// SaveSettings persists the settings value, best-effort.
func (f *Facade) SaveSettings(ctx context.Context, settings models.UserSettings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode settings")
		return
	}
	if err := f.write.Put(ctx, settingsKey, raw); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to save settings")
	}
}
