// Package settings holds the singleton user configuration and applies
// in-place field updates, each scheduling a flush through the persistence
// facade. Category edits coordinate with the expense ledger so a rename
// always rewrites both the list entry and the matching expense records.
package settings

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"spendwise/internal/models"
)

// Validation errors returned before any mutation takes place.
var (
	ErrInvalidTheme        = errors.New("theme must be light or dark")
	ErrInvalidCurrency     = errors.New("unsupported currency symbol")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
	ErrEmptyCategory       = errors.New("category name is required")
	ErrDuplicateCategory   = errors.New("category already exists")
)

// Saver persists a snapshot of the settings value.
type Saver interface {
	SaveSettings(ctx context.Context, settings models.UserSettings)
}

// CategoryRenamer propagates a category rename to the expense records.
// Implemented by the ledger.
type CategoryRenamer interface {
	RenameCategory(oldLabel, newLabel string)
}

// Store holds the in-memory settings value.
type Store struct {
	mu       sync.Mutex
	settings models.UserSettings
	saver    Saver
	renamer  CategoryRenamer
	flushWG  sync.WaitGroup
}

// New seeds the store with the loaded settings. The value must come from a
// completed persistence load.
func New(initial models.UserSettings, saver Saver, renamer CategoryRenamer) *Store {
	return &Store{settings: initial.Clone(), saver: saver, renamer: renamer}
}

// Settings returns a copy of the current value.
func (s *Store) Settings() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// HasCategory reports whether label is in the category list.
func (s *Store) HasCategory(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.settings.Categories, label)
}

// SetTheme updates the theme. The store only records the new value; any
// visual consequence belongs to whoever observes the settings.
func (s *Store) SetTheme(theme string) error {
	if !models.ValidTheme(theme) {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Theme = theme
	s.flushLocked()
	return nil
}

// SetCurrency updates the display currency symbol.
func (s *Store) SetCurrency(symbol string) error {
	if !models.ValidCurrency(symbol) {
		return ErrInvalidCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Currency = symbol
	s.flushLocked()
	return nil
}

// SetReminders updates the reminder time and toggle together.
func (s *Store) SetReminders(reminderTime string, enabled bool) error {
	if !models.ValidReminderTime(reminderTime) {
		return ErrInvalidReminderTime
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ReminderTime = reminderTime
	s.settings.EnableReminders = enabled
	s.flushLocked()
	return nil
}

// AddCategory appends a new category label. Duplicates are rejected so the
// list stays unique.
func (s *Store) AddCategory(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return ErrEmptyCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.settings.Categories, label) {
		return ErrDuplicateCategory
	}
	s.settings.Categories = append(s.settings.Categories, label)
	s.flushLocked()
	return nil
}

// RenameCategory rewrites the list entry in place (position preserved) and
// propagates the rename to the ledger in the same call. Renaming a label to
// itself or renaming an absent label is a no-op; renaming onto an existing
// label is rejected.
func (s *Store) RenameCategory(oldLabel, newLabel string) error {
	newLabel = strings.TrimSpace(newLabel)
	if newLabel == "" {
		return ErrEmptyCategory
	}
	if oldLabel == newLabel {
		return nil
	}

	s.mu.Lock()
	i := slices.Index(s.settings.Categories, oldLabel)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	if slices.Contains(s.settings.Categories, newLabel) {
		s.mu.Unlock()
		return ErrDuplicateCategory
	}
	s.settings.Categories[i] = newLabel
	s.flushLocked()
	s.mu.Unlock()

	// The ledger rewrite is issued together with the list rewrite, never
	// one without the other.
	s.renamer.RenameCategory(oldLabel, newLabel)
	return nil
}

// DeleteCategory removes the label from the list only. Expenses keep the
// now-orphaned label.
func (s *Store) DeleteCategory(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.settings.Categories, label)
	if i < 0 {
		return
	}
	s.settings.Categories = slices.Delete(s.settings.Categories, i, i+1)
	s.flushLocked()
}

// flushLocked schedules an asynchronous flush of the value as it is right
// now; see the ledger for the snapshot semantics.
func (s *Store) flushLocked() {
	snapshot := s.settings.Clone()
	s.flushWG.Add(1)
	go func() {
		defer s.flushWG.Done()
		s.saver.SaveSettings(context.Background(), snapshot)
	}()
}

// Wait blocks until all scheduled flushes have completed.
func (s *Store) Wait() {
	s.flushWG.Wait()
}
