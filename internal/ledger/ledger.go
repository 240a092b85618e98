// Package ledger maintains the authoritative in-memory sequence of expense
// records. Mutations run synchronously against the sequence and schedule
// independent fire-and-forget flushes to the persistence facade; callers see
// the new in-memory state without waiting for durability.
package ledger

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// Validation errors returned before any mutation takes place.
var (
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidAmount    = errors.New("amount must be a non-negative number")
)

// Saver persists a snapshot of the expense list. Implemented by the
// persistence facade; failures are its concern, not the ledger's.
type Saver interface {
	SaveExpenses(ctx context.Context, expenses []models.Expense)
}

// Draft carries the user-provided fields for a new expense. Amount arrives
// as the raw input string and is validated here.
type Draft struct {
	Amount      string
	Category    string
	Description string
	Date        time.Time
	IsShared    bool
	SharedNote  string
}

// Patch carries optional replacement values for an edit. Nil fields are left
// unchanged; ID, CreatedAt, IsShared and IsSettled can never be patched.
type Patch struct {
	Amount      *string
	Category    *string
	Description *string
	Date        *time.Time
	SharedNote  *string
}

// Ledger is the in-memory expense collection, most-recent-first.
type Ledger struct {
	mu       sync.Mutex
	expenses []models.Expense
	saver    Saver
	flushWG  sync.WaitGroup

	now   func() time.Time
	newID func() string
}

// New seeds a ledger with the loaded expense list. The list must come from a
// completed persistence load; the ledger itself never reads storage.
func New(initial []models.Expense, saver Saver) *Ledger {
	return &Ledger{
		expenses: slices.Clone(initial),
		saver:    saver,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// Add validates the draft, constructs a new expense with a fresh id and
// prepends it to the sequence. The shared note is kept only for shared
// expenses.
func (l *Ledger) Add(draft Draft) (models.Expense, error) {
	amount, err := parseAmount(draft.Amount)
	if err != nil {
		return models.Expense{}, err
	}
	if strings.TrimSpace(draft.Description) == "" {
		return models.Expense{}, ErrEmptyDescription
	}

	date := draft.Date
	if date.IsZero() {
		date = l.now()
	}
	sharedNote := ""
	if draft.IsShared {
		sharedNote = draft.SharedNote
	}

	expense := models.Expense{
		ID:          l.newID(),
		Amount:      amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        date,
		IsShared:    draft.IsShared,
		SharedNote:  sharedNote,
		IsSettled:   false,
		CreatedAt:   l.now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append([]models.Expense{expense}, l.expenses...)
	l.flushLocked()
	return expense, nil
}

// Edit replaces fields of the matching record per the patch. An unknown id
// is a silent no-op; an invalid patch is rejected before any mutation.
func (l *Ledger) Edit(id string, patch Patch) error {
	var amount *decimal.Decimal
	if patch.Amount != nil {
		parsed, err := parseAmount(*patch.Amount)
		if err != nil {
			return err
		}
		amount = &parsed
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return ErrEmptyDescription
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID != id {
			continue
		}
		expense := &l.expenses[i]
		if amount != nil {
			expense.Amount = *amount
		}
		if patch.Category != nil {
			expense.Category = *patch.Category
		}
		if patch.Description != nil {
			expense.Description = *patch.Description
		}
		if patch.Date != nil {
			expense.Date = *patch.Date
		}
		if patch.SharedNote != nil && expense.IsShared {
			expense.SharedNote = *patch.SharedNote
		}
		l.flushLocked()
		return nil
	}
	return nil
}

// Delete removes the matching record; no-op if absent.
func (l *Ledger) Delete(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			l.expenses = slices.Delete(l.expenses, i, i+1)
			l.flushLocked()
			return
		}
	}
}

// Settle marks a shared expense as reconciled.
func (l *Ledger) Settle(id string) {
	l.setSettled(id, true)
}

// Unsettle reverses Settle.
func (l *Ledger) Unsettle(id string) {
	l.setSettled(id, false)
}

// setSettled flips the settlement flag. An unknown id is a no-op, and so is
// a non-shared expense: settling one is a caller error the ledger absorbs
// silently, a documented leniency kept for compatibility.
func (l *Ledger) setSettled(id string, settled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID != id {
			continue
		}
		if !l.expenses[i].IsShared {
			return
		}
		l.expenses[i].IsSettled = settled
		l.flushLocked()
		return
	}
}

// RenameCategory rewrites the category label on every matching record.
// Idempotent; renaming a label to itself is a no-op.
func (l *Ledger) RenameCategory(oldLabel, newLabel string) {
	if oldLabel == newLabel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := false
	for i := range l.expenses {
		if l.expenses[i].Category == oldLabel {
			l.expenses[i].Category = newLabel
			changed = true
		}
	}
	if changed {
		l.flushLocked()
	}
}

// Expenses returns a copy of the current sequence, most-recent-first.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.expenses)
}

// HasPendingShared reports whether any shared expense is still unsettled.
func (l *Ledger) HasPendingShared() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.expenses {
		if e.IsShared && !e.IsSettled {
			return true
		}
	}
	return false
}

// flushLocked schedules an asynchronous flush of the state as it is right
// now. The snapshot is taken under the lock so concurrent mutations cannot
// produce a stale flush; whichever flush's write lands last at each store
// wins, and a superseded flush is simply overwritten by the next one.
func (l *Ledger) flushLocked() {
	snapshot := slices.Clone(l.expenses)
	l.flushWG.Add(1)
	go func() {
		defer l.flushWG.Done()
		l.saver.SaveExpenses(context.Background(), snapshot)
	}()
}

// Wait blocks until all scheduled flushes have completed. Used on shutdown
// and in tests.
func (l *Ledger) Wait() {
	l.flushWG.Wait()
}
