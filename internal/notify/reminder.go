package notify

import (
	"context"
	"time"

	"spendwise/internal/logger"
	"spendwise/internal/models"
)

const (
	// CheckInterval is how often the reminder loop re-reads the clock.
	// Minute precision on the configured time requires a sub-minute tick.
	CheckInterval = 30 * time.Second
	// NotifyTimeout is the maximum time a single delivery can take.
	NotifyTimeout = 30 * time.Second
)

// ReminderMessage is the text delivered when unsettled shared expenses exist
// at the configured time.
const ReminderMessage = "You have pending shared expenses to settle before the day ends!"

// SettingsProvider exposes the current user settings.
type SettingsProvider interface {
	Settings() models.UserSettings
}

// PendingChecker reports whether any shared expense is still unsettled.
type PendingChecker interface {
	HasPendingShared() bool
}

// Reminder periodically checks whether the reminder should fire and sends it
// at most once per calendar day.
type Reminder struct {
	settings SettingsProvider
	ledger   PendingChecker
	notifier Notifier

	lastFired string // "2006-01-02" of the last delivery
}

// NewReminder creates a reminder loop over the given collaborators.
func NewReminder(settings SettingsProvider, ledger PendingChecker, notifier Notifier) *Reminder {
	return &Reminder{settings: settings, ledger: ledger, notifier: notifier}
}

// Run blocks until ctx is done, checking periodically. One check runs
// immediately so a reminder isn't skipped when the process starts during the
// configured minute.
func (r *Reminder) Run(ctx context.Context) {
	logger.Log.Info().Msg("Reminder loop started")

	ticker := time.NewTicker(CheckInterval)
	defer ticker.Stop()

	r.check(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info().Msg("Reminder loop stopped")
			return
		case <-ticker.C:
			r.check(ctx, time.Now())
		}
	}
}

// check fires the reminder when the local clock matches the configured
// "HH:MM", reminders are enabled, unsettled shared expenses exist, and
// nothing was delivered yet today.
func (r *Reminder) check(ctx context.Context, now time.Time) {
	settings := r.settings.Settings()
	if !settings.EnableReminders {
		return
	}
	if now.Format("15:04") != settings.ReminderTime {
		return
	}

	today := now.Format("2006-01-02")
	if r.lastFired == today {
		return
	}
	if !r.ledger.HasPendingShared() {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	if err := r.notifier.Notify(notifyCtx, ReminderMessage); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to deliver reminder")
		return
	}

	r.lastFired = today
	logger.Log.Debug().Str("day", today).Msg("Reminder delivered")
}
