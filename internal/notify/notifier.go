// Package notify delivers the shared-expense reminder: a periodic check
// that reads settings and ledger state and fires at most one notification
// per day. It never mutates application state.
package notify

import "context"

// Notifier delivers a reminder message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
