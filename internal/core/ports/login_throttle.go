package ports

import "context"

// LoginThrottle tracks failed login attempts per email address. Implementations
// fail open: a storage error reports the account as not throttled.
type LoginThrottle interface {
	// Blocked reports whether the email has exceeded the failure budget.
	Blocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}
