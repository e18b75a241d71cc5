package client

import (
	"context"
	"time"
)

// DailyResetChecker runs the once-per-day reset sequence when a screen
// regains focus: the admin bulk reset (when an admin identity is known)
// followed by a per-user check for every known non-admin user.
//
// The checked date is persisted only after every remote call has
// succeeded. A partial failure leaves it unset, so the next focus
// repeats the whole sequence; the server-side check is idempotent per
// date, so repeats are harmless and no user is silently skipped.
type DailyResetChecker struct {
	client *Client
	store  Store
	admin  *Identity
}

// NewDailyResetChecker creates a checker. admin may be nil when no admin
// account is known; the bulk reset is skipped in that case.
func NewDailyResetChecker(client *Client, store Store, admin *Identity) *DailyResetChecker {
	return &DailyResetChecker{
		client: client,
		store:  store,
		admin:  admin,
	}
}

// CheckOnFocus runs the reset sequence unless it already completed for
// now's calendar date. It reports whether any remote calls were made.
func (c *DailyResetChecker) CheckOnFocus(ctx context.Context, now time.Time, users []User) (bool, error) {
	current := now.Format(DateLayout)

	if last, ok := c.store.Get(storeKeyLastDailyCheck); ok && last == current {
		return false, nil
	}

	if c.admin != nil {
		if _, err := c.client.ResetDailyTasks(ctx, *c.admin); err != nil {
			return true, err
		}
	}

	for _, user := range users {
		if user.Admin {
			continue
		}
		if _, err := c.client.CheckDailyTasks(ctx, user.ID, current); err != nil {
			return true, err
		}
	}

	if err := c.store.Set(storeKeyLastDailyCheck, current); err != nil {
		return true, err
	}
	return true, nil
}
