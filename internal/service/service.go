package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// nowFn is swapped out in tests that pin the clock.
var nowFn = time.Now

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseDate parses a YYYY-MM-DD request string into a UTC midnight time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// dayOf truncates a timestamp to its UTC calendar date. Ledger dates are
// whole days; balances chain date to date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
