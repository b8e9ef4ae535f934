// Package quota enforces the lifetime ceiling of workings a user may upload.
//
// The counter is incremented first and checked afterwards, so two
// concurrent submissions can never both pass the ceiling; an overflowing
// increment is compensated with a decrement before the request is
// rejected.
package quota

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goodjob/apperr"
	"goodjob/db"
	"goodjob/logger"
	"goodjob/models"
)

// DefaultLimit is the number of workings a user may upload.
const DefaultLimit = 5

// Counter is an atomic per-user counter. Increment must be a single
// increment-and-fetch that creates the counter at zero when missing.
type Counter interface {
	Increment(ctx context.Context, user models.UserRef) (int, error)
	Decrement(ctx context.Context, user models.UserRef) error
}

// Manager applies the ceiling on top of a Counter.
type Manager struct {
	counter Counter
	limit   int
}

func NewManager(counter Counter, limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{counter: counter, limit: limit}
}

// Limit returns the configured ceiling.
func (m *Manager) Limit() int {
	return m.limit
}

// CheckAndUpdate consumes one unit of the user's quota and returns the new
// count. It fails with a 429 error, leaving the counter as it was, when the
// ceiling is already reached.
func (m *Manager) CheckAndUpdate(ctx context.Context, user models.UserRef) (int, error) {
	count, err := m.counter.Increment(ctx, user)
	if db.IsDuplicateKeyError(err) {
		// two first-time upserts raced on the unique user index; the
		// document exists now, so the second attempt is a plain update
		count, err = m.counter.Increment(ctx, user)
	}
	if err != nil {
		return 0, fmt.Errorf("increment quota: %w", err)
	}

	if count > m.limit {
		if derr := m.counter.Decrement(ctx, user); derr != nil {
			logger.Warn("quota compensation failed",
				zap.String("user_id", user.ID),
				zap.String("user_type", user.Type),
				zap.Int("count", count),
				zap.Error(derr),
			)
		}
		return 0, apperr.QuotaExceeded(fmt.Sprintf("upload quota of %d workings reached", m.limit))
	}
	return count, nil
}
