package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access for punch records. The core never
// mutates persisted punches; the uniqueness constraint on
// (user_id, ordinal, day) is the backstop against concurrent inserts and
// surfaces as ErrPunchConflict.
type PunchRepository interface {
	// Insert persists a new punch and returns it with its assigned ID
	Insert(ctx context.Context, p Punch) (Punch, error)

	// ListByDay retrieves a user's punches for one calendar day, ordered by time
	ListByDay(ctx context.Context, userID string, day time.Time) ([]Punch, error)

	// ListRange retrieves punches in [start, end], ordered by time ascending
	ListRange(ctx context.Context, userID string, start, end time.Time) ([]Punch, error)

	// LastExit returns the user's most recent exit punch, or nil if none exists
	LastExit(ctx context.Context, userID string) (*Punch, error)

	// FirstRecordedAt returns the timestamp of the user's earliest punch, or nil
	FirstRecordedAt(ctx context.Context, userID string) (*time.Time, error)
}
