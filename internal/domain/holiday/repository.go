package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// List retrieves all registered holidays ordered by date
	List(ctx context.Context) ([]Holiday, error)

	// ListRange retrieves holidays whose date falls within [start, end]
	ListRange(ctx context.Context, start, end time.Time) ([]Holiday, error)

	// Create registers a new holiday
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// Delete removes a holiday by ID
	Delete(ctx context.Context, id string) error
}
