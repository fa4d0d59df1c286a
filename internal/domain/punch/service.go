package punch

import "context"

// PunchService defines business logic for punch registration
type PunchService interface {
	// RegisterPunch processes one punch attempt end to end. Attempts outside
	// the geofence are redirected into the justification workflow instead of
	// being persisted.
	RegisterPunch(ctx context.Context, req RegisterPunchRequest) (RegisterPunchResponse, error)

	// Today returns the authenticated user's punches for the current day plus
	// the next expected punch kind and quota state
	Today(ctx context.Context) (TodayResponse, error)
}
