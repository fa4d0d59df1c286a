package punch

import "errors"

// Punch domain errors
var (
	// Registration errors
	ErrGeofenceViolation = errors.New("location is outside the allowed radius")
	ErrDailyLimitReached = errors.New("daily punch quota already met")
	ErrPunchConflict     = errors.New("a punch with this ordinal already exists for today")

	// Location provider errors
	ErrLocationUnavailable = errors.New("current location is unavailable")

	// General errors
	ErrPunchNotFound = errors.New("punch record not found")
)
