package response

import (
	"errors"
	"net/http"

	"github.com/gama-center/ponto-backend-go/internal/domain/holiday"
	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/setting"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/gama-center/ponto-backend-go/internal/pkg/token"
	"github.com/gama-center/ponto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Punch domain errors
	case errors.Is(err, punch.ErrGeofenceViolation):
		Forbidden(w, "Location is outside the allowed radius")
	case errors.Is(err, punch.ErrDailyLimitReached):
		Conflict(w, "Daily punch quota already met")
	case errors.Is(err, punch.ErrPunchConflict):
		Conflict(w, "A punch with this ordinal already exists for today")
	case errors.Is(err, punch.ErrLocationUnavailable):
		BadRequest(w, "Current location is unavailable", nil)
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch record not found")

	// Challenge code errors
	case errors.Is(err, token.ErrChallengeLocked):
		TooManyRequests(w, "Too many failed confirmations, wait for the next code")
	case errors.Is(err, token.ErrChallengeMismatch):
		BadRequest(w, "Confirmation code does not match", nil)
	case errors.Is(err, token.ErrNoActiveCode):
		Conflict(w, "No active confirmation code")

	// Justification domain errors
	case errors.Is(err, justification.ErrJustificationNotFound):
		NotFound(w, "Justification not found")
	case errors.Is(err, justification.ErrAlreadyProcessed):
		Conflict(w, "Justification has already been approved or rejected")
	case errors.Is(err, justification.ErrEmptyJustification):
		BadRequest(w, "Justification requires reason text or an evidence photo", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday is already registered for this date")

	// Settings domain errors
	case errors.Is(err, setting.ErrSettingNotFound):
		NotFound(w, "Setting not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
