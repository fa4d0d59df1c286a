package punch

import (
	"mime/multipart"

	"github.com/gama-center/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

// JustificationInput rides along on a punch attempt made outside the
// geofence. Evidence photo is optional; reason text is not when no photo is
// attached.
type JustificationInput struct {
	Kind   string `json:"kind"` // "delay" | "absence"
	Reason string `json:"reason"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

type RegisterPunchRequest struct {
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	ChallengeCode string              `json:"challenge_code"`
	Justification *JustificationInput `json:"justification,omitempty"`

	// LocationError reports a failed position fix on the client:
	// "permission", "signal" or "timeout". When set, coordinates are ignored.
	LocationError string `json:"location_error,omitempty"`
}

func (r *RegisterPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LocationError != "" {
		switch r.LocationError {
		case "permission", "signal", "timeout":
			// Coordinates are meaningless on a failed fix; skip range checks.
			return nil
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "location_error",
				Message: "location_error must be 'permission', 'signal' or 'timeout'",
			})
			return errs
		}
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Justification != nil {
		if r.Justification.Kind != "delay" && r.Justification.Kind != "absence" {
			errs = append(errs, validator.ValidationError{
				Field:   "justification.kind",
				Message: "justification kind must be 'delay' or 'absence'",
			})
		}
		if validator.IsEmpty(r.Justification.Reason) && r.Justification.FileHeader == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "justification",
				Message: "justification requires reason text or an evidence photo",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	RecordedAt       string   `json:"recorded_at"`
	Kind             Kind     `json:"kind"`
	KindLabel        string   `json:"kind_label"`
	Ordinal          int      `json:"ordinal"`
	AccumulatedHours *float64 `json:"accumulated_hours,omitempty"`
	LunchHours       *float64 `json:"lunch_hours,omitempty"`
	Justification    *string  `json:"justification,omitempty"`
	OutOfGeofence    bool     `json:"out_of_geofence"`
}

// RegisterPunchResponse is either a persisted punch or, when the attempt was
// redirected into the justification workflow, the pending request plus the
// kind/ordinal the eventual punch would take.
type RegisterPunchResponse struct {
	Punch           *PunchResponse `json:"punch,omitempty"`
	PendingID       *string        `json:"pending_justification_id,omitempty"`
	VirtualKind     Kind           `json:"virtual_kind,omitempty"`
	VirtualOrdinal  int            `json:"virtual_ordinal,omitempty"`
	DistanceKm      float64        `json:"distance_km"`
	WithinGeofence  bool           `json:"within_geofence"`
	DailyWorked     *float64       `json:"daily_worked_hours,omitempty"`
	QuotaReachedNow bool           `json:"quota_reached_now"`
}

type TodayResponse struct {
	Punches     []PunchResponse `json:"punches"`
	NextKind    Kind            `json:"next_kind"`
	NextOrdinal int             `json:"next_ordinal"`
	QuotaUsed   int             `json:"quota_used"`
	QuotaMax    int             `json:"quota_max"`
	WorkedHours float64         `json:"worked_hours"`
}
