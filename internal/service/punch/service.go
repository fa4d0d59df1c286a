package punch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/setting"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/gama-center/ponto-backend-go/internal/pkg/geo"
	"github.com/gama-center/ponto-backend-go/internal/pkg/token"
	"github.com/go-chi/jwtauth/v5"
)

// Geofence is the punch-acceptance perimeter: a fixed target point and the
// radius used when no override is stored in app_config.
type Geofence struct {
	Target          geo.Location
	DefaultRadiusKm float64
}

type PunchServiceImpl struct {
	punch.PunchRepository
	user.UserRepository
	setting.SettingRepository
	justificationService justification.JustificationService
	tokens               *token.Manager
	auditService         audit.Service
	geofence             Geofence
	now                  func() time.Time
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	userRepo user.UserRepository,
	settingRepo setting.SettingRepository,
	justificationService justification.JustificationService,
	tokens *token.Manager,
	auditService audit.Service,
	geofence Geofence,
) punch.PunchService {
	return &PunchServiceImpl{
		PunchRepository:      punchRepo,
		UserRepository:       userRepo,
		SettingRepository:    settingRepo,
		justificationService: justificationService,
		tokens:               tokens,
		auditService:         auditService,
		geofence:             geofence,
		now:                  time.Now,
	}
}

// identityFromClaims extracts the authenticated user and role from the JWT.
func identityFromClaims(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", 0, fmt.Errorf("user_id claim is missing or invalid")
	}

	// Numeric claims decode as float64.
	roleNum, ok := claims["role"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("role claim is missing or invalid")
	}

	return userID, user.Role(int(roleNum)), nil
}

// radiusKm returns the geofence radius, preferring the app_config override.
func (s *PunchServiceImpl) radiusKm(ctx context.Context) float64 {
	raw, err := s.SettingRepository.Get(ctx, setting.KeyMaxRadiusKm)
	if err != nil {
		return s.geofence.DefaultRadiusKm
	}
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil || r <= 0 {
		return s.geofence.DefaultRadiusKm
	}
	return r
}

// RegisterPunch implements punch.PunchService.
func (s *PunchServiceImpl) RegisterPunch(ctx context.Context, req punch.RegisterPunchRequest) (punch.RegisterPunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.RegisterPunchResponse{}, err
	}

	if req.LocationError != "" {
		return punch.RegisterPunchResponse{}, fmt.Errorf("%s: %w", req.LocationError, punch.ErrLocationUnavailable)
	}

	userID, role, err := identityFromClaims(ctx)
	if err != nil {
		return punch.RegisterPunchResponse{}, err
	}

	now := s.now()

	todayPunches, err := s.PunchRepository.ListByDay(ctx, userID, now)
	if err != nil {
		return punch.RegisterPunchResponse{}, fmt.Errorf("failed to list today's punches: %w", err)
	}

	if punch.CountReal(todayPunches) >= role.MaxDailyPunches() {
		return punch.RegisterPunchResponse{}, punch.ErrDailyLimitReached
	}

	distance := geo.DistanceKm(
		geo.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		s.geofence.Target,
	)
	radius := s.radiusKm(ctx)
	within := distance <= radius

	nextKind, nextOrdinal := punch.Next(todayPunches, role)

	if !within {
		if req.Justification == nil {
			return punch.RegisterPunchResponse{}, punch.ErrGeofenceViolation
		}

		// Outside the perimeter with a justification attached: no punch is
		// written, the attempt becomes a pending request instead.
		submitted, err := s.justificationService.Submit(ctx, justification.SubmitRequest{
			Kind:       justification.Kind(req.Justification.Kind),
			Reason:     req.Justification.Reason,
			File:       req.Justification.File,
			FileHeader: req.Justification.FileHeader,
		})
		if err != nil {
			return punch.RegisterPunchResponse{}, err
		}

		s.auditService.Record(ctx, userID, audit.ActionCreate,
			fmt.Sprintf("punch attempt outside geofence (%.2f km) redirected to justification %s", distance, submitted.ID))

		return punch.RegisterPunchResponse{
			PendingID:      &submitted.ID,
			VirtualKind:    nextKind,
			VirtualOrdinal: nextOrdinal,
			DistanceKm:     distance,
			WithinGeofence: false,
		}, nil
	}

	if err := s.tokens.Verify(req.ChallengeCode); err != nil {
		return punch.RegisterPunchResponse{}, err
	}

	fields := punch.AccountAt(todayPunches, nextKind, now)

	record := punch.Punch{
		UserID:           userID,
		RecordedAt:       now,
		Kind:             nextKind,
		Ordinal:          nextOrdinal,
		AccumulatedHours: fields.AccumulatedHours,
		LunchHours:       fields.LunchHours,
		OutOfGeofence:    false,
	}

	created, err := s.PunchRepository.Insert(ctx, record)
	if err != nil {
		if errors.Is(err, punch.ErrPunchConflict) {
			return punch.RegisterPunchResponse{}, punch.ErrPunchConflict
		}
		return punch.RegisterPunchResponse{}, fmt.Errorf("failed to insert punch: %w", err)
	}

	s.auditService.Record(ctx, userID, audit.ActionCreate,
		fmt.Sprintf("punch %s (#%d) registered", created.Kind, created.Ordinal))

	dayAfter := append(append([]punch.Punch(nil), todayPunches...), created)
	worked := punch.WorkedDuration(dayAfter, now).Hours()

	resp := mapPunchToResponse(created)
	return punch.RegisterPunchResponse{
		Punch:           &resp,
		DistanceKm:      distance,
		WithinGeofence:  true,
		DailyWorked:     &worked,
		QuotaReachedNow: punch.CountReal(dayAfter) >= role.MaxDailyPunches(),
	}, nil
}

// Today implements punch.PunchService.
func (s *PunchServiceImpl) Today(ctx context.Context) (punch.TodayResponse, error) {
	userID, role, err := identityFromClaims(ctx)
	if err != nil {
		return punch.TodayResponse{}, err
	}

	now := s.now()

	todayPunches, err := s.PunchRepository.ListByDay(ctx, userID, now)
	if err != nil {
		return punch.TodayResponse{}, fmt.Errorf("failed to list today's punches: %w", err)
	}

	nextKind, nextOrdinal := punch.Next(todayPunches, role)

	records := make([]punch.PunchResponse, 0, len(todayPunches))
	for _, p := range todayPunches {
		records = append(records, mapPunchToResponse(p))
	}

	return punch.TodayResponse{
		Punches:     records,
		NextKind:    nextKind,
		NextOrdinal: nextOrdinal,
		QuotaUsed:   punch.CountReal(todayPunches),
		QuotaMax:    role.MaxDailyPunches(),
		WorkedHours: punch.WorkedDuration(todayPunches, now).Hours(),
	}, nil
}

func mapPunchToResponse(p punch.Punch) punch.PunchResponse {
	return punch.PunchResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		RecordedAt:       p.RecordedAt.Format("2006-01-02 15:04:05"),
		Kind:             p.Kind,
		KindLabel:        p.Kind.Label(),
		Ordinal:          p.Ordinal,
		AccumulatedHours: p.AccumulatedHours,
		LunchHours:       p.LunchHours,
		Justification:    p.Justification,
		OutOfGeofence:    p.OutOfGeofence,
	}
}
