package setting

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/setting"
	"github.com/go-chi/jwtauth/v5"
)

type SettingServiceImpl struct {
	setting.SettingRepository
	auditService    audit.Service
	defaultRadiusKm float64
}

func NewSettingService(
	settingRepo setting.SettingRepository,
	auditService audit.Service,
	defaultRadiusKm float64,
) setting.SettingService {
	return &SettingServiceImpl{
		SettingRepository: settingRepo,
		auditService:      auditService,
		defaultRadiusKm:   defaultRadiusKm,
	}
}

// GetRadius implements setting.SettingService.
func (s *SettingServiceImpl) GetRadius(ctx context.Context) (setting.RadiusResponse, error) {
	raw, err := s.SettingRepository.Get(ctx, setting.KeyMaxRadiusKm)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return setting.RadiusResponse{RadiusKm: s.defaultRadiusKm}, nil
		}
		return setting.RadiusResponse{}, fmt.Errorf("failed to read radius setting: %w", err)
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 {
		return setting.RadiusResponse{RadiusKm: s.defaultRadiusKm}, nil
	}
	return setting.RadiusResponse{RadiusKm: radius}, nil
}

// UpdateRadius implements setting.SettingService.
func (s *SettingServiceImpl) UpdateRadius(ctx context.Context, req setting.UpdateRadiusRequest) (setting.RadiusResponse, error) {
	if err := req.Validate(); err != nil {
		return setting.RadiusResponse{}, err
	}

	value := strconv.FormatFloat(req.RadiusKm, 'f', -1, 64)
	if err := s.SettingRepository.Set(ctx, setting.KeyMaxRadiusKm, value); err != nil {
		return setting.RadiusResponse{}, fmt.Errorf("failed to store radius setting: %w", err)
	}

	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if adminID, ok := claims["user_id"].(string); ok {
			s.auditService.Record(ctx, adminID, audit.ActionUpdate,
				fmt.Sprintf("geofence radius set to %s km", value))
		}
	}

	return setting.RadiusResponse{RadiusKm: req.RadiusKm}, nil
}
