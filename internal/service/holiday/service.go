package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/holiday"
	"github.com/go-chi/jwtauth/v5"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
	auditService audit.Service
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, auditService audit.Service) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepo,
		auditService:      auditService,
	}
}

func adminIDFromClaims(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	adminID, _ := claims["user_id"].(string)
	return adminID
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.ToResponse(h))
	}
	return out, nil
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Date:  date,
		Title: req.Title,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.auditService.Record(ctx, adminIDFromClaims(ctx), audit.ActionCreate,
		fmt.Sprintf("holiday %q registered for %s", created.Title, req.Date))

	return holiday.ToResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, adminIDFromClaims(ctx), audit.ActionDelete,
		fmt.Sprintf("holiday %s removed", id))

	return nil
}
