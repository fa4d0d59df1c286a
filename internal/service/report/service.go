package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/holiday"
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/report"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	punch.PunchRepository
	holiday.HolidayRepository
	now func() time.Time
}

func NewReportService(
	punchRepo punch.PunchRepository,
	holidayRepo holiday.HolidayRepository,
) report.ReportService {
	return &ReportServiceImpl{
		PunchRepository:   punchRepo,
		HolidayRepository: holidayRepo,
		now:               time.Now,
	}
}

func identityFromClaims(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", 0, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleNum, ok := claims["role"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("role claim is missing or invalid")
	}

	return userID, user.Role(int(roleNum)), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// periodWindow resolves a period and anchor date to an inclusive range.
// Weeks start on Monday.
func periodWindow(p report.Period, anchor time.Time) (time.Time, time.Time) {
	switch p {
	case report.PeriodWeek:
		offset := (int(anchor.Weekday()) + 6) % 7 // Monday = 0
		start := startOfDay(anchor.AddDate(0, 0, -offset))
		return start, endOfDay(start.AddDate(0, 0, 6))
	case report.PeriodMonth:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, endOfDay(start.AddDate(0, 1, -1))
	case report.PeriodYear:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		return start, endOfDay(time.Date(anchor.Year(), time.December, 31, 0, 0, 0, 0, anchor.Location()))
	default: // today, day
		return startOfDay(anchor), endOfDay(anchor)
	}
}

func (s *ReportServiceImpl) anchorFrom(dateStr string) time.Time {
	if dateStr == "" {
		return s.now()
	}
	anchor, err := time.ParseInLocation("2006-01-02", dateStr, s.now().Location())
	if err != nil {
		return s.now()
	}
	return anchor
}

// groupByDay buckets punches under their calendar date.
func groupByDay(punches []punch.Punch) map[string][]punch.Punch {
	days := make(map[string][]punch.Punch)
	for _, p := range punches {
		key := p.RecordedAt.Format("2006-01-02")
		days[key] = append(days[key], p)
	}
	return days
}

// workedInRange sums per-day worked time. The wall clock only extends the
// current day's open shift; an incomplete past day is cut at its last punch so
// a forgotten exit does not accrue until midnight.
func (s *ReportServiceImpl) workedInRange(punches []punch.Punch) (time.Duration, int) {
	now := s.now()
	today := now.Format("2006-01-02")

	var total time.Duration
	daysWorked := 0

	for key, day := range groupByDay(punches) {
		if punch.CountReal(day) == 0 {
			continue
		}

		ref := now
		if key != today {
			ref = day[0].RecordedAt
			for _, p := range day {
				if p.RecordedAt.After(ref) {
					ref = p.RecordedAt
				}
			}
		}

		// A lone entry on a closed day yields zero and does not count as a
		// day worked.
		worked := punch.WorkedDuration(day, ref)
		if worked > 0 {
			daysWorked++
		}
		total += worked
	}

	return total, daysWorked
}

// businessDays counts weekdays in [start, end], excluding holidays that fall
// on a weekday. Weekend holidays change nothing.
func (s *ReportServiceImpl) businessDays(ctx context.Context, start, end time.Time) (int, error) {
	holidays, err := s.HolidayRepository.ListRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to list holidays: %w", err)
	}

	holidayDates := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidayDates[h.Date.Format("2006-01-02")] = struct{}{}
	}

	count := 0
	for d := startOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidayDates[d.Format("2006-01-02")]; isHoliday {
			continue
		}
		count++
	}
	return count, nil
}

func (s *ReportServiceImpl) computeRange(ctx context.Context, userID string, role user.Role, start, end time.Time) (report.ReportResponse, error) {
	punches, err := s.PunchRepository.ListRange(ctx, userID, start, end)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	worked, daysWorked := s.workedInRange(punches)

	business, err := s.businessDays(ctx, start, end)
	if err != nil {
		return report.ReportResponse{}, err
	}

	expected := float64(business) * role.DailyTargetHours()
	workedHours := worked.Hours()

	var lastRecord *string
	if len(punches) > 0 {
		last := punches[0].RecordedAt
		for _, p := range punches {
			if p.RecordedAt.After(last) {
				last = p.RecordedAt
			}
		}
		formatted := last.Format("2006-01-02")
		lastRecord = &formatted
	}

	return report.ReportResponse{
		TotalWorkedHours: roundHours(workedHours),
		BusinessDays:     business,
		DaysWorked:       daysWorked,
		ExpectedHours:    roundHours(expected),
		Balance:          roundHours(workedHours - expected),
		LastRecordDate:   lastRecord,
	}, nil
}

// Compute implements report.ReportService.
func (s *ReportServiceImpl) Compute(ctx context.Context, filter report.ReportFilter) (report.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	userID, role, err := identityFromClaims(ctx)
	if err != nil {
		return report.ReportResponse{}, err
	}

	if filter.Period == report.PeriodAll {
		return s.computeAllTime(ctx, userID, role)
	}

	start, end := periodWindow(filter.Period, s.anchorFrom(filter.Date))
	// Expectation never runs past today.
	if now := s.now(); end.After(now) {
		end = now
	}
	return s.computeRange(ctx, userID, role, start, end)
}

// computeAllTime runs from the first record to the last exit punch. Days
// after the last exit hold punches that are still in flight and would skew
// the balance, so the range is clamped there.
func (s *ReportServiceImpl) computeAllTime(ctx context.Context, userID string, role user.Role) (report.ReportResponse, error) {
	first, err := s.PunchRepository.FirstRecordedAt(ctx, userID)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to find first punch: %w", err)
	}
	if first == nil {
		return report.ReportResponse{}, nil
	}

	lastExit, err := s.PunchRepository.LastExit(ctx, userID)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to find last exit punch: %w", err)
	}

	end := s.now()
	if lastExit != nil {
		end = endOfDay(lastExit.RecordedAt)
	}
	if now := s.now(); end.After(now) {
		end = now
	}

	return s.computeRange(ctx, userID, role, startOfDay(*first), end)
}

// BankOfHours implements report.ReportService.
func (s *ReportServiceImpl) BankOfHours(ctx context.Context) (report.ReportResponse, error) {
	return s.Compute(ctx, report.ReportFilter{Period: report.PeriodAll})
}

// History implements report.ReportService.
func (s *ReportServiceImpl) History(ctx context.Context, filter report.HistoryFilter) (report.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.HistoryResponse{}, err
	}

	userID, _, err := identityFromClaims(ctx)
	if err != nil {
		return report.HistoryResponse{}, err
	}

	start, end := periodWindow(filter.Period, s.anchorFrom(filter.Date))

	punches, err := s.PunchRepository.ListRange(ctx, userID, start, end)
	if err != nil {
		return report.HistoryResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	holidays, err := s.HolidayRepository.ListRange(ctx, start, end)
	if err != nil {
		return report.HistoryResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	records := make([]punch.PunchResponse, 0, len(punches)+len(holidays))
	for _, p := range punches {
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		records = append(records, mapRecord(p))
	}

	// Registered holidays show up in the listing as synthetic records.
	if filter.Kind == "" || filter.Kind == punch.KindHoliday {
		for _, h := range holidays {
			title := h.Title
			records = append(records, punch.PunchResponse{
				ID:            h.ID,
				UserID:        userID,
				RecordedAt:    h.Date.Format("2006-01-02 15:04:05"),
				Kind:          punch.KindHoliday,
				KindLabel:     punch.KindHoliday.Label(),
				Ordinal:       0,
				Justification: &title,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt > records[j].RecordedAt
	})

	return report.HistoryResponse{Records: records}, nil
}

func mapRecord(p punch.Punch) punch.PunchResponse {
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

func roundHours(h float64) float64 {
	if h < 0 {
		return float64(int64(h*100-0.5)) / 100
	}
	return float64(int64(h*100+0.5)) / 100
}
