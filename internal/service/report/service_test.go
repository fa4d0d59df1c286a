package report

import (
	"context"
	"testing"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/holiday"
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/report"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakePunchRepo struct {
	punches []punch.Punch
}

func (f *fakePunchRepo) Insert(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	p.ID = uuid.NewString()
	f.punches = append(f.punches, p)
	return p, nil
}

func (f *fakePunchRepo) ListByDay(ctx context.Context, userID string, day time.Time) ([]punch.Punch, error) {
	var out []punch.Punch
	for _, p := range f.punches {
		if p.UserID == userID && p.RecordedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) ListRange(ctx context.Context, userID string, start, end time.Time) ([]punch.Punch, error) {
	var out []punch.Punch
	for _, p := range f.punches {
		if p.UserID == userID && !p.RecordedAt.Before(start) && !p.RecordedAt.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) LastExit(ctx context.Context, userID string) (*punch.Punch, error) {
	var last *punch.Punch
	for i := range f.punches {
		p := f.punches[i]
		if p.UserID == userID && p.Kind == punch.KindExit {
			if last == nil || p.RecordedAt.After(last.RecordedAt) {
				last = &f.punches[i]
			}
		}
	}
	return last, nil
}

func (f *fakePunchRepo) FirstRecordedAt(ctx context.Context, userID string) (*time.Time, error) {
	var first *time.Time
	for _, p := range f.punches {
		if p.UserID == userID {
			if first == nil || p.RecordedAt.Before(*first) {
				ts := p.RecordedAt
				first = &ts
			}
		}
	}
	return first, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) ListRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = uuid.NewString()
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	return nil
}

// ===== HELPERS =====

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    float64(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", s)
	require.NoError(t, err)
	return ts
}

// addDay records a complete standard day: entry, lunch out, lunch in, exit.
func addDay(t *testing.T, repo *fakePunchRepo, userID, date string, times [4]string) {
	t.Helper()
	kinds := []punch.Kind{punch.KindEntry, punch.KindLunchOut, punch.KindLunchIn, punch.KindExit}
	for i, hhmm := range times {
		_, err := repo.Insert(context.Background(), punch.Punch{
			UserID:     userID,
			RecordedAt: at(t, date+" "+hhmm),
			Kind:       kinds[i],
			Ordinal:    i + 1,
		})
		require.NoError(t, err)
	}
}

func newFixture(nowStr string) (*ReportServiceImpl, *fakePunchRepo, *fakeHolidayRepo) {
	punchRepo := &fakePunchRepo{}
	holidayRepo := &fakeHolidayRepo{}
	svc := NewReportService(punchRepo, holidayRepo).(*ReportServiceImpl)
	now, _ := time.Parse("2006-01-02 15:04", nowStr)
	svc.now = func() time.Time { return now }
	return svc, punchRepo, holidayRepo
}

// ===== COMPUTE TESTS =====

func TestCompute_SingleCompleteDay(t *testing.T) {
	t.Parallel()

	// Monday 2026-03-02, reported at end of day.
	svc, punchRepo, _ := newFixture("2026-03-02 23:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodDay, Date: "2026-03-02"})

	require.NoError(t, err)
	assert.InDelta(t, 8.75, resp.TotalWorkedHours, 0.01)
	assert.Equal(t, 1, resp.BusinessDays)
	assert.Equal(t, 1, resp.DaysWorked)
	assert.InDelta(t, 8.75, resp.ExpectedHours, 0.01)
	assert.InDelta(t, 0.0, resp.Balance, 0.01)
	require.NotNil(t, resp.LastRecordDate)
	assert.Equal(t, "2026-03-02", *resp.LastRecordDate)
}

func TestCompute_WeekStartsMonday(t *testing.T) {
	t.Parallel()

	// Anchor Wednesday 2026-03-04; the week is Mon 03-02 .. Sun 03-08.
	// Now is Sunday night so the whole window is in the past.
	svc, punchRepo, _ := newFixture("2026-03-08 23:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})
	// Sunday 03-01 and Monday 03-09 fall outside the window.
	addDay(t, punchRepo, "u1", "2026-03-01", [4]string{"08:00", "12:00", "13:00", "17:45"})
	addDay(t, punchRepo, "u1", "2026-03-09", [4]string{"08:00", "12:00", "13:00", "17:45"})
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodWeek, Date: "2026-03-04"})

	require.NoError(t, err)
	assert.InDelta(t, 8.75, resp.TotalWorkedHours, 0.01)
	assert.Equal(t, 5, resp.BusinessDays)
	assert.Equal(t, 1, resp.DaysWorked)
	// Four unworked business days in deficit.
	assert.InDelta(t, 8.75-5*8.75, resp.Balance, 0.01)
}

func TestCompute_WeekdayHolidayReducesExpectation(t *testing.T) {
	t.Parallel()

	svc, punchRepo, holidayRepo := newFixture("2026-03-08 23:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})

	// Tuesday holiday removes one business day; Saturday holiday is inert.
	_, err := holidayRepo.Create(context.Background(), holiday.Holiday{Date: at(t, "2026-03-03 00:00"), Title: "Feriado municipal"})
	require.NoError(t, err)
	_, err = holidayRepo.Create(context.Background(), holiday.Holiday{Date: at(t, "2026-03-07 00:00"), Title: "Feriado no sábado"})
	require.NoError(t, err)

	ctx := authedContext(t, "u1", user.RoleStandard)
	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodWeek, Date: "2026-03-04"})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.BusinessDays)
	assert.InDelta(t, 4*8.75, resp.ExpectedHours, 0.01)
}

func TestCompute_RestrictedDailyTarget(t *testing.T) {
	t.Parallel()

	svc, punchRepo, _ := newFixture("2026-03-02 23:00")
	// Restricted day: entry and exit only, six hours.
	for i, ts := range []string{"08:00", "14:00"} {
		kinds := []punch.Kind{punch.KindEntry, punch.KindExit}
		_, err := punchRepo.Insert(context.Background(), punch.Punch{
			UserID: "u2", RecordedAt: at(t, "2026-03-02 "+ts), Kind: kinds[i], Ordinal: i + 1,
		})
		require.NoError(t, err)
	}
	ctx := authedContext(t, "u2", user.RoleRestricted)

	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodDay, Date: "2026-03-02"})

	require.NoError(t, err)
	assert.InDelta(t, 6.0, resp.TotalWorkedHours, 0.01)
	assert.InDelta(t, 6.0, resp.ExpectedHours, 0.01)
	assert.InDelta(t, 0.0, resp.Balance, 0.01)
}

func TestCompute_IncompletePastDayCutsAtLastPunch(t *testing.T) {
	t.Parallel()

	svc, punchRepo, _ := newFixture("2026-03-06 12:00")
	// Monday: entry at 08:00, lunch out at 12:00, nothing else. The open
	// afternoon segment must not accrue days of time.
	for i, k := range []punch.Kind{punch.KindEntry, punch.KindLunchOut} {
		times := []string{"08:00", "12:00"}
		_, err := punchRepo.Insert(context.Background(), punch.Punch{
			UserID: "u1", RecordedAt: at(t, "2026-03-02 "+times[i]), Kind: k, Ordinal: i + 1,
		})
		require.NoError(t, err)
	}
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodDay, Date: "2026-03-02"})

	require.NoError(t, err)
	assert.InDelta(t, 4.0, resp.TotalWorkedHours, 0.01)
}

func TestCompute_LoneEntryOnPastDayIsNotADayWorked(t *testing.T) {
	t.Parallel()

	svc, punchRepo, _ := newFixture("2026-03-06 12:00")
	// A single entry on a closed day yields zero worked time.
	_, err := punchRepo.Insert(context.Background(), punch.Punch{
		UserID: "u1", RecordedAt: at(t, "2026-03-02 08:00"), Kind: punch.KindEntry, Ordinal: 1,
	})
	require.NoError(t, err)
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.Compute(ctx, report.ReportFilter{Period: report.PeriodDay, Date: "2026-03-02"})

	require.NoError(t, err)
	assert.InDelta(t, 0.0, resp.TotalWorkedHours, 0.01)
	assert.Equal(t, 0, resp.DaysWorked)
}

func TestCompute_AllTimeClampsToLastExit(t *testing.T) {
	t.Parallel()

	// Now is Friday; last exit was Wednesday; Thursday and Friday hold no
	// exit and must not enter the expectation.
	svc, punchRepo, _ := newFixture("2026-03-06 15:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})
	addDay(t, punchRepo, "u1", "2026-03-03", [4]string{"08:00", "12:00", "13:00", "17:45"})
	addDay(t, punchRepo, "u1", "2026-03-04", [4]string{"08:00", "12:00", "13:00", "17:45"})
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.BankOfHours(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.BusinessDays)
	assert.InDelta(t, 3*8.75, resp.TotalWorkedHours, 0.01)
	assert.InDelta(t, 0.0, resp.Balance, 0.01)
}

func TestCompute_AllTimeNoPunches(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture("2026-03-06 15:00")
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.BankOfHours(ctx)

	require.NoError(t, err)
	assert.Zero(t, resp.TotalWorkedHours)
	assert.Zero(t, resp.BusinessDays)
	assert.Nil(t, resp.LastRecordDate)
}

func TestCompute_InvalidPeriod(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture("2026-03-06 15:00")
	ctx := authedContext(t, "u1", user.RoleStandard)

	_, err := svc.Compute(ctx, report.ReportFilter{Period: "decade"})
	assert.Error(t, err)
}

// ===== HISTORY TESTS =====

func TestHistory_NewestFirstWithSyntheticHoliday(t *testing.T) {
	t.Parallel()

	svc, punchRepo, holidayRepo := newFixture("2026-03-08 23:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})
	_, err := holidayRepo.Create(context.Background(), holiday.Holiday{Date: at(t, "2026-03-03 00:00"), Title: "Feriado municipal"})
	require.NoError(t, err)
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.History(ctx, report.HistoryFilter{Period: report.PeriodWeek, Date: "2026-03-04"})

	require.NoError(t, err)
	require.Len(t, resp.Records, 5)

	// The holiday record sits on top, newest first.
	assert.Equal(t, punch.KindHoliday, resp.Records[0].Kind)
	assert.Equal(t, 0, resp.Records[0].Ordinal)
	require.NotNil(t, resp.Records[0].Justification)
	assert.Equal(t, "Feriado municipal", *resp.Records[0].Justification)

	for i := 1; i < len(resp.Records); i++ {
		assert.GreaterOrEqual(t, resp.Records[i-1].RecordedAt, resp.Records[i].RecordedAt)
	}
}

func TestHistory_KindFilter(t *testing.T) {
	t.Parallel()

	svc, punchRepo, _ := newFixture("2026-03-08 23:00")
	addDay(t, punchRepo, "u1", "2026-03-02", [4]string{"08:00", "12:00", "13:00", "17:45"})
	addDay(t, punchRepo, "u1", "2026-03-03", [4]string{"08:00", "12:00", "13:00", "17:00"})
	ctx := authedContext(t, "u1", user.RoleStandard)

	resp, err := svc.History(ctx, report.HistoryFilter{
		Period: report.PeriodWeek,
		Date:   "2026-03-04",
		Kind:   punch.KindExit,
	})

	require.NoError(t, err)
	require.Len(t, resp.Records, 2)
	for _, r := range resp.Records {
		assert.Equal(t, punch.KindExit, r.Kind)
	}
}
