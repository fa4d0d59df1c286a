package punch

import (
	"context"
	"testing"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/setting"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/gama-center/ponto-backend-go/internal/pkg/geo"
	"github.com/gama-center/ponto-backend-go/internal/pkg/token"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Geofence target used across the registrar tests.
var testTarget = geo.Location{Latitude: -20.6648342, Longitude: -43.8033635}

// ===== FAKES =====

type fakePunchRepo struct {
	punches  []punch.Punch
	failWith error
}

func (f *fakePunchRepo) Insert(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	if f.failWith != nil {
		return punch.Punch{}, f.failWith
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
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
	for i := range f.punches {
		p := f.punches[i]
		if p.UserID == userID {
			if first == nil || p.RecordedAt.Before(*first) {
				ts := p.RecordedAt
				first = &ts
			}
		}
	}
	return first, nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Name: "Test User", Role: user.RoleStandard}, nil
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id string, imgPath string) error {
	return nil
}

func (f *fakeUserRepo) UpdateBirthdate(ctx context.Context, id string, birthdate string) error {
	return nil
}

type fakeSettingRepo struct {
	values map[string]string
}

func (f *fakeSettingRepo) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", setting.ErrSettingNotFound
}

func (f *fakeSettingRepo) Set(ctx context.Context, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

type fakeJustificationService struct {
	submitted []justification.SubmitRequest
}

func (f *fakeJustificationService) Submit(ctx context.Context, req justification.SubmitRequest) (justification.Response, error) {
	f.submitted = append(f.submitted, req)
	return justification.Response{ID: uuid.NewString(), Kind: req.Kind, Reason: req.Reason}, nil
}

func (f *fakeJustificationService) Latest(ctx context.Context) (*justification.Response, error) {
	return nil, nil
}

func (f *fakeJustificationService) Approve(ctx context.Context, id string) (justification.Response, error) {
	return justification.Response{}, nil
}

func (f *fakeJustificationService) Reject(ctx context.Context, req justification.RejectRequest) (justification.Response, error) {
	return justification.Response{}, nil
}

func (f *fakeJustificationService) Acknowledge(ctx context.Context, id string) error {
	return nil
}

type fakeAuditService struct {
	records []string
}

func (f *fakeAuditService) Record(ctx context.Context, userID string, action audit.Action, text string) {
	f.records = append(f.records, text)
}

func (f *fakeAuditService) ClearCache() {}

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

type registrarFixture struct {
	service        *PunchServiceImpl
	punchRepo      *fakePunchRepo
	settingRepo    *fakeSettingRepo
	justifications *fakeJustificationService
	auditService   *fakeAuditService
	tokens         *token.Manager
	now            time.Time
}

func newRegistrarFixture(t *testing.T) *registrarFixture {
	t.Helper()

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	fx := &registrarFixture{
		punchRepo:      &fakePunchRepo{},
		settingRepo:    &fakeSettingRepo{},
		justifications: &fakeJustificationService{},
		auditService:   &fakeAuditService{},
		now:            now,
	}
	fx.tokens = token.NewManager(token.DefaultLifetime, token.DefaultMaxAttempts, func() time.Time { return fx.now })

	svc := NewPunchService(
		fx.punchRepo,
		&fakeUserRepo{},
		fx.settingRepo,
		fx.justifications,
		fx.tokens,
		fx.auditService,
		Geofence{Target: testTarget, DefaultRadiusKm: 3.0},
	)
	fx.service = svc.(*PunchServiceImpl)
	fx.service.now = func() time.Time { return fx.now }
	return fx
}

func (fx *registrarFixture) validCode() string {
	code, _ := fx.tokens.CurrentCode()
	return code
}

func insideRequest(code string) punch.RegisterPunchRequest {
	return punch.RegisterPunchRequest{
		Latitude:      testTarget.Latitude,
		Longitude:     testTarget.Longitude,
		ChallengeCode: code,
	}
}

// ===== REGISTER PUNCH TESTS =====

func TestRegisterPunch_FirstOfDay(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	resp, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))

	require.NoError(t, err)
	require.NotNil(t, resp.Punch)
	assert.Equal(t, punch.KindEntry, resp.Punch.Kind)
	assert.Equal(t, 1, resp.Punch.Ordinal)
	assert.Equal(t, "Entrada", resp.Punch.KindLabel)
	assert.True(t, resp.WithinGeofence)
	assert.False(t, resp.QuotaReachedNow)
	assert.Len(t, fx.auditService.records, 1)
}

func TestRegisterPunch_FullStandardDay(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	times := []time.Time{
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC),
	}
	wantKinds := []punch.Kind{punch.KindEntry, punch.KindLunchOut, punch.KindLunchIn, punch.KindExit}

	var last punch.RegisterPunchResponse
	for i, ts := range times {
		fx.now = ts
		resp, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
		require.NoError(t, err)
		require.NotNil(t, resp.Punch)
		assert.Equal(t, wantKinds[i], resp.Punch.Kind)
		assert.Equal(t, i+1, resp.Punch.Ordinal)
		last = resp
	}

	assert.True(t, last.QuotaReachedNow)
	require.NotNil(t, last.Punch.AccumulatedHours)
	assert.InDelta(t, 8.75, *last.Punch.AccumulatedHours, 0.001)
	require.NotNil(t, last.DailyWorked)
	assert.InDelta(t, 8.75, *last.DailyWorked, 0.001)

	// Fifth attempt is over quota.
	fx.now = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	_, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	assert.ErrorIs(t, err, punch.ErrDailyLimitReached)
}

func TestRegisterPunch_RestrictedQuota(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-2", user.RoleRestricted)

	resp, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	require.NoError(t, err)
	assert.Equal(t, punch.KindEntry, resp.Punch.Kind)

	fx.now = fx.now.Add(6 * time.Hour)
	resp, err = fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	require.NoError(t, err)
	assert.Equal(t, punch.KindExit, resp.Punch.Kind)
	assert.True(t, resp.QuotaReachedNow)

	fx.now = fx.now.Add(time.Hour)
	_, err = fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	assert.ErrorIs(t, err, punch.ErrDailyLimitReached)
}

func TestRegisterPunch_OutsideGeofenceRejected(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	req := punch.RegisterPunchRequest{
		// Roughly 340 km from the target.
		Latitude:      -23.55,
		Longitude:     -46.63,
		ChallengeCode: fx.validCode(),
	}

	_, err := fx.service.RegisterPunch(ctx, req)
	assert.ErrorIs(t, err, punch.ErrGeofenceViolation)
	assert.Empty(t, fx.punchRepo.punches)
}

func TestRegisterPunch_OutsideGeofenceWithJustification(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	req := punch.RegisterPunchRequest{
		Latitude:      -23.55,
		Longitude:     -46.63,
		ChallengeCode: fx.validCode(),
		Justification: &punch.JustificationInput{
			Kind:   "delay",
			Reason: "home office com autorização",
		},
	}

	resp, err := fx.service.RegisterPunch(ctx, req)

	require.NoError(t, err)
	assert.Nil(t, resp.Punch)
	require.NotNil(t, resp.PendingID)
	assert.Equal(t, punch.KindEntry, resp.VirtualKind)
	assert.Equal(t, 1, resp.VirtualOrdinal)
	assert.False(t, resp.WithinGeofence)
	assert.Empty(t, fx.punchRepo.punches)
	require.Len(t, fx.justifications.submitted, 1)
	assert.Equal(t, justification.KindDelay, fx.justifications.submitted[0].Kind)
}

func TestRegisterPunch_RadiusOverrideFromSettings(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	// About 5.5 km north of the target, outside the 3 km default.
	req := punch.RegisterPunchRequest{
		Latitude:      testTarget.Latitude + 0.05,
		Longitude:     testTarget.Longitude,
		ChallengeCode: fx.validCode(),
	}

	_, err := fx.service.RegisterPunch(ctx, req)
	assert.ErrorIs(t, err, punch.ErrGeofenceViolation)

	require.NoError(t, fx.settingRepo.Set(context.Background(), setting.KeyMaxRadiusKm, "10"))

	resp, err := fx.service.RegisterPunch(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, resp.Punch)
	assert.True(t, resp.WithinGeofence)
}

func TestRegisterPunch_WrongChallengeCode(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	code := fx.validCode()
	wrong := "XXX"
	if wrong == code {
		wrong = "YYY"
	}

	_, err := fx.service.RegisterPunch(ctx, insideRequest(wrong))
	assert.ErrorIs(t, err, token.ErrChallengeMismatch)
	assert.Empty(t, fx.punchRepo.punches)

	// Second mismatch locks the code.
	_, err = fx.service.RegisterPunch(ctx, insideRequest(wrong))
	assert.ErrorIs(t, err, token.ErrChallengeMismatch)

	_, err = fx.service.RegisterPunch(ctx, insideRequest(code))
	assert.ErrorIs(t, err, token.ErrChallengeLocked)
}

func TestRegisterPunch_ConflictPassthrough(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	fx.punchRepo.failWith = punch.ErrPunchConflict
	ctx := authedContext(t, "user-1", user.RoleStandard)

	_, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	assert.ErrorIs(t, err, punch.ErrPunchConflict)
}

func TestRegisterPunch_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	_, err := fx.service.RegisterPunch(ctx, punch.RegisterPunchRequest{
		Latitude:  120,
		Longitude: 0,
	})
	assert.Error(t, err)
}

func TestRegisterPunch_ReportedLocationFailure(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	_, err := fx.service.RegisterPunch(ctx, punch.RegisterPunchRequest{
		LocationError: "timeout",
	})
	assert.ErrorIs(t, err, punch.ErrLocationUnavailable)

	_, err = fx.service.RegisterPunch(ctx, punch.RegisterPunchRequest{
		LocationError: "battery",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, punch.ErrLocationUnavailable)
}

func TestRegisterPunch_MissingClaims(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)

	_, err := fx.service.RegisterPunch(context.Background(), insideRequest(fx.validCode()))
	assert.Error(t, err)
}

// ===== TODAY TESTS =====

func TestToday_EmptyDay(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	resp, err := fx.service.Today(ctx)

	require.NoError(t, err)
	assert.Empty(t, resp.Punches)
	assert.Equal(t, punch.KindEntry, resp.NextKind)
	assert.Equal(t, 1, resp.NextOrdinal)
	assert.Equal(t, 0, resp.QuotaUsed)
	assert.Equal(t, 4, resp.QuotaMax)
	assert.Zero(t, resp.WorkedHours)
}

func TestToday_AfterMorningPunches(t *testing.T) {
	t.Parallel()

	fx := newRegistrarFixture(t)
	ctx := authedContext(t, "user-1", user.RoleStandard)

	_, err := fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	require.NoError(t, err)

	fx.now = fx.now.Add(4 * time.Hour)
	_, err = fx.service.RegisterPunch(ctx, insideRequest(fx.validCode()))
	require.NoError(t, err)

	resp, err := fx.service.Today(ctx)

	require.NoError(t, err)
	assert.Len(t, resp.Punches, 2)
	assert.Equal(t, punch.KindLunchIn, resp.NextKind)
	assert.Equal(t, 3, resp.NextOrdinal)
	assert.Equal(t, 2, resp.QuotaUsed)
	assert.InDelta(t, 4.0, resp.WorkedHours, 0.001)
}
