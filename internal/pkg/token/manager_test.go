package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager() (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	return NewManager(DefaultLifetime, DefaultMaxAttempts, clock.Now), clock
}

func TestCurrentCodeGeneratesFromAlphabet(t *testing.T) {
	m, _ := newTestManager()

	code, expiresAt := m.CurrentCode()

	require.Len(t, code, CodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected glyph %q", r)
	}
	assert.Equal(t, DefaultLifetime, expiresAt.Sub(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)))
}

func TestCurrentCodeStableWithinLifetime(t *testing.T) {
	m, clock := newTestManager()

	first, _ := m.CurrentCode()
	clock.Advance(30 * time.Second)
	second, _ := m.CurrentCode()

	assert.Equal(t, first, second)
}

func TestCurrentCodeRotatesAfterExpiry(t *testing.T) {
	m, clock := newTestManager()

	first, _ := m.CurrentCode()
	clock.Advance(DefaultLifetime)
	second, _ := m.CurrentCode()

	// A 3-char code over a 32-glyph alphabet colliding immediately would be a
	// 1-in-32768 event; treat equality as failure.
	assert.NotEqual(t, first, second)
}

func TestVerifyMatch(t *testing.T) {
	m, _ := newTestManager()

	code, _ := m.CurrentCode()

	assert.NoError(t, m.Verify(code))
	// Success does not consume the code.
	assert.NoError(t, m.Verify(code))
}

func TestVerifyLocksAfterTwoMismatches(t *testing.T) {
	m, _ := newTestManager()

	code, _ := m.CurrentCode()

	assert.ErrorIs(t, m.Verify("???"), ErrChallengeMismatch)
	assert.ErrorIs(t, m.Verify("???"), ErrChallengeMismatch)

	// Locked now: even the correct code fails closed.
	assert.ErrorIs(t, m.Verify(code), ErrChallengeLocked)
	assert.True(t, m.Snapshot().Locked)
}

func TestRotationClearsLockout(t *testing.T) {
	m, clock := newTestManager()

	m.CurrentCode()
	m.Verify("???")
	m.Verify("???")
	require.True(t, m.Snapshot().Locked)

	clock.Advance(DefaultLifetime + time.Second)
	code, _ := m.CurrentCode()

	assert.False(t, m.Snapshot().Locked)
	assert.NoError(t, m.Verify(code))
}

func TestVerifyFailsClosedWithoutActiveCode(t *testing.T) {
	m, _ := newTestManager()

	assert.ErrorIs(t, m.Verify("ABC"), ErrNoActiveCode)
}

func TestVerifyExpiredCode(t *testing.T) {
	m, clock := newTestManager()

	code, _ := m.CurrentCode()
	clock.Advance(DefaultLifetime + time.Second)

	assert.ErrorIs(t, m.Verify(code), ErrNoActiveCode)
}

func TestChallengeEmbedsRealCodeAmongDecoys(t *testing.T) {
	m, _ := newTestManager()

	code, _ := m.CurrentCode()
	options, err := m.Challenge()
	require.NoError(t, err)

	require.Len(t, options, 3)
	found := 0
	for _, opt := range options {
		require.Len(t, opt, CodeLength)
		if opt == code {
			found++
		}
	}
	assert.Equal(t, 1, found, "real code must appear exactly once")
}

func TestChallengeRefusedWhileLocked(t *testing.T) {
	m, _ := newTestManager()

	m.CurrentCode()
	m.Verify("???")
	m.Verify("???")

	_, err := m.Challenge()
	assert.ErrorIs(t, err, ErrChallengeLocked)
}

func TestForcedRotateResetsState(t *testing.T) {
	m, _ := newTestManager()

	first, _ := m.CurrentCode()
	m.Verify("???")
	m.Rotate()

	state := m.Snapshot()
	assert.False(t, state.Locked)
	assert.Equal(t, 0, state.Attempts)
	assert.NotEqual(t, first, state.Code)
}

func TestStartStopDoesNotLeak(t *testing.T) {
	m := NewManager(10*time.Millisecond, DefaultMaxAttempts, time.Now)

	for i := 0; i < 3; i++ {
		m.Start()
		m.Start() // second Start is a no-op
		time.Sleep(25 * time.Millisecond)
		m.Stop()
		m.Stop() // second Stop is a no-op
	}

	code, _ := m.CurrentCode()
	assert.Len(t, code, CodeLength)
}
