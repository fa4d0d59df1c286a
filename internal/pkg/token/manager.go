package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Alphabet excludes easily-confused glyphs (0/O, 1/I). Its length of 32 keeps
// the modulo mapping from random bytes unbiased.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	CodeLength         = 3
	DefaultLifetime    = 60 * time.Second
	DefaultMaxAttempts = 2
	decoyCount         = 2
)

var (
	ErrChallengeLocked   = errors.New("too many failed confirmations, wait for the next code")
	ErrChallengeMismatch = errors.New("confirmation code does not match")
	ErrNoActiveCode      = errors.New("no active confirmation code")
)

// State is a read-only snapshot for the viewer UI.
type State struct {
	Code         string `json:"code"`
	SecondsLeft  int    `json:"seconds_left"`
	TotalSeconds int    `json:"total_seconds"`
	Locked       bool   `json:"locked"`
	Attempts     int    `json:"attempts"`
}

// Manager issues and verifies the short-lived punch confirmation code. A new
// code is generated exactly when none exists or the current one has expired;
// rotation always clears the lockout, so a locked user waits at most one code
// lifetime. State is process-local and never persisted.
type Manager struct {
	lifetime    time.Duration
	maxAttempts int
	now         func() time.Time

	mu        sync.Mutex
	code      string
	expiresAt time.Time
	attempts  int
	locked    bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(lifetime time.Duration, maxAttempts int, now func() time.Time) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		lifetime:    lifetime,
		maxAttempts: maxAttempts,
		now:         now,
	}
}

// CurrentCode returns the active code and its expiry, rotating first if no
// code exists or the current one has expired.
func (m *Manager) CurrentCode() (string, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureActiveLocked()
	return m.code, m.expiresAt
}

// Snapshot returns the viewer state, rotating if needed.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureActiveLocked()
	left := int(m.expiresAt.Sub(m.now()).Seconds())
	if left < 0 {
		left = 0
	}
	return State{
		Code:         m.code,
		SecondsLeft:  left,
		TotalSeconds: int(m.lifetime.Seconds()),
		Locked:       m.locked,
		Attempts:     m.attempts,
	}
}

// Verify checks a candidate against the active code. It fails closed when
// locked or when no unexpired code exists. A match does not reset the attempt
// counter; only rotation does.
func (m *Manager) Verify(candidate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked {
		return ErrChallengeLocked
	}
	if m.code == "" || !m.now().Before(m.expiresAt) {
		return ErrNoActiveCode
	}

	if candidate == m.code {
		return nil
	}

	m.attempts++
	if m.attempts >= m.maxAttempts {
		m.locked = true
	}
	return ErrChallengeMismatch
}

// Challenge returns the active code embedded among freshly generated decoys,
// shuffled, for the multiple-choice confirmation UI. Selecting a decoy is
// reported through Verify and counts as a failed attempt.
func (m *Manager) Challenge() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked {
		return nil, ErrChallengeLocked
	}
	m.ensureActiveLocked()

	options := []string{m.code}
	for len(options) < decoyCount+1 {
		decoy, err := generateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate decoy code: %w", err)
		}
		if decoy == m.code {
			continue
		}
		options = append(options, decoy)
	}

	if err := shuffle(options); err != nil {
		return nil, fmt.Errorf("failed to shuffle challenge options: %w", err)
	}
	return options, nil
}

// Rotate forces a new code immediately, clearing the lockout and attempts.
func (m *Manager) Rotate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotateLocked()
}

// Start launches the periodic expiry check. Repeated Start calls without a
// Stop in between are no-ops, so timers never pile up.
func (m *Manager) Start() {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				m.ensureActiveLocked()
				m.mu.Unlock()
			}
		}
	}()
	slog.Info("Challenge code rotation started", "lifetime", m.lifetime)
}

// Stop cancels the rotation timer and waits for it to exit.
func (m *Manager) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.wg.Wait()
	slog.Info("Challenge code rotation stopped")
}

// ensureActiveLocked rotates when no code exists or the current one expired.
// Caller must hold m.mu.
func (m *Manager) ensureActiveLocked() {
	if m.code == "" || !m.now().Before(m.expiresAt) {
		m.rotateLocked()
	}
}

func (m *Manager) rotateLocked() {
	code, err := generateCode()
	if err != nil {
		// Out of entropy is not recoverable here; keep the old code and let
		// the next tick retry.
		slog.Error("Failed to generate challenge code", "error", err)
		return
	}
	m.code = code
	m.expiresAt = m.now().Add(m.lifetime)
	m.locked = false
	m.attempts = 0
}

func generateCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, CodeLength)
	for i, b := range buf {
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out), nil
}

func shuffle(options []string) error {
	buf := make([]byte, len(options))
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	for i := len(options) - 1; i > 0; i-- {
		j := int(buf[i]) % (i + 1)
		options[i], options[j] = options[j], options[i]
	}
	return nil
}
