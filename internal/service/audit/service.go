package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
)

type AuditServiceImpl struct {
	audit.AuditRepository
	user.UserRepository
	appName string

	mu    sync.RWMutex
	names map[string]string // userID -> display name
}

func NewAuditService(
	auditRepo audit.AuditRepository,
	userRepo user.UserRepository,
	appName string,
) audit.Service {
	return &AuditServiceImpl{
		AuditRepository: auditRepo,
		UserRepository:  userRepo,
		appName:         appName,
		names:           make(map[string]string),
	}
}

// Record implements audit.Service. Failures are logged and swallowed; an
// audit insert must never fail the operation it describes.
func (s *AuditServiceImpl) Record(ctx context.Context, userID string, action audit.Action, text string) {
	entry := audit.Entry{
		UserID:    userID,
		Username:  s.displayName(ctx, userID),
		AppName:   s.appName,
		Action:    action,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if err := s.AuditRepository.Insert(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry",
			"user_id", userID,
			"action", action,
			"error", err,
		)
	}
}

// ClearCache implements audit.Service.
func (s *AuditServiceImpl) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = make(map[string]string)
}

// displayName resolves and caches the user's display name. The cache lives
// for the session and is dropped through ClearCache.
func (s *AuditServiceImpl) displayName(ctx context.Context, userID string) string {
	s.mu.RLock()
	name, ok := s.names[userID]
	s.mu.RUnlock()
	if ok {
		return name
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return userID
	}

	name = u.DisplayName()
	s.mu.Lock()
	s.names[userID] = name
	s.mu.Unlock()
	return name
}
