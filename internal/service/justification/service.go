package justification

import (
	"context"
	"fmt"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/pkg/sse"
	"github.com/gama-center/ponto-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type JustificationServiceImpl struct {
	justification.JustificationRepository
	fileService  file.FileService
	hub          *sse.Hub
	auditService audit.Service
	now          func() time.Time
}

func NewJustificationService(
	justificationRepo justification.JustificationRepository,
	fileService file.FileService,
	hub *sse.Hub,
	auditService audit.Service,
) justification.JustificationService {
	return &JustificationServiceImpl{
		JustificationRepository: justificationRepo,
		fileService:             fileService,
		hub:                     hub,
		auditService:            auditService,
		now:                     time.Now,
	}
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Submit implements justification.JustificationService.
func (s *JustificationServiceImpl) Submit(ctx context.Context, req justification.SubmitRequest) (justification.Response, error) {
	if err := req.Validate(); err != nil {
		return justification.Response{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return justification.Response{}, err
	}

	now := s.now()

	var evidenceURL *string
	if req.File != nil && req.FileHeader != nil {
		path, err := s.fileService.UploadJustificationEvidence(ctx, userID, now, req.File, req.FileHeader.Filename)
		if err != nil {
			return justification.Response{}, err
		}
		url, err := s.fileService.GetFileURL(ctx, path, 0)
		if err != nil {
			return justification.Response{}, fmt.Errorf("failed to resolve evidence URL: %w", err)
		}
		evidenceURL = &url
	}

	created, err := s.JustificationRepository.Insert(ctx, justification.Justification{
		UserID:      userID,
		Kind:        req.Kind,
		Reason:      req.Reason,
		EvidenceURL: evidenceURL,
		CreatedAt:   now,
	})
	if err != nil {
		return justification.Response{}, fmt.Errorf("failed to insert justification: %w", err)
	}

	s.auditService.Record(ctx, userID, audit.ActionCreate,
		fmt.Sprintf("justification %s submitted (%s)", created.ID, created.Kind))

	s.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  sse.EventJustificationSubmitted,
		Data:   justification.ToResponse(created),
	})

	return justification.ToResponse(created), nil
}

// Latest implements justification.JustificationService.
func (s *JustificationServiceImpl) Latest(ctx context.Context) (*justification.Response, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.JustificationRepository.Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest justification: %w", err)
	}
	if latest == nil {
		return nil, nil
	}

	resp := justification.ToResponse(*latest)
	return &resp, nil
}

// Approve implements justification.JustificationService.
func (s *JustificationServiceImpl) Approve(ctx context.Context, id string) (justification.Response, error) {
	return s.decide(ctx, id, true, "")
}

// Reject implements justification.JustificationService.
func (s *JustificationServiceImpl) Reject(ctx context.Context, req justification.RejectRequest) (justification.Response, error) {
	return s.decide(ctx, req.ID, false, req.Reason)
}

// decide applies the terminal approve/reject transition and notifies the
// subject's open streams. A rejection does not re-enable the punch attempt it
// substituted; the subject only learns the outcome.
func (s *JustificationServiceImpl) decide(ctx context.Context, id string, approved bool, reason string) (justification.Response, error) {
	adminID, err := userIDFromClaims(ctx)
	if err != nil {
		return justification.Response{}, err
	}

	current, err := s.JustificationRepository.GetByID(ctx, id)
	if err != nil {
		return justification.Response{}, err
	}

	if !current.Pending() {
		return justification.Response{}, justification.ErrAlreadyProcessed
	}

	if err := s.JustificationRepository.SetDecision(ctx, id, approved); err != nil {
		return justification.Response{}, err
	}

	current.Approved = &approved

	verdict := "approved"
	event := sse.EventJustificationApproved
	if !approved {
		verdict = "rejected"
		event = sse.EventJustificationRejected
	}

	auditText := fmt.Sprintf("justification %s %s", id, verdict)
	if reason != "" {
		auditText = fmt.Sprintf("%s: %s", auditText, reason)
	}
	s.auditService.Record(ctx, adminID, audit.ActionUpdate, auditText)

	s.hub.Publish(current.UserID, sse.Event{
		UserID: current.UserID,
		Event:  event,
		Data:   justification.ToResponse(current),
	})

	return justification.ToResponse(current), nil
}

// Acknowledge implements justification.JustificationService.
func (s *JustificationServiceImpl) Acknowledge(ctx context.Context, id string) error {
	if _, err := s.JustificationRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.JustificationRepository.Acknowledge(ctx, id)
}
