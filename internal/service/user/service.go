package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/gama-center/ponto-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type UserServiceImpl struct {
	user.UserRepository
	fileService  file.FileService
	auditService audit.Service
}

func NewUserService(userRepo user.UserRepository, fileService file.FileService, auditService audit.Service) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		fileService:    fileService,
		auditService:   auditService,
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

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.ProfileResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return s.mapProfile(ctx, u), nil
}

// UpdateBirthdate implements user.UserService.
func (s *UserServiceImpl) UpdateBirthdate(ctx context.Context, req user.UpdateBirthdateRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if err := s.UserRepository.UpdateBirthdate(ctx, userID, req.Birthdate); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update birthdate: %w", err)
	}

	s.auditService.Record(ctx, userID, audit.ActionUpdate, "birthdate updated")

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.mapProfile(ctx, u), nil
}

// UpdateAvatar implements user.UserService.
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, f io.Reader, filename string) (user.ProfileResponse, error) {
	userID, err := userIDFromClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	path, err := s.fileService.UploadAvatar(ctx, userID, f, filename)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if err := s.UserRepository.UpdateAvatar(ctx, userID, path); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update avatar: %w", err)
	}

	// Best-effort cleanup of the replaced picture; legacy absolute URLs are
	// not storage paths and are left alone.
	if u.ImgURL != nil && !strings.HasPrefix(*u.ImgURL, "http") {
		_ = s.fileService.DeleteFile(ctx, *u.ImgURL)
	}

	s.auditService.Record(ctx, userID, audit.ActionUpdate, "avatar updated")

	u, err = s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.mapProfile(ctx, u), nil
}

// mapProfile resolves the stored avatar path into a servable URL. Rows from
// before avatar uploads moved in-house may already hold an absolute URL.
func (s *UserServiceImpl) mapProfile(ctx context.Context, u user.User) user.ProfileResponse {
	var imgURL *string
	if u.ImgURL != nil {
		resolved := *u.ImgURL
		if !strings.HasPrefix(resolved, "http") {
			if url, err := s.fileService.GetFileURL(ctx, resolved, 24*time.Hour); err == nil {
				resolved = url
			}
		}
		imgURL = &resolved
	}

	var birthdate *string
	if u.Birthdate != nil {
		formatted := u.Birthdate.Format("2006-01-02")
		birthdate = &formatted
	}

	return user.ProfileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		ImgURL:      imgURL,
		Role:        u.Role,
		Birthdate:   birthdate,
		DailyTarget: u.Role.DailyTargetHours(),
		QuotaMax:    u.Role.MaxDailyPunches(),
	}
}
