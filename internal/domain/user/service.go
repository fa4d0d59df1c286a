package user

import (
	"context"
	"io"
)

type UserService interface {
	// Me returns the authenticated user's profile
	Me(ctx context.Context) (ProfileResponse, error)

	// UpdateBirthdate records the user's birthdate
	UpdateBirthdate(ctx context.Context, req UpdateBirthdateRequest) (ProfileResponse, error)

	// UpdateAvatar replaces the user's profile picture. The previous picture
	// is removed from storage best-effort.
	UpdateAvatar(ctx context.Context, file io.Reader, filename string) (ProfileResponse, error)
}
