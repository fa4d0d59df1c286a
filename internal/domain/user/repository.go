package user

import "context"

type UserRepository interface {
	// GetByID retrieves a user profile by ID
	GetByID(ctx context.Context, id string) (User, error)

	// UpdateBirthdate sets the birthdate once the user supplies it
	UpdateBirthdate(ctx context.Context, id string, birthdate string) error

	// UpdateAvatar stores the storage path of the user's profile picture
	UpdateAvatar(ctx context.Context, id string, imgPath string) error
}
