package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gama-center/ponto-backend-go/internal/domain/user"
	"github.com/gama-center/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, username, img_url, role, birthdate, created_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.ImgURL, &u.Role, &u.Birthdate, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateBirthdate implements user.UserRepository.
func (r *userRepository) UpdateBirthdate(ctx context.Context, id string, birthdate string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET birthdate = $2::date
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, birthdate)
	if err != nil {
		return fmt.Errorf("failed to update birthdate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar implements user.UserRepository.
func (r *userRepository) UpdateAvatar(ctx context.Context, id string, imgPath string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET img_url = $2
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, imgPath)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
