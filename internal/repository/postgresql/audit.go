package postgresql

import (
	"context"
	"fmt"

	"github.com/gama-center/ponto-backend-go/internal/domain/audit"
	"github.com/gama-center/ponto-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

// Insert implements audit.AuditRepository.
func (r *auditRepository) Insert(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO logs (user_uuid, username, appname, action, logtxt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		e.UserID,
		e.Username,
		e.AppName,
		e.Action,
		e.Text,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}
