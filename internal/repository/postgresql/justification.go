package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type justificationRepository struct {
	db *database.DB
}

func NewJustificationRepository(db *database.DB) justification.JustificationRepository {
	return &justificationRepository{db: db}
}

// Insert implements justification.JustificationRepository.
func (r *justificationRepository) Insert(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justifications (user_id, kind, reason, evidence_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		j.UserID,
		j.Kind,
		j.Reason,
		j.EvidenceURL,
	).Scan(&j.ID, &j.CreatedAt)

	if err != nil {
		return justification.Justification{}, fmt.Errorf("failed to insert justification: %w", err)
	}

	return j, nil
}

func scanJustification(row pgx.Row) (justification.Justification, error) {
	var j justification.Justification
	err := row.Scan(
		&j.ID, &j.UserID, &j.Kind, &j.Reason, &j.EvidenceURL,
		&j.Approved, &j.AcknowledgedAt, &j.CreatedAt,
	)
	return j, err
}

const justificationColumns = `
	id, user_id, kind, reason, evidence_url, approved, acknowledged_at, created_at
`

// GetByID implements justification.JustificationRepository.
func (r *justificationRepository) GetByID(ctx context.Context, id string) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications
		WHERE id = $1
	`

	j, err := scanJustification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.Justification{}, justification.ErrJustificationNotFound
		}
		return justification.Justification{}, fmt.Errorf("failed to get justification: %w", err)
	}
	return j, nil
}

// Latest implements justification.JustificationRepository.
func (r *justificationRepository) Latest(ctx context.Context, userID string) (*justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + justificationColumns + `
		FROM justifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	j, err := scanJustification(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest justification: %w", err)
	}
	return &j, nil
}

// SetDecision implements justification.JustificationRepository. The WHERE
// clause refuses to touch an already decided row.
func (r *justificationRepository) SetDecision(ctx context.Context, id string, approved bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE justifications
		SET approved = $2
		WHERE id = $1
		  AND approved IS NULL
	`

	tag, err := q.Exec(ctx, query, id, approved)
	if err != nil {
		return fmt.Errorf("failed to set justification decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !existing.Pending() {
			return justification.ErrAlreadyProcessed
		}
		return justification.ErrJustificationNotFound
	}
	return nil
}

// Acknowledge implements justification.JustificationRepository. Repeat calls
// keep the first acknowledgment timestamp.
func (r *justificationRepository) Acknowledge(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE justifications
		SET acknowledged_at = NOW()
		WHERE id = $1
		  AND acknowledged_at IS NULL
	`

	if _, err := q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to acknowledge justification: %w", err)
	}
	return nil
}
