package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

// Insert implements punch.PunchRepository. Kinds persist as their legacy
// labels; the (user_id, ordinal, day) unique index surfaces concurrent
// duplicates as ErrPunchConflict.
func (r *punchRepository) Insert(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (
			user_id, recorded_at, kind, ordinal,
			accumulated_hours, lunch_hours, justification, justification_approved,
			out_of_geofence
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID,
		p.RecordedAt,
		p.Kind.Label(),
		p.Ordinal,
		p.AccumulatedHours,
		p.LunchHours,
		p.Justification,
		p.JustificationApproved,
		p.OutOfGeofence,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return punch.Punch{}, punch.ErrPunchConflict
		}
		return punch.Punch{}, fmt.Errorf("failed to insert punch: %w", err)
	}

	return p, nil
}

const punchColumns = `
	id, user_id, recorded_at, kind, ordinal,
	accumulated_hours, lunch_hours, justification, justification_approved,
	out_of_geofence, created_at
`

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	var kindLabel string
	err := row.Scan(
		&p.ID, &p.UserID, &p.RecordedAt, &kindLabel, &p.Ordinal,
		&p.AccumulatedHours, &p.LunchHours, &p.Justification, &p.JustificationApproved,
		&p.OutOfGeofence, &p.CreatedAt,
	)
	if err != nil {
		return punch.Punch{}, err
	}
	p.Kind = punch.KindFromLabel(kindLabel)
	return p, nil
}

func collectPunches(rows pgx.Rows) ([]punch.Punch, error) {
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punches: %w", err)
	}
	return punches, nil
}

// ListByDay implements punch.PunchRepository.
func (r *punchRepository) ListByDay(ctx context.Context, userID string, day time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE user_id = $1
		  AND recorded_at::date = $2::date
		ORDER BY recorded_at ASC
	`

	rows, err := q.Query(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches by day: %w", err)
	}
	return collectPunches(rows)
}

// ListRange implements punch.PunchRepository.
func (r *punchRepository) ListRange(ctx context.Context, userID string, start, end time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE user_id = $1
		  AND recorded_at BETWEEN $2 AND $3
		ORDER BY recorded_at ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches in range: %w", err)
	}
	return collectPunches(rows)
}

// LastExit implements punch.PunchRepository.
func (r *punchRepository) LastExit(ctx context.Context, userID string) (*punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE user_id = $1
		  AND kind = $2
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, userID, punch.KindExit.Label()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last exit punch: %w", err)
	}
	return &p, nil
}

// FirstRecordedAt implements punch.PunchRepository.
func (r *punchRepository) FirstRecordedAt(ctx context.Context, userID string) (*time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT MIN(recorded_at)
		FROM punches
		WHERE user_id = $1
	`

	var first *time.Time
	if err := q.QueryRow(ctx, query, userID).Scan(&first); err != nil {
		return nil, fmt.Errorf("failed to get first punch time: %w", err)
	}
	return first, nil
}
