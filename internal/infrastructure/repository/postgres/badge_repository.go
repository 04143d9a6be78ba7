package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pitchside/matchday/internal/domain/badge"
)

type AwardedBadgeRepository struct {
	db *sqlx.DB
}

func NewAwardedBadgeRepository(db *sqlx.DB) *AwardedBadgeRepository {
	return &AwardedBadgeRepository{db: db}
}

func (r *AwardedBadgeRepository) ListByParticipant(ctx context.Context, participantID string) ([]badge.Awarded, error) {
	const query = `SELECT * FROM awarded_badges WHERE participant_id = $1 ORDER BY code`

	var rows []awardedBadgeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, participantID); err != nil {
		return nil, fmt.Errorf("list awarded badges: %w", err)
	}

	out := make([]badge.Awarded, 0, len(rows))
	for _, row := range rows {
		out = append(out, awardedFromRow(row))
	}
	return out, nil
}

// ApplyChanges applies one reconciliation diff in a single transaction so a
// participant's badge set can never be observed half-updated.
func (r *AwardedBadgeRepository) ApplyChanges(ctx context.Context, participantID string, add []badge.Awarded, removeCodes []string) error {
	if len(add) == 0 && len(removeCodes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin badge changes: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(removeCodes) > 0 {
		const remove = `DELETE FROM awarded_badges WHERE participant_id = $1 AND code = ANY($2)`
		if _, err := tx.ExecContext(ctx, remove, participantID, pq.Array(removeCodes)); err != nil {
			return fmt.Errorf("remove awarded badges: %w", err)
		}
	}

	const insert = `INSERT INTO awarded_badges (participant_id, code, earned_at, acknowledged)
VALUES ($1, $2, $3, $4)
ON CONFLICT (participant_id, code) DO NOTHING`
	for _, item := range add {
		if _, err := tx.ExecContext(ctx, insert, item.ParticipantID, item.Code, item.EarnedAt, item.Acknowledged); err != nil {
			return fmt.Errorf("add awarded badge %s: %w", item.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit badge changes: %w", err)
	}
	return nil
}
