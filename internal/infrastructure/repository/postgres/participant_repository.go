package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pitchside/matchday/internal/domain/participant"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (participant.Participant, bool, error) {
	const query = `SELECT * FROM participants WHERE id = $1`

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}

	return participantFromRow(row), true, nil
}

func (r *ParticipantRepository) GetByIDs(ctx context.Context, ids []string) ([]participant.Participant, error) {
	if len(ids) == 0 {
		return []participant.Participant{}, nil
	}

	const query = `SELECT * FROM participants WHERE id = ANY($1) ORDER BY id`

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get participants by ids: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *ParticipantRepository) ListActive(ctx context.Context) ([]participant.Participant, error) {
	const query = `SELECT * FROM participants WHERE is_active ORDER BY id`

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *ParticipantRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM participants WHERE is_active`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active participants: %w", err)
	}
	return count, nil
}
