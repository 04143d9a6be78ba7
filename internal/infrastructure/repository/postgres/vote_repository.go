package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchday/internal/domain/vote"
)

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) ListByEvent(ctx context.Context, eventID string) ([]vote.Vote, error) {
	const query = `SELECT * FROM votes WHERE event_id = $1 ORDER BY created_at, participant_id`

	var rows []voteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list votes by event: %w", err)
	}

	out := make([]vote.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, voteFromRow(row))
	}
	return out, nil
}

func (r *VoteRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (vote.Vote, bool, error) {
	const query = `SELECT * FROM votes WHERE event_id = $1 AND participant_id = $2`

	var row voteTableModel
	if err := r.db.GetContext(ctx, &row, query, eventID, participantID); err != nil {
		if isNotFound(err) {
			return vote.Vote{}, false, nil
		}
		return vote.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}

	return voteFromRow(row), true, nil
}

func (r *VoteRepository) Upsert(ctx context.Context, item vote.Vote) error {
	const query = `INSERT INTO votes (
    event_id, participant_id, status, is_guest, guest_name, guest_level, guest_position, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (event_id, participant_id)
DO UPDATE SET
    status = EXCLUDED.status,
    is_guest = EXCLUDED.is_guest,
    guest_name = EXCLUDED.guest_name,
    guest_level = EXCLUDED.guest_level,
    guest_position = EXCLUDED.guest_position,
    updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		item.EventID,
		item.ParticipantID,
		string(item.Status),
		item.Guest,
		item.GuestName,
		item.GuestLevel,
		string(item.GuestPosition),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, eventID, participantID string) error {
	const query = `DELETE FROM votes WHERE event_id = $1 AND participant_id = $2`

	if _, err := r.db.ExecContext(ctx, query, eventID, participantID); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}
