package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/vote"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	const query = `SELECT * FROM events WHERE id = $1`

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return eventFromRow(row), true, nil
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	const query = `SELECT * FROM events ORDER BY starts_at`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) ListCompletedByYear(ctx context.Context, year int) ([]event.Event, error) {
	const query = `SELECT * FROM events
WHERE home_score IS NOT NULL
  AND away_score IS NOT NULL
  AND EXTRACT(YEAR FROM starts_at) = $1
ORDER BY starts_at`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, year); err != nil {
		return nil, fmt.Errorf("list completed events by year: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) ListCompletedForParticipant(ctx context.Context, participantID string, year int) ([]event.Event, error) {
	const query = `SELECT e.* FROM events e
JOIN votes v ON v.event_id = e.id
WHERE e.home_score IS NOT NULL
  AND e.away_score IS NOT NULL
  AND EXTRACT(YEAR FROM e.starts_at) = $1
  AND v.participant_id = $2
  AND v.status = $3
  AND NOT v.is_guest
ORDER BY e.starts_at`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, year, participantID, string(vote.StatusAttending)); err != nil {
		return nil, fmt.Errorf("list completed events for participant: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) SaveCounters(ctx context.Context, eventID string, counts vote.Counters) error {
	const query = `UPDATE events
SET attending_count = $2,
    not_attending_count = $3,
    pending_count = $4,
    updated_at = NOW()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, eventID, counts.Attending, counts.NotAttending, counts.Pending); err != nil {
		return fmt.Errorf("save attendance counters: %w", err)
	}
	return nil
}
