package postgres

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/event"
)

type eventTableModel struct {
	ID                string    `db:"id"`
	Title             string    `db:"title"`
	EventType         string    `db:"event_type"`
	StartsAt          time.Time `db:"starts_at"`
	HomeScore         *int      `db:"home_score"`
	AwayScore         *int      `db:"away_score"`
	AttendingCount    int       `db:"attending_count"`
	NotAttendingCount int       `db:"not_attending_count"`
	PendingCount      int       `db:"pending_count"`
	CreatedBy         *string   `db:"created_by"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:                row.ID,
		Title:             row.Title,
		Type:              event.Type(row.EventType),
		StartsAt:          row.StartsAt,
		HomeScore:         row.HomeScore,
		AwayScore:         row.AwayScore,
		AttendingCount:    row.AttendingCount,
		NotAttendingCount: row.NotAttendingCount,
		PendingCount:      row.PendingCount,
		CreatedBy:         row.CreatedBy,
	}
}
