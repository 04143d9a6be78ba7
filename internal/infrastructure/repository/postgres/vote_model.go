package postgres

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/vote"
)

type voteTableModel struct {
	EventID       string    `db:"event_id"`
	ParticipantID string    `db:"participant_id"`
	Status        string    `db:"status"`
	IsGuest       bool      `db:"is_guest"`
	GuestName     string    `db:"guest_name"`
	GuestLevel    int       `db:"guest_level"`
	GuestPosition string    `db:"guest_position"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func voteFromRow(row voteTableModel) vote.Vote {
	return vote.Vote{
		EventID:       row.EventID,
		ParticipantID: row.ParticipantID,
		Status:        vote.Status(row.Status),
		Guest:         row.IsGuest,
		GuestName:     row.GuestName,
		GuestLevel:    row.GuestLevel,
		GuestPosition: participant.Position(row.GuestPosition),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
