package postgres

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
)

type participantTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Level     int       `db:"level"`
	Position  string    `db:"position"`
	IsActive  bool      `db:"is_active"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func participantFromRow(row participantTableModel) participant.Participant {
	return participant.Participant{
		ID:       row.ID,
		Name:     row.Name,
		Level:    row.Level,
		Position: participant.Position(row.Position),
		Active:   row.IsActive,
		Admin:    row.IsAdmin,
	}
}
