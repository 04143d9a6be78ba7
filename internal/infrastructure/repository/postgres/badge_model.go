package postgres

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/badge"
)

type awardedBadgeTableModel struct {
	ParticipantID string    `db:"participant_id"`
	Code          string    `db:"code"`
	EarnedAt      time.Time `db:"earned_at"`
	Acknowledged  bool      `db:"acknowledged"`
}

func awardedFromRow(row awardedBadgeTableModel) badge.Awarded {
	return badge.Awarded{
		ParticipantID: row.ParticipantID,
		Code:          row.Code,
		EarnedAt:      row.EarnedAt,
		Acknowledged:  row.Acknowledged,
	}
}
