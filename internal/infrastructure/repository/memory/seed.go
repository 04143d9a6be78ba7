package memory

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/participant"
)

const (
	ParticipantIDCaptain = "member-captain"
	EventIDWeeklyGame    = "event-weekly-game"
)

// SeedParticipants returns a small roster for dev mode and tests.
func SeedParticipants() []participant.Participant {
	return []participant.Participant{
		{ID: ParticipantIDCaptain, Name: "Alex Byrne", Level: 8, Position: participant.PositionMidfielder, Active: true, Admin: true},
		{ID: "member-gk", Name: "Jonas Keller", Level: 6, Position: participant.PositionGoalkeeper, Active: true},
		{ID: "member-def-1", Name: "Marco Silva", Level: 7, Position: participant.PositionDefender, Active: true},
		{ID: "member-def-2", Name: "Tomas Novak", Level: 4, Position: participant.PositionDefender, Active: true},
		{ID: "member-mid-1", Name: "Sam Ortega", Level: 5, Position: participant.PositionMidfielder, Active: true},
		{ID: "member-fwd-1", Name: "Dani Costa", Level: 9, Position: participant.PositionForward, Active: true},
		{ID: "member-fwd-2", Name: "Lior Azulay", Level: 3, Position: participant.PositionForward, Active: true},
		{ID: "member-retired", Name: "Pat Dunne", Level: 7, Position: participant.PositionMidfielder, Active: false},
	}
}

// SeedEvents returns upcoming sessions owned by the seeded captain.
func SeedEvents() []event.Event {
	creator := ParticipantIDCaptain
	nextGame := time.Now().UTC().Truncate(time.Hour).Add(72 * time.Hour)

	return []event.Event{
		{
			ID:        EventIDWeeklyGame,
			Title:     "Weekly scrimmage",
			Type:      event.TypeInternal,
			StartsAt:  nextGame,
			CreatedBy: &creator,
		},
		{
			ID:        "event-away-cup",
			Title:     "Cup match vs Northside",
			Type:      event.TypeExternal,
			StartsAt:  nextGame.Add(7 * 24 * time.Hour),
			CreatedBy: &creator,
		},
		{
			ID:        "event-training",
			Title:     "Tuesday training",
			Type:      event.TypeTraining,
			StartsAt:  nextGame.Add(-48 * time.Hour),
			CreatedBy: &creator,
		},
	}
}
