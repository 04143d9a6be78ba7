package postgres

import (
	"reflect"
	"testing"

	"github.com/pitchside/matchday/internal/domain/formation"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/roster"
)

func TestSquadDocumentMappingRoundTrip(t *testing.T) {
	squads := []formation.Squad{
		{
			Name: "Team A",
			Slots: []formation.Slot{
				{
					Entry: roster.Entry{
						Kind:          roster.KindMember,
						ParticipantID: "member-fwd-1",
						Name:          "member-fwd-1",
						Level:         9,
						Position:      participant.PositionForward,
						SortKey:       1,
					},
					AssignedPosition:  participant.PositionForward,
					LevelAtAssignment: 9,
				},
				{
					Entry: roster.Entry{
						Kind:     roster.KindGuest,
						Name:     "Robin",
						Level:    5,
						Position: participant.PositionMidfielder,
						SortKey:  2,
					},
					AssignedPosition:  participant.PositionMidfielder,
					LevelAtAssignment: 5,
				},
			},
			Size:      2,
			MeanLevel: 7,
		},
	}

	got := squadsFromDocuments(squadsToDocuments(squads))
	if !reflect.DeepEqual(got, squads) {
		t.Fatalf("round trip changed squads:\n got %+v\nwant %+v", got, squads)
	}
}
