package postgres

import (
	"time"

	"github.com/pitchside/matchday/internal/domain/formation"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/roster"
)

type formationTableModel struct {
	EventID    string    `db:"event_id"`
	Squads     []byte    `db:"squads"`
	HomeSide   string    `db:"home_side"`
	Confirmed  bool      `db:"confirmed"`
	ComputedAt time.Time `db:"computed_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// squadDocument is the JSONB shape stored in formations.squads. It is kept
// separate from the domain types so their field layout can evolve without a
// silent change to what is already persisted.
type squadDocument struct {
	Name      string         `json:"name"`
	Slots     []slotDocument `json:"slots"`
	Size      int            `json:"size"`
	MeanLevel float64        `json:"mean_level"`
}

type slotDocument struct {
	Kind              string `json:"kind"`
	ParticipantID     string `json:"participant_id,omitempty"`
	Name              string `json:"name"`
	Level             int    `json:"level"`
	Position          string `json:"position"`
	SortKey           int    `json:"sort_key"`
	AssignedPosition  string `json:"assigned_position"`
	LevelAtAssignment int    `json:"level_at_assignment"`
}

func squadsToDocuments(squads []formation.Squad) []squadDocument {
	out := make([]squadDocument, 0, len(squads))
	for _, squad := range squads {
		doc := squadDocument{
			Name:      squad.Name,
			Slots:     make([]slotDocument, 0, len(squad.Slots)),
			Size:      squad.Size,
			MeanLevel: squad.MeanLevel,
		}
		for _, slot := range squad.Slots {
			doc.Slots = append(doc.Slots, slotDocument{
				Kind:              string(slot.Entry.Kind),
				ParticipantID:     slot.Entry.ParticipantID,
				Name:              slot.Entry.Name,
				Level:             slot.Entry.Level,
				Position:          string(slot.Entry.Position),
				SortKey:           slot.Entry.SortKey,
				AssignedPosition:  string(slot.AssignedPosition),
				LevelAtAssignment: slot.LevelAtAssignment,
			})
		}
		out = append(out, doc)
	}
	return out
}

func squadsFromDocuments(docs []squadDocument) []formation.Squad {
	out := make([]formation.Squad, 0, len(docs))
	for _, doc := range docs {
		squad := formation.Squad{
			Name:      doc.Name,
			Slots:     make([]formation.Slot, 0, len(doc.Slots)),
			Size:      doc.Size,
			MeanLevel: doc.MeanLevel,
		}
		for _, slot := range doc.Slots {
			squad.Slots = append(squad.Slots, formation.Slot{
				Entry: roster.Entry{
					Kind:          roster.Kind(slot.Kind),
					ParticipantID: slot.ParticipantID,
					Name:          slot.Name,
					Level:         slot.Level,
					Position:      participant.Position(slot.Position),
					SortKey:       slot.SortKey,
				},
				AssignedPosition:  participant.Position(slot.AssignedPosition),
				LevelAtAssignment: slot.LevelAtAssignment,
			})
		}
		out = append(out, squad)
	}
	return out
}
