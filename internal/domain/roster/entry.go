package roster

import (
	"fmt"

	"github.com/pitchside/matchday/internal/domain/participant"
)

// Kind tags a roster entry as a stored member or a synthetic guest, so the
// balancer and the outcome resolver can work over one uniform sequence
// instead of null-checking a participant reference everywhere.
type Kind string

const (
	KindMember Kind = "MEMBER"
	KindGuest  Kind = "GUEST"
)

// Entry is one attendee of an event, ready for team balancing.
type Entry struct {
	Kind Kind
	// ParticipantID is set for members only; guests are scoped to the
	// single event they were brought to.
	ParticipantID string
	Name          string
	Level         int
	Position      participant.Position
	// SortKey preserves vote order so balancing stays deterministic for
	// identical inputs.
	SortKey int
}

// EffectiveLevel clamps unknown levels to the lowest rung instead of
// failing the draft over an incomplete profile.
func (e Entry) EffectiveLevel() int {
	if e.Level < participant.LevelMin {
		return participant.LevelMin
	}
	return e.Level
}

func (e Entry) Validate() error {
	switch e.Kind {
	case KindMember:
		if e.ParticipantID == "" {
			return fmt.Errorf("member roster entry requires a participant id")
		}
	case KindGuest:
		if e.ParticipantID != "" {
			return fmt.Errorf("guest roster entry cannot reference a participant")
		}
	default:
		return fmt.Errorf("invalid roster entry kind: %s", e.Kind)
	}
	if e.Name == "" {
		return fmt.Errorf("roster entry name is required")
	}
	if e.Level < 0 || e.Level > participant.LevelMax {
		return fmt.Errorf("roster entry level must be between 0 and %d: %d", participant.LevelMax, e.Level)
	}
	if _, ok := participant.AllPositions[e.Position]; !ok {
		return fmt.Errorf("invalid roster entry position: %s", e.Position)
	}

	return nil
}

// MemberEntry builds a roster entry from a stored participant.
func MemberEntry(p participant.Participant, sortKey int) Entry {
	return Entry{
		Kind:          KindMember,
		ParticipantID: p.ID,
		Name:          p.Name,
		Level:         p.EffectiveLevel(),
		Position:      p.Position,
		SortKey:       sortKey,
	}
}

// GuestEntry builds a roster entry for a synthetic guest attendee.
func GuestEntry(name string, level int, position participant.Position, sortKey int) Entry {
	return Entry{
		Kind:     KindGuest,
		Name:     name,
		Level:    level,
		Position: position,
		SortKey:  sortKey,
	}
}
