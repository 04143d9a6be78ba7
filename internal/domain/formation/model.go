package formation

import (
	"errors"
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/roster"
)

var (
	ErrAlreadyConfirmed = errors.New("formation is already confirmed")
	ErrNoFormation      = errors.New("event has no draft formation")
	ErrNotConfirmed     = errors.New("formation is not confirmed")
)

// Slot is one assigned place inside a squad. Level and position are frozen
// at assignment time so later profile edits do not rewrite history.
type Slot struct {
	Entry roster.Entry
	// AssignedPosition is the position the attendee plays in this squad,
	// which may differ from their usual one.
	AssignedPosition participant.Position
	LevelAtAssignment int
}

// Squad is one side of an internal scrimmage.
type Squad struct {
	Name      string
	Slots     []Slot
	Size      int
	MeanLevel float64
}

func (s Squad) Contains(participantID string) bool {
	if participantID == "" {
		return false
	}
	for _, slot := range s.Slots {
		if slot.Entry.Kind == roster.KindMember && slot.Entry.ParticipantID == participantID {
			return true
		}
	}
	return false
}

// Formation is the partition of an event's attendees into squads.
//
// HomeSide names the squad whose result is read from the event's home
// score. It is pinned exactly once, at confirmation, and stays immutable
// afterwards; inferring the side from squad names or ordering proved
// ambiguous once squads get reordered.
type Formation struct {
	EventID    string
	Squads     []Squad
	HomeSide   string
	Confirmed  bool
	ComputedAt time.Time
}

// SquadOf returns the squad a member participant was assigned to.
func (f Formation) SquadOf(participantID string) (Squad, bool) {
	for _, squad := range f.Squads {
		if squad.Contains(participantID) {
			return squad, true
		}
	}
	return Squad{}, false
}

func (f Formation) SquadByName(name string) (Squad, bool) {
	for _, squad := range f.Squads {
		if squad.Name == name {
			return squad, true
		}
	}
	return Squad{}, false
}
