package event

import (
	"strings"
	"time"
)

// Type classifies a scheduled session.
type Type string

const (
	TypeInternal Type = "INTERNAL"
	TypeExternal Type = "EXTERNAL"
	TypeTraining Type = "TRAINING"
)

var AllTypes = map[Type]struct{}{
	TypeInternal: {},
	TypeExternal: {},
	TypeTraining: {},
}

func NormalizeType(value string) Type {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(TypeExternal), "EXTERNAL_MATCH":
		return TypeExternal
	case string(TypeTraining):
		return TypeTraining
	default:
		return TypeInternal
	}
}

// Event is one scheduled match or training session. The three attendance
// counters are a cached projection over the vote records; they are always
// overwritten by a full recompute, never patched incrementally.
type Event struct {
	ID       string
	Title    string
	Type     Type
	StartsAt time.Time

	// HomeScore/AwayScore stay nil until the event is completed. For
	// internal scrimmages "home" belongs to the squad pinned on the
	// formation, for external matches it is the club side.
	HomeScore *int
	AwayScore *int

	AttendingCount    int
	NotAttendingCount int
	PendingCount      int

	// CreatedBy references the creating participant. Deleting the creator
	// keeps the event around, so the reference is nullable.
	CreatedBy *string
}

func (e Event) HasFinalScore() bool {
	return e.HomeScore != nil && e.AwayScore != nil
}

// HasFormation reports whether the event type carries a formation at all.
// External matches field the whole roster against the opponent.
func (e Event) HasFormation() bool {
	return e.Type != TypeExternal
}
