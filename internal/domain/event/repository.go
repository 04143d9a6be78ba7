package event

import (
	"context"

	"github.com/pitchside/matchday/internal/domain/vote"
)

// Repository exposes event persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Event, bool, error)
	List(ctx context.Context) ([]Event, error)
	// ListCompletedByYear returns every event of the calendar year that has
	// a final score recorded.
	ListCompletedByYear(ctx context.Context, year int) ([]Event, error)
	// ListCompletedForParticipant narrows ListCompletedByYear to events the
	// participant holds an ATTENDING vote for.
	ListCompletedForParticipant(ctx context.Context, participantID string, year int) ([]Event, error)
	// SaveCounters overwrites the three denormalized attendance counters.
	SaveCounters(ctx context.Context, eventID string, counts vote.Counters) error
}
