package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/vote"
)

// EventRepository keeps events in memory. It needs the vote repository to
// answer attendance-scoped queries the way the SQL implementation does
// with a join.
type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
	votes *VoteRepository
}

func NewEventRepository(items []event.Event, votes *VoteRepository) *EventRepository {
	byID := make(map[string]event.Event, len(items))
	for _, item := range items {
		byID[item.ID] = cloneEvent(item)
	}
	return &EventRepository{items: byID, votes: votes}
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return event.Event{}, false, nil
	}
	return cloneEvent(item), true, nil
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneEvent(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *EventRepository) ListCompletedByYear(_ context.Context, year int) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, item := range r.items {
		if item.HasFinalScore() && item.StartsAt.Year() == year {
			out = append(out, cloneEvent(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *EventRepository) ListCompletedForParticipant(ctx context.Context, participantID string, year int) ([]event.Event, error) {
	completed, err := r.ListCompletedByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(completed))
	for _, item := range completed {
		v, exists, err := r.votes.GetByEventAndParticipant(ctx, item.ID, participantID)
		if err != nil {
			return nil, err
		}
		if exists && v.Status == vote.StatusAttending && !v.Guest {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *EventRepository) SaveCounters(_ context.Context, eventID string, counts vote.Counters) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[eventID]
	if !ok {
		return nil
	}
	item.AttendingCount = counts.Attending
	item.NotAttendingCount = counts.NotAttending
	item.PendingCount = counts.Pending
	r.items[eventID] = item
	return nil
}

// Upsert exists for seeding and tests.
func (r *EventRepository) Upsert(_ context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneEvent(item)
	return nil
}

func cloneEvent(item event.Event) event.Event {
	copied := item
	if item.HomeScore != nil {
		home := *item.HomeScore
		copied.HomeScore = &home
	}
	if item.AwayScore != nil {
		away := *item.AwayScore
		copied.AwayScore = &away
	}
	if item.CreatedBy != nil {
		creator := *item.CreatedBy
		copied.CreatedBy = &creator
	}
	return copied
}
