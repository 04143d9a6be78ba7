package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/matchday/internal/domain/participant"
)

type ParticipantRepository struct {
	mu    sync.RWMutex
	items map[string]participant.Participant
}

func NewParticipantRepository(items []participant.Participant) *ParticipantRepository {
	byID := make(map[string]participant.Participant, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &ParticipantRepository{items: byID}
}

func (r *ParticipantRepository) GetByID(_ context.Context, id string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return participant.Participant{}, false, nil
	}
	return item, true, nil
}

func (r *ParticipantRepository) GetByIDs(_ context.Context, ids []string) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ParticipantRepository) ListActive(_ context.Context) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.items))
	for _, item := range r.items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ParticipantRepository) CountActive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.Active {
			count++
		}
	}
	return count, nil
}

// Upsert exists for seeding and tests; the engine itself never creates
// participants.
func (r *ParticipantRepository) Upsert(_ context.Context, item participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
