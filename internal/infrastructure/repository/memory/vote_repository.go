package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/matchday/internal/domain/vote"
)

type VoteRepository struct {
	mu    sync.RWMutex
	items map[string]vote.Vote
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{items: make(map[string]vote.Vote)}
}

func (r *VoteRepository) ListByEvent(_ context.Context, eventID string) ([]vote.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vote.Vote, 0)
	for _, item := range r.items {
		if item.EventID == eventID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out, nil
}

func (r *VoteRepository) GetByEventAndParticipant(_ context.Context, eventID, participantID string) (vote.Vote, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[voteKey(eventID, participantID)]
	if !ok {
		return vote.Vote{}, false, nil
	}
	return item, true, nil
}

func (r *VoteRepository) Upsert(_ context.Context, item vote.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[voteKey(item.EventID, item.ParticipantID)] = item
	return nil
}

func (r *VoteRepository) Delete(_ context.Context, eventID, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, voteKey(eventID, participantID))
	return nil
}

func voteKey(eventID, participantID string) string {
	return eventID + "::" + participantID
}
