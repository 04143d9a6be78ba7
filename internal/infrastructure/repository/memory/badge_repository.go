package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/matchday/internal/domain/badge"
)

type AwardedBadgeRepository struct {
	mu    sync.Mutex
	items map[string]badge.Awarded
}

func NewAwardedBadgeRepository(items []badge.Awarded) *AwardedBadgeRepository {
	byKey := make(map[string]badge.Awarded, len(items))
	for _, item := range items {
		byKey[awardKey(item.ParticipantID, item.Code)] = item
	}
	return &AwardedBadgeRepository{items: byKey}
}

func (r *AwardedBadgeRepository) ListByParticipant(_ context.Context, participantID string) ([]badge.Awarded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]badge.Awarded, 0)
	for _, item := range r.items {
		if item.ParticipantID == participantID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ApplyChanges performs all adds and removes under one lock so a reader
// never observes a half-applied reconciliation.
func (r *AwardedBadgeRepository) ApplyChanges(_ context.Context, participantID string, add []badge.Awarded, removeCodes []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range add {
		r.items[awardKey(participantID, item.Code)] = item
	}
	for _, code := range removeCodes {
		delete(r.items, awardKey(participantID, code))
	}
	return nil
}

func awardKey(participantID, code string) string {
	return participantID + "::" + code
}
