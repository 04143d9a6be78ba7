package memory

import (
	"context"
	"sync"

	"github.com/pitchside/matchday/internal/domain/formation"
)

type FormationRepository struct {
	mu    sync.RWMutex
	items map[string]formation.Formation
}

func NewFormationRepository() *FormationRepository {
	return &FormationRepository{items: make(map[string]formation.Formation)}
}

func (r *FormationRepository) GetByEvent(_ context.Context, eventID string) (formation.Formation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[eventID]
	if !ok {
		return formation.Formation{}, false, nil
	}
	return cloneFormation(item), true, nil
}

func (r *FormationRepository) Save(_ context.Context, item formation.Formation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.EventID] = cloneFormation(item)
	return nil
}

func cloneFormation(item formation.Formation) formation.Formation {
	copied := item
	copied.Squads = make([]formation.Squad, len(item.Squads))
	for i, squad := range item.Squads {
		copiedSquad := squad
		copiedSquad.Slots = append([]formation.Slot(nil), squad.Slots...)
		copied.Squads[i] = copiedSquad
	}
	return copied
}
