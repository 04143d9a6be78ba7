package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/formation"
	"github.com/pitchside/matchday/internal/domain/outcome"
	"github.com/pitchside/matchday/internal/domain/roster"
	"github.com/pitchside/matchday/internal/domain/vote"
)

// OutcomeService derives per-participant win/loss/draw results from an
// event's final score and its confirmed formation. Outcomes are never
// stored; badge reconciliation recomputes them from scratch every time.
type OutcomeService struct {
	eventRepo     event.Repository
	voteRepo      vote.Repository
	formationRepo formation.Repository
}

func NewOutcomeService(
	eventRepo event.Repository,
	voteRepo vote.Repository,
	formationRepo formation.Repository,
) *OutcomeService {
	return &OutcomeService{
		eventRepo:     eventRepo,
		voteRepo:      voteRepo,
		formationRepo: formationRepo,
	}
}

// ResolveOutcomes maps participant ids to results for one event. An event
// without a final score yields an empty map, not an error: an in-progress
// event simply has no outcomes yet.
func (s *OutcomeService) ResolveOutcomes(ctx context.Context, eventID string) (map[string]outcome.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutcomeService.ResolveOutcomes")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event for outcome resolution: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return s.resolve(ctx, item)
}

func (s *OutcomeService) resolve(ctx context.Context, item event.Event) (map[string]outcome.Result, error) {
	if !item.HasFinalScore() {
		return map[string]outcome.Result{}, nil
	}

	attending, err := s.attendingMembers(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	if item.Type == event.TypeExternal {
		// The whole roster plays as one side against the opponent.
		result := outcome.Compare(*item.HomeScore, *item.AwayScore)
		out := make(map[string]outcome.Result, len(attending))
		for id := range attending {
			out[id] = result
		}
		return out, nil
	}

	plan, exists, err := s.formationRepo.GetByEvent(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("get formation for outcome resolution: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrNoFormation)
	}
	if !plan.Confirmed || plan.HomeSide == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrNotConfirmed)
	}

	out := make(map[string]outcome.Result)
	for _, squad := range plan.Squads {
		ours, theirs := *item.HomeScore, *item.AwayScore
		if squad.Name != plan.HomeSide {
			ours, theirs = theirs, ours
		}
		result := outcome.Compare(ours, theirs)

		for _, slot := range squad.Slots {
			if slot.Entry.Kind != roster.KindMember {
				continue
			}
			// A vote recorded after the draft puts someone in the
			// attending set but not on a squad, and vice versa a
			// withdrawal leaves a squad slot without a live vote.
			// Outcomes require both.
			if _, ok := attending[slot.Entry.ParticipantID]; !ok {
				continue
			}
			out[slot.Entry.ParticipantID] = result
		}
	}

	return out, nil
}

func (s *OutcomeService) attendingMembers(ctx context.Context, eventID string) (map[string]struct{}, error) {
	votes, err := s.voteRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list votes for outcome resolution: %w", err)
	}

	out := make(map[string]struct{}, len(votes))
	for _, v := range votes {
		if v.Status == vote.StatusAttending && !v.Guest {
			out[v.ParticipantID] = struct{}{}
		}
	}
	return out, nil
}
