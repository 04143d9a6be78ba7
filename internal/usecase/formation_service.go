package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/formation"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/roster"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/platform/resilience"
)

// FormationService guards the NONE -> DRAFT -> CONFIRMED lifecycle of an
// event's formation. Drafting may be repeated freely before confirmation;
// once confirmed only an explicit administrative reset reopens the draft.
type FormationService struct {
	eventRepo       event.Repository
	voteRepo        vote.Repository
	participantRepo participant.Repository
	formationRepo   formation.Repository
	squadCount      int
	locks           resilience.KeyedMutex
	now             func() time.Time
}

func NewFormationService(
	eventRepo event.Repository,
	voteRepo vote.Repository,
	participantRepo participant.Repository,
	formationRepo formation.Repository,
) *FormationService {
	return &FormationService{
		eventRepo:       eventRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		formationRepo:   formationRepo,
		squadCount:      formation.DefaultSquadCount,
		now:             time.Now,
	}
}

// SetSquadCount overrides the number of squads a draft is balanced into.
func (s *FormationService) SetSquadCount(n int) {
	if n >= 2 {
		s.squadCount = n
	}
}

// ComputeDraft samples the attending roster and (re)balances it into a
// draft formation. Vote writes landing after the sample are simply not
// part of this draft; re-running the draft picks them up.
func (s *FormationService) ComputeDraft(ctx context.Context, eventID string) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.ComputeDraft")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return formation.Formation{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock("formation:" + eventID)
	defer unlock()

	item, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("get event for draft: %w", err)
	}
	if !exists {
		return formation.Formation{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if !item.HasFormation() {
		return formation.Formation{}, fmt.Errorf("%w: external matches field one roster and carry no formation", ErrInvalidState)
	}

	existing, hasDraft, err := s.formationRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("get formation for draft: %w", err)
	}
	if hasDraft && existing.Confirmed {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrAlreadyConfirmed)
	}

	entries, err := s.attendingRoster(ctx, eventID)
	if err != nil {
		return formation.Formation{}, err
	}

	draft, err := formation.Balance(entries, s.squadCount, s.now().UTC())
	if err != nil {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	draft.EventID = eventID

	if err := s.formationRepo.Save(ctx, draft); err != nil {
		return formation.Formation{}, fmt.Errorf("save draft formation: %w", err)
	}

	return draft, nil
}

// Confirm freezes the draft, making it visible to all participants. The
// squad whose result maps to the home score is pinned here, exactly once.
func (s *FormationService) Confirm(ctx context.Context, eventID, actorID string) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Confirm")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return formation.Formation{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return formation.Formation{}, err
	}

	unlock := s.locks.Lock("formation:" + eventID)
	defer unlock()

	if _, exists, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return formation.Formation{}, fmt.Errorf("get event for confirm: %w", err)
	} else if !exists {
		return formation.Formation{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	draft, exists, err := s.formationRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("get formation for confirm: %w", err)
	}
	if !exists {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrNoFormation)
	}
	if draft.Confirmed {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrAlreadyConfirmed)
	}
	if len(draft.Squads) == 0 {
		return formation.Formation{}, fmt.Errorf("%w: draft formation has no squads", ErrInvalidState)
	}

	draft.HomeSide = draft.Squads[0].Name
	draft.Confirmed = true

	if err := s.formationRepo.Save(ctx, draft); err != nil {
		return formation.Formation{}, fmt.Errorf("save confirmed formation: %w", err)
	}

	return draft, nil
}

// ResetDraft is the explicit administrative override that reopens a
// confirmed formation; there is no silent transition out of CONFIRMED.
func (s *FormationService) ResetDraft(ctx context.Context, eventID, actorID string) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.ResetDraft")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return formation.Formation{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return formation.Formation{}, err
	}

	unlock := s.locks.Lock("formation:" + eventID)
	defer unlock()

	item, exists, err := s.formationRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("get formation for reset: %w", err)
	}
	if !exists {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrNoFormation)
	}
	if !item.Confirmed {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidState, formation.ErrNotConfirmed)
	}

	item.Confirmed = false
	item.HomeSide = ""

	if err := s.formationRepo.Save(ctx, item); err != nil {
		return formation.Formation{}, fmt.Errorf("save reset formation: %w", err)
	}

	return item, nil
}

func (s *FormationService) Get(ctx context.Context, eventID string) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Get")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return formation.Formation{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, exists, err := s.formationRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return formation.Formation{}, fmt.Errorf("get formation: %w", err)
	}
	if !exists {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrNotFound, formation.ErrNoFormation)
	}
	return item, nil
}

func (s *FormationService) requireAdmin(ctx context.Context, actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	actor, exists, err := s.participantRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("get actor: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: participant=%s", ErrNotFound, actorID)
	}
	if !actor.Admin {
		return fmt.Errorf("%w: participant %s lacks administrative authority", ErrPermissionDenied, actorID)
	}

	return nil
}

// attendingRoster turns the event's ATTENDING votes into balancer entries:
// members resolve through the participant store (inactive ones are
// excluded), guests carry their own override level and position. Vote
// order is preserved as the deterministic tie-break key.
func (s *FormationService) attendingRoster(ctx context.Context, eventID string) ([]roster.Entry, error) {
	votes, err := s.voteRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list votes for roster: %w", err)
	}

	attending := make([]vote.Vote, 0, len(votes))
	memberIDs := make([]string, 0, len(votes))
	for _, v := range votes {
		if v.Status != vote.StatusAttending {
			continue
		}
		attending = append(attending, v)
		if !v.Guest {
			memberIDs = append(memberIDs, v.ParticipantID)
		}
	}

	sort.SliceStable(attending, func(i, j int) bool {
		if !attending[i].CreatedAt.Equal(attending[j].CreatedAt) {
			return attending[i].CreatedAt.Before(attending[j].CreatedAt)
		}
		return attending[i].ParticipantID < attending[j].ParticipantID
	})

	members, err := s.participantRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("get attending participants: %w", err)
	}
	membersByID := make(map[string]participant.Participant, len(members))
	for _, member := range members {
		membersByID[member.ID] = member
	}

	entries := make([]roster.Entry, 0, len(attending))
	for i, v := range attending {
		if v.Guest {
			entries = append(entries, roster.GuestEntry(v.GuestName, v.GuestLevel, v.GuestPosition, i))
			continue
		}

		member, ok := membersByID[v.ParticipantID]
		if !ok || !member.Active {
			continue
		}
		entries = append(entries, roster.MemberEntry(member, i))
	}

	return entries, nil
}
