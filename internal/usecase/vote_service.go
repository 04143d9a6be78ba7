package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/vote"
	idgen "github.com/pitchside/matchday/internal/platform/id"
	"github.com/pitchside/matchday/internal/platform/logging"
)

type CastVoteInput struct {
	EventID       string
	ParticipantID string
	Status        string
	Guest         bool
	GuestName     string
	GuestLevel    int
	GuestPosition string
}

type counterRecomputer interface {
	RecomputeCounters(ctx context.Context, eventID string) (vote.Counters, error)
}

type reconcileScheduler interface {
	EnqueueReconcile(ctx context.Context, participantID string, delay time.Duration) error
}

// VoteService owns the vote-record lifecycle around the aggregation engine:
// create on first vote, update on revote, delete on withdrawal, and a
// counter recompute after every mutation.
type VoteService struct {
	eventRepo       event.Repository
	voteRepo        vote.Repository
	participantRepo participant.Repository
	attendance      counterRecomputer
	ids             idgen.Generator
	scheduler       reconcileScheduler
	scheduleDelay   time.Duration
	logger          *logging.Logger
	now             func() time.Time
}

func NewVoteService(
	eventRepo event.Repository,
	voteRepo vote.Repository,
	participantRepo participant.Repository,
	attendance counterRecomputer,
	ids idgen.Generator,
) *VoteService {
	return &VoteService{
		eventRepo:       eventRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		attendance:      attendance,
		ids:             ids,
		logger:          logging.Default(),
		now:             time.Now,
	}
}

// SetReconcileScheduler enables best-effort badge reconcile scheduling after
// vote mutations on events that already carry a final score. Failures are
// logged, never propagated; the internal job endpoint remains the fallback.
func (s *VoteService) SetReconcileScheduler(scheduler reconcileScheduler, delay time.Duration) {
	s.scheduler = scheduler
	s.scheduleDelay = delay
}

func (s *VoteService) Cast(ctx context.Context, input CastVoteInput) (vote.Vote, vote.Counters, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Cast")
	defer span.End()

	input.EventID = strings.TrimSpace(input.EventID)
	input.ParticipantID = strings.TrimSpace(input.ParticipantID)
	input.GuestName = strings.TrimSpace(input.GuestName)

	if input.EventID == "" {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	status, err := vote.NormalizeStatus(input.Status)
	if err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target, exists, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("get event for vote: %w", err)
	}
	if !exists {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: event=%s", ErrNotFound, input.EventID)
	}

	item := vote.Vote{
		EventID: input.EventID,
		Status:  status,
	}

	if input.Guest {
		// Guests are synthetic attendees scoped to this one event; they
		// get a generated id instead of resolving to a stored member.
		guestID := input.ParticipantID
		if guestID == "" {
			guestID, err = s.ids.NewID()
			if err != nil {
				return vote.Vote{}, vote.Counters{}, fmt.Errorf("generate guest id: %w", err)
			}
		}
		item.ParticipantID = guestID
		item.Guest = true
		item.GuestName = input.GuestName
		item.GuestLevel = input.GuestLevel
		item.GuestPosition = participant.Position(strings.ToUpper(strings.TrimSpace(input.GuestPosition)))
	} else {
		if input.ParticipantID == "" {
			return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
		}
		if _, exists, err := s.participantRepo.GetByID(ctx, input.ParticipantID); err != nil {
			return vote.Vote{}, vote.Counters{}, fmt.Errorf("get participant for vote: %w", err)
		} else if !exists {
			return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: participant=%s", ErrNotFound, input.ParticipantID)
		}
		item.ParticipantID = input.ParticipantID
	}

	now := s.now().UTC()
	existing, exists, err := s.voteRepo.GetByEventAndParticipant(ctx, item.EventID, item.ParticipantID)
	if err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("get existing vote: %w", err)
	}
	if exists {
		item.CreatedAt = existing.CreatedAt
	} else {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.voteRepo.Upsert(ctx, item); err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("save vote: %w", err)
	}

	counts, err := s.attendance.RecomputeCounters(ctx, item.EventID)
	if err != nil {
		return vote.Vote{}, vote.Counters{}, fmt.Errorf("recompute counters after vote: %w", err)
	}

	if !item.Guest && target.HasFinalScore() {
		s.scheduleReconcile(ctx, item.ParticipantID)
	}

	return item, counts, nil
}

func (s *VoteService) Withdraw(ctx context.Context, eventID, participantID string) (vote.Counters, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Withdraw")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	participantID = strings.TrimSpace(participantID)
	if eventID == "" || participantID == "" {
		return vote.Counters{}, fmt.Errorf("%w: event id and participant id are required", ErrInvalidInput)
	}

	existing, exists, err := s.voteRepo.GetByEventAndParticipant(ctx, eventID, participantID)
	if err != nil {
		return vote.Counters{}, fmt.Errorf("get vote for withdrawal: %w", err)
	}
	if !exists {
		return vote.Counters{}, fmt.Errorf("%w: vote event=%s participant=%s", ErrNotFound, eventID, participantID)
	}

	if err := s.voteRepo.Delete(ctx, eventID, participantID); err != nil {
		return vote.Counters{}, fmt.Errorf("delete vote: %w", err)
	}

	counts, err := s.attendance.RecomputeCounters(ctx, eventID)
	if err != nil {
		return vote.Counters{}, fmt.Errorf("recompute counters after withdrawal: %w", err)
	}

	if !existing.Guest {
		if target, found, err := s.eventRepo.GetByID(ctx, eventID); err == nil && found && target.HasFinalScore() {
			s.scheduleReconcile(ctx, participantID)
		}
	}

	return counts, nil
}

func (s *VoteService) scheduleReconcile(ctx context.Context, participantID string) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.EnqueueReconcile(ctx, participantID, s.scheduleDelay); err != nil {
		s.logger.WarnContext(ctx, "schedule badge reconcile failed", "participant_id", participantID, "error", err)
	}
}
