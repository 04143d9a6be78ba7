package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/platform/resilience"
)

// AttendancePolicy selects how the pending counter is derived.
type AttendancePolicy string

const (
	// PolicySimple counts explicit PENDING votes only. Guest PENDING votes
	// are excluded: a guest entry exists only while its owner keeps it, so
	// an undecided guest is noise rather than an outstanding answer.
	PolicySimple AttendancePolicy = "simple"
	// PolicyClosedWorld treats every active member without a decisive vote
	// as pending. Guest votes are subtracted from the voted count first:
	// guests are not part of the active roster, so they are never
	// "expected to vote".
	PolicyClosedWorld AttendancePolicy = "closed_world"
)

func ParseAttendancePolicy(value string) (AttendancePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PolicySimple):
		return PolicySimple, nil
	case string(PolicyClosedWorld):
		return PolicyClosedWorld, nil
	default:
		return "", fmt.Errorf("%w: unknown attendance policy %q", ErrInvalidInput, value)
	}
}

// AttendanceService recomputes the denormalized attendance counters of an
// event from its raw vote records. The counters are always fully rebuilt
// and overwritten so repeated calls can never accumulate drift.
type AttendanceService struct {
	eventRepo       event.Repository
	voteRepo        vote.Repository
	participantRepo participant.Repository
	policy          AttendancePolicy
	flight          resilience.SingleFlight
}

func NewAttendanceService(
	eventRepo event.Repository,
	voteRepo vote.Repository,
	participantRepo participant.Repository,
	policy AttendancePolicy,
) *AttendanceService {
	if policy == "" {
		policy = PolicySimple
	}

	return &AttendanceService{
		eventRepo:       eventRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		policy:          policy,
	}
}

// RecomputeCounters rebuilds and persists the three counters for eventID.
// Concurrent calls for the same event collapse into one recomputation.
func (s *AttendanceService) RecomputeCounters(ctx context.Context, eventID string) (vote.Counters, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.RecomputeCounters")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return vote.Counters{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	result, err, _ := s.flight.Do("counters:"+eventID, func() (any, error) {
		return s.recomputeOnce(ctx, eventID)
	})
	if err != nil {
		return vote.Counters{}, err
	}

	return result.(vote.Counters), nil
}

func (s *AttendanceService) recomputeOnce(ctx context.Context, eventID string) (vote.Counters, error) {
	_, exists, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return vote.Counters{}, fmt.Errorf("get event for counter recompute: %w", err)
	}
	if !exists {
		return vote.Counters{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	votes, err := s.voteRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return vote.Counters{}, fmt.Errorf("list votes for counter recompute: %w", err)
	}

	counts := vote.Counters{}
	guestDecided := 0
	pendingVotes := 0
	for _, v := range votes {
		switch v.Status {
		case vote.StatusAttending:
			counts.Attending++
			if v.Guest {
				guestDecided++
			}
		case vote.StatusNotAttending:
			counts.NotAttending++
			if v.Guest {
				guestDecided++
			}
		case vote.StatusPending:
			if !v.Guest {
				pendingVotes++
			}
		}
	}

	switch s.policy {
	case PolicyClosedWorld:
		totalActive, err := s.participantRepo.CountActive(ctx)
		if err != nil {
			return vote.Counters{}, fmt.Errorf("count active participants: %w", err)
		}
		pending := totalActive - (counts.Attending + counts.NotAttending - guestDecided)
		if pending < 0 {
			pending = 0
		}
		counts.Pending = pending
	default:
		counts.Pending = pendingVotes
	}

	if err := s.eventRepo.SaveCounters(ctx, eventID, counts); err != nil {
		return vote.Counters{}, fmt.Errorf("save attendance counters: %w", err)
	}

	return counts, nil
}
