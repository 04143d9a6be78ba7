package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
)

func seedVotes(t *testing.T, repo *memory.VoteRepository, items []vote.Vote) {
	t.Helper()
	for _, item := range items {
		if err := repo.Upsert(context.Background(), item); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}
}

func TestAttendanceService_RecomputeCounters_SimplePolicy(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	service := NewAttendanceService(events, votes, participants, PolicySimple)

	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	seedVotes(t, votes, []vote.Vote{
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-gk", Status: vote.StatusAttending, CreatedAt: base},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-def-1", Status: vote.StatusAttending, CreatedAt: base.Add(time.Minute)},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-def-2", Status: vote.StatusNotAttending, CreatedAt: base.Add(2 * time.Minute)},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-mid-1", Status: vote.StatusPending, CreatedAt: base.Add(3 * time.Minute)},
	})

	got, err := service.RecomputeCounters(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	want := vote.Counters{Attending: 2, NotAttending: 1, Pending: 1}
	if got != want {
		t.Fatalf("unexpected counters: got %+v want %+v", got, want)
	}

	stored, _, err := events.GetByID(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if stored.AttendingCount != 2 || stored.NotAttendingCount != 1 || stored.PendingCount != 1 {
		t.Fatalf("counters not persisted: %+v", stored)
	}
}

func TestAttendanceService_RecomputeCounters_SimplePolicyIgnoresGuestPending(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	service := NewAttendanceService(events, votes, participants, PolicySimple)

	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	seedVotes(t, votes, []vote.Vote{
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-gk", Status: vote.StatusAttending, CreatedAt: base},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-mid-1", Status: vote.StatusPending, CreatedAt: base.Add(time.Minute)},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "guest:member-gk:1", Status: vote.StatusPending, Guest: true, GuestName: "Plus One", CreatedAt: base.Add(2 * time.Minute)},
	})

	got, err := service.RecomputeCounters(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	want := vote.Counters{Attending: 1, NotAttending: 0, Pending: 1}
	if got != want {
		t.Fatalf("guest pending vote should not be counted: got %+v want %+v", got, want)
	}
}

func TestAttendanceService_RecomputeCounters_ClosedWorldPolicy(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	service := NewAttendanceService(events, votes, participants, PolicyClosedWorld)

	// Seven active members. Two decisive member votes plus one guest
	// vote: the guest is outside the expected-to-vote universe, so five
	// members remain pending.
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	seedVotes(t, votes, []vote.Vote{
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-gk", Status: vote.StatusAttending, CreatedAt: base},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-def-2", Status: vote.StatusNotAttending, CreatedAt: base.Add(time.Minute)},
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "guest-1", Status: vote.StatusAttending, Guest: true, GuestName: "Robin", GuestLevel: 5, GuestPosition: participant.PositionForward, CreatedAt: base.Add(2 * time.Minute)},
	})

	got, err := service.RecomputeCounters(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	want := vote.Counters{Attending: 2, NotAttending: 1, Pending: 5}
	if got != want {
		t.Fatalf("unexpected counters: got %+v want %+v", got, want)
	}
}

func TestAttendanceService_RecomputeCounters_Idempotent(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	service := NewAttendanceService(events, votes, participants, PolicySimple)

	seedVotes(t, votes, []vote.Vote{
		{EventID: memory.EventIDWeeklyGame, ParticipantID: "member-gk", Status: vote.StatusAttending, CreatedAt: time.Now()},
	})

	first, err := service.RecomputeCounters(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	second, err := service.RecomputeCounters(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}

	if first != second {
		t.Fatalf("recompute drifted: first %+v second %+v", first, second)
	}
}

func TestAttendanceService_RecomputeCounters_EventNotFound(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(nil, votes)
	participants := memory.NewParticipantRepository(nil)
	service := NewAttendanceService(events, votes, participants, PolicySimple)

	_, err := service.RecomputeCounters(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseAttendancePolicy(t *testing.T) {
	t.Parallel()

	if policy, err := ParseAttendancePolicy(""); err != nil || policy != PolicySimple {
		t.Fatalf("empty value should default to simple: %v %v", policy, err)
	}
	if policy, err := ParseAttendancePolicy("closed_world"); err != nil || policy != PolicyClosedWorld {
		t.Fatalf("closed_world should parse: %v %v", policy, err)
	}
	if _, err := ParseAttendancePolicy("open_world"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
