package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/matchday/internal/platform/id"
)

func newVoteFixture(t *testing.T) (*VoteService, *memory.VoteRepository, *memory.EventRepository) {
	t.Helper()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	attendance := NewAttendanceService(events, votes, participants, PolicySimple)
	service := NewVoteService(events, votes, participants, attendance, idgen.NewUUIDGenerator())
	service.now = func() time.Time { return time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC) }

	return service, votes, events
}

func TestVoteService_CastCreatesAndRecounts(t *testing.T) {
	t.Parallel()

	service, _, events := newVoteFixture(t)

	cast, counts, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "attending",
	})
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if cast.Status != vote.StatusAttending {
		t.Fatalf("status not normalized: %s", cast.Status)
	}
	if counts.Attending != 1 {
		t.Fatalf("expected 1 attending after cast, got %+v", counts)
	}

	item, _, err := events.GetByID(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if item.AttendingCount != 1 {
		t.Fatalf("counters not persisted on event: %+v", item)
	}
}

func TestVoteService_RevotePreservesCreatedAt(t *testing.T) {
	t.Parallel()

	service, votes, _ := newVoteFixture(t)

	first := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	if _, _, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "attending",
	}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	service.now = func() time.Time { return second }
	cast, counts, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "not_attending",
	})
	if err != nil {
		t.Fatalf("revote failed: %v", err)
	}
	if !cast.CreatedAt.Equal(first) {
		t.Fatalf("revote must keep the original CreatedAt, got %v", cast.CreatedAt)
	}
	if !cast.UpdatedAt.Equal(second) {
		t.Fatalf("revote must advance UpdatedAt, got %v", cast.UpdatedAt)
	}
	if counts.Attending != 0 || counts.NotAttending != 1 {
		t.Fatalf("revote must replace the previous vote, got %+v", counts)
	}

	stored, err := votes.ListByEvent(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("revote must not duplicate records, got %d", len(stored))
	}
}

func TestVoteService_CastGuestGeneratesID(t *testing.T) {
	t.Parallel()

	service, _, _ := newVoteFixture(t)

	cast, counts, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		Status:        "attending",
		Guest:         true,
		GuestName:     "Robin",
		GuestLevel:    6,
		GuestPosition: "fwd",
	})
	if err != nil {
		t.Fatalf("guest cast failed: %v", err)
	}
	if cast.ParticipantID == "" {
		t.Fatal("guest vote must receive a generated id")
	}
	if !cast.Guest || cast.GuestName != "Robin" {
		t.Fatalf("guest metadata lost: %+v", cast)
	}
	if counts.Attending != 1 {
		t.Fatalf("guest must count toward attending, got %+v", counts)
	}
}

func TestVoteService_CastValidation(t *testing.T) {
	t.Parallel()

	service, _, _ := newVoteFixture(t)

	cases := []struct {
		name  string
		input CastVoteInput
		want  error
	}{
		{
			name:  "missing event id",
			input: CastVoteInput{ParticipantID: memory.ParticipantIDCaptain, Status: "attending"},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown status",
			input: CastVoteInput{EventID: memory.EventIDWeeklyGame, ParticipantID: memory.ParticipantIDCaptain, Status: "maybe"},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown event",
			input: CastVoteInput{EventID: "no-such-event", ParticipantID: memory.ParticipantIDCaptain, Status: "attending"},
			want:  ErrNotFound,
		},
		{
			name:  "unknown participant",
			input: CastVoteInput{EventID: memory.EventIDWeeklyGame, ParticipantID: "ghost", Status: "attending"},
			want:  ErrNotFound,
		},
		{
			name:  "guest without name",
			input: CastVoteInput{EventID: memory.EventIDWeeklyGame, Status: "attending", Guest: true, GuestPosition: "mid"},
			want:  ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := service.Cast(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestVoteService_WithdrawDeletesAndRecounts(t *testing.T) {
	t.Parallel()

	service, votes, _ := newVoteFixture(t)

	if _, _, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "attending",
	}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	counts, err := service.Withdraw(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if counts.Attending != 0 {
		t.Fatalf("expected 0 attending after withdrawal, got %+v", counts)
	}

	if _, exists, err := votes.GetByEventAndParticipant(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain); err != nil {
		t.Fatalf("get vote: %v", err)
	} else if exists {
		t.Fatal("vote record must be deleted on withdrawal")
	}
}

func TestVoteService_WithdrawWithoutVote(t *testing.T) {
	t.Parallel()

	service, _, _ := newVoteFixture(t)

	if _, err := service.Withdraw(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type recordingScheduler struct {
	ids []string
}

func (s *recordingScheduler) EnqueueReconcile(_ context.Context, participantID string, _ time.Duration) error {
	s.ids = append(s.ids, participantID)
	return nil
}

func TestVoteService_SchedulesReconcileOnCompletedEvent(t *testing.T) {
	t.Parallel()

	votes := memory.NewVoteRepository()
	home, away := 3, 1
	items := memory.SeedEvents()
	items = append(items, event.Event{
		ID:        "event-played",
		Title:     "Played fixture",
		Type:      event.TypeExternal,
		StartsAt:  time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC),
		HomeScore: &home,
		AwayScore: &away,
	})
	events := memory.NewEventRepository(items, votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	attendance := NewAttendanceService(events, votes, participants, PolicySimple)
	service := NewVoteService(events, votes, participants, attendance, idgen.NewUUIDGenerator())

	scheduler := &recordingScheduler{}
	service.SetReconcileScheduler(scheduler, 30*time.Second)

	if _, _, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "attending",
	}); err != nil {
		t.Fatalf("cast on upcoming event: %v", err)
	}
	if len(scheduler.ids) != 0 {
		t.Fatalf("upcoming event must not schedule a reconcile: %v", scheduler.ids)
	}

	if _, _, err := service.Cast(context.Background(), CastVoteInput{
		EventID:       "event-played",
		ParticipantID: memory.ParticipantIDCaptain,
		Status:        "attending",
	}); err != nil {
		t.Fatalf("cast on completed event: %v", err)
	}
	if len(scheduler.ids) != 1 || scheduler.ids[0] != memory.ParticipantIDCaptain {
		t.Fatalf("expected one reconcile for the captain, got %v", scheduler.ids)
	}

	if _, err := service.Withdraw(context.Background(), "event-played", memory.ParticipantIDCaptain); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if len(scheduler.ids) != 2 {
		t.Fatalf("withdrawal must schedule a second reconcile, got %v", scheduler.ids)
	}
}
