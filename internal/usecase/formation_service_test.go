package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
	"github.com/pitchside/matchday/internal/domain/roster"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
)

type formationFixture struct {
	votes        *memory.VoteRepository
	events       *memory.EventRepository
	participants *memory.ParticipantRepository
	formations   *memory.FormationRepository
	service      *FormationService
}

func newFormationFixture(t *testing.T) formationFixture {
	t.Helper()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	formations := memory.NewFormationRepository()

	return formationFixture{
		votes:        votes,
		events:       events,
		participants: participants,
		formations:   formations,
		service:      NewFormationService(events, votes, participants, formations),
	}
}

func (f formationFixture) attend(t *testing.T, participantID string, at time.Time) {
	t.Helper()
	err := f.votes.Upsert(context.Background(), vote.Vote{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: participantID,
		Status:        vote.StatusAttending,
		CreatedAt:     at,
		UpdatedAt:     at,
	})
	if err != nil {
		t.Fatalf("seed attending vote: %v", err)
	}
}

func TestFormationService_ComputeDraft_PartitionsAttendees(t *testing.T) {
	t.Parallel()

	f := newFormationFixture(t)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	f.attend(t, "member-fwd-1", base)               // level 9
	f.attend(t, "member-captain", base.Add(time.Minute)) // level 8
	f.attend(t, "member-def-1", base.Add(2*time.Minute)) // level 7
	f.attend(t, "member-gk", base.Add(3*time.Minute))    // level 6
	f.attend(t, "member-retired", base.Add(4*time.Minute))

	draft, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("compute draft failed: %v", err)
	}

	if draft.Confirmed {
		t.Fatal("draft must not be confirmed")
	}
	if draft.HomeSide != "" {
		t.Fatalf("draft must not pin a home side, got %q", draft.HomeSide)
	}

	total := 0
	for _, squad := range draft.Squads {
		total += len(squad.Slots)
		for _, slot := range squad.Slots {
			if slot.Entry.ParticipantID == "member-retired" {
				t.Fatal("inactive member must be excluded from the draft")
			}
		}
	}
	if total != 4 {
		t.Fatalf("expected 4 assigned attendees, got %d", total)
	}
}

func TestFormationService_ComputeDraft_IncludesGuestOverrides(t *testing.T) {
	t.Parallel()

	f := newFormationFixture(t)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	f.attend(t, "member-fwd-1", base)

	err := f.votes.Upsert(context.Background(), vote.Vote{
		EventID:       memory.EventIDWeeklyGame,
		ParticipantID: "guest-1",
		Status:        vote.StatusAttending,
		Guest:         true,
		GuestName:     "Robin",
		GuestLevel:    6,
		GuestPosition: participant.PositionDefender,
		CreatedAt:     base.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("seed guest vote: %v", err)
	}

	draft, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame)
	if err != nil {
		t.Fatalf("compute draft failed: %v", err)
	}

	foundGuest := false
	for _, squad := range draft.Squads {
		for _, slot := range squad.Slots {
			if slot.Entry.Kind == roster.KindGuest {
				foundGuest = true
				if slot.Entry.ParticipantID != "" {
					t.Fatal("guest entries must not reference a participant")
				}
				if slot.LevelAtAssignment != 6 {
					t.Fatalf("guest level override lost: %d", slot.LevelAtAssignment)
				}
			}
		}
	}
	if !foundGuest {
		t.Fatal("guest attendee missing from draft")
	}
}

func TestFormationService_ComputeDraft_RejectedForExternalEvents(t *testing.T) {
	t.Parallel()

	f := newFormationFixture(t)
	_, err := f.service.ComputeDraft(context.Background(), "event-away-cup")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFormationService_ConfirmLifecycle(t *testing.T) {
	t.Parallel()

	f := newFormationFixture(t)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	f.attend(t, "member-fwd-1", base)
	f.attend(t, "member-gk", base.Add(time.Minute))

	// Confirm before any draft exists.
	if _, err := f.service.Confirm(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState without draft, got %v", err)
	}

	if _, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame); err != nil {
		t.Fatalf("compute draft failed: %v", err)
	}

	// Re-drafting before confirmation is allowed.
	if _, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame); err != nil {
		t.Fatalf("re-draft before confirm failed: %v", err)
	}

	confirmed, err := f.service.Confirm(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !confirmed.Confirmed {
		t.Fatal("formation should be confirmed")
	}
	if confirmed.HomeSide != confirmed.Squads[0].Name {
		t.Fatalf("home side not pinned to first squad: %q", confirmed.HomeSide)
	}

	// Double confirm fails.
	if _, err := f.service.Confirm(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on double confirm, got %v", err)
	}

	// Draft after confirm fails without an explicit reset.
	if _, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on draft after confirm, got %v", err)
	}

	// The administrative reset reopens drafting.
	reset, err := f.service.ResetDraft(context.Background(), memory.EventIDWeeklyGame, memory.ParticipantIDCaptain)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if reset.Confirmed || reset.HomeSide != "" {
		t.Fatalf("reset must clear confirmation and home side: %+v", reset)
	}

	if _, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame); err != nil {
		t.Fatalf("draft after reset failed: %v", err)
	}
}

func TestFormationService_Confirm_RequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newFormationFixture(t)
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	f.attend(t, "member-fwd-1", base)

	if _, err := f.service.ComputeDraft(context.Background(), memory.EventIDWeeklyGame); err != nil {
		t.Fatalf("compute draft failed: %v", err)
	}

	if _, err := f.service.Confirm(context.Background(), memory.EventIDWeeklyGame, "member-gk"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := f.service.Confirm(context.Background(), memory.EventIDWeeklyGame, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown actor, got %v", err)
	}
}
