package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitchside/matchday/internal/domain/badge"
	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/outcome"
	"github.com/pitchside/matchday/internal/domain/participant"
)

const (
	reconcileStatusSuccess = "success"
	reconcileStatusFailed  = "failed"

	defaultReconcileWorkers = 4
	maxReconcileWorkers     = 32
)

// ReconcileResult is the diff one reconciliation applied.
type ReconcileResult struct {
	ParticipantID string   `json:"participant_id"`
	Added         []string `json:"added"`
	Removed       []string `json:"removed"`
}

type ReconcileBatchInput struct {
	// ParticipantIDs narrows the batch; empty means every active member.
	ParticipantIDs []string
	MaxWorkers     int
}

type ReconcileBatchResult struct {
	TaskCount    int                   `json:"task_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Tasks        []ReconcileTaskResult `json:"tasks"`
}

type ReconcileTaskResult struct {
	ParticipantID string   `json:"participant_id"`
	Status        string   `json:"status"`
	Added         []string `json:"added,omitempty"`
	Removed       []string `json:"removed,omitempty"`
	DurationMs    int64    `json:"duration_ms"`
	Message       string   `json:"message,omitempty"`
}

type outcomeResolver interface {
	ResolveOutcomes(ctx context.Context, eventID string) (map[string]outcome.Result, error)
}

// BadgeService reconciles each participant's held badges against the badge
// set derivable from their recomputed outcome history. Earlier award logic
// ignored squad membership when attributing wins, so reconciliation both
// adds missing badges and retracts ones granted in error.
type BadgeService struct {
	eventRepo       event.Repository
	participantRepo participant.Repository
	awardedRepo     badge.AwardedRepository
	resolver        outcomeResolver
	catalog         badge.Catalog
	rules           badge.Rules
	defaultWorkers  int
	now             func() time.Time
}

func NewBadgeService(
	eventRepo event.Repository,
	participantRepo participant.Repository,
	awardedRepo badge.AwardedRepository,
	resolver outcomeResolver,
	catalog badge.Catalog,
	rules badge.Rules,
) *BadgeService {
	return &BadgeService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		awardedRepo:     awardedRepo,
		resolver:        resolver,
		catalog:         catalog,
		rules:           rules,
		now:             time.Now,
	}
}

// SetDefaultReconcileWorkers overrides the batch worker fallback used when a
// request does not pin its own worker count.
func (s *BadgeService) SetDefaultReconcileWorkers(n int) {
	if n > 0 {
		s.defaultWorkers = n
	}
}

// Reconcile recomputes the participant's current-year tally, derives the
// should-hold badge set and applies the diff transactionally. Running it
// twice without intervening data changes yields an empty diff the second
// time.
func (s *BadgeService) Reconcile(ctx context.Context, participantID string) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.Reconcile")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return ReconcileResult{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	if _, exists, err := s.participantRepo.GetByID(ctx, participantID); err != nil {
		return ReconcileResult{}, fmt.Errorf("get participant for reconcile: %w", err)
	} else if !exists {
		return ReconcileResult{}, fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	tally, err := s.yearTally(ctx, participantID)
	if err != nil {
		return ReconcileResult{}, err
	}

	shouldHold := s.rules.ShouldHold(tally)

	held, err := s.awardedRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list held badges: %w", err)
	}
	heldSet := make(map[string]struct{}, len(held))
	for _, item := range held {
		heldSet[item.Code] = struct{}{}
	}

	result := ReconcileResult{
		ParticipantID: participantID,
		Added:         []string{},
		Removed:       []string{},
	}

	now := s.now().UTC()
	var add []badge.Awarded
	// Only rule-governed codes are reconciled; badges granted outside the
	// outcome rules (onboarding gifts) are left alone.
	for _, code := range s.rules.GovernedCodes() {
		_, entitled := shouldHold[code]
		_, holds := heldSet[code]

		switch {
		case entitled && !holds:
			if !s.catalog.Has(code) {
				continue
			}
			add = append(add, badge.Awarded{
				ParticipantID: participantID,
				Code:          code,
				EarnedAt:      now,
				Acknowledged:  false,
			})
			result.Added = append(result.Added, code)
		case !entitled && holds:
			result.Removed = append(result.Removed, code)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)

	if len(result.Added) == 0 && len(result.Removed) == 0 {
		return result, nil
	}

	if err := s.awardedRepo.ApplyChanges(ctx, participantID, add, result.Removed); err != nil {
		return ReconcileResult{}, fmt.Errorf("apply badge changes: %w", err)
	}

	return result, nil
}

// ListAwarded returns the badges a participant currently holds.
func (s *BadgeService) ListAwarded(ctx context.Context, participantID string) ([]badge.Awarded, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.ListAwarded")
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	if _, exists, err := s.participantRepo.GetByID(ctx, participantID); err != nil {
		return nil, fmt.Errorf("get participant for badge listing: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
	}

	held, err := s.awardedRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list held badges: %w", err)
	}
	return held, nil
}

// ReconcileBatch fans reconciliation out over a bounded worker pool, one
// task per participant. A failing participant is reported in its task row
// and never aborts the rest of the batch.
func (s *BadgeService) ReconcileBatch(ctx context.Context, input ReconcileBatchInput) (ReconcileBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.ReconcileBatch")
	defer span.End()

	ids := make([]string, 0, len(input.ParticipantIDs))
	for _, id := range input.ParticipantIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		members, err := s.participantRepo.ListActive(ctx)
		if err != nil {
			return ReconcileBatchResult{}, fmt.Errorf("list active participants for batch: %w", err)
		}
		for _, member := range members {
			ids = append(ids, member.ID)
		}
	}

	requested := input.MaxWorkers
	if requested <= 0 {
		requested = s.defaultWorkers
	}
	workerCount := normalizeReconcileWorkerCount(requested, len(ids))
	result := ReconcileBatchResult{
		TaskCount:   len(ids),
		WorkerCount: workerCount,
		Tasks:       make([]ReconcileTaskResult, 0, len(ids)),
	}
	if len(ids) == 0 {
		return result, nil
	}

	rows := make(chan ReconcileTaskResult, len(ids))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ReconcileBatchResult{}, fmt.Errorf("create reconcile worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, id := range ids {
		id := id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ReconcileTaskResult{ParticipantID: id}

			diff, err := s.Reconcile(ctx, id)
			if err != nil {
				row.Status = reconcileStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = reconcileStatusSuccess
				row.Added = diff.Added
				row.Removed = diff.Removed
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return ReconcileBatchResult{}, fmt.Errorf("submit reconcile task: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].ParticipantID < result.Tasks[j].ParticipantID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}

// yearTally folds the participant's outcome history for the current
// calendar year. Completed counts every scored event of the year; attended
// narrows that to events the participant voted ATTENDING for.
func (s *BadgeService) yearTally(ctx context.Context, participantID string) (outcome.Tally, error) {
	year := s.now().UTC().Year()

	completed, err := s.eventRepo.ListCompletedByYear(ctx, year)
	if err != nil {
		return outcome.Tally{}, fmt.Errorf("list completed events: %w", err)
	}

	attended, err := s.eventRepo.ListCompletedForParticipant(ctx, participantID, year)
	if err != nil {
		return outcome.Tally{}, fmt.Errorf("list attended events: %w", err)
	}

	tally := outcome.Tally{
		Completed: len(completed),
		Attended:  len(attended),
	}

	for _, item := range attended {
		results, err := s.resolver.ResolveOutcomes(ctx, item.ID)
		if errors.Is(err, ErrInvalidState) {
			// Scored internal event without a confirmed formation. It still
			// counts as attended and completed, it just contributes no
			// win/loss/draw until someone confirms the squads.
			continue
		}
		if err != nil {
			return outcome.Tally{}, fmt.Errorf("resolve outcomes for event %s: %w", item.ID, err)
		}
		if result, ok := results[participantID]; ok {
			tally.Add(result)
		}
	}

	return tally, nil
}

func normalizeReconcileWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultReconcileWorkers
	}
	if workers > maxReconcileWorkers {
		workers = maxReconcileWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
