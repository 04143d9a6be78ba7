package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pitchside/matchday/internal/domain/badge"
	"github.com/pitchside/matchday/internal/domain/event"
	"github.com/pitchside/matchday/internal/domain/vote"
	"github.com/pitchside/matchday/internal/platform/logging"
	"github.com/pitchside/matchday/internal/usecase"
)

// actorHeader carries the participant acting on administrative routes. The
// roster is small and trusted; there is no account system in front of it.
const actorHeader = "X-Participant-ID"

type Handler struct {
	eventService      *usecase.EventService
	voteService       *usecase.VoteService
	attendanceService *usecase.AttendanceService
	formationService  *usecase.FormationService
	outcomeService    *usecase.OutcomeService
	badgeService      *usecase.BadgeService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	eventService *usecase.EventService,
	voteService *usecase.VoteService,
	attendanceService *usecase.AttendanceService,
	formationService *usecase.FormationService,
	outcomeService *usecase.OutcomeService,
	badgeService *usecase.BadgeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		eventService:      eventService,
		voteService:       voteService,
		attendanceService: attendanceService,
		formationService:  formationService,
		outcomeService:    outcomeService,
		badgeService:      badgeService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.eventService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	eventID := r.PathValue("eventID")
	item, err := h.eventService.Get(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(item))
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastVote")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))

	var req castVoteRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cast, counters, err := h.voteService.Cast(ctx, usecase.CastVoteInput{
		EventID:       eventID,
		ParticipantID: req.ParticipantID,
		Status:        req.Status,
		Guest:         req.Guest,
		GuestName:     req.GuestName,
		GuestLevel:    req.GuestLevel,
		GuestPosition: req.GuestPosition,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "cast vote failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, castVoteResponse{
		Vote:     voteToDTO(cast),
		Counters: countersToDTO(counters),
	})
}

func (h *Handler) WithdrawVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawVote")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	participantID := strings.TrimSpace(r.PathValue("participantID"))

	counters, err := h.voteService.Withdraw(ctx, eventID, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "withdraw vote failed", "event_id", eventID, "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, countersToDTO(counters))
}

func (h *Handler) RecomputeCounters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeCounters")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	counters, err := h.attendanceService.RecomputeCounters(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute counters failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, countersToDTO(counters))
}

func (h *Handler) ListOutcomes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOutcomes")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	outcomes, err := h.outcomeService.ResolveOutcomes(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve outcomes failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make(map[string]string, len(outcomes))
	for participantID, result := range outcomes {
		items[participantID] = string(result)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListParticipantBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipantBadges")
	defer span.End()

	participantID := strings.TrimSpace(r.PathValue("participantID"))
	held, err := h.badgeService.ListAwarded(ctx, participantID)
	if err != nil {
		h.logger.WarnContext(ctx, "list badges failed", "participant_id", participantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]awardedBadgeDTO, 0, len(held))
	for _, item := range held {
		items = append(items, awardedBadgeToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) actorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(actorHeader))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type castVoteRequest struct {
	ParticipantID string `json:"participant_id"`
	Status        string `json:"status" validate:"required"`
	Guest         bool   `json:"guest"`
	GuestName     string `json:"guest_name" validate:"required_if=Guest true,max=100"`
	GuestLevel    int    `json:"guest_level" validate:"min=0,max=10"`
	GuestPosition string `json:"guest_position" validate:"required_if=Guest true,max=3"`
}

type castVoteResponse struct {
	Vote     voteDTO     `json:"vote"`
	Counters countersDTO `json:"counters"`
}

type eventDTO struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Type              string  `json:"type"`
	StartsAt          string  `json:"starts_at"`
	HomeScore         *int    `json:"home_score"`
	AwayScore         *int    `json:"away_score"`
	AttendingCount    int     `json:"attending_count"`
	NotAttendingCount int     `json:"not_attending_count"`
	PendingCount      int     `json:"pending_count"`
	CreatedBy         *string `json:"created_by,omitempty"`
}

type voteDTO struct {
	EventID       string `json:"event_id"`
	ParticipantID string `json:"participant_id"`
	Status        string `json:"status"`
	Guest         bool   `json:"guest"`
	GuestName     string `json:"guest_name,omitempty"`
	GuestLevel    int    `json:"guest_level,omitempty"`
	GuestPosition string `json:"guest_position,omitempty"`
	CreatedAtUTC  string `json:"created_at_utc"`
	UpdatedAtUTC  string `json:"updated_at_utc"`
}

type countersDTO struct {
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	Pending      int `json:"pending"`
}

type awardedBadgeDTO struct {
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	Tier         string `json:"tier,omitempty"`
	EarnedAtUTC  string `json:"earned_at_utc"`
	Acknowledged bool   `json:"acknowledged"`
}

func eventToDTO(v event.Event) eventDTO {
	return eventDTO{
		ID:                v.ID,
		Title:             v.Title,
		Type:              string(v.Type),
		StartsAt:          v.StartsAt.UTC().Format(time.RFC3339),
		HomeScore:         v.HomeScore,
		AwayScore:         v.AwayScore,
		AttendingCount:    v.AttendingCount,
		NotAttendingCount: v.NotAttendingCount,
		PendingCount:      v.PendingCount,
		CreatedBy:         v.CreatedBy,
	}
}

func voteToDTO(v vote.Vote) voteDTO {
	return voteDTO{
		EventID:       v.EventID,
		ParticipantID: v.ParticipantID,
		Status:        string(v.Status),
		Guest:         v.Guest,
		GuestName:     v.GuestName,
		GuestLevel:    v.GuestLevel,
		GuestPosition: string(v.GuestPosition),
		CreatedAtUTC:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func countersToDTO(v vote.Counters) countersDTO {
	return countersDTO{
		Attending:    v.Attending,
		NotAttending: v.NotAttending,
		Pending:      v.Pending,
	}
}

func awardedBadgeToDTO(v badge.Awarded) awardedBadgeDTO {
	dto := awardedBadgeDTO{
		Code:         v.Code,
		EarnedAtUTC:  v.EarnedAt.UTC().Format(time.RFC3339),
		Acknowledged: v.Acknowledged,
	}
	if meta, ok := badge.DefaultCatalog()[v.Code]; ok {
		dto.Name = meta.Name
		dto.Tier = string(meta.Tier)
	}
	return dto
}
