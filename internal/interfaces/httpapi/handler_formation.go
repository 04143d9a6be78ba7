package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/pitchside/matchday/internal/domain/formation"
)

func (h *Handler) GetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormation")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	item, err := h.formationService.Get(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get formation failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(item))
}

func (h *Handler) DraftFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftFormation")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	draft, err := h.formationService.ComputeDraft(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "draft formation failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(draft))
}

func (h *Handler) ConfirmFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmFormation")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	actorID := h.actorID(r)

	confirmed, err := h.formationService.Confirm(ctx, eventID, actorID)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm formation failed", "event_id", eventID, "actor_id", actorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(confirmed))
}

func (h *Handler) ResetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetFormation")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	actorID := h.actorID(r)

	reset, err := h.formationService.ResetDraft(ctx, eventID, actorID)
	if err != nil {
		h.logger.WarnContext(ctx, "reset formation failed", "event_id", eventID, "actor_id", actorID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(reset))
}

type formationDTO struct {
	EventID       string     `json:"event_id"`
	Squads        []squadDTO `json:"squads"`
	HomeSide      string     `json:"home_side,omitempty"`
	Confirmed     bool       `json:"confirmed"`
	ComputedAtUTC string     `json:"computed_at_utc"`
}

type squadDTO struct {
	Name      string    `json:"name"`
	Slots     []slotDTO `json:"slots"`
	Size      int       `json:"size"`
	MeanLevel float64   `json:"mean_level"`
}

type slotDTO struct {
	Kind          string `json:"kind"`
	ParticipantID string `json:"participant_id,omitempty"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	Position      string `json:"position"`
}

func formationToDTO(v formation.Formation) formationDTO {
	squads := make([]squadDTO, 0, len(v.Squads))
	for _, squad := range v.Squads {
		slots := make([]slotDTO, 0, len(squad.Slots))
		for _, slot := range squad.Slots {
			slots = append(slots, slotDTO{
				Kind:          string(slot.Entry.Kind),
				ParticipantID: slot.Entry.ParticipantID,
				Name:          slot.Entry.Name,
				Level:         slot.LevelAtAssignment,
				Position:      string(slot.AssignedPosition),
			})
		}
		squads = append(squads, squadDTO{
			Name:      squad.Name,
			Slots:     slots,
			Size:      squad.Size,
			MeanLevel: squad.MeanLevel,
		})
	}

	return formationDTO{
		EventID:       v.EventID,
		Squads:        squads,
		HomeSide:      v.HomeSide,
		Confirmed:     v.Confirmed,
		ComputedAtUTC: v.ComputedAt.UTC().Format(time.RFC3339),
	}
}
