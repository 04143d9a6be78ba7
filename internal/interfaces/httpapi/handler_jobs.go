package httpapi

import (
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pitchside/matchday/internal/usecase"
)

func (h *Handler) RunReconcileJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileJob")
	defer span.End()

	var req reconcileJobRequest
	decoder := jsoniter.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && err != io.EOF {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.badgeService.Reconcile(ctx, req.ParticipantID)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile job failed", "participant_id", req.ParticipantID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunReconcileBatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileBatchJob")
	defer span.End()

	var req reconcileBatchJobRequest
	decoder := jsoniter.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil && err != io.EOF {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.badgeService.ReconcileBatch(ctx, usecase.ReconcileBatchInput{
		ParticipantIDs: req.ParticipantIDs,
		MaxWorkers:     req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile batch job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type reconcileJobRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type reconcileBatchJobRequest struct {
	ParticipantIDs []string `json:"participant_ids"`
	MaxWorkers     int      `json:"max_workers" validate:"min=0,max=64"`
}
