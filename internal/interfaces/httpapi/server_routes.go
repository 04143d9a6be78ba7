package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerEventRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("POST /v1/events/{eventID}/votes", handler.CastVote)
	mux.HandleFunc("DELETE /v1/events/{eventID}/votes/{participantID}", handler.WithdrawVote)
	mux.HandleFunc("POST /v1/events/{eventID}/counters/recompute", handler.RecomputeCounters)
	mux.HandleFunc("GET /v1/events/{eventID}/formation", handler.GetFormation)
	mux.HandleFunc("POST /v1/events/{eventID}/formation/draft", handler.DraftFormation)
	mux.HandleFunc("POST /v1/events/{eventID}/formation/confirm", handler.ConfirmFormation)
	mux.HandleFunc("POST /v1/events/{eventID}/formation/reset", handler.ResetFormation)
	mux.HandleFunc("GET /v1/events/{eventID}/outcomes", handler.ListOutcomes)
}

func registerBadgeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/participants/{participantID}/badges", handler.ListParticipantBadges)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/badges/reconcile", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileJob)))
	mux.Handle("POST /v1/internal/jobs/badges/reconcile-batch", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileBatchJob)))
}
