package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/pitchside/matchday/internal/domain/badge"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/matchday/internal/platform/id"
	"github.com/pitchside/matchday/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	votes := memory.NewVoteRepository()
	events := memory.NewEventRepository(memory.SeedEvents(), votes)
	participants := memory.NewParticipantRepository(memory.SeedParticipants())
	formations := memory.NewFormationRepository()
	awarded := memory.NewAwardedBadgeRepository(nil)

	attendanceService := usecase.NewAttendanceService(events, votes, participants, usecase.PolicySimple)
	voteService := usecase.NewVoteService(events, votes, participants, attendanceService, idgen.NewUUIDGenerator())
	formationService := usecase.NewFormationService(events, votes, participants, formations)
	outcomeService := usecase.NewOutcomeService(events, votes, formations)
	badgeService := usecase.NewBadgeService(events, participants, awarded, outcomeService, badge.DefaultCatalog(), badge.DefaultRules())
	eventService := usecase.NewEventService(events)

	handler := NewHandler(eventService, voteService, attendanceService, formationService, outcomeService, badgeService, nil)
	return NewRouter(handler, nil, []string{"*"}, testJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal response for %s %s: %v", method, target, err)
		}
	}
	return rec, decoded
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestRouter_VoteLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/votes",
		`{"participant_id":"`+memory.ParticipantIDCaptain+`","status":"attending"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cast vote: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	counters, _ := data["counters"].(map[string]any)
	if counters["attending"] != float64(1) {
		t.Fatalf("expected 1 attending, got %v", counters)
	}

	rec, _ = doJSON(t, router, http.MethodDelete,
		"/v1/events/"+memory.EventIDWeeklyGame+"/votes/"+memory.ParticipantIDCaptain, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("withdraw vote: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodDelete,
		"/v1/events/"+memory.EventIDWeeklyGame+"/votes/"+memory.ParticipantIDCaptain, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double withdraw: expected 404, got %d", rec.Code)
	}
}

func TestRouter_VoteValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/votes",
		`{"participant_id":"`+memory.ParticipantIDCaptain+`","status":"maybe"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost,
		"/v1/events/no-such-event/votes",
		`{"participant_id":"`+memory.ParticipantIDCaptain+`","status":"attending"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", rec.Code)
	}
}

func TestRouter_FormationLifecycle(t *testing.T) {
	router := newTestRouter(t)

	for _, id := range []string{memory.ParticipantIDCaptain, "member-gk", "member-def-1", "member-fwd-1"} {
		rec, _ := doJSON(t, router, http.MethodPost,
			"/v1/events/"+memory.EventIDWeeklyGame+"/votes",
			`{"participant_id":"`+id+`","status":"attending"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("seed vote for %s: got %d", id, rec.Code)
		}
	}

	rec, body := doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/draft", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("draft: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	squads, _ := data["squads"].([]any)
	if len(squads) != 2 {
		t.Fatalf("expected 2 squads, got %d", len(squads))
	}

	rec, _ = doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/confirm", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("confirm without actor: expected 400, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/confirm", "",
		map[string]string{actorHeader: "member-gk"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("confirm by non-admin: expected 403, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/confirm", "",
		map[string]string{actorHeader: memory.ParticipantIDCaptain})
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm by admin: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ = body["data"].(map[string]any)
	homeSide, _ := data["home_side"].(string)
	if data["confirmed"] != true || homeSide == "" {
		t.Fatalf("confirmed formation must pin a home side: %v", data)
	}

	rec, _ = doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/draft", "", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("draft after confirm: expected 409, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost,
		"/v1/events/"+memory.EventIDWeeklyGame+"/formation/reset", "",
		map[string]string{actorHeader: memory.ParticipantIDCaptain})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset by admin: expected 200, got %d", rec.Code)
	}
}

func TestRouter_InternalJobTokenGate(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost,
		"/v1/internal/jobs/badges/reconcile",
		`{"participant_id":"`+memory.ParticipantIDCaptain+`"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodPost,
		"/v1/internal/jobs/badges/reconcile",
		`{"participant_id":"`+memory.ParticipantIDCaptain+`"}`,
		map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["participant_id"] != memory.ParticipantIDCaptain {
		t.Fatalf("unexpected reconcile payload: %v", data)
	}
}

func TestRouter_BatchJobDefaultsToRoster(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost,
		"/v1/internal/jobs/badges/reconcile-batch", `{}`,
		map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["task_count"] != float64(7) {
		t.Fatalf("expected batch over 7 active members, got %v", data["task_count"])
	}
}
