package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/data/repos"
	"github.com/yungbote/nexus-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/nexus-backend/internal/http/handlers"
	httpMW "github.com/yungbote/nexus-backend/internal/http/middleware"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/services"
)

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
	llm    *llm.MockProvider
	token  string
}

func newHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	provider := llm.NewMockProvider()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg, reg)
	catalog := cache.Nop()

	userRepo := repos.NewUserRepo(db, log)
	roadmapRepo := repos.NewRoadmapRepo(db, log)
	interviewRepo := repos.NewInterviewSessionRepo(db, log)
	assessmentRepo := repos.NewAssessmentSessionRepo(db, log)
	challengeRepo := repos.NewChallengeRepo(db, log)
	chatRepo := repos.NewChatMessageRepo(db, log)

	authService := services.NewAuthService(log, userRepo, "test-secret", time.Hour)
	conversation := services.NewConversationService(db, log, provider, metrics, roadmapRepo, challengeRepo, chatRepo)

	engine := NewRouter(RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AuthHandler:    httpH.NewAuthHandler(authService),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		UserHandler:    httpH.NewUserHandler(services.NewUserService(log, userRepo, roadmapRepo, interviewRepo, assessmentRepo)),
		RoadmapHandler: httpH.NewRoadmapHandler(
			services.NewRoadmapService(log, provider, metrics, roadmapRepo, catalog),
			conversation,
		),
		InterviewHandler:  httpH.NewInterviewHandler(services.NewInterviewService(log, provider, metrics, interviewRepo, userRepo)),
		AssessmentHandler: httpH.NewAssessmentHandler(services.NewAssessmentService(log, provider, metrics, assessmentRepo, userRepo)),
		ChallengeHandler: httpH.NewChallengeHandler(
			services.NewChallengeService(log, provider, metrics, challengeRepo, roadmapRepo, catalog),
			conversation,
		),
		FlashcardHandler: httpH.NewFlashcardHandler(services.NewFlashcardService(log, provider, metrics, roadmapRepo)),
		HealthHandler:    httpH.NewHealthHandler(db),
	})
	return &apiHarness{t: t, engine: engine, llm: provider}
}

func (h *apiHarness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *apiHarness) login(email string) {
	h.t.Helper()
	w := h.do("POST", "/api/auth/register", map[string]string{"email": email, "password": "hunter22", "name": "Ada Lovelace"})
	if w.Code != nethttp.StatusCreated {
		h.t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	w = h.do("POST", "/api/auth/token", map[string]string{"email": email, "password": "hunter22"})
	if w.Code != nethttp.StatusOK {
		h.t.Fatalf("token: %d %s", w.Code, w.Body.String())
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	decode(h.t, w, &tok)
	if tok.AccessToken == "" || tok.ExpiresIn != 3600 {
		h.t.Fatalf("unexpected token response: %s", w.Body.String())
	}
	h.token = tok.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, w, &env)
	return env.Error.Code
}

const roadmapJSON = `{"title": "Learn Go", "nodes": [
	{"nodeId": "n1", "title": "Syntax", "content": "basics", "dependencies": []},
	{"nodeId": "n2", "title": "Concurrency", "content": "goroutines", "dependencies": ["n1"]}]}`

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/api/users/me", "/api/roadmaps/ongoing", "/api/challenges"} {
		if w := h.do("GET", path, nil); w.Code != nethttp.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}
	if w := h.do("GET", "/healthz", nil); w.Code != nethttp.StatusOK {
		t.Fatalf("healthz: %d", w.Code)
	}
}

func TestTokenRejectsWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.login("ada@example.com")
	h.token = ""
	w := h.do("POST", "/api/auth/token", map[string]string{"email": "ada@example.com", "password": "nope-nope"})
	if w.Code != nethttp.StatusUnauthorized || errorCode(t, w) != "unauthorized" {
		t.Fatalf("expected 401 unauthorized, got %d %s", w.Code, w.Body.String())
	}
}

func TestRoadmapLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t)
	h.login("ada@example.com")

	h.llm.Reply("```json\n" + roadmapJSON + "\n```")
	w := h.do("POST", "/api/roadmaps/generate", map[string]string{"prompt": "backend Go"})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("generate: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Roadmap struct {
			ID       uuid.UUID `json:"id"`
			Progress int       `json:"progress"`
		} `json:"roadmap"`
	}
	decode(t, w, &created)
	base := "/api/roadmaps/" + created.Roadmap.ID.String()

	w = h.do("PATCH", base+"/nodes/n1/status", map[string]string{"status": "completed"})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("status: %d %s", w.Code, w.Body.String())
	}
	var updated struct {
		Roadmap struct {
			Progress int `json:"progress"`
		} `json:"roadmap"`
	}
	decode(t, w, &updated)
	if updated.Roadmap.Progress != 50 {
		t.Fatalf("expected progress 50, got %d", updated.Roadmap.Progress)
	}

	w = h.do("PATCH", base+"/nodes/n2/status", map[string]string{"status": "archived"})
	if w.Code != nethttp.StatusBadRequest || errorCode(t, w) != "invalid_status" {
		t.Fatalf("expected invalid_status, got %d %s", w.Code, w.Body.String())
	}

	w = h.do("PATCH", base+"/nodes/ghost/status", map[string]string{"status": "completed"})
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404 for unknown node, got %d", w.Code)
	}

	h.llm.Reply("Goroutines are cheap threads.")
	w = h.do("POST", base+"/nodes/n2/chat", map[string]string{"text": "What is a goroutine?"})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("chat: %d %s", w.Code, w.Body.String())
	}
	w = h.do("GET", base+"/nodes/n2/chat", nil)
	var history struct {
		Messages []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"messages"`
	}
	decode(t, w, &history)
	if len(history.Messages) != 2 || history.Messages[0].Sender != "user" || history.Messages[1].Text != "Goroutines are cheap threads." {
		t.Fatalf("unexpected history: %+v", history.Messages)
	}

	if w = h.do("DELETE", base, nil); w.Code != nethttp.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	if w = h.do("GET", base, nil); w.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestGenerateMapsBackendFailures(t *testing.T) {
	h := newHarness(t)
	h.login("ada@example.com")

	h.llm.Reply("I cannot produce JSON today.")
	w := h.do("POST", "/api/roadmaps/generate", map[string]string{"prompt": "Go"})
	if w.Code != nethttp.StatusBadGateway || errorCode(t, w) != "malformed_output" {
		t.Fatalf("expected 502 malformed_output, got %d %s", w.Code, w.Body.String())
	}

	h.llm.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	w = h.do("POST", "/api/roadmaps/generate", map[string]string{"prompt": "Go"})
	if w.Code != nethttp.StatusServiceUnavailable || errorCode(t, w) != "backend_unavailable" {
		t.Fatalf("expected 503 backend_unavailable, got %d %s", w.Code, w.Body.String())
	}

	w = h.do("POST", "/api/roadmaps/generate", map[string]string{"prompt": "   "})
	if w.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400 for blank prompt, got %d", w.Code)
	}
}

func TestInterviewSubmitOverHTTP(t *testing.T) {
	h := newHarness(t)
	h.login("ada@example.com")

	items := make([]string, 20)
	for i := range items {
		items[i] = `{"question_text": "Q", "question_type": "theory"}`
	}
	h.llm.Reply("[" + strings.Join(items, ",") + "]")
	w := h.do("POST", "/api/interviews/start", map[string]string{"topic": "Go"})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	var started struct {
		Session struct {
			ID uuid.UUID `json:"id"`
		} `json:"session"`
	}
	decode(t, w, &started)
	path := "/api/interviews/" + started.Session.ID.String() + "/submit"

	h.llm.Reply("Final Score: 72/100")
	w = h.do("POST", path, map[string]any{"answers": map[string]string{"0": "goroutines"}})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	var done struct {
		Session struct {
			Status string `json:"status"`
			Score  *int   `json:"score"`
		} `json:"session"`
	}
	decode(t, w, &done)
	if done.Session.Status != "completed" || done.Session.Score == nil || *done.Session.Score != 72 {
		t.Fatalf("unexpected completion: %s", w.Body.String())
	}

	w = h.do("POST", path, map[string]any{"answers": map[string]string{"0": "again"}})
	if w.Code != nethttp.StatusConflict || errorCode(t, w) != "already_completed" {
		t.Fatalf("expected 409 already_completed, got %d %s", w.Code, w.Body.String())
	}
}

func TestInvalidIDParam(t *testing.T) {
	h := newHarness(t)
	h.login("ada@example.com")
	w := h.do("GET", "/api/interviews/not-a-uuid", nil)
	if w.Code != nethttp.StatusBadRequest || errorCode(t, w) != "invalid_id" {
		t.Fatalf("expected 400 invalid_id, got %d %s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.do("GET", "/healthz", nil)
	h.do("GET", "/api/users/me", nil)
	w := h.do("GET", "/metrics", nil)
	if w.Code != nethttp.StatusOK || !strings.Contains(w.Body.String(), "nexus_api_requests_total") {
		t.Fatalf("metrics endpoint missing api counter: %d", w.Code)
	}
}
