package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/ctxutil"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

type stubAuth struct {
	userID uuid.UUID
	err    error
}

func (s stubAuth) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}

func (s stubAuth) Login(context.Context, string, string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s stubAuth) TokenTTL() time.Duration { return time.Hour }

func (s stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if s.err != nil {
		return ctx, s.err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token, UserID: s.userID}), nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uid := uuid.New()

	tests := []struct {
		name   string
		auth   stubAuth
		header string
		want   int
	}{
		{"missing header", stubAuth{userID: uid}, "", http.StatusUnauthorized},
		{"not bearer", stubAuth{userID: uid}, "Basic abc", http.StatusUnauthorized},
		{"rejected token", stubAuth{err: errors.New("expired")}, "Bearer abc", http.StatusUnauthorized},
		{"no principal", stubAuth{userID: uuid.Nil}, "Bearer abc", http.StatusForbidden},
		{"ok", stubAuth{userID: uid}, "bearer abc", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewAuthMiddleware(logger.Nop(), tc.auth).RequireAuth())
			var seen uuid.UUID
			r.GET("/me", func(c *gin.Context) {
				seen = ctxutil.PrincipalID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status=%d want %d", rec.Code, tc.want)
			}
			if tc.want == http.StatusOK && seen != uid {
				t.Fatalf("principal=%s want %s", seen, uid)
			}
		})
	}
}

func TestTraceContextAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.NewWithCore(core)))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace id header missing")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	entries := logs.FilterMessage("HTTP request").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Fatalf("5xx should log at error, got %s", entries[0].Level)
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-123" || fields["error"] != "db down" || fields["path"] != "/boom" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if entries[1].Level != zap.InfoLevel {
		t.Fatalf("2xx should log at info, got %s", entries[1].Level)
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg, reg)

	r := gin.New()
	r.Use(Metrics(m, "/metrics"))
	r.GET("/api/roadmaps/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/api/roadmaps/a", "/api/roadmaps/b", "/metrics", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	got, err := testutil.GatherAndCount(reg, "nexus_api_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2 label sets (route template + unmatched), got %d", got)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":     "abc",
		"  BEARER  xyz ": "xyz",
		"Bearer":         "",
		"Bearer   ":      "",
		"Token abc":      "",
	}
	for header, want := range cases {
		got, ok := bearerToken(header)
		if got != want || ok != (want != "") {
			t.Fatalf("bearerToken(%q)=%q,%v want %q", header, got, ok, want)
		}
	}
}
