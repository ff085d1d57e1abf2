package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.Validationf("bad index %d", 40), http.StatusBadRequest, "validation_error"},
		{"invalid status", fmt.Errorf("%w: archived", domain.ErrInvalidStatus), http.StatusBadRequest, "invalid_status"},
		{"node", domain.ErrNodeNotFound, http.StatusNotFound, "node_not_found"},
		{"not owner", domain.Forbidden("roadmap"), http.StatusNotFound, "not_found"},
		{"missing", domain.NotFound("roadmap"), http.StatusNotFound, "not_found"},
		{"completed", domain.ErrAlreadyCompleted, http.StatusConflict, "already_completed"},
		{"duplicate", fmt.Errorf("insert user: %w", domain.ErrDuplicateEntity), http.StatusConflict, "duplicate_entity"},
		{"prerequisite", domain.Prerequisitef("no completed nodes"), http.StatusBadRequest, "prerequisite_missing"},
		{"malformed", &extraction.MalformedOutputError{Reason: "no json"}, http.StatusBadGateway, "malformed_output"},
		{"schema", &extraction.SchemaViolationError{Kind: extraction.KindRoadmap, Fields: []string{"title"}}, http.StatusBadGateway, "schema_violation"},
		{"backend", &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}, http.StatusServiceUnavailable, "backend_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"explicit", New(http.StatusTeapot, "teapot", nil), http.StatusTeapot, "teapot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("Classify(%v) = %d/%s, want %d/%s", tc.err, got.Status, got.Code, tc.status, tc.code)
			}
		})
	}
}

func TestClassifyHidesInternals(t *testing.T) {
	got := Classify(errors.New("pq: password authentication failed for user nexus"))
	if got.Error() != "internal error" {
		t.Fatalf("internal detail leaked: %q", got.Error())
	}
	got = Classify(&extraction.MalformedOutputError{Reason: "invalid json", Err: errors.New("here is your roadmap {")})
	if got.Error() == "" || got.Error() != "generation backend returned output that could not be parsed" {
		t.Fatalf("backend text leaked: %q", got.Error())
	}
	if Classify(nil) != nil {
		t.Fatalf("nil should classify to nil")
	}
}
