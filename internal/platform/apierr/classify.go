package apierr

import (
	"errors"
	"net/http"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
)

type rule struct {
	target  error
	status  int
	code    string
	message string // empty means the error's own message is safe to return
}

// Order matters: the first matching rule wins.
var rules = []rule{
	{domain.ErrInvalidStatus, http.StatusBadRequest, "invalid_status", ""},
	{domain.ErrValidation, http.StatusBadRequest, "validation_error", ""},
	{domain.ErrPrerequisite, http.StatusBadRequest, "prerequisite_missing", ""},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", ""},
	{domain.ErrNodeNotFound, http.StatusNotFound, "node_not_found", ""},
	{domain.ErrNotFoundOrForbidden, http.StatusNotFound, "not_found", ""},
	{domain.ErrAlreadyCompleted, http.StatusConflict, "already_completed", ""},
	{domain.ErrDuplicateEntity, http.StatusConflict, "duplicate_entity", ""},
	{extraction.ErrMalformedOutput, http.StatusBadGateway, "malformed_output", "generation backend returned output that could not be parsed"},
	{extraction.ErrSchemaViolation, http.StatusBadGateway, "schema_violation", ""},
	{llm.ErrBackendUnavailable, http.StatusServiceUnavailable, "backend_unavailable", "generation backend unavailable"},
}

// Classify maps a service error onto its HTTP status and code. An *Error
// already in the chain is returned as-is.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	for _, r := range rules {
		if errors.Is(err, r.target) {
			if r.message != "" {
				return New(r.status, r.code, errors.New(r.message))
			}
			return New(r.status, r.code, err)
		}
	}
	return New(http.StatusInternalServerError, "internal_error", errors.New("internal error"))
}
