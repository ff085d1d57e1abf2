package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/platform/ctxutil"
)

func principal(c *gin.Context) uuid.UUID {
	return ctxutil.PrincipalID(c.Request.Context())
}

// uuidParam parses a path parameter, writing a 400 when it is not a uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, fmt.Errorf("%s must be a uuid", name))
		return uuid.Nil, false
	}
	return id, true
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
