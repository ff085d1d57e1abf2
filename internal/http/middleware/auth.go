package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/http/response"
	"github.com/yungbote/nexus-backend/internal/platform/ctxutil"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
	"github.com/yungbote/nexus-backend/internal/services"
)

var (
	errBadToken    = errors.New("missing or invalid token")
	errNoPrincipal = errors.New("token carries no principal")
)

type AuthMiddleware struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), auth: auth}
}

// RequireAuth resolves the bearer token into the request principal. Any
// failure aborts the chain before the handler runs.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			am.reject(c, http.StatusUnauthorized, "unauthorized", errBadToken)
			return
		}
		ctx, err := am.auth.SetContextFromToken(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("token rejected", "error", err, "path", c.Request.URL.Path)
			am.reject(c, http.StatusUnauthorized, "unauthorized", errBadToken)
			return
		}
		if ctxutil.PrincipalID(ctx) == uuid.Nil {
			am.reject(c, http.StatusForbidden, "forbidden", errNoPrincipal)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) reject(c *gin.Context, status int, code string, err error) {
	response.RespondError(c, status, code, err)
	c.Abort()
}

// bearerToken accepts the scheme in any case.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
