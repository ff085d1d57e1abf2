package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/nexus-backend/internal/platform/ctxutil"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// RequestLogger writes one "HTTP request" line after the handler returns.
// 5xx logs at error, 4xx at warn, everything else at info. The last error
// attached with c.Error is included so handlers never log on their own.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		emit := log.Info
		if status >= 500 {
			emit = log.Error
		} else if status >= 400 {
			emit = log.Warn
		}
		emit("HTTP request", requestFields(c, status, time.Since(began))...)
	}
}

func requestFields(c *gin.Context, status int, took time.Duration) []any {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	kv := []any{"method", c.Request.Method, "path", route, "status", status, "duration_ms", took.Milliseconds()}

	ctx := c.Request.Context()
	if td := ctxutil.GetTraceData(ctx); td != nil {
		kv = appendNonEmpty(kv, "trace_id", td.TraceID)
		kv = appendNonEmpty(kv, "request_id", td.RequestID)
	}
	if uid := ctxutil.PrincipalID(ctx); uid != uuid.Nil {
		kv = append(kv, "user_id", uid.String())
	}
	if last := c.Errors.Last(); last != nil {
		kv = append(kv, "error", last.Err.Error())
	}
	return kv
}

func appendNonEmpty(kv []any, key, val string) []any {
	if val == "" {
		return kv
	}
	return append(kv, key, val)
}
