package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger logs one event per request and makes a request-scoped logger
// available to downstream code through log.Ctx(ctx). It expects RequestID to
// run first.
func Logger() gin.HandlerFunc {
	return LoggerWith(log.Logger)
}

// LoggerWith is Logger writing to base instead of the global logger.
func LoggerWith(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		reqLogger := base.With().
			Str("request_id", c.GetString(ContextRequestID)).
			Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		// Process request
		c.Next()

		statusCode := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		var event *zerolog.Event
		switch {
		case statusCode >= 500:
			event = reqLogger.Error()
		case statusCode >= 400:
			event = reqLogger.Warn()
		default:
			event = reqLogger.Info()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Int("status", statusCode).
			Dur("latency", time.Since(start)).
			Int("size", c.Writer.Size()).
			Str("user_agent", c.Request.UserAgent()).
			Msg("Request processed")
	}
}
