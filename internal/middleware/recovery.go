package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

const msgInternalError = "Internal server error"

// Recovery turns a handler panic into a 500 with the common error body. The
// connection stays open and the process keeps serving.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			log.Error().
				Err(fmt.Errorf("panic: %v", r)).
				Bytes("stack", debug.Stack()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("recovered from panic")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
				Success: false,
				Message: msgInternalError,
			})
		}()
		c.Next()
	}
}
