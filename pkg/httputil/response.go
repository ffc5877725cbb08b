package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// ContextRequestID is the gin context key holding the request id.
const ContextRequestID = "request_id"

const MsgBodyTooLarge = "Request body too large"

// Response is the body of every write and error response on the /api surface.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// RespondWithRows sends a bare JSON array. A nil slice is rendered as [].
func RespondWithRows[T any](c *gin.Context, rows []T) {
	if rows == nil {
		rows = []T{}
	}
	c.JSON(http.StatusOK, rows)
}

// RespondWithError sends an error response. Causes of server errors are logged
// and never written to the client.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := errors.As(err); ok {
		statusCode = appErr.StatusCode()
		message = appErr.Message
	}

	if statusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// BindError maps a failure to bind the request body. A body cut off by
// http.MaxBytesReader is a 413; anything else means the required fields could
// not be read and is answered with message.
func BindError(c *gin.Context, message string, err error) *errors.AppError {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.NewTooLarge(MsgBodyTooLarge, err)
	}

	event := log.Ctx(c.Request.Context()).Warn().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path)
	if validator.IsValidationError(err) {
		event = event.Strs("missing", validator.MissingFields(err))
	} else {
		event = event.Err(err)
	}
	event.Msg("request body rejected")

	return errors.BadRequest(message, err)
}

// RespondWithText sends a plain-text success body, used by the legacy routes.
func RespondWithText(c *gin.Context, message string) {
	c.String(http.StatusOK, message)
}
