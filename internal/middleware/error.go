package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/logger"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Details string      `json:"details,omitempty"`
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError writes err as a JSON error response and aborts the chain.
// AppErrors keep their status, code and message, plus details when set.
// Anything else is logged and reported as a generic internal error.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(requestIDKey),
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, ErrorResponse{
		Error:   ErrorDetail{Code: appErr.Code, Message: appErr.Message},
		Details: appErr.Details,
	})
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses, unless a handler already
// wrote a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		RespondError(c, c.Errors.Last().Err)
	}
}

// Recovery turns panics into a JSON internal error.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		RespondError(c, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("panic: %v", recovered)))
	})
}

// NotFound answers requests that match no route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, apperrors.WithMessage(apperrors.ErrNotFound,
			fmt.Sprintf("No route for %s %s", c.Request.Method, c.Request.URL.Path)))
	}
}

// MethodNotAllowed answers requests whose path exists under another method.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, apperrors.ErrMethodNotAllowed)
	}
}
