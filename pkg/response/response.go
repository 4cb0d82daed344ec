package response

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/pkg/apperr"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope with the given status.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes an error envelope with the given status.
func Error[T any](ctx *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	})
}

// AbortError writes an error envelope and aborts the handler chain.
// Intended for middleware.
func AbortError(ctx *gin.Context, status int, message string, details interface{}) {
	Error[any](ctx, status, message, details)
	ctx.Abort()
}

// FromError translates a service error into the envelope. Typed apperr
// failures keep their status and message; everything else is logged and
// masked as a generic message in production.
func FromError(ctx *gin.Context, logger *logrus.Logger, env string, err error) {
	if appErr, ok := apperr.As(err); ok {
		if appErr.RetryAfter > 0 {
			ctx.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
		}
		Error[any](ctx, appErr.Status, appErr.Message, nil)
		return
	}
	if logger != nil {
		logger.WithError(err).WithField("path", ctx.FullPath()).Error("unhandled error")
	}
	msg := "internal server error"
	if env != "production" {
		msg = err.Error()
	}
	Error[any](ctx, http.StatusInternalServerError, msg, nil)
}
