package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

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

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope and aborts the handler chain.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

// Fail converts a service error into the failure envelope. Errors without a
// kind become a generic 500; the cause is attached to the gin context so the
// request logger records it.
func Fail(ctx *gin.Context, err error) APIResponse[any] {
	return FailWith[any](ctx, err, nil)
}

// FailWith is Fail for writes that were saved before a follow-up step failed;
// data carries the saved value.
func FailWith[T any](ctx *gin.Context, err error, data T) APIResponse[T] {
	_ = ctx.Error(err)
	status, message, details := describe(err)
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Data:      data,
		Error:     details,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}

func describe(err error) (status int, message string, details interface{}) {
	kind := apperror.KindOf(err)
	status = apperror.HTTPStatus(kind)
	if kind == apperror.KindInternal {
		return status, "internal server error", nil
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return status, ae.Message, ae.Details
	}
	return status, err.Error(), nil
}
