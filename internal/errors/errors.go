package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error and decides its HTTP status.
type Kind string

// Error kinds
const (
	// Input errors
	KindInvalidInput Kind = "INVALID_INPUT"

	// Authentication errors
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindTokenRejected Kind = "TOKEN_REJECTED"

	// Authorization errors
	KindForbidden Kind = "FORBIDDEN"

	// Resource errors
	KindNotFound Kind = "NOT_FOUND"
	KindConflict Kind = "CONFLICT"

	// Service errors
	KindInternal           Kind = "INTERNAL_ERROR"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
)

// Client-facing messages used when nothing more specific is known.
const (
	MsgSomethingWentWrong = "Something went wrong. Try again later!"
	MsgUnavailable        = "The service is temporarily unavailable. Try again later!"
)

// AppError is an expected failure carrying both the user-facing message and
// the internal diagnostic written to the "error" field of the envelope.
type AppError struct {
	Kind      Kind
	ClientMsg string
	Internal  string
	Err       error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Internal + ": " + e.Err.Error()
	}
	return e.Internal
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(kind Kind, clientMsg, internal string) *AppError {
	return &AppError{
		Kind:      kind,
		ClientMsg: clientMsg,
		Internal:  internal,
	}
}

// Wrap creates an AppError that keeps err as its cause.
func Wrap(kind Kind, clientMsg, internal string, err error) *AppError {
	return &AppError{
		Kind:      kind,
		ClientMsg: clientMsg,
		Internal:  internal,
		Err:       err,
	}
}

// Is lets errors.Is match a wrapped copy against its sentinel by kind and message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.ClientMsg == t.ClientMsg && e.Internal == t.Internal
}

// StatusCode returns the HTTP status for a kind.
func StatusCode(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized, KindForbidden:
		return http.StatusUnauthorized
	case KindTokenRejected:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Classify turns any error into an AppError. Timeouts become
// ServiceUnavailable, anything unexpected becomes Internal.
func Classify(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindServiceUnavailable, MsgUnavailable, "store call timed out", err)
	}
	return &AppError{
		Kind:      KindInternal,
		ClientMsg: MsgSomethingWentWrong,
		Internal:  err.Error(),
	}
}

// Respond writes err as an envelope with the matching status code.
func Respond(c *gin.Context, err error) {
	appErr := Classify(err)
	c.JSON(StatusCode(appErr.Kind), gin.H{
		"clientMsg": appErr.ClientMsg,
		"error":     appErr.Error(),
	})
}

// Abort writes err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

// Helper functions for common error responses

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, clientMsg, internal string) {
	Respond(c, New(KindInvalidInput, clientMsg, internal))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, clientMsg, internal string) {
	if clientMsg == "" {
		clientMsg = "Unauthorized."
	}
	Respond(c, New(KindUnauthorized, clientMsg, internal))
}

// Forbidden sends a 403 response for rejected tokens
func Forbidden(c *gin.Context, internal string) {
	Respond(c, New(KindTokenRejected, "Forbidden.", internal))
}
