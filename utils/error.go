package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures surfaced to callers.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindUnauthorized  ErrorKind = "unauthorized"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindNotFound      ErrorKind = "not_found"
	KindInternal      ErrorKind = "internal"
)

// AppError carries a stable kind and a user-facing message. Err is the
// underlying cause and is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NewConflictError(msg string) error {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewInternalError(msg string, err error) error {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, treating unclassified errors as internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   KindInternal,
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as a JSON error response. Internal causes are
// logged but never sent to the client.
func RespondError(c *gin.Context, err error) {
	logger := GetLogger()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: "Something went wrong", Err: err}
	}

	status := HTTPStatus(appErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error(appErr.Message, zap.Error(err), zap.String("path", c.FullPath()))
	} else {
		logger.Warn(appErr.Message, zap.String("kind", string(appErr.Kind)), zap.String("path", c.FullPath()))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: appErr.Kind, Message: appErr.Message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, kind ErrorKind, message string) {
	RespondError(c, &AppError{Kind: kind, Message: message})
}
