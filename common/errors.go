package common

import (
	"net/http"

	"vidtube-api/logger"

	"github.com/sirupsen/logrus"
)

// AppError is the failure every handler returns. Err carries the internal cause and
// is logged, never serialised.
type AppError struct {
	Code    int    `json:"statusCode"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

func Forbidden(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func TooManyRequests(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message, nil)
}

func Internal(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// StatusCode falls back to 500 when no code was set.
func (e *AppError) StatusCode() int {
	if e.Code < 400 || e.Code > 599 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Log records the failure for operators.
func (e *AppError) Log(r *http.Request) {
	fields := logrus.Fields{
		"status_code": e.StatusCode(),
	}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}
	if e.Err != nil {
		fields["internal_error"] = e.Err.Error()
	}

	entry := logger.Log.WithFields(fields)
	if e.StatusCode() >= http.StatusInternalServerError {
		entry.Error(e.Message)
	} else {
		entry.Warn(e.Message)
	}
}

// Send writes the failure envelope.
func (e *AppError) Send(w http.ResponseWriter) {
	Failure(e.StatusCode(), e.Message).Send(w)
}
