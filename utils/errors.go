package utils

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// AppError carries the HTTP status a failure should surface with.
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(status int, msg string) *AppError {
	return &AppError{Status: status, Message: msg}
}

func NotFound(msg string) *AppError      { return NewAppError(http.StatusNotFound, msg) }
func Forbidden(msg string) *AppError     { return NewAppError(http.StatusForbidden, msg) }
func BadRequest(msg string) *AppError    { return NewAppError(http.StatusBadRequest, msg) }
func Conflict(msg string) *AppError      { return NewAppError(http.StatusConflict, msg) }
func Unauthorized(msg string) *AppError  { return NewAppError(http.StatusUnauthorized, msg) }
func Unprocessable(msg string) *AppError { return NewAppError(http.StatusUnprocessableEntity, msg) }

// NotFoundOr maps gorm's missing-row error to a 404 and passes anything else through.
func NotFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	return err
}

// StatusOf returns the HTTP status for err, 500 unless it is an *AppError.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// ValidationError aggregates request field failures into one 422.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }
