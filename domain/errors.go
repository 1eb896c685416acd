package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches two domain errors by code and message so wrapped sentinels
// still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// StoreError classifies an unexpected storage failure.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return err
	}
	return WrapError(ErrCodeInternal, op, err)
}

// Common domain errors.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrHabitNotFound      = NewError(ErrCodeNotFound, "habit not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrDuplicateUser      = NewError(ErrCodeConflict, "username already exists")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid credentials")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Invalid builds an INVALID error describing a rejected field.
func Invalid(format string, args ...interface{}) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf(format, args...))
}
