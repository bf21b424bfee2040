package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrDuplicatePhone creates an error for a phone_number uniqueness violation
func ErrDuplicatePhone() error {
	return &AppError{
		Code:    "DUPLICATE_PHONE",
		Message: "phone number already exists",
		Err:     ErrDuplicate,
	}
}

// ErrDuplicateEmail creates an error for an email uniqueness violation
func ErrDuplicateEmail() error {
	return &AppError{
		Code:    "DUPLICATE_EMAIL",
		Message: "email already exists",
		Err:     ErrDuplicate,
	}
}

// ErrStore wraps an unclassified store failure
func ErrStore(message string, err error) error {
	return &AppError{
		Code:    "STORE_ERROR",
		Message: message,
		Err:     err,
	}
}
