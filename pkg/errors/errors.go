// Package errors provides the error taxonomy for the dedupe engine.
// It distinguishes the three failure classes the engine cares about:
// validation problems that turn into skipped outcomes, rate-limit
// responses that are retried, and everything else, which is not.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the dedupe engine.
var (
	// ErrNotFound indicates that a requested CRM record was not found.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates that the CRM API rejected a call for
	// exceeding the permitted call rate. Calls failing with this error
	// are eligible for retry with backoff.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidInput indicates that a record is missing fields the
	// engine requires to proceed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessTokenRequired indicates that no CRM access token was configured.
	ErrAccessTokenRequired = errors.New("access token required")
)

// NotFoundError reports a CRM record that does not exist.
type NotFoundError struct {
	ObjectType string
	ID         string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %s not found", e.ObjectType, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(objectType, id string) *NotFoundError {
	return &NotFoundError{ObjectType: objectType, ID: id}
}

// ValidationError reports a record field that fails the engine's preconditions.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError represents a failed call against the CRM API. The status
// code carries the retry decision: 429 satisfies errors.Is(err,
// ErrRateLimited), anything else does not and is never retried.
type APIError struct {
	ObjectType string
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("crm api error (%s, status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("crm api error (%s): %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	case http.StatusNotFound:
		return target == ErrNotFound
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(objectType, endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		ObjectType: objectType,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// MergeError reports a failed merge of one record into another.
type MergeError struct {
	ObjectType string
	PrimaryID  string
	MergedID   string
	Err        error
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	return fmt.Sprintf("merging %s %s into %s: %v", e.ObjectType, e.MergedID, e.PrimaryID, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError.
func NewMergeError(objectType, primaryID, mergedID string, err error) *MergeError {
	return &MergeError{
		ObjectType: objectType,
		PrimaryID:  primaryID,
		MergedID:   mergedID,
		Err:        err,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// WrapValidation wraps an error as a ValidationError.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
