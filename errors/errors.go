// Package errors provides the structured error type shared by the kit's
// storage, configuration and harness components.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies the failure for programmatic handling.
type Code string

const (
	CodeStorageFailure    Code = "STORAGE_FAILURE"
	CodeConfigFailure     Code = "CONFIG_FAILURE"
	CodeValidationFailure Code = "VALIDATION_FAILURE"
	CodeScenarioFailure   Code = "SCENARIO_FAILURE"
)

// Op names the operation during which the error occurred.
type Op string

const (
	OpRun        Op = "run"
	OpResolve    Op = "resolve"
	OpLoadConfig Op = "config_load"
	OpBuildSuite Op = "suite_build"
	OpSaveRun    Op = "store_save"
	OpListRuns   Op = "store_list"
	OpClose      Op = "close"
)

// ConflictError is the kit's structured error. It carries enough context
// (operation, component, code) to log and classify a failure without
// string matching.
type ConflictError struct {
	// Op is the operation during which the error occurred.
	Op Op

	// Component generated the error (e.g. "storage/sqlite", "config").
	Component string

	// Code classifies the error type.
	Code Code

	// Err is the underlying cause.
	Err error

	// Retryable reports whether retrying the operation may succeed.
	Retryable bool

	// Metadata holds additional context for logging.
	Metadata map[string]any
}

func (e *ConflictError) Error() string {
	var msg string
	if e.Component != "" {
		msg = fmt.Sprintf("%s operation failed in %s component", e.Op, e.Component)
	} else {
		msg = fmt.Sprintf("%s operation failed", e.Op)
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" [%s]", e.Code)
	}
	return msg + fmt.Sprintf(": %v", e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// NewStorageError creates a storage-related ConflictError.
func NewStorageError(op Op, cause error) *ConflictError {
	return &ConflictError{
		Code:      CodeStorageFailure,
		Op:        op,
		Component: "storage/sqlite",
		Err:       cause,
		Retryable: true,
	}
}

// NewConfigError creates a configuration-related ConflictError.
func NewConfigError(op Op, cause error) *ConflictError {
	return &ConflictError{
		Code:      CodeConfigFailure,
		Op:        op,
		Component: "config",
		Err:       cause,
		Retryable: false,
	}
}

// NewValidationError creates a validation-related ConflictError.
func NewValidationError(op Op, cause error) *ConflictError {
	return &ConflictError{
		Code:      CodeValidationFailure,
		Op:        op,
		Err:       cause,
		Retryable: false,
	}
}

// NewScenarioError creates a scenario-related ConflictError.
func NewScenarioError(op Op, cause error) *ConflictError {
	return &ConflictError{
		Code:      CodeScenarioFailure,
		Op:        op,
		Component: "scenarios",
		Err:       cause,
		Retryable: false,
	}
}

// WrapOpComponent wraps err with consistent Op and Component propagation.
// If err is nil, returns nil.
func WrapOpComponent(err error, op Op, component string) error {
	if err == nil {
		return nil
	}
	return &ConflictError{Op: op, Component: component, Err: err}
}

// IsRetryable checks if an error is a retryable ConflictError.
func IsRetryable(err error) bool {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Retryable
	}
	return false
}
