// Package domain defines core types, interfaces, and errors for the dashboard.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SubmissionError indicates the query service rejected a submission.
// The underlying service message is preserved verbatim.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }

// FetchError indicates result retrieval failed after a query succeeded.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// AccessDeniedError indicates a missing data-catalog access grant.
// The dashboard has no remediation; the raw message is surfaced to operators.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrSubmission wraps a query-service rejection.
func ErrSubmission(err error) *SubmissionError {
	return &SubmissionError{Message: err.Error(), Err: err}
}

// ErrFetch wraps a result-retrieval failure.
func ErrFetch(err error) *FetchError {
	return &FetchError{Message: err.Error(), Err: err}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}
