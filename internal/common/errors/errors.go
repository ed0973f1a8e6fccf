// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"
	ErrCodeApplicantNotFound ErrorCode = "APPLICANT_NOT_FOUND"

	ErrCodeSignalLookupFailed ErrorCode = "SIGNAL_LOOKUP_FAILED"

	ErrCodeScoringFailed    ErrorCode = "SCORING_FAILED"
	ErrCodeRankingFailed    ErrorCode = "RANKING_FAILED"
	ErrCodeComparisonFailed ErrorCode = "COMPARISON_FAILED"

	ErrCodeParseError       ErrorCode = "PARSE_ERROR"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsNotFound reports whether the error is one of the two user-visible
// not-found cases.
func IsNotFound(err error) bool {
	se, ok := err.(*StandardError)
	if !ok {
		return false
	}
	return se.Code == ErrCodeJobNotFound || se.Code == ErrCodeApplicantNotFound
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ToBPMN converts a StandardError into its workflow-engine form.
func (e *StandardError) ToBPMN() *BPMNError {
	return &BPMNError{
		Code:           string(e.Code),
		Message:        e.Message,
		Details:        e.Details,
		Retryable:      e.Retryable,
		ErrorVariables: e.Metadata,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewJobNotFoundError reports a missing job. Surfaced to the caller, never retried.
func NewJobNotFoundError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobNotFound,
		Message:   "job not found",
		Details:   fmt.Sprintf("no job with id %q", jobID),
		Retryable: false,
		Metadata:  map[string]interface{}{"jobId": jobID},
		Timestamp: time.Now(),
	}
}

// NewApplicantNotFoundError reports a missing applicant in a comparison or
// single-candidate lookup. Surfaced to the caller, never retried.
func NewApplicantNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicantNotFound,
		Message:   "applicant not found",
		Details:   fmt.Sprintf("no application with id %q", applicationID),
		Retryable: false,
		Metadata:  map[string]interface{}{"applicationId": applicationID},
		Timestamp: time.Now(),
	}
}

// NewSignalLookupError wraps a failed community-signal count lookup. It is
// recovered locally (treated as count=0) and never thrown to the engine; it
// exists so the recovery is an explicit decision at the call site.
func NewSignalLookupError(signal string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSignalLookupFailed,
		Message:   "community signal lookup failed",
		Details:   cause.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"signal": signal},
		Timestamp: time.Now(),
	}
}

// NewValidationError reports malformed worker input.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

// NewQueryExecutionError reports a failed collaborator query.
func NewQueryExecutionError(operation string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "query execution failed",
		Details:   cause.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now(),
	}
}
