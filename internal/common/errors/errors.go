// Package errors provides the standardized error taxonomy for the diagnosis pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Input-shaped problems: the caller can fix these by rephrasing.
	ErrCodeEmptyInput          ErrorCode = "EMPTY_INPUT"
	ErrCodeNoSymptomsExtracted ErrorCode = "NO_SYMPTOMS_EXTRACTED"

	// Stage failures: transport or schema problems talking to a collaborator.
	ErrCodeExtractionFailed        ErrorCode = "EXTRACTION_FAILED"
	ErrCodeDiagnosisFailed         ErrorCode = "DIAGNOSIS_FAILED"
	ErrCodeLiteratureSearchFailed  ErrorCode = "LITERATURE_SEARCH_FAILED"
	ErrCodeSummarizationFailed     ErrorCode = "SUMMARIZATION_FAILED"

	ErrCodeUnexpected ErrorCode = "UNEXPECTED_ERROR"
)

// PipelineError represents a structured application error. Details carries a
// short description of the underlying cause; raw provider error bodies are
// never forwarded beyond it.
type PipelineError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("PipelineError[%s]: %s", e.Code, e.Message)
}

// NewEmptyInputError rejects blank or whitespace-only symptom text.
func NewEmptyInputError() *PipelineError {
	return &PipelineError{
		Code:      ErrCodeEmptyInput,
		Message:   "Symptom description is required",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSymptomsExtractedError marks a structurally successful extraction that
// yielded zero symptoms. This is a user-input problem, not a system fault.
func NewNoSymptomsExtractedError() *PipelineError {
	return &PipelineError{
		Code:      ErrCodeNoSymptomsExtracted,
		Message:   "Could not extract any symptoms from the provided description",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a retryable extraction stage error.
func NewExtractionFailedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Symptom extraction failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDiagnosisFailedError creates a retryable diagnosis stage error.
func NewDiagnosisFailedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeDiagnosisFailed,
		Message:   "Diagnosis generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLiteratureSearchFailedError creates a retryable literature transport
// error. Zero search results are success, never this.
func NewLiteratureSearchFailedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeLiteratureSearchFailed,
		Message:   "Literature search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSummarizationFailedError creates a retryable summarization stage error.
func NewSummarizationFailedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeSummarizationFailed,
		Message:   "Literature summarization failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnexpectedError wraps anything not classified above.
func NewUnexpectedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeUnexpected,
		Message:   "Unexpected processing error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the pipeline error code from an error chain, or
// ErrCodeUnexpected if none is present.
func CodeOf(err error) ErrorCode {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeUnexpected
}

// IsInputProblem reports whether the error asks the user to rephrase rather
// than signalling service unavailability.
func IsInputProblem(code ErrorCode) bool {
	return code == ErrCodeEmptyInput || code == ErrCodeNoSymptomsExtracted
}

// HTTPStatus maps an error code to the status the HTTP surface should return.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyInput, ErrCodeNoSymptomsExtracted:
		return http.StatusBadRequest
	case ErrCodeExtractionFailed, ErrCodeDiagnosisFailed, ErrCodeSummarizationFailed:
		return http.StatusBadGateway
	case ErrCodeLiteratureSearchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Category groups error codes for logging and metrics labels.
func Category(code ErrorCode) string {
	switch code {
	case ErrCodeEmptyInput, ErrCodeNoSymptomsExtracted:
		return "INPUT"
	case ErrCodeExtractionFailed, ErrCodeDiagnosisFailed, ErrCodeSummarizationFailed:
		return "GENERATION"
	case ErrCodeLiteratureSearchFailed:
		return "SEARCH"
	default:
		return "OTHER"
	}
}
