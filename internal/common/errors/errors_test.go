package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name      string
		err       *PipelineError
		code      ErrorCode
		retryable bool
	}{
		{"empty input", NewEmptyInputError(), ErrCodeEmptyInput, false},
		{"no symptoms", NewNoSymptomsExtractedError(), ErrCodeNoSymptomsExtracted, false},
		{"extraction", NewExtractionFailedError(cause), ErrCodeExtractionFailed, true},
		{"diagnosis", NewDiagnosisFailedError(cause), ErrCodeDiagnosisFailed, true},
		{"literature", NewLiteratureSearchFailedError(cause), ErrCodeLiteratureSearchFailed, true},
		{"summarization", NewSummarizationFailedError(cause), ErrCodeSummarizationFailed, true},
		{"unexpected", NewUnexpectedError(cause), ErrCodeUnexpected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestPipelineError_Error(t *testing.T) {
	err := NewEmptyInputError()
	assert.Equal(t, "PipelineError[EMPTY_INPUT]: Symptom description is required", err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeDiagnosisFailed, CodeOf(NewDiagnosisFailedError(errors.New("x"))))
	assert.Equal(t, ErrCodeUnexpected, CodeOf(errors.New("plain error")))
	assert.Equal(t, ErrCodeUnexpected, CodeOf(nil))

	// Wrapped errors still resolve through the chain.
	wrapped := fmt.Errorf("stage: %w", NewExtractionFailedError(errors.New("x")))
	assert.Equal(t, ErrCodeExtractionFailed, CodeOf(wrapped))
}

func TestIsInputProblem(t *testing.T) {
	assert.True(t, IsInputProblem(ErrCodeEmptyInput))
	assert.True(t, IsInputProblem(ErrCodeNoSymptomsExtracted))
	assert.False(t, IsInputProblem(ErrCodeDiagnosisFailed))
	assert.False(t, IsInputProblem(ErrCodeUnexpected))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeEmptyInput))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeNoSymptomsExtracted))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeExtractionFailed))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeDiagnosisFailed))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeLiteratureSearchFailed))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeSummarizationFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeUnexpected))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "INPUT", Category(ErrCodeEmptyInput))
	assert.Equal(t, "GENERATION", Category(ErrCodeExtractionFailed))
	assert.Equal(t, "GENERATION", Category(ErrCodeSummarizationFailed))
	assert.Equal(t, "SEARCH", Category(ErrCodeLiteratureSearchFailed))
	assert.Equal(t, "OTHER", Category(ErrCodeUnexpected))
}
