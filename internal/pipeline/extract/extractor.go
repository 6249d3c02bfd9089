package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/common/validation"
	"medical-diagnosis/internal/llm"
)

const promptTemplate = `You are a medical symptom extraction assistant. Extract all medical symptoms from the user's description.

User Description: %s

Respond with a JSON object of the form:
{"symptoms": ["<symptom>", ...], "duration": "<duration or empty string>", "severity": "<severity or empty string>"}

Important:
- Extract individual symptoms as separate items
- Normalize symptom names (e.g., "headache" not "my head hurts")
- Include duration if mentioned (e.g., "3 days", "1 week")
- Include severity if mentioned (e.g., "mild", "severe", "moderate")
- Only extract actual symptoms, not diagnoses or conditions`

// Extractor turns raw symptom text into a structured entity set via a single
// schema-constrained generation call.
type Extractor struct {
	gen         llm.Client
	schema      *validation.Schema
	temperature float32
	logger      logger.Logger
}

func NewExtractor(gen llm.Client, temperature float32, log logger.Logger) *Extractor {
	return &Extractor{
		gen:         gen,
		schema:      validation.MustCompile(resultSchema),
		temperature: temperature,
		logger:      log.With(map[string]interface{}{"stage": "extract"}),
	}
}

// Extract issues one generation call and validates the response against the
// extraction schema. A structurally valid response with zero symptoms is
// returned as-is; the caller distinguishes that from extraction failure.
func (e *Extractor) Extract(ctx context.Context, freeText string) (*ExtractedSymptoms, error) {
	prompt := fmt.Sprintf(promptTemplate, freeText)

	raw, err := e.gen.StructuredCompletion(ctx, prompt, e.temperature)
	if err != nil {
		return nil, commonerrors.NewExtractionFailedError(err)
	}

	if err := e.schema.Validate([]byte(raw)); err != nil {
		return nil, commonerrors.NewExtractionFailedError(err)
	}

	var result ExtractedSymptoms
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, commonerrors.NewExtractionFailedError(err)
	}

	result.Symptoms = normalizeSymptoms(result.Symptoms)

	e.logger.Info("symptoms extracted", map[string]interface{}{
		"symptomCount": len(result.Symptoms),
		"hasDuration":  result.Duration != "",
		"hasSeverity":  result.Severity != "",
	})

	return &result, nil
}

// normalizeSymptoms drops blank entries and deduplicates by lowercased form
// while preserving order.
func normalizeSymptoms(symptoms []string) []string {
	seen := make(map[string]bool, len(symptoms))
	out := make([]string, 0, len(symptoms))

	for _, s := range symptoms {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}

	return out
}
