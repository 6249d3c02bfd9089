package diagnose

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

// notSpecified is substituted for empty duration/severity so the generator
// never sees a blank field it could silently ignore.
const notSpecified = "Not specified"

const promptTemplate = `You are a medical diagnosis assistant. Based on the provided symptoms, generate a list of potential conditions.

IMPORTANT DISCLAIMER: This is for informational purposes only and NOT medical advice. Users should always consult healthcare professionals.

Symptoms: %s
Duration: %s
Severity: %s

Respond with a JSON object of the form:
{"conditions": [{"name": "<condition>", "probability": "high|medium|low", "description": "<description>"}, ...], "recommendations": ["<recommendation>", ...], "urgency": "emergency|urgent|routine|self-care"}

Guidelines:
- List 2-5 most likely conditions based on symptoms
- Rank by probability (high, medium, low)
- Include brief, patient-friendly descriptions
- Provide general health recommendations
- Assess urgency level appropriately
- Be conservative - when in doubt, recommend professional consultation`

// Engine derives candidate conditions, recommendations and an urgency
// classification from the extracted entity set.
type Engine struct {
	gen         llm.Client
	schema      *validation.Schema
	temperature float32
	logger      logger.Logger
}

func NewEngine(gen llm.Client, temperature float32, log logger.Logger) *Engine {
	return &Engine{
		gen:         gen,
		schema:      validation.MustCompile(resultSchema),
		temperature: temperature,
		logger:      log.With(map[string]interface{}{"stage": "diagnose"}),
	}
}

// Diagnose issues one schema-constrained generation call. Probability and
// urgency outside their enumerations are rejected at the boundary; a
// condition count outside 2..5 is flagged but accepted.
func (e *Engine) Diagnose(ctx context.Context, symptoms []string, duration, severity string) (*DiagnosisResult, error) {
	if duration == "" {
		duration = notSpecified
	}
	if severity == "" {
		severity = notSpecified
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(symptoms, ", "), duration, severity)

	raw, err := e.gen.StructuredCompletion(ctx, prompt, e.temperature)
	if err != nil {
		return nil, commonerrors.NewDiagnosisFailedError(err)
	}

	if err := e.schema.Validate([]byte(raw)); err != nil {
		return nil, commonerrors.NewDiagnosisFailedError(err)
	}

	var result DiagnosisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, commonerrors.NewDiagnosisFailedError(err)
	}

	if n := len(result.Conditions); n < 2 || n > 5 {
		e.logger.Warn("condition count outside expected range", map[string]interface{}{
			"conditionCount": n,
		})
	}

	e.logger.Info("diagnosis generated", map[string]interface{}{
		"conditionCount": len(result.Conditions),
		"urgency":        string(result.Urgency),
	})

	return &result, nil
}
