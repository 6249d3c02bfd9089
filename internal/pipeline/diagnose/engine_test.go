package diagnose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/common/logger"
)

type fakeGenClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenClient) StructuredCompletion(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenClient) Completion(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

const validDiagnosis = `{
	"conditions": [
		{"name": "Influenza", "probability": "high", "description": "Seasonal flu."},
		{"name": "Common cold", "probability": "medium", "description": "Viral upper respiratory infection."}
	],
	"recommendations": ["Rest and hydrate", "Consult a doctor if symptoms worsen"],
	"urgency": "routine"
}`

func TestEngine_Diagnose_Success(t *testing.T) {
	gen := &fakeGenClient{response: validDiagnosis}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	result, err := engine.Diagnose(context.Background(), []string{"fever", "cough"}, "3 days", "moderate")
	require.NoError(t, err)

	require.Len(t, result.Conditions, 2)
	assert.Equal(t, "Influenza", result.Conditions[0].Name)
	assert.Equal(t, ProbabilityHigh, result.Conditions[0].Probability)
	assert.Equal(t, UrgencyRoutine, result.Urgency)
	assert.Len(t, result.Recommendations, 2)
}

func TestEngine_Diagnose_PromptFields(t *testing.T) {
	gen := &fakeGenClient{response: validDiagnosis}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	_, err := engine.Diagnose(context.Background(), []string{"fever", "cough"}, "3 days", "moderate")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "fever, cough")
	assert.Contains(t, gen.prompts[0], "3 days")
	assert.Contains(t, gen.prompts[0], "moderate")
}

func TestEngine_Diagnose_SubstitutesNotSpecified(t *testing.T) {
	gen := &fakeGenClient{response: validDiagnosis}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	_, err := engine.Diagnose(context.Background(), []string{"fever"}, "", "")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Duration: Not specified")
	assert.Contains(t, gen.prompts[0], "Severity: Not specified")
}

func TestEngine_Diagnose_RejectsUnknownProbability(t *testing.T) {
	gen := &fakeGenClient{response: `{
		"conditions": [{"name": "X", "probability": "certain", "description": "d"}],
		"recommendations": [],
		"urgency": "routine"
	}`}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	_, err := engine.Diagnose(context.Background(), []string{"fever"}, "", "")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDiagnosisFailed, commonerrors.CodeOf(err))
}

func TestEngine_Diagnose_RejectsUnknownUrgency(t *testing.T) {
	gen := &fakeGenClient{response: `{
		"conditions": [
			{"name": "X", "probability": "low", "description": "d"},
			{"name": "Y", "probability": "low", "description": "d"}
		],
		"recommendations": [],
		"urgency": "immediately"
	}`}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	_, err := engine.Diagnose(context.Background(), []string{"fever"}, "", "")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDiagnosisFailed, commonerrors.CodeOf(err))
}

func TestEngine_Diagnose_AcceptsOutOfRangeConditionCount(t *testing.T) {
	// One condition violates the 2..5 guideline but is still usable output;
	// the engine flags it and carries on.
	gen := &fakeGenClient{response: `{
		"conditions": [{"name": "Only one", "probability": "low", "description": "d"}],
		"recommendations": ["see a doctor"],
		"urgency": "urgent"
	}`}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	result, err := engine.Diagnose(context.Background(), []string{"fever"}, "", "")
	require.NoError(t, err)
	assert.Len(t, result.Conditions, 1)
}

func TestEngine_Diagnose_GenerationFailure(t *testing.T) {
	gen := &fakeGenClient{err: errors.New("timeout")}
	engine := NewEngine(gen, 0.1, logger.NewTestLogger(t))

	_, err := engine.Diagnose(context.Background(), []string{"fever"}, "", "")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDiagnosisFailed, commonerrors.CodeOf(err))
}

func TestUrgency_Rank(t *testing.T) {
	assert.Greater(t, UrgencyEmergency.Rank(), UrgencyUrgent.Rank())
	assert.Greater(t, UrgencyUrgent.Rank(), UrgencyRoutine.Rank())
	assert.Greater(t, UrgencyRoutine.Rank(), UrgencySelfCare.Rank())
	assert.Equal(t, -1, Urgency("bogus").Rank())
}

func TestDiagnosisResult_ConditionNames(t *testing.T) {
	result := &DiagnosisResult{Conditions: []Condition{
		{Name: "Influenza"},
		{Name: "Common cold"},
	}}
	assert.Equal(t, []string{"Influenza", "Common cold"}, result.ConditionNames())
}
