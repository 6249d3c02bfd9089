package diagnose

// Probability is the closed three-way likelihood classification of a
// candidate condition.
type Probability string

const (
	ProbabilityHigh   Probability = "high"
	ProbabilityMedium Probability = "medium"
	ProbabilityLow    Probability = "low"
)

// Urgency is the closed overall severity classification, ordered
// emergency > urgent > routine > self-care.
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyRoutine   Urgency = "routine"
	UrgencySelfCare  Urgency = "self-care"
)

// Rank orders urgencies for business logic such as UI coloring. Higher is
// more severe; unknown values rank lowest.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyEmergency:
		return 3
	case UrgencyUrgent:
		return 2
	case UrgencyRoutine:
		return 1
	case UrgencySelfCare:
		return 0
	default:
		return -1
	}
}

// Condition is one candidate diagnosis with a patient-friendly description.
type Condition struct {
	Name        string      `json:"name"`
	Probability Probability `json:"probability"`
	Description string      `json:"description"`
}

// DiagnosisResult is the ranked outcome of the diagnosis stage.
type DiagnosisResult struct {
	Conditions      []Condition `json:"conditions"`
	Recommendations []string    `json:"recommendations"`
	Urgency         Urgency     `json:"urgency"`
}

// ConditionNames returns the condition names in rank order, for downstream
// query building.
func (r *DiagnosisResult) ConditionNames() []string {
	names := make([]string, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		names = append(names, c.Name)
	}
	return names
}

// resultSchema rejects out-of-enumeration probability and urgency values at
// the boundary. The 2..5 condition count is deliberately not enforced here:
// an out-of-range count is logged, not fatal, because the generation backend
// offers no structural way to regenerate.
const resultSchema = `{
	"type": "object",
	"required": ["conditions", "recommendations", "urgency"],
	"properties": {
		"conditions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "probability", "description"],
				"properties": {
					"name": {"type": "string"},
					"probability": {"type": "string", "enum": ["high", "medium", "low"]},
					"description": {"type": "string"}
				}
			}
		},
		"recommendations": {
			"type": "array",
			"items": {"type": "string"}
		},
		"urgency": {"type": "string", "enum": ["emergency", "urgent", "routine", "self-care"]}
	}
}`
