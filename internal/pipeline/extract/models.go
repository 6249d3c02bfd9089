package extract

// ExtractedSymptoms is the structured entity set derived from free text.
// Duration and Severity may be empty, meaning "unspecified". An empty
// Symptoms slice is a valid extraction result; the caller decides whether it
// halts the pipeline.
type ExtractedSymptoms struct {
	Symptoms []string `json:"symptoms"`
	Duration string   `json:"duration"`
	Severity string   `json:"severity"`
}

// resultSchema is enforced against every generation response before
// decoding. Duration and severity stay optional; only the symptom list is
// mandatory.
const resultSchema = `{
	"type": "object",
	"required": ["symptoms"],
	"properties": {
		"symptoms": {
			"type": "array",
			"items": {"type": "string"}
		},
		"duration": {"type": "string"},
		"severity": {"type": "string"}
	}
}`
