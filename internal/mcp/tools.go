package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/pipeline"
)

type DiagnoseSymptomsInput struct {
	Symptoms string `json:"symptoms" jsonschema:"free-text description of the patient's symptoms"`
}

type ConditionOutput struct {
	Name        string `json:"name"`
	Probability string `json:"probability"`
	Description string `json:"description"`
}

type ReferenceOutput struct {
	Title string `json:"title"`
	PMID  string `json:"pmid"`
	Year  string `json:"year"`
	URL   string `json:"url"`
}

type DiagnoseSymptomsOutput struct {
	Symptoms        []string          `json:"symptoms"`
	Duration        string            `json:"duration"`
	Severity        string            `json:"severity"`
	Conditions      []ConditionOutput `json:"conditions"`
	Recommendations []string          `json:"recommendations"`
	Urgency         string            `json:"urgency"`
	ArticlesFound   int               `json:"articles_found"`
	LiteratureNotes string            `json:"literature_notes"`
	References      []ReferenceOutput `json:"references"`
	Disclaimer      string            `json:"disclaimer"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "diagnose_symptoms",
		Description: "Analyze a free-text symptom description: extract structured symptoms, " +
			"suggest possible conditions with urgency, and summarize relevant PubMed literature. " +
			"Educational use only, not medical advice.",
	}, s.handleDiagnoseSymptoms)
}

func (s *Server) handleDiagnoseSymptoms(ctx context.Context, req *sdk.CallToolRequest, input DiagnoseSymptomsInput) (*sdk.CallToolResult, DiagnoseSymptomsOutput, error) {
	if strings.TrimSpace(input.Symptoms) == "" {
		return nil, DiagnoseSymptomsOutput{}, fmt.Errorf("symptoms description is required")
	}

	report, err := s.pipeline.Run(ctx, input.Symptoms)
	if err != nil {
		code := commonerrors.CodeOf(err)
		s.logger.WithError(err).Error("diagnose_symptoms tool failed", map[string]interface{}{
			"code": string(code),
		})
		return nil, DiagnoseSymptomsOutput{}, fmt.Errorf("%s: %w", code, err)
	}

	output := reportOutput(report)

	result := &sdk.CallToolResult{
		Content: []sdk.Content{
			&sdk.TextContent{Text: renderReport(report)},
		},
	}
	return result, output, nil
}

func reportOutput(report *pipeline.Report) DiagnoseSymptomsOutput {
	out := DiagnoseSymptomsOutput{
		Symptoms:   report.Symptoms,
		Duration:   report.Duration,
		Severity:   report.Severity,
		Disclaimer: pipeline.MedicalDisclaimer,
	}

	if report.Diagnosis != nil {
		out.Urgency = string(report.Diagnosis.Urgency)
		out.Recommendations = report.Diagnosis.Recommendations
		out.Conditions = make([]ConditionOutput, 0, len(report.Diagnosis.Conditions))
		for _, c := range report.Diagnosis.Conditions {
			out.Conditions = append(out.Conditions, ConditionOutput{
				Name:        c.Name,
				Probability: string(c.Probability),
				Description: c.Description,
			})
		}
	}

	if report.Literature != nil {
		out.ArticlesFound = report.Literature.ArticlesFound
		out.LiteratureNotes = report.Literature.Summary
		out.References = make([]ReferenceOutput, 0, len(report.Literature.References))
		for _, r := range report.Literature.References {
			out.References = append(out.References, ReferenceOutput{
				Title: r.Title,
				PMID:  r.PMID,
				Year:  r.Year,
				URL:   r.URL,
			})
		}
	}

	return out
}

// renderReport flattens the structured report into readable text for hosts
// that only surface the text content of a tool result.
func renderReport(report *pipeline.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Symptoms: %s\n", strings.Join(report.Symptoms, ", "))
	fmt.Fprintf(&b, "Duration: %s\n", report.Duration)
	fmt.Fprintf(&b, "Severity: %s\n", report.Severity)

	if report.Diagnosis != nil {
		fmt.Fprintf(&b, "\nUrgency: %s\n\nPossible conditions:\n", report.Diagnosis.Urgency)
		for _, c := range report.Diagnosis.Conditions {
			fmt.Fprintf(&b, "- %s (%s): %s\n", c.Name, c.Probability, c.Description)
		}
		if len(report.Diagnosis.Recommendations) > 0 {
			b.WriteString("\nRecommendations:\n")
			for _, r := range report.Diagnosis.Recommendations {
				fmt.Fprintf(&b, "- %s\n", r)
			}
		}
	}

	if report.Literature != nil {
		fmt.Fprintf(&b, "\nLiterature (%d articles):\n%s\n", report.Literature.ArticlesFound, report.Literature.Summary)
		for _, ref := range report.Literature.References {
			fmt.Fprintf(&b, "- %s (%s) %s\n", ref.Title, ref.Year, ref.URL)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", pipeline.MedicalDisclaimer)
	return b.String()
}
