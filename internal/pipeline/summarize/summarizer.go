package summarize

import (
	"context"
	"fmt"
	"strings"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/llm"
	"medical-diagnosis/internal/pipeline/literature"
)

const (
	// noLiteratureNarrative is the fixed fallback for the common
	// "nothing found" path; no generation call is made for it.
	noLiteratureNarrative = "No relevant medical literature found for these symptoms."

	noAbstractsPlaceholder = "No abstracts available for the found articles."

	pubmedURLFormat = "https://pubmed.ncbi.nlm.nih.gov/%s/"
)

const promptTemplate = `You are a medical information summarizer. Create a patient-friendly summary of the following medical research abstracts.

Context:
- Patient symptoms: %s
- Potential conditions: %s

Research Abstracts:
%s

Create a summary that:
1. Explains relevant findings in simple, non-technical language
2. Highlights any important insights about the symptoms or conditions
3. Notes any recommended treatments or approaches mentioned in research
4. Maintains accuracy while being accessible to general audience

IMPORTANT: This summary is for informational purposes only. Always recommend consulting healthcare professionals.

Summary:`

// Summarizer turns retrieved articles into a lay-language narrative with a
// full reference list.
type Summarizer struct {
	gen         llm.Client
	temperature float32
	logger      logger.Logger
}

func NewSummarizer(gen llm.Client, temperature float32, log logger.Logger) *Summarizer {
	return &Summarizer{
		gen:         gen,
		temperature: temperature,
		logger:      log.With(map[string]interface{}{"stage": "summarize"}),
	}
}

// Summarize issues at most one generation call. The narrative context is
// built only from abstract-bearing articles, but the reference list always
// covers the full input.
func (s *Summarizer) Summarize(ctx context.Context, articles []literature.Article, symptoms, conditions []string) (*Summary, error) {
	if len(articles) == 0 {
		return &Summary{
			ArticlesFound: 0,
			Summary:       noLiteratureNarrative,
			References:    []Reference{},
		}, nil
	}

	prompt := fmt.Sprintf(promptTemplate,
		strings.Join(symptoms, ", "),
		strings.Join(conditions, ", "),
		abstractsBlock(articles),
	)

	narrative, err := s.gen.Completion(ctx, prompt, s.temperature)
	if err != nil {
		return nil, commonerrors.NewSummarizationFailedError(err)
	}

	s.logger.Info("literature summarized", map[string]interface{}{
		"articleCount": len(articles),
	})

	return &Summary{
		ArticlesFound: len(articles),
		Summary:       narrative,
		References:    buildReferences(articles),
	}, nil
}

// abstractsBlock concatenates title+abstract for every abstract-bearing
// article, or a placeholder note when none contributed one. An empty context
// is never sent to the generator.
func abstractsBlock(articles []literature.Article) string {
	var parts []string
	for _, a := range articles {
		if a.Abstract == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Title: %s\nAbstract: %s", a.Title, a.Abstract))
	}

	if len(parts) == 0 {
		return noAbstractsPlaceholder
	}
	return strings.Join(parts, "\n\n")
}

func buildReferences(articles []literature.Article) []Reference {
	refs := make([]Reference, 0, len(articles))
	for _, a := range articles {
		refs = append(refs, Reference{
			Title: a.Title,
			PMID:  a.PMID,
			Year:  a.Year,
			URL:   fmt.Sprintf(pubmedURLFormat, a.PMID),
		})
	}
	return refs
}
