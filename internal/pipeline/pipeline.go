// Package pipeline composes the four analysis stages into the single core
// operation both delivery surfaces consume. Each run is stateless and
// strictly sequential; stage N+1 never starts before stage N completes.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/common/metrics"
	"medical-diagnosis/internal/common/observability"
	"medical-diagnosis/internal/pipeline/diagnose"
	"medical-diagnosis/internal/pipeline/extract"
	"medical-diagnosis/internal/pipeline/literature"
	"medical-diagnosis/internal/pipeline/summarize"
)

// MedicalDisclaimer is rendered alongside every successful result by every
// delivery surface.
const MedicalDisclaimer = "IMPORTANT: This information is for educational purposes only and is NOT medical advice. " +
	"Always consult with qualified healthcare professionals for diagnosis and treatment. " +
	"If you are experiencing a medical emergency, please call emergency services immediately."

// The stage ports. Concrete implementations live in the stage packages;
// tests exercise the control flow with deterministic fakes.
type Extractor interface {
	Extract(ctx context.Context, freeText string) (*extract.ExtractedSymptoms, error)
}

type Diagnoser interface {
	Diagnose(ctx context.Context, symptoms []string, duration, severity string) (*diagnose.DiagnosisResult, error)
}

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]literature.Article, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, articles []literature.Article, symptoms, conditions []string) (*summarize.Summary, error)
}

// Report is the full result of one pipeline run.
type Report struct {
	ID         string                    `json:"id"`
	Symptoms   []string                  `json:"symptoms"`
	Duration   string                    `json:"duration"`
	Severity   string                    `json:"severity"`
	Diagnosis  *diagnose.DiagnosisResult `json:"diagnosis"`
	Literature *summarize.Summary        `json:"pubmed_summary"`
}

// Pipeline runs the four stages in sequence for one request.
type Pipeline struct {
	extractor  Extractor
	diagnoser  Diagnoser
	searcher   Searcher
	summarizer Summarizer
	maxResults int
	logger     logger.Logger
	obs        *observability.Observability
}

func New(ex Extractor, dg Diagnoser, se Searcher, su Summarizer, maxResults int, log logger.Logger, obs *observability.Observability) *Pipeline {
	return &Pipeline{
		extractor:  ex,
		diagnoser:  dg,
		searcher:   se,
		summarizer: su,
		maxResults: maxResults,
		logger:     log,
		obs:        obs,
	}
}

// Run executes extract -> diagnose -> search -> summarize for one symptom
// description. No stage is retried; the first failure aborts the run. A
// zero-result literature search is an intentional partial-success path, not
// a failure.
func (p *Pipeline) Run(ctx context.Context, rawText string) (*Report, error) {
	start := time.Now()
	metrics.RequestsInFlight.Inc()
	defer metrics.RequestsInFlight.Dec()

	report, err := p.run(ctx, rawText)

	outcome := "success"
	if err != nil {
		code := commonerrors.CodeOf(err)
		outcome = strings.ToLower(string(code))
	}
	metrics.PipelineRequestsTotal.WithLabelValues(outcome).Inc()
	if p.obs != nil {
		p.obs.RecordRequest(ctx, outcome)
		p.obs.RecordDuration(ctx, time.Since(start), outcome)
	}

	return report, err
}

func (p *Pipeline) run(ctx context.Context, rawText string) (*Report, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, commonerrors.NewEmptyInputError()
	}

	requestID := uuid.NewString()
	log := p.logger.With(map[string]interface{}{"requestId": requestID})

	stageStart := time.Now()
	extracted, err := p.extractor.Extract(ctx, rawText)
	p.observeStage("extract", stageStart, err, log)
	if err != nil {
		return nil, err
	}

	// An empty symptom set is not a valid diagnosis input; halt before the
	// engine ever runs.
	if len(extracted.Symptoms) == 0 {
		log.Info("no symptoms extracted", nil)
		return nil, commonerrors.NewNoSymptomsExtractedError()
	}

	stageStart = time.Now()
	diagnosis, err := p.diagnoser.Diagnose(ctx, extracted.Symptoms, extracted.Duration, extracted.Severity)
	p.observeStage("diagnose", stageStart, err, log)
	if err != nil {
		return nil, err
	}

	conditions := diagnosis.ConditionNames()
	query := literature.BuildQuery(extracted.Symptoms, conditions)

	stageStart = time.Now()
	articles, err := p.searcher.Search(ctx, query, p.maxResults)
	p.observeStage("search", stageStart, err, log)
	if err != nil {
		return nil, err
	}

	stageStart = time.Now()
	summary, err := p.summarizer.Summarize(ctx, articles, extracted.Symptoms, conditions)
	p.observeStage("summarize", stageStart, err, log)
	if err != nil {
		return nil, err
	}

	log.Info("pipeline completed", map[string]interface{}{
		"symptomCount":   len(extracted.Symptoms),
		"conditionCount": len(diagnosis.Conditions),
		"articlesFound":  summary.ArticlesFound,
	})

	return &Report{
		ID:         requestID,
		Symptoms:   extracted.Symptoms,
		Duration:   extracted.Duration,
		Severity:   extracted.Severity,
		Diagnosis:  diagnosis,
		Literature: summary,
	}, nil
}

// observeStage records duration and failure metrics for one stage call.
func (p *Pipeline) observeStage(stage string, start time.Time, err error, log logger.Logger) {
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())

	if err != nil {
		code := commonerrors.CodeOf(err)
		metrics.StageFailures.WithLabelValues(stage, string(code)).Inc()
		log.WithError(err).Error("stage failed", map[string]interface{}{
			"stage":    stage,
			"category": commonerrors.Category(code),
		})
	}
}
