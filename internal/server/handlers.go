package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	commonerrors "medical-diagnosis/internal/common/errors"
	"medical-diagnosis/internal/pipeline"
)

// DiagnoseRequest is the request body for the diagnosis endpoint.
type DiagnoseRequest struct {
	Symptoms string `json:"symptoms"`
}

// DiagnoseResponse is the response body for a successful run.
type DiagnoseResponse struct {
	Symptoms      []string                   `json:"symptoms"`
	Duration      string                     `json:"duration"`
	Severity      string                     `json:"severity"`
	Diagnosis     interface{}                `json:"diagnosis"`
	PubMedSummary interface{}                `json:"pubmed_summary"`
	Disclaimer    string                     `json:"disclaimer"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    s.name,
		"version": s.version,
		"endpoints": gin.H{
			"POST /diagnose": "Submit symptoms for analysis",
			"GET /health":    "Health check endpoint",
		},
		"disclaimer": pipeline.MedicalDisclaimer,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleDiagnose(c *gin.Context) {
	var req DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    string(commonerrors.ErrCodeEmptyInput),
			Message: "Symptoms description is required",
		})
		return
	}

	report, err := s.pipeline.Run(c.Request.Context(), req.Symptoms)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, DiagnoseResponse{
		Symptoms:      report.Symptoms,
		Duration:      report.Duration,
		Severity:      report.Severity,
		Diagnosis:     report.Diagnosis,
		PubMedSummary: report.Literature,
		Disclaimer:    pipeline.MedicalDisclaimer,
	})
}

// renderError maps the pipeline taxonomy onto transport statuses. Input
// problems read as "please rephrase"; everything else reads as temporary
// service unavailability, without leaking provider internals.
func (s *Server) renderError(c *gin.Context, err error) {
	code := commonerrors.CodeOf(err)
	status := commonerrors.HTTPStatus(code)

	message := "The service is temporarily unavailable. Please try again later."
	var pe *commonerrors.PipelineError
	if errors.As(err, &pe) {
		message = pe.Message
	} else if commonerrors.IsInputProblem(code) {
		message = "Please rephrase your symptom description and try again."
	}

	s.logger.WithError(err).Error("diagnose request failed", map[string]interface{}{
		"code":   string(code),
		"status": status,
	})

	c.JSON(status, errorResponse{
		Code:    string(code),
		Message: message,
	})
}
