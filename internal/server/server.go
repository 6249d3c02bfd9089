// Package server is the thin HTTP adapter over the core pipeline. It owns
// request decoding, error-to-status mapping and the disclaimer rendering;
// all analysis lives in the pipeline.
package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/pipeline"
)

// Runner is the single core operation this surface consumes.
type Runner interface {
	Run(ctx context.Context, rawText string) (*pipeline.Report, error)
}

type Server struct {
	name     string
	version  string
	pipeline Runner
	logger   logger.Logger
	router   *gin.Engine
}

func New(name, version string, p Runner, log logger.Logger) *Server {
	s := &Server{
		name:     name,
		version:  version,
		pipeline: p,
		logger:   log.With(map[string]interface{}{"component": "http"}),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/diagnose", s.handleDiagnose)

	s.router = router
	return s
}

// Handler exposes the router for http.Server and for tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}
