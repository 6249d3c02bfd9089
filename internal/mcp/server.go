// Package mcp exposes the diagnosis pipeline as a Model Context Protocol
// server so agent hosts can invoke it as a tool over stdio.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/pipeline"
)

// Runner is the single core operation the tool surface consumes.
type Runner interface {
	Run(ctx context.Context, rawText string) (*pipeline.Report, error)
}

type Server struct {
	pipeline Runner
	logger   logger.Logger
	mcp      *sdk.Server
}

func NewServer(name, version string, p Runner, log logger.Logger) *Server {
	s := &Server{
		pipeline: p,
		logger:   log.With(map[string]interface{}{"component": "mcp"}),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    name,
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
