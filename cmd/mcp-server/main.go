// cmd/mcp-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"medical-diagnosis/internal/common/config"
	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/common/observability"
	"medical-diagnosis/internal/llm"
	"medical-diagnosis/internal/mcp"
	"medical-diagnosis/internal/pipeline"
	"medical-diagnosis/internal/pipeline/diagnose"
	"medical-diagnosis/internal/pipeline/extract"
	"medical-diagnosis/internal/pipeline/literature"
	"medical-diagnosis/internal/pipeline/summarize"
)

func main() {
	// Stdout carries the MCP protocol; all logging goes to stderr.
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.NewStderr("info")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewStderr(cfg.Logging.Level)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting MCP diagnosis server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name + "-mcp")
	defer obs.Shutdown()

	genClient := llm.NewOpenAIClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		time.Duration(cfg.OpenAI.Timeout)*time.Millisecond,
	)

	p := pipeline.New(
		extract.NewExtractor(genClient, cfg.OpenAI.ExtractTemperature, log),
		diagnose.NewEngine(genClient, cfg.OpenAI.DiagnoseTemperature, log),
		literature.NewClient(literature.Config{
			BaseURL: cfg.PubMed.BaseURL,
			APIKey:  cfg.PubMed.APIKey,
			Timeout: cfg.PubMed.Timeout,
		}, log),
		summarize.NewSummarizer(genClient, cfg.OpenAI.SummarizeTemperature, log),
		cfg.PubMed.MaxResults,
		log,
		obs,
	)

	srv := mcp.NewServer(cfg.App.Name, cfg.App.Version, p, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, &sdk.StdioTransport{}); err != nil && ctx.Err() == nil {
		zapLog.Fatal("MCP server failed", zap.Error(err))
	}

	zapLog.Info("MCP diagnosis server stopped")
}
