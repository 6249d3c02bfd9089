// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medical-diagnosis/internal/common/config"
	"medical-diagnosis/internal/common/logger"
	"medical-diagnosis/internal/common/observability"
	"medical-diagnosis/internal/llm"
	"medical-diagnosis/internal/pipeline"
	"medical-diagnosis/internal/pipeline/diagnose"
	"medical-diagnosis/internal/pipeline/extract"
	"medical-diagnosis/internal/pipeline/literature"
	"medical-diagnosis/internal/pipeline/summarize"
	"medical-diagnosis/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config is unavailable before Load succeeds.
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting diagnosis server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
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

	srv := server.New(cfg.App.Name, cfg.App.Version, p, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Diagnosis server stopped gracefully")
}
