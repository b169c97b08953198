package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwhitten/redline/internal/api"
	"github.com/mwhitten/redline/internal/config"
	"github.com/mwhitten/redline/internal/extract"
	"github.com/mwhitten/redline/internal/pipeline"
	"github.com/mwhitten/redline/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the extractor and result store.
	extractor := extract.New(extract.Config{
		PromptStartToken:   cfg.PromptStartToken,
		PromptEndToken:     cfg.PromptEndToken,
		FeedbackStartToken: cfg.FeedbackStartToken,
		FeedbackEndToken:   cfg.FeedbackEndToken,
		IncludeAuthor:      cfg.IncludeAuthor,
		IncludeDate:        cfg.IncludeDate,
		RequireTokens:      cfg.RequireTokens,
	}, log)
	st := store.New(cfg.OutputDir, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, extractor, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, extractor, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting redline", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
