package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexreed/docgraph/internal/api"
	"github.com/lexreed/docgraph/internal/config"
	"github.com/lexreed/docgraph/internal/store"
	"github.com/lexreed/docgraph/internal/summary"
	"github.com/lexreed/docgraph/internal/task"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	// Without a summarizer credential the service still builds
	// hierarchies; the summary field is simply never populated.
	var claude *summary.ClaudeClient
	var summarizer summary.Summarizer
	if cfg.EnableSummaries {
		claude = summary.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		summarizer = claude
	} else {
		log.Info("summaries disabled")
	}

	runner := task.NewRunner(cfg, summarizer, st, log)
	runner.Start(ctx)

	srv := api.NewServer(runner, claude, log, cfg)

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

		runner.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if claude != nil {
			claude.Close()
		}
		st.Close()
	}()

	log.Info("starting docgraph", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
