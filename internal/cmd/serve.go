package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm/doclint/internal/annotate"
	"github.com/pthm/doclint/internal/api"
	"github.com/pthm/doclint/internal/config"
	"github.com/pthm/doclint/internal/engine"
	"github.com/pthm/doclint/internal/feedback"
)

var (
	addr       string
	feedbackDB string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis service",
	Long: `Serve document uploads and the feedback box over HTTP.

Settings come from DOCLINT_* environment variables; flags override them.
The LLM review rule runs on every upload when ANTHROPIC_API_KEY is set.`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&feedbackDB, "feedback-db", "", "SQLite file for feedback (default: in memory)")
	serveCmd.Flags().StringVar(&rulesFile, "rules", "", "Rule catalog file replacing the builtin rules")
	RootCmd.AddCommand(serveCmd)
}

func serveConfig() (config.Config, error) {
	cfg := config.Load()
	if addr != "" {
		cfg.Addr = addr
	}
	if feedbackDB != "" {
		cfg.FeedbackDB = feedbackDB
	}
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := serveConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := feedback.Open(cfg.FeedbackDB)
	if err != nil {
		return err
	}
	defer store.Close()

	registry, reviewing, err := buildRegistry(cfg, true, log)
	if err != nil {
		return err
	}

	eng := engine.New(
		engine.WithAnnotator(annotate.NewProse(log)),
		engine.WithLogger(log),
		engine.WithMaxSentenceTokens(cfg.MaxSentenceTokens),
		engine.WithWorkers(cfg.Workers),
	)
	srv := api.NewServer(api.Options{
		Engine:         eng,
		Source:         registry,
		Store:          store,
		Logger:         log,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting doclint",
		"addr", cfg.Addr,
		"rules", len(registry.Names()),
		"review", reviewing,
		"feedback_db", cfg.FeedbackDB,
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return <-shutdownErr
}
