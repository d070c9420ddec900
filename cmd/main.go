package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cexll/threadbot/internal/config"
	"github.com/cexll/threadbot/internal/feed"
	"github.com/cexll/threadbot/internal/history"
	"github.com/cexll/threadbot/internal/logging"
	"github.com/cexll/threadbot/internal/monitoring"
	"github.com/cexll/threadbot/internal/reddit"
	"github.com/cexll/threadbot/internal/scheduler"
	"github.com/cexll/threadbot/internal/thread"
	"github.com/cexll/threadbot/internal/web"
)

const serviceName = "threadbot"

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.WithError(err).Fatal("Service failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"subreddit": cfg.Subreddit,
		"interval":  cfg.PollInterval.String(),
		"timezone":  cfg.Timezone,
	}).Info("Starting threadbot")

	metrics := monitoring.New()
	hist := history.NewStore()

	redditClient, err := reddit.NewHTTPClient(reddit.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
		UserAgent:    cfg.UserAgent,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create reddit client: %w", err)
	}

	feedClient := feed.NewClient(cfg.StreamsURL, logger)

	engine := thread.NewEngine(feedClient, redditClient, thread.Config{
		Subreddit: cfg.Subreddit,
		BotUser:   cfg.Username,
		Timezone:  loc,
	}, logger, metrics, hist)

	sched := scheduler.New(engine, cfg.PollInterval, logger)

	// Setup router for the ops endpoints
	r := mux.NewRouter()
	web.NewHandler(serviceName, engine, hist).RegisterRoutes(r)
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}
	go func() {
		logger.WithField("addr", srv.Addr).Info("Ops endpoints listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Ops server failed")
		}
	}()

	// Blocks until the context is cancelled by a signal
	sched.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Ops server shutdown failed")
	}

	logger.Info("Shutdown complete")
	return nil
}
