package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomas/studydeck/internal/api"
	"github.com/tomas/studydeck/internal/config"
	"github.com/tomas/studydeck/internal/db"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/reminder"
	"github.com/tomas/studydeck/internal/repository/sqlite"
	"github.com/tomas/studydeck/internal/scheduler"
	"github.com/tomas/studydeck/internal/services"
	"github.com/tomas/studydeck/internal/webhook"
	"github.com/tomas/studydeck/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("StudyDeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_size=%d", cfg.SessionSize)
	log.Debug("repeat_spacing=%d", cfg.RepeatSpacing)
	log.Debug("repeat_limit=%d", cfg.RepeatLimit)
	log.Debug("reminder_worker_count=%d", cfg.ReminderWorkerCount)
	log.Debug("reminder_queue_size=%d", cfg.ReminderQueueSize)
	log.Debug("reminder_every_mins=%d", cfg.ReminderEveryMins)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	itemRepo := sqlite.NewItemRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Scheduling parameters
	params := scheduler.DefaultParams()
	params.Spacing = cfg.RepeatSpacing
	params.MaxRepeats = cfg.RepeatLimit

	// Initialize services
	learnerService := services.NewLearnerService(learnerRepo)
	deckService := services.NewDeckService(learnerRepo, deckRepo, itemRepo)
	studyService := services.NewStudyService(learnerRepo, deckRepo, itemRepo, progressRepo, reviewRepo, params, cfg.SessionSize)
	statsService := services.NewStatsService(statsRepo, progressRepo, itemRepo, params)

	// Reminder relay
	var notifier reminder.Notifier = reminder.LogNotifier{}
	if cfg.ReminderWebhookURL != "" {
		notifier = webhook.New(cfg.ReminderWebhookURL)
	}
	reminderPool := worker.NewPool(cfg.ReminderWorkerCount, cfg.ReminderQueueSize)
	relay := reminder.NewRelay(progressRepo, reminderPool, notifier, reminder.Options{
		Every:     time.Duration(cfg.ReminderEveryMins) * time.Minute,
		StartHour: cfg.NotifyStartHour,
		EndHour:   cfg.NotifyEndHour,
	})

	srv := &api.Server{
		DB:       database,
		Learners: learnerService,
		Decks:    deckService,
		Study:    studyService,
		Stats:    statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	reminderPool.Start(ctx)
	relay.Start()

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping reminder relay")
	relay.Stop()
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping reminder pool")
	reminderPool.Stop()

	log.Info("===========================================")
	log.Info("StudyDeck Server Stopped")
	log.Info("===========================================")
}
