package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sayafh/curriculum-chat/internal/api"
	"github.com/sayafh/curriculum-chat/internal/config"
	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/gateway/gemini"
	"github.com/sayafh/curriculum-chat/internal/repository/redis"
	"github.com/sayafh/curriculum-chat/internal/session"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting curriculum chat server")

	// Course catalog is fixed at process start
	catalog := domain.NewCatalog(domain.DefaultCourses())

	// Answer gateway
	provider := gemini.NewProvider(cfg.Gemini)
	if !provider.IsConfigured() {
		log.Warn().Msg("GEMINI_API_KEY is empty; question answering will fail until it is set")
	}

	// Redis is optional; only the ask rate limiter uses it
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
	}

	manager := session.NewManager(catalog, provider, session.ManagerOptions{
		Policy: session.Policy{
			ClearTranscriptOnReplace: cfg.Upload.ClearTranscriptOnReplace,
			ClearScope:               cfg.Upload.ClearScope,
		},
		MaxMessages: cfg.Retention.MaxMessagesPerCourse,
		DocumentTTL: cfg.Retention.DocumentTTL,
		IdleTTL:     cfg.Session.IdleTTL,
	})

	router := api.NewRouter(cfg, catalog, manager, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Sweep idle sessions in the background
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				manager.Sweep()
			case <-sweepDone:
				return
			}
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var writers []io.Writer
	if os.Getenv("ENV") != "production" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		writers = append(writers, os.Stderr)
	}

	if cfg.File != "" {
		rotated, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open rotated log file: %v\n", err)
		} else {
			writers = append(writers, rotated)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}
