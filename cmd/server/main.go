package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"teamline/auth"
	"teamline/infrastructure/storage"
	"teamline/infrastructure/ws"
	"teamline/internal"
	"teamline/moderation"
	"teamline/observability"
	"teamline/runtime"
	"teamline/runtime/workers"
	"teamline/services"
)

// Exit codes to provide meaningful status to the operating system
// or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main is a thin wrapper: run() does the work, main only maps
	// its result to an exit code so deferred cleanup always runs.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	options := badger.DefaultOptions(config.BadgerFilepath).WithLogger(nil)
	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Stores, moderation and coordination state
	messageRepository := storage.NewMessageRepository(db, logger)
	membershipRepository := storage.NewMembershipRepository(db, logger)
	userRepository := storage.NewUserRepository(db, logger)

	words, err := moderation.DefaultWords()
	if err != nil {
		return exitRuntime, fmt.Errorf("censored words: %w", err)
	}
	censor, err := moderation.NewModerator(words, charReplacement)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderator init: %w", err)
	}
	logger.Info(fmt.Sprintf("%d censored terms loaded", len(words)))

	state := runtime.NewState(config.TypingTTL)
	monitor := observability.NewMonitor()

	service := services.NewRealtimeService(
		logger, state,
		membershipRepository, messageRepository, userRepository,
		censor, monitor, config.MaxContentLength,
	)

	// 4. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised background workers
	supervisor := workers.NewSupervisor(logger)
	supervisor.Add(workers.NewTelemetryWorker(logger, monitor, config.TelemetryInterval))
	go supervisor.Run(ctx)

	// 6. WebSocket gateway
	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	gateway := ws.NewGateway(
		logger, service, tokens, monitor,
		config.Origins(), config.ConnectionBufferSize, config.DeliveryTimeout,
	)

	mux := http.NewServeMux()
	mux.Handle("/realtime", gateway)
	server := &http.Server{Addr: config.ListenAddr, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Realtime gateway listening", "addr", config.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		supervisor.Stop()
		return exitRuntime, err
	case <-ctx.Done():
	}

	// 7. Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Forced shutdown", "error", err)
	}
	supervisor.Stop()
	return exitOK, nil
}
