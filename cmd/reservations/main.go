package main

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

	"github.com/example/workspace-reservations/internal/application"
	"github.com/example/workspace-reservations/internal/config"
	httptransport "github.com/example/workspace-reservations/internal/http"
	"github.com/example/workspace-reservations/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// When only the plaintext key is configured, hash it once at startup so
	// every verification path works against a single argon2id digest.
	apiKeyHash := cfg.APIKeyHash
	if apiKeyHash == "" {
		apiKeyHash, err = application.HashAPIKey(cfg.APIKey, application.DefaultArgon2idParams)
		if err != nil {
			logger.Error("failed to hash API key", "error", err)
			os.Exit(1)
		}
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	authService := application.NewAuthService(apiKeyHash, []byte(cfg.TokenSecret), cfg.TokenIssuer, logger)
	personService := application.NewPersonService(store, logger)
	spaceService := application.NewSpaceService(store, logger)
	reservationService := application.NewReservationService(store, store, store, time.Now, logger)

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Persons:      httptransport.NewPersonHandler(personService, logger),
		Spaces:       httptransport.NewSpaceHandler(spaceService, logger),
		Reservations: httptransport.NewReservationHandler(reservationService, logger),
		Identity:     httptransport.RequireIdentity(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequireAPIKey(authService, logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("reservations API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
