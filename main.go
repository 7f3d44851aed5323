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

	"file-chat/config"
	"file-chat/controllers"
	"file-chat/routes"
	"file-chat/storage"
	"file-chat/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Error("error closing session store", slog.Any("error", err))
		}
	}()

	controllers.StartPeriodicCleanup(ctx, sessions, cfg.CleanupInterval, log)

	hub := controllers.NewHub(log)
	chatLog, err := storage.OpenChatLog(cfg.ChatFile, log, storage.WithAppendHook(hub.Publish))
	if err != nil {
		return err
	}
	go hub.Run(ctx)

	chat := controllers.NewChat(chatLog, sessions, hub, log, controllers.Options{
		MaxUsernameLength: cfg.MaxUsernameLength,
		MaxMessageLength:  cfg.MaxMessageLength,
		CookieSecure:      cfg.CookieSecure,
		AllowedOrigins:    cfg.Origins(),
	})

	r := gin.Default()
	routes.ChatRouter(r, chat, sessions, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("chat_file", cfg.ChatFile),
			slog.String("session_backend", cfg.SessionBackend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-hub.Done()
	return nil
}

func openSessions(ctx context.Context, cfg config.Config, log *slog.Logger) (storage.SessionStore, error) {
	switch cfg.SessionBackend {
	case config.BackendBadger:
		return storage.OpenBadgerSessions(cfg.BadgerPath, cfg.SessionDuration)
	case config.BackendPostgres:
		db, err := utils.SetupDatabase(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresSessions(db, cfg.SessionDuration), nil
	default:
		return storage.NewMemorySessions(cfg.SessionDuration), nil
	}
}
