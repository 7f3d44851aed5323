package controllers

import (
	"context"
	"log/slog"
	"time"

	"file-chat/storage"
)

// StartPeriodicCleanup sweeps expired sessions every interval until ctx is
// cancelled. Stores that expire entries themselves are left alone.
func StartPeriodicCleanup(ctx context.Context, store storage.SessionStore, interval time.Duration, log *slog.Logger) {
	expirer, ok := store.(storage.Expirer)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CleanupExpiredSessions(ctx, expirer, log)
			}
		}
	}()
}

func CleanupExpiredSessions(ctx context.Context, expirer storage.Expirer, log *slog.Logger) {
	removed, err := expirer.DeleteExpired(ctx)
	if err != nil {
		log.Error("error cleaning up expired sessions", slog.Any("error", err))
		return
	}
	if removed > 0 {
		log.Info("cleaned up expired sessions", slog.Int("count", removed))
	}
}
