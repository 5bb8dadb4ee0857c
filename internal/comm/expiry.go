package comm

import (
	"context"
	"log/slog"
	"time"
)

const expirySweepInterval = time.Minute

// StartExpiryWorker runs a background goroutine that periodically expires
// active collaborations whose deadline has passed, or that outlived maxAge
// when they carry no deadline. It stops when ctx is cancelled.
func StartExpiryWorker(ctx context.Context, m *Manager, maxAge time.Duration) {
	ticker := time.NewTicker(expirySweepInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Collaboration expiry worker started", "interval", expirySweepInterval, "max_age", maxAge)

		for {
			select {
			case <-ticker.C:
				if n := m.ExpireCollaborations(time.Now(), maxAge); n > 0 {
					slog.Info("Expired collaborations", "count", n)
				}
			case <-ctx.Done():
				slog.Info("Collaboration expiry worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
