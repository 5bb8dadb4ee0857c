package agent

import (
	"context"
	"time"
)

// StartStatusWorker logs a periodic status line with student, session, and
// communication counters until ctx is cancelled.
func StartStatusWorker(ctx context.Context, svc *Service, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		svc.logger.Info("status worker started", "interval", interval.String())
		for {
			select {
			case <-ticker.C:
				stats := svc.comm.Stats()
				svc.logger.Info("agent status",
					"students", svc.progress.Count(),
					"active_sessions", svc.sessions.ActiveSessionCount(),
					"pending_requests", stats.PendingRequests,
					"completed_requests", stats.CompletedRequests,
					"active_collaborations", stats.ActiveCollaborations,
					"connected_agents", stats.ConnectedAgents,
					"knowledge_shares", stats.KnowledgeShares,
				)
			case <-ctx.Done():
				svc.logger.Info("status worker shutting down")
				return
			}
		}
	}()
}
