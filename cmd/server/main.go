// EduAgent - autonomous educational tutor agent server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edulabs-dev/eduagent/internal/achievements"
	"github.com/edulabs-dev/eduagent/internal/agent"
	"github.com/edulabs-dev/eduagent/internal/api"
	"github.com/edulabs-dev/eduagent/internal/chain"
	"github.com/edulabs-dev/eduagent/internal/chat"
	"github.com/edulabs-dev/eduagent/internal/comm"
	"github.com/edulabs-dev/eduagent/internal/config"
	"github.com/edulabs-dev/eduagent/internal/identity"
	"github.com/edulabs-dev/eduagent/internal/middleware"
	"github.com/edulabs-dev/eduagent/internal/resources"
	"github.com/edulabs-dev/eduagent/internal/tutor"
	"github.com/edulabs-dev/eduagent/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if level := cfg.SlogLevel(); level != slog.LevelInfo {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	}

	slog.Info("Starting EduAgent", "name", cfg.AgentName, "port", cfg.Port, "dev", cfg.IsDevelopment())

	agentAddress := cfg.AgentAddress
	if agentAddress == "" {
		agentAddress = identity.DeriveAgentAddress(cfg.AgentSeed)
	}
	slog.Info("Agent identity ready", "address", agentAddress, "endpoint", cfg.AgentEndpoint)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies.
	engine := tutor.NewEngine()
	aggregator := resources.NewAggregator(cfg.Resources)
	sessions := chat.NewManager(agentAddress, cfg.AgentName)
	manager := comm.NewManager(agentAddress)
	discovery := comm.NewDiscovery()
	achievementSystem := achievements.NewSystem()
	progress := agent.NewProgressStore()

	tracker := chain.NewTracker(ctx, cfg.Chain, logger)
	defer tracker.Close()

	// Initialize services.
	svc := agent.NewService(engine, aggregator, sessions, manager, tracker, achievementSystem, progress, logger)
	svc.RegisterHandlers()

	// Advertise this agent in the local discovery registry.
	discovery.Register(agentAddress, sessions.Profile().Map())
	slog.Info("Agent registered for discovery",
		"capabilities", len(sessions.Profile().Capabilities),
		"record_mode", svc.RecordMode(),
		"knowledge_topics", svc.KnowledgeTopics())

	// Initialize handlers.
	apiHandler := api.NewHandler(cfg, svc, sessions, manager, achievementSystem, progress)
	wsHandler := chat.NewWebSocketHandler(sessions, svc, cfg.FrontendURL, cfg.IsDevelopment(), logger)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(corsOrigins(cfg)))
	r.Use(identity.Middleware(cfg.IsDevelopment()))

	apiHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/chat", wsHandler.HandleChat)

	// Serve the embedded demo chat page.
	r.Handle("/*", web.Handler())

	// Note: WriteTimeout stays 0 so WebSocket sessions are not cut off.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Start background workers.
	agent.StartStatusWorker(ctx, svc, cfg.StatusInterval)
	comm.StartExpiryWorker(ctx, manager, cfg.CollaborationTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

// corsOrigins allows the configured frontend origin, or any origin when none
// is configured.
func corsOrigins(cfg *config.Config) []string {
	if cfg.FrontendURL == "" {
		return []string{"*"}
	}
	return []string{cfg.FrontendURL}
}
