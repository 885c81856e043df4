// Package main is the entry point for the health assistant API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/config"
	"github.com/capitalize-ai/health-assistant/internal/engine"
	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/handler"
	natsclient "github.com/capitalize-ai/health-assistant/internal/nats"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
	"github.com/capitalize-ai/health-assistant/pkg/tracing"
)

const subscriberBuffer = 64

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.ForEnvironment(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetGlobal(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("starting API server", zap.String("port", cfg.ServerPort))

	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "health-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer func() { _ = tracing.Shutdown(context.Background(), tp) }()
		}
	}

	// The journal is optional; without NATS the log lives only in memory.
	var (
		journal   events.Journal
		readiness handler.ReadinessChecker
	)
	if cfg.NATSURL != "" {
		natsClient, err := natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer natsClient.Close()

		j := natsclient.NewJournal(natsClient, 0)
		if err := j.EnsureStream(ctx); err != nil {
			return fmt.Errorf("ensuring journal stream: %w", err)
		}
		journal = j
		readiness = natsClient
	}

	broker := events.NewBroker(subscriberBuffer, log)
	responder := engine.New()

	conversationSvc := service.NewConversationService(broker, cfg.DefaultLanguage, log)
	messageSvc := service.NewMessageService(conversationSvc, responder, broker, journal, cfg.TypingDelay, log)

	router := handler.NewRouter(handler.RouterConfig{
		AuthEnabled:       cfg.AuthEnabled,
		JWTSecret:         cfg.JWTSecret,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		AllowedOrigins:    cfg.AllowedOrigins,
	}, handler.Handlers{
		Health:        handler.NewHealthHandler(readiness),
		Conversations: handler.NewConversationHandler(conversationSvc, log),
		Messages:      handler.NewMessageHandler(messageSvc, conversationSvc, log),
		Stream:        handler.NewStreamHandler(messageSvc, conversationSvc, broker, handler.DefaultHeartbeat, log),
		WebSocket:     handler.NewWebSocketHandler(messageSvc, conversationSvc, broker, log),
		Content:       handler.NewContentHandler(responder, log),
	}, log)

	server := newServer(":"+cfg.ServerPort, router, cfg)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	gracefulShutdown(server, messageSvc, cfg.ShutdownTimeout, log)
	log.Info("server stopped")
	return nil
}

// newServer builds the HTTP server. Request contexts derive from a base
// context that is cancelled when shutdown begins, so SSE and WebSocket
// handlers return instead of holding Shutdown until its deadline.
func newServer(addr string, h http.Handler, cfg *config.Config) *http.Server {
	baseCtx, cancelRequests := context.WithCancel(context.Background())

	server := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancelRequests)
	return server
}

type turnFlusher interface {
	Shutdown(ctx context.Context) error
}

// gracefulShutdown answers pending turns while streams can still carry the
// replies, then stops the HTTP server. Each phase gets its own budget.
func gracefulShutdown(server *http.Server, turns turnFlusher, timeout time.Duration, log *logger.Logger) {
	turnsCtx, cancelTurns := context.WithTimeout(context.Background(), timeout)
	defer cancelTurns()
	if err := turns.Shutdown(turnsCtx); err != nil {
		log.Error("pending turns did not finish", zap.Error(err))
	}

	serverCtx, cancelServer := context.WithTimeout(context.Background(), timeout)
	defer cancelServer()
	if err := server.Shutdown(serverCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
