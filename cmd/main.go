package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/chatbot-api/config"
	"github.com/angeloszaimis/chatbot-api/internal/chat"
	"github.com/angeloszaimis/chatbot-api/internal/handler"
	"github.com/angeloszaimis/chatbot-api/internal/health"
	"github.com/angeloszaimis/chatbot-api/internal/httpserver"
	"github.com/angeloszaimis/chatbot-api/internal/metrics"
	"github.com/angeloszaimis/chatbot-api/internal/requestlog"
	"github.com/angeloszaimis/chatbot-api/internal/scoring"
	"github.com/angeloszaimis/chatbot-api/internal/store"
	"github.com/angeloszaimis/chatbot-api/pkg/logger"
)

const healthCheckInterval = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.AddSource, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reqLog := requestlog.New(cfg.RequestLog.Enabled, cfg.RequestLog.Path)

	st, err := store.Open(cfg.Storage.Database)
	if err != nil {
		log.Error("Failed to open FAQ store", slog.Any("err", err))
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		log.Error("Failed to initialize FAQ store", slog.Any("err", err))
		os.Exit(1)
	}

	matcher := chat.NewMatcher(createStrategy(log, cfg.Chat.Method), cfg.Chat.EffectiveThreshold())

	topics, err := st.LoadAll(ctx)
	if err != nil {
		log.Error("Failed to load FAQ topics", slog.Any("err", err))
		os.Exit(1)
	}
	matcher.Reload(topics)
	log.Info("FAQ index built", slog.Int("topics", len(topics)))

	collector := metrics.NewCollector(1024, log)
	collector.Start(ctx)

	checker := health.New(healthCheckInterval, log, collector,
		health.DataFileProbe(handler.DataFilePath(cfg.Storage.UploadDir)),
		health.StoreProbe(st))
	checker.Start(ctx)

	dataHandler := handler.NewDataHandler(log, reqLog, cfg.Storage.UploadDir, collector)
	chatHandler := handler.NewChatHandler(log, matcher, collector)
	faqHandler := handler.NewFAQHandler(log, st, matcher)
	healthHandler := handler.NewHealthHandler(checker)

	router := setupRouter(dataHandler, chatHandler, faqHandler, healthHandler, collector)

	timeouts, err := serverTimeouts(cfg.Server)
	if err != nil {
		log.Error("Invalid server timeouts", slog.Any("err", err))
		os.Exit(1)
	}

	srv, err := httpserver.New(cfg.Server.Address, router, timeouts)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Chatbot API listening", slog.String("address", cfg.Server.Address))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func serverTimeouts(cfg config.ServerConfig) (httpserver.Timeouts, error) {
	var (
		t   httpserver.Timeouts
		err error
	)

	if t.Read, err = time.ParseDuration(cfg.ReadTimeout); err != nil {
		return httpserver.Timeouts{}, fmt.Errorf("read timeout: %w", err)
	}
	if t.Write, err = time.ParseDuration(cfg.WriteTimeout); err != nil {
		return httpserver.Timeouts{}, fmt.Errorf("write timeout: %w", err)
	}
	if t.Idle, err = time.ParseDuration(cfg.IdleTimeout); err != nil {
		return httpserver.Timeouts{}, fmt.Errorf("idle timeout: %w", err)
	}
	if t.Shutdown, err = time.ParseDuration(cfg.ShutdownTimeout); err != nil {
		return httpserver.Timeouts{}, fmt.Errorf("shutdown timeout: %w", err)
	}

	return t, nil
}

func createStrategy(logger *slog.Logger, method string) scoring.Strategy {
	switch method {
	case config.MethodJaccard:
		return scoring.NewJaccardStrategy()
	case config.MethodRatio:
		return scoring.NewRatioStrategy()
	default:
		logger.Warn("Unknown scoring method, defaulting to jaccard", slog.String("requested", method))
		return scoring.NewJaccardStrategy()
	}
}
