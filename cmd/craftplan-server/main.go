package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/logging"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/server"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var defaults *config.Configuration
	if cfg.PlannerConfig != "" {
		defaults, err = config.LoadConfiguration(cfg.PlannerConfig)
		if err != nil {
			logger.Fatal("failed to load planner defaults",
				zap.String("op", "main"),
				zap.String("path", cfg.PlannerConfig),
				zap.Error(err),
			)
		}
		for _, warning := range defaults.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}
	}

	opts := server.Options{
		MaxBodySize: cfg.BodySizeBytes(),
		Version:     version,
		Defaults:    defaults,
	}
	if cfg.RateLimit.Enabled() {
		opts.Limiter = server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.WindowDuration(), cfg.RateLimit.TrustForwardedFor)
	}

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("planning API listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
			zap.String("version", version),
		)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("planning API stopped", zap.String("op", "main"))
	}
}
