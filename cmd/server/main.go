package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"url-shortener-api/internal/config"
	"url-shortener-api/internal/database"
	"url-shortener-api/internal/handlers"
	"url-shortener-api/internal/logger"
	"url-shortener-api/internal/ratelimit"
	"url-shortener-api/internal/realtime"
	"url-shortener-api/internal/routes"
	"url-shortener-api/internal/service"
	"url-shortener-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	linkStore, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open link store")
	}
	defer closeStore()

	svc := service.NewLinkService(linkStore, cfg.CacheCapacity,
		service.WithLogger(log.WithField("component", "link_service")))
	hub := realtime.NewHub()

	limiterLog := log.WithField("component", "rate_limiter")
	globalLimit := ratelimit.NewPolicy(
		ratelimit.GlobalPolicyConfig(cfg.GlobalRateLimit, cfg.GlobalRateWindow),
		ratelimit.WithSweepInterval(cfg.SweepInterval),
		ratelimit.WithLogger(limiterLog.WithField("policy", "global")),
	)
	createLimit := ratelimit.NewPolicy(
		ratelimit.CreatePolicyConfig(cfg.CreateRateLimit, cfg.CreateRateWindow),
		ratelimit.WithSweepInterval(cfg.SweepInterval),
		ratelimit.WithLogger(limiterLog.WithField("policy", "create")),
	)
	globalLimit.Start()
	createLimit.Start()

	router := routes.SetupRoutes(routes.Deps{
		Links:       handlers.NewLinkHandler(svc, hub, cfg.BaseURL, log),
		GlobalLimit: globalLimit,
		CreateLimit: createLimit,
		Logger:      log,
		TrustProxy:  cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":           srv.Addr,
		"base_url":       cfg.BaseURL,
		"store":          cfg.DBDriver,
		"cache_capacity": cfg.CacheCapacity,
		"global_limit":   cfg.GlobalRateLimit,
		"create_limit":   cfg.CreateRateLimit,
	}).Info("Server starting")
	log.Info("API endpoints:")
	log.Info("  GET    /health")
	log.Info("  POST   /api/links")
	log.Info("  GET    /api/links")
	log.Info("  GET    /api/links/:id")
	log.Info("  GET    /api/links/stream (websocket)")
	log.Info("  GET    /:shortCode")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("Server failed")
	}

	globalLimit.Stop()
	createLimit.Stop()
	log.Info("Server stopped")
}

// openStore builds the LinkStore selected by DB_DRIVER and a func releasing it.
func openStore(cfg *config.Config, log *logrus.Logger) (store.LinkStore, func(), error) {
	if cfg.DBDriver == config.DriverMemory {
		log.WithField("component", "store").Info("Using in-memory link store; links are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return store.NewGormStore(db), closeFn, nil
}
