package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"bookvoyage/internal/util"
	"bookvoyage/services/web/internal/backend"
	"bookvoyage/services/web/internal/config"
	"bookvoyage/services/web/internal/server"
	"bookvoyage/services/web/internal/session"
	"bookvoyage/services/web/internal/tracking"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseDuration(cfg.SessionTTL, 30*time.Minute)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	refreshLeeway, err := config.ParseDuration(cfg.TokenRefreshLeeway, 30*time.Second)
	if err != nil {
		log.Fatalf("failed to parse token refresh leeway: %v", err)
	}
	flushIdle, err := config.ParseDuration(cfg.TrackingFlushIdle, tracking.DefaultFlushIdle)
	if err != nil {
		log.Fatalf("failed to parse tracking flush idle: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	trusted, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	client := backend.NewClient(cfg.APIBaseURL)
	collector := tracking.NewCollector(tracking.Config{
		Sender:    client,
		BatchSize: cfg.TrackingBatchSize,
		FlushIdle: flushIdle,
	})
	defer collector.Close()

	httpServer, err := server.New(server.Config{
		Backend:                    client,
		Sessions:                   session.NewRegistry(client, sessionTTL),
		Collector:                  collector,
		Redis:                      rdb,
		TrustedProxies:             trusted,
		WebOrigins:                 cfg.WebOrigins,
		TokenRefreshLeeway:         refreshLeeway,
		LoginRateLimitPerMinute:    cfg.LoginRateLimitPerMinute,
		RefreshRateLimitPerMinute:  cfg.RefreshRateLimitPerMinute,
		TrackingRateLimitPerMinute: cfg.TrackingRateLimitPerMinute,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
