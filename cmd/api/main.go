package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ai-search-engine/search-backend/config"
	"github.com/ai-search-engine/search-backend/internal/bootstrap"
	cronjob "github.com/ai-search-engine/search-backend/internal/search/cron"
	"github.com/ai-search-engine/search-backend/internal/search/llm"
	"github.com/ai-search-engine/search-backend/internal/search/repository"
	"github.com/ai-search-engine/search-backend/internal/search/service"
	"github.com/ai-search-engine/search-backend/internal/storage/postgres"
	"github.com/apex/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	bootstrap.SetupLogging(os.Stderr, cfg.Server.Production, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.Server.Production)

	if cfg.Provider.APIKey == "" {
		log.Warn("TOGETHER_API_KEY is not set; POST /search will fail until it is configured")
	}

	ctx := context.Background()

	var (
		db    *pgxpool.Pool
		audit service.AuditRecorder
		sched *cronjob.Scheduler
	)
	if cfg.Database.AuditEnabled() {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		defer db.Close()

		repo := repository.NewAuditRepository(db, cfg.Database.AuditTable)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.WithError(err).Fatal("failed to prepare audit schema")
		}
		audit = repo

		sched = cronjob.NewScheduler(repo, cfg.Database.RetentionDays)
		if err := sched.Start(); err != nil {
			log.WithError(err).Fatal("failed to start cron scheduler")
		}
		defer sched.Stop()
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer rdb.Close()
	}

	provider := llm.NewTogether(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)
	svc := service.NewSearchService(provider, service.DefaultParams(cfg.Provider.Model), audit)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		Production:     cfg.Server.Production,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		RateLimit:      cfg.RateLimit.PerMinute,
		Search:         svc,
		DB:             db,
		Redis:          rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment(),
			"audit":       cfg.Database.AuditEnabled(),
			"redis":       rdb != nil,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	log.Info("Server exited")
}
