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

	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/handler"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/middleware"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/router"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/database"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/jwt"
	applogger "github.com/vinay0094k/myteamda-withroles-mobile/pkg/logger"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	// 1. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Timesheet.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", loc.String()),
		zap.Float64("daily_cap_hours", cfg.Timesheet.DailyCapHours),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// 4. redis, optional: summaries go uncached and rate limiting is off
	// without it
	var (
		cache   service.SummaryCache
		limiter middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without summary cache and rate limiting", zap.Error(err))
		rdb = nil
	} else {
		cache, limiter = rdb, rdb
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Repository → Service → Handler
	repo := repository.NewRepository(db)
	rules := service.Rules{
		Clock:             timesheet.SystemClock{Location: loc},
		DailyCapHours:     cfg.Timesheet.DailyCapHours,
		WeeklyTargetHours: cfg.Timesheet.WeeklyTargetHours,
		TrailingWeeks:     cfg.Timesheet.TrailingWeeks,
		SummaryTTL:        cfg.Redis.SummaryTTL,
	}
	svc := service.NewService(repo, cache, rules, loc, logger)
	h := handler.NewHandler(svc)

	// 7. routes
	engine, err := router.Setup(cfg, h, jwtMgr, limiter, logger)
	if err != nil {
		logger.Fatal("router setup failed", zap.Error(err))
	}

	// 8. HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
