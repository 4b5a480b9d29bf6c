package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/travel-report-go/internal/api"
	"github.com/jengzang/travel-report-go/internal/config"
	"github.com/jengzang/travel-report-go/internal/database"
	"github.com/jengzang/travel-report-go/internal/geocoding"
	"github.com/jengzang/travel-report-go/internal/handler"
	"github.com/jengzang/travel-report-go/internal/metrics"
	"github.com/jengzang/travel-report-go/internal/report"
	"github.com/jengzang/travel-report-go/internal/repository"
	"github.com/jengzang/travel-report-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Init(database.Config{Driver: cfg.DBDriver, DSN: cfg.DSN()}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	m := metrics.NewCollector()
	locator := geocoding.NewChain(geocoding.ChainConfig{
		URL:       cfg.GeocoderURL,
		UserAgent: cfg.GeocoderUserAgent,
		Timeout:   cfg.GeocoderTimeout,
		CacheSize: cfg.GeocoderCacheSize,
		CacheTTL:  cfg.GeocoderCacheTTL,
	}, m)
	engine := report.NewEngine(cfg.Thresholds, nil, locator)

	repo := repository.NewLocationRepository(db)
	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(api.Deps{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Reports:         handler.NewReportHandler(service.NewReportService(repo, engine, m)),
		Samples:         handler.NewSampleHandler(service.NewSampleService(repo, m)),
		Metrics:         m,
	})

	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET not set, API authentication disabled")
	}

	srv := &http.Server{Addr: cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on %s (db=%s)", cfg.Port, cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Server stopped")
}
