package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-tracker/api/swagger"
	"github.com/noah-isme/classroom-tracker/internal/bootstrap"
	"github.com/noah-isme/classroom-tracker/internal/handler"
	internalmiddleware "github.com/noah-isme/classroom-tracker/internal/middleware"
	"github.com/noah-isme/classroom-tracker/internal/service"
	"github.com/noah-isme/classroom-tracker/pkg/ai"
	"github.com/noah-isme/classroom-tracker/pkg/config"
	"github.com/noah-isme/classroom-tracker/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-tracker/pkg/middleware/requestid"
	"github.com/noah-isme/classroom-tracker/pkg/storage"
)

// @title Classroom Tracker API
// @version 0.1.0
// @description Attendance and evaluation tracking for class sections
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, checks, err := bootstrap.OpenStateStore(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to open state store", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()

	persistence := service.NewStatePersistence(store, metrics, logr)
	tracker := service.NewTrackerService(persistence.Load(ctx), persistence, service.UUIDGenerator{}, metrics, logr)

	var generator service.ModuleGenerator
	if cfg.AI.Enabled() {
		gemini, err := ai.NewGeminiModuleGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logr.Sugar().Warnw("module generation disabled", "error", err)
		} else {
			generator = gemini
		}
	} else {
		logr.Info("GEMINI_API_KEY not set, module generation disabled")
	}
	modules := service.NewModuleService(tracker, generator, validate, metrics, logr, cfg.AI.Timeout)

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare report storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	reports := service.NewReportService(tracker, files, signer, service.UUIDGenerator{}, metrics, logr, service.ReportServiceConfig{
		Locale:          cfg.Reports.Locale,
		DownloadBaseURL: strings.TrimRight(cfg.APIPrefix, "/") + "/reports/download",
		Retention:       cfg.Reports.Retention,
		CleanupInterval: cfg.Reports.CleanupInterval,
	})
	reports.StartCleanup(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(internalmiddleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Tracker: handler.NewTrackerHandler(tracker, validate),
		Modules: handler.NewModuleHandler(modules, validate),
		Reports: handler.NewReportHandler(reports),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", store.Driver(), "ai_enabled", generator != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
