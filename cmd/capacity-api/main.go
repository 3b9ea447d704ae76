package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mrp-capacity-api/api/swagger"
	"github.com/noah-isme/mrp-capacity-api/internal/handler"
	internalmiddleware "github.com/noah-isme/mrp-capacity-api/internal/middleware"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/internal/repository"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
	"github.com/noah-isme/mrp-capacity-api/pkg/cache"
	"github.com/noah-isme/mrp-capacity-api/pkg/config"
	"github.com/noah-isme/mrp-capacity-api/pkg/database"
	"github.com/noah-isme/mrp-capacity-api/pkg/jobs"
	"github.com/noah-isme/mrp-capacity-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mrp-capacity-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mrp-capacity-api/pkg/middleware/requestid"
)

// @title MRP Capacity API
// @version 0.1.0
// @description Shift capacity checks and production order planning
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	location, err := time.LoadLocation(cfg.Capacity.DefaultTimezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid default timezone", "tz", cfg.Capacity.DefaultTimezone, "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, work center cache disabled", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, "mrp:", logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Capacity.WorkCenterCacheTTL, logr, cfg.Capacity.CacheEnabled && redisClient != nil)

	allocationRepo := repository.NewAllocationRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	workCenterRepo := repository.NewWorkCenterRepository(db)
	orderRepo := repository.NewProductionOrderRepository(db)

	validate := validator.New()
	localizer := service.NewLocalizer(cfg.Capacity.DefaultLocale)
	workCenters := service.NewWorkCenterRegistry(workCenterRepo, cacheSvc, cfg.Capacity.WorkCenterCacheTTL, logr)
	capacitySvc := service.NewCapacityService(allocationRepo, leaveRepo, workCenters, localizer, metricsSvc, service.CapacityServiceConfig{
		HorizonDays:     cfg.Capacity.HorizonDays,
		DefaultLocation: location,
	}, logr)
	allocationSvc := service.NewAllocationService(allocationRepo, workCenters, validate, logr)
	orderSvc := service.NewProductionOrderService(orderRepo, capacitySvc, workCenters, localizer, validate, logr)
	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Leeway:   30 * time.Second,
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var planningQueue *service.PlanningQueue
	if cfg.Planning.AsyncEnabled {
		planningQueue = service.NewPlanningQueue(orderSvc, jobs.QueueConfig{
			Workers:    cfg.Planning.WorkerConcurrency,
			MaxRetries: cfg.Planning.WorkerRetries,
			RetryDelay: cfg.Planning.RetryDelay,
			Logger:     logr,
		}, metricsSvc, logr)
		planningQueue.Start(rootCtx)
		defer planningQueue.Stop()
	}

	capacityHandler := handler.NewCapacityHandler(capacitySvc, localizer, location)
	allocationHandler := handler.NewAllocationHandler(allocationSvc, location)
	workCenterHandler := handler.NewWorkCenterHandler(workCenters)
	// A nil *PlanningQueue must not reach the handler as a non-nil interface.
	var orderHandler *handler.ProductionOrderHandler
	if planningQueue != nil {
		orderHandler = handler.NewProductionOrderHandler(orderSvc, planningQueue, location)
	} else {
		orderHandler = handler.NewProductionOrderHandler(orderSvc, nil, location)
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
		"database": database.ReadyCheck(db),
		"redis":    redisCheck(cacheRepo, redisClient != nil),
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(tokenSvc))
	{
		api.GET("/shifts", capacityHandler.Shifts)
		api.POST("/capacity/evaluate", capacityHandler.Evaluate)
		api.POST("/capacity/search", capacityHandler.Search)

		planners := internalmiddleware.RequireRoles(models.RolePlanner)
		api.POST("/production-orders/:id/check", orderHandler.Check)
		api.POST("/production-orders/:id/plan", planners, orderHandler.Plan)
		api.PUT("/production-orders/:id/work-center", planners, orderHandler.AssignWorkCenter)
		api.GET("/planning-jobs/:id", orderHandler.JobStatus)

		api.GET("/allocations", allocationHandler.List)
		api.POST("/allocations", internalmiddleware.RequireRoles(models.RolePlanner, models.RoleOperator), allocationHandler.Create)

		api.GET("/work-centers/:id", workCenterHandler.Get)

		admins := internalmiddleware.RequireRoles(models.RoleAdmin)
		api.DELETE("/work-centers/:id/cache", admins, workCenterHandler.InvalidateCache)
		api.GET("/metrics/summary", admins, metricsHandler.Summary)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "tz", location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func redisCheck(repo *repository.CacheRepository, enabled bool) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		if !enabled {
			return nil
		}
		return repo.Ping(ctx)
	}
}
