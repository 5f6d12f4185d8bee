package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vidyalink/console-api/api/swagger"
	"github.com/vidyalink/console-api/internal/handler"
	"github.com/vidyalink/console-api/internal/middleware"
	"github.com/vidyalink/console-api/internal/service"
	"github.com/vidyalink/console-api/internal/session"
	"github.com/vidyalink/console-api/internal/upstream"
	"github.com/vidyalink/console-api/pkg/cache"
	"github.com/vidyalink/console-api/pkg/config"
	"github.com/vidyalink/console-api/pkg/logger"
	corsmiddleware "github.com/vidyalink/console-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vidyalink/console-api/pkg/middleware/requestid"
)

// @title VidyaLink Console API
// @version 1.0.0
// @description Admin console service for the school management platform
// @BasePath /api/v1
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

	var sessionStore session.Store
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, using in-memory sessions", "error", err)
		sessionStore = session.NewMemoryStore()
	} else {
		sessionStore = session.NewRedisStore(redisClient, cfg.Session.KeyPrefix, cfg.Session.TTL)
	}

	validate := validator.New()
	sessions := session.NewService(sessionStore, logr)
	client := upstream.New(cfg.Upstream, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
		sessions.Subscribe(func(ev session.Event) {
			if ev.Cleared {
				metricsSvc.SessionClosed()
			} else {
				metricsSvc.SessionOpened()
			}
		})
	}

	autosave := service.NewAutosaveService(context.Background(), cfg.Autosave, logr)
	defer autosave.Stop()
	if metricsSvc != nil {
		autosave.SetMetrics(metricsSvc)
		client.SetObserver(metricsSvc.ObserveUpstream)
	}

	scopes := service.NewScopeResolver(client)
	authSvc := service.NewAuthService(client, sessions, validate, logr)
	schoolSvc := service.NewSchoolService(client, autosave, validate, logr)
	teacherSvc := service.NewTeacherService(client, autosave, validate, logr)
	studentSvc := service.NewStudentService(client, autosave, validate, logr)
	feeSvc := service.NewFeeService(client, autosave, validate, logr)
	attendanceSvc := service.NewAttendanceService(client, cfg.Attendance, validate, logr)
	paymentSvc := service.NewPaymentService(client, cfg.Invoice, cfg.Payments, validate, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, scopes),
		Schools:    handler.NewSchoolHandler(schoolSvc, scopes),
		Teachers:   handler.NewTeacherHandler(teacherSvc, scopes),
		Students:   handler.NewStudentHandler(studentSvc, scopes),
		Fees:       handler.NewFeeHandler(feeSvc, scopes),
		Attendance: handler.NewAttendanceHandler(attendanceSvc, scopes),
		Payments:   handler.NewPaymentHandler(paymentSvc),
		Metrics:    metricsHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
