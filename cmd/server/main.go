package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/bizhub/backend/internal/application/finance"
	identityapp "github.com/bizhub/backend/internal/application/identity"
	insightapp "github.com/bizhub/backend/internal/application/insight"
	kpiapp "github.com/bizhub/backend/internal/application/kpi"
	"github.com/bizhub/backend/internal/application/media"
	payrollapp "github.com/bizhub/backend/internal/application/payroll"
	"github.com/bizhub/backend/internal/infrastructure/auth"
	"github.com/bizhub/backend/internal/infrastructure/cache"
	"github.com/bizhub/backend/internal/infrastructure/config"
	"github.com/bizhub/backend/internal/infrastructure/event"
	csvimport "github.com/bizhub/backend/internal/infrastructure/import"
	insightinfra "github.com/bizhub/backend/internal/infrastructure/insight"
	"github.com/bizhub/backend/internal/infrastructure/logger"
	"github.com/bizhub/backend/internal/infrastructure/persistence"
	"github.com/bizhub/backend/internal/infrastructure/printing"
	"github.com/bizhub/backend/internal/infrastructure/storage"
	"github.com/bizhub/backend/internal/infrastructure/telemetry"
	"github.com/bizhub/backend/internal/interfaces/http/handler"
	"github.com/bizhub/backend/internal/interfaces/http/middleware"
	"github.com/bizhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/bizhub/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			BizHub Backend API
//	@version		1.0
//	@description	Multi-tenant small business management API: staff, payroll, finances and KPIs.

//	@contact.name	API Support
//	@contact.url	https://github.com/bizhub/backend

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const serverVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", serverVersion),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	gormLogLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the token denylist and the payroll summary cache. When
	// unreachable both fall back to in-process stores, which works for a
	// single instance but loses revocations across restarts.
	var denylist auth.TokenDenylist
	var summaryCache cache.SummaryCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory denylist and cache", zap.Error(err))
		denylist = auth.NewInMemoryTokenDenylist()
		summaryCache = cache.NewInMemorySummaryCache()
	} else {
		denylist = auth.NewRedisTokenDenylist(redisClient)
		summaryCache = cache.NewRedisSummaryCache(redisClient)
		defer func() { _ = redisClient.Close() }()
	}
	pingCancel()

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() { _ = eventBus.Stop(context.Background()) }()

	var objectStorage media.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("Object storage disabled, using stub")
		objectStorage = storage.NewStubObjectStorage()
	}

	var renderer printing.PDFRenderer
	if cfg.Payslip.Enabled {
		chromeRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Payslip.RenderTimeout,
			NoSandbox:      cfg.App.Env != "development",
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		renderer = chromeRenderer
	} else {
		renderer = printing.NewStubRenderer()
	}
	defer func() { _ = renderer.Close() }()

	var textGenerator insightapp.TextGenerator
	if cfg.Insight.Enabled {
		insightClient, err := insightinfra.NewClient(&cfg.Insight, log)
		if err != nil {
			log.Fatal("Failed to initialize insight client", zap.Error(err))
		}
		textGenerator = insightClient
	} else {
		log.Warn("Insight generation disabled, using stub")
		textGenerator = insightinfra.NewStubGenerator()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	inviteRepo := persistence.NewGormInviteRepository(db.DB)
	batchRepo := persistence.NewGormPayrollBatchRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	expenditureRepo := persistence.NewGormExpenditureRepository(db.DB)
	kpiRepo := persistence.NewGormKPIRepository(db.DB)

	// Application services
	sessionService := identityapp.NewSessionService(userRepo, log)
	resolver := identityapp.NewResolver(userRepo, businessRepo, staffRepo)
	businessService := identityapp.NewBusinessService(businessRepo, userRepo, objectStorage, eventBus, log)
	departmentService := identityapp.NewDepartmentService(departmentRepo)
	staffService := identityapp.NewStaffService(staffRepo, userRepo, departmentRepo, log)
	inviteService := identityapp.NewInviteService(
		inviteRepo, userRepo, staffRepo, businessRepo,
		identityapp.NewLogNotifier(log), eventBus, log,
	)
	batchService := payrollapp.NewBatchService(batchRepo, staffRepo, summaryCache, eventBus, log)
	payslipService := payrollapp.NewPayslipService(
		batchRepo, staffRepo, userRepo, departmentRepo, businessRepo,
		renderer, objectStorage, log,
	)
	saleService := financeapp.NewSaleService(saleRepo, log)
	expenditureService := financeapp.NewExpenditureService(expenditureRepo, log)
	reportService := financeapp.NewReportService(saleRepo, expenditureRepo)
	importSessions := csvimport.NewInMemorySessionStore(time.Hour)
	defer importSessions.Stop()
	importService := financeapp.NewImportService(saleRepo, expenditureRepo, importSessions, log)
	kpiService := kpiapp.NewService(kpiRepo, staffRepo, log)
	insightService := insightapp.NewService(saleRepo, expenditureRepo, batchRepo, kpiRepo, textGenerator, log)

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessionService, resolver)
	businessHandler := handler.NewBusinessHandler(businessService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	staffHandler := handler.NewStaffHandler(staffService)
	inviteHandler := handler.NewInviteHandler(inviteService)
	payrollHandler := handler.NewPayrollHandler(batchService, payslipService)
	financeHandler := handler.NewFinanceHandler(saleService, expenditureService, reportService)
	importHandler := handler.NewImportHandler(importService)
	kpiHandler := handler.NewKPIHandler(kpiService)
	insightHandler := handler.NewInsightHandler(insightService)
	systemHandler := handler.NewSystemHandler(db, serverVersion)

	verifier := auth.NewTokenVerifier(cfg.Auth)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.UseAuth(middleware.Authenticate(middleware.AuthConfig{
		Verifier: verifier,
		Denylist: denylist,
		Logger:   log,
	}))
	r.UseScope(middleware.ResolveBusiness(resolver))

	r.RegisterPublic(systemHandler)

	r.RegisterAuthenticated(sessionHandler)
	r.RegisterAuthenticated(router.RegistrarFunc(businessHandler.RegisterOnboardingRoutes))
	r.RegisterAuthenticated(router.RegistrarFunc(inviteHandler.RegisterAcceptRoute))

	r.Register(businessHandler).
		Register(departmentHandler).
		Register(staffHandler).
		Register(inviteHandler).
		Register(payrollHandler).
		Register(financeHandler).
		Register(importHandler).
		Register(kpiHandler).
		Register(insightHandler)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
