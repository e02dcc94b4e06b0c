package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	crmapp "github.com/rentops/backend/internal/application/crm"
	financeapp "github.com/rentops/backend/internal/application/finance"
	fleetapp "github.com/rentops/backend/internal/application/fleet"
	importerapp "github.com/rentops/backend/internal/application/importer"
	orgapp "github.com/rentops/backend/internal/application/org"
	"github.com/rentops/backend/internal/infrastructure/auth"
	"github.com/rentops/backend/internal/infrastructure/cache"
	"github.com/rentops/backend/internal/infrastructure/config"
	"github.com/rentops/backend/internal/infrastructure/ecommerce"
	"github.com/rentops/backend/internal/infrastructure/logger"
	"github.com/rentops/backend/internal/infrastructure/persistence"
	"github.com/rentops/backend/internal/interfaces/http/handler"
	"github.com/rentops/backend/internal/interfaces/http/middleware"
	"github.com/rentops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RentOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize Redis-backed directory cache
	directoryCache, err := cache.NewRedisDirectoryCache(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := directoryCache.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Initialize repositories
	organizationRepo := persistence.NewGormOrganizationRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerProfileRepository(db.DB)
	communicationLogRepo := persistence.NewGormCommunicationLogRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	taxRateRepo := persistence.NewGormTaxRateRepository(db.DB)
	integrationConfigRepo := persistence.NewGormConfigRepository(db.DB)
	fieldMappingRepo := persistence.NewGormFieldMappingRepository(db.DB)
	importJobRepo := persistence.NewGormImportJobRepository(db.DB)

	// Catalog provider factory for external shop integrations
	catalogProviders := ecommerce.NewWooCommerceFactory(cfg.Import.HTTPTimeout)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	directoryService := orgapp.NewDirectoryService(organizationRepo, directoryCache, log)
	authService := orgapp.NewAuthService(userRepo, directoryService, jwtService, log)
	organizationService := orgapp.NewOrganizationService(organizationRepo, settingsRepo, userRepo, directoryService, log)
	branchService := orgapp.NewBranchService(branchRepo)
	userService := orgapp.NewUserService(userRepo)
	customerService := crmapp.NewCustomerService(customerRepo, contractRepo)
	communicationService := crmapp.NewCommunicationService(communicationLogRepo, customerRepo)
	contractService := crmapp.NewContractService(contractRepo, customerRepo, vehicleRepo, settingsRepo)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, taxRateRepo, ledgerRepo, settingsRepo)
	recordService := financeapp.NewRecordService(expenseRepo, revenueRepo, ledgerRepo)
	financeSettingsService := financeapp.NewFinanceSettingsService(paymentMethodRepo, taxRateRepo)
	summaryService := financeapp.NewSummaryService(ledgerRepo, expenseRepo, revenueRepo)
	connectionService := importerapp.NewConnectionService(integrationConfigRepo, catalogProviders, log)
	mappingService := importerapp.NewMappingService(fieldMappingRepo, integrationConfigRepo)
	importService := importerapp.NewImportService(
		integrationConfigRepo, fieldMappingRepo, importJobRepo, vehicleRepo, catalogProviders, log,
	)

	// Recover jobs orphaned by a previous crash
	if failed, err := importService.FailStaleJobs(context.Background(), cfg.Import.StaleJobThreshold); err != nil {
		log.Warn("Failed to sweep stale import jobs", zap.Error(err))
	} else if failed > 0 {
		log.Info("Marked stale import jobs as failed", zap.Int("count", failed))
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(organizationService, directoryService)
	organizationHandler := handler.NewOrganizationHandler(organizationService)
	userHandler := handler.NewUserHandler(userService, authService)
	branchHandler := handler.NewBranchHandler(branchService)
	customerHandler := handler.NewCustomerHandler(customerService, communicationService)
	contractHandler := handler.NewContractHandler(contractService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	financeHandler := handler.NewFinanceHandler(recordService, financeSettingsService, summaryService)
	integrationHandler := handler.NewIntegrationHandler(connectionService, mappingService, importService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can tag entries
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register routes: login, refresh and the tenant directory stay open,
	// everything else sits behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Public(authHandler, directoryHandler)
	r.Protected(
		organizationHandler,
		userHandler,
		branchHandler,
		customerHandler,
		contractHandler,
		vehicleHandler,
		invoiceHandler,
		financeHandler,
		integrationHandler,
	)
	r.Setup(middleware.JWTAuth(jwtService, log))

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness of the process and its database connection
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
