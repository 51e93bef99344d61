package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"refpool.backend/internal/config"
	"refpool.backend/internal/infrastructure/jobs"
	"refpool.backend/internal/infrastructure/repositories"
	"refpool.backend/internal/interfaces/http/handlers"
	"refpool.backend/internal/interfaces/http/middleware"
	"refpool.backend/internal/usecases"
	"refpool.backend/pkg/jwt"
	"refpool.backend/pkg/logger"
	"refpool.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			// Duplicate-key detection in the repositories relies on
			// gorm.ErrDuplicatedKey.
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize repositories
	poolRepo := repositories.NewPoolRepository(db)
	affiliateRepo := repositories.NewAffiliateRepository(db)
	tokenAccountRepo := repositories.NewTokenAccountRepository(db)
	poolEventRepo := repositories.NewPoolEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	ledgerUsecase := usecases.NewLedgerUsecase(tokenAccountRepo, uow)
	poolUsecase := usecases.NewPoolUsecase(poolRepo, tokenAccountRepo, poolEventRepo, ledgerUsecase, uow)
	affiliateUsecase := usecases.NewAffiliateUsecase(affiliateRepo, poolRepo, poolEventRepo, uow)
	saleUsecase := usecases.NewSaleUsecase(poolRepo, affiliateRepo, poolEventRepo, ledgerUsecase, uow)

	// Initialize handlers
	poolHandler := handlers.NewPoolHandler(poolUsecase)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateUsecase)
	saleHandler := handlers.NewSaleHandler(saleUsecase)
	ledgerHandler := handlers.NewLedgerHandler(ledgerUsecase, cfg.Security.MintSecretHash)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retentionJob := jobs.NewEventRetentionJob(poolEventRepo, cfg.Events.Retention)
	go retentionJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		poolHandler:      poolHandler,
		affiliateHandler: affiliateHandler,
		saleHandler:      saleHandler,
		ledgerHandler:    ledgerHandler,
		authMiddleware:   authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		retentionJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 RefPool Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
