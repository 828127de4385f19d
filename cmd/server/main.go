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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-gate.backend/internal/config"
	"course-gate.backend/internal/infrastructure/jobs"
	"course-gate.backend/internal/infrastructure/models"
	"course-gate.backend/internal/infrastructure/notify"
	"course-gate.backend/internal/infrastructure/repositories"
	"course-gate.backend/internal/interfaces/http/handlers"
	"course-gate.backend/internal/interfaces/http/middleware"
	"course-gate.backend/internal/usecases"
	"course-gate.backend/pkg/jwt"
	"course-gate.backend/pkg/logger"
	"course-gate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.Driver == "sqlite" {
			return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
		}
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.URL(),
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database)
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
		log.Printf("✅ Connected to %s database via GORM", cfg.Database.Driver)
		if err := db.AutoMigrate(&models.Student{}, &models.LoginHistory{}); err != nil {
			log.Printf("⚠️ Auto-migration failed: %v", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	loginHistoryRepo := repositories.NewLoginHistoryRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize notifier
	loginNotifier := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		AdminTo:   cfg.SMTP.AdminTo,
	})

	// Initialize usecases
	tokenUsecase := usecases.NewTokenUsecase(studentRepo, loginHistoryRepo, uow, loginNotifier, cfg.Token.ExpiryDays, cfg.Token.RedirectTarget)
	adminAuthUsecase := usecases.NewAdminAuthUsecase(cfg.Security.AdminEmail, cfg.Security.AdminPasswordHash, jwtService)

	// Initialize handlers
	loginHandler := handlers.NewLoginHandler(tokenUsecase)
	tokenHandler := handlers.NewTokenHandler(tokenUsecase)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminAuthUsecase, sessionStore)

	// Middleware for the admin surface and the public login endpoint
	adminAuthMiddleware := middleware.AdminAuthMiddleware(jwtService, sessionStore)
	loginRateLimit := middleware.LoginRateLimitMiddleware(cfg.Security.LoginRateLimit, cfg.Security.LoginRateWindow)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewTokenExpiryJob(studentRepo, cfg.Token.SweepInterval)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		loginHandler:        loginHandler,
		tokenHandler:        tokenHandler,
		adminAuthHandler:    adminAuthHandler,
		adminAuthMiddleware: adminAuthMiddleware,
		loginRateLimit:      loginRateLimit,
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
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Course Gate Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
