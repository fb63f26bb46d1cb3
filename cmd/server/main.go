package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cityride/internal/config"
	"cityride/internal/handlers"
	"cityride/internal/middleware"
	"cityride/internal/repositories/mongodb"
	"cityride/internal/services"
	"cityride/pkg/cache"
	"cityride/pkg/database"
	"cityride/pkg/logger"
	"cityride/pkg/storage"
	"cityride/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Redis is optional; the trip cache degrades to a no-op when it is
	// unreachable so a local setup can run without it
	var cacheService services.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, trip caching disabled")
		cacheService = services.NewNoopCacheService()
	} else {
		defer redisCache.Close()
		cacheService = services.NewRedisCacheService(redisCache, appLogger)
	}

	// Profile photo storage
	var store storage.Storage
	switch cfg.Storage.Provider {
	case "s3":
		store, err = storage.NewAWSS3Storage(cfg.Storage.S3Region, cfg.Storage.S3Bucket, cfg.Storage.S3BaseURL)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.App.BaseURL)
	}
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	tripRepo := mongodb.NewTripRepository(db.Database, cacheService)
	chatRepo := mongodb.NewChatRepository(db.Database)
	ratingRepo := mongodb.NewRatingRepository(db.Database)
	alertRepo := mongodb.NewAlertRepository(db.Database)
	reportRepo := mongodb.NewReportRepository(db.Database)
	noticeRepo := mongodb.NewNoticeRepository(db.Database)

	// Services
	authService := services.NewAuthService(userRepo, store, cfg.Security.JWTSecret, appLogger)
	tripService := services.NewTripService(tripRepo, userRepo, appLogger)
	chatService := services.NewChatService(chatRepo, tripRepo, userRepo, appLogger)
	ratingService := services.NewRatingService(ratingRepo, alertRepo, tripRepo, userRepo, appLogger)
	reportService := services.NewReportService(reportRepo, noticeRepo, userRepo, tripRepo, appLogger)
	adminService := services.NewAdminService(userRepo, tripRepo, ratingRepo, reportRepo, chatRepo, appLogger)

	// Bootstrap admin account from env; the register endpoint only
	// creates passengers and drivers
	if cfg.Security.AdminEmail != "" && cfg.Security.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Security.AdminEmail, cfg.Security.AdminPassword); err != nil {
			appLogger.Fatalf("Failed to provision admin account: %v", err)
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	tripHandler := handlers.NewTripHandler(tripService)
	chatHandler := handlers.NewChatHandler(chatService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	driverHandler := handlers.NewDriverHandler(authService, ratingService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, ratingService, reportService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())

	jwtSecret := cfg.Security.JWTSecret

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, jwtSecret)
		routes.SetupTripRoutes(v1, tripHandler, chatHandler, jwtSecret)
		routes.SetupRatingRoutes(v1, ratingHandler, jwtSecret)
		routes.SetupDriverRoutes(v1, driverHandler, jwtSecret)
		routes.SetupReportRoutes(v1, reportHandler, jwtSecret)
		routes.SetupAdminRoutes(v1, adminHandler, chatHandler, jwtSecret)
	}

	// Local storage generates photo URLs under /uploads on this server,
	// so the directory has to be served here. S3 URLs point elsewhere.
	if cfg.Storage.Provider != "s3" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
