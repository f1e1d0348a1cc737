package main

import (
	"context"

	_ "restaurant-recap/api/swagger" // swagger docs
	"restaurant-recap/internal/config"
	"restaurant-recap/internal/database"
	"restaurant-recap/internal/handler"
	"restaurant-recap/internal/lock"
	"restaurant-recap/internal/logger"
	"restaurant-recap/internal/middleware"
	"restaurant-recap/internal/repository"
	"restaurant-recap/internal/service"
	"restaurant-recap/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Restaurant Recap API
// @version         1.0
// @description     Imports daily point-of-sale exports per restaurant and serves monthly recaps.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		logger.GetAppLogger().Fatalf("Configuration failed: %v", err)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	middleware.InitAuth(cfg.JWTKey())
	gin.SetMode(cfg.GinMode)

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully.")

	var locker lock.Locker = lock.NoopLocker{}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait)
		log.Info("Import locking enabled via Redis.")
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)
	txManager := repository.NewTransactionManager(db)

	reportService := service.NewReportService(reportRepo, auditRepo, txManager, locker, wsHub, location)
	recapService := service.NewRecapService(reportRepo)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(statsRepo, location)

	// Initialize Handlers
	reportHandler := handler.NewReportHandler(reportService, recapService, cfg.MaxUploadMB)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// Set up Gin Router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	reportHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	log.Infof("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
