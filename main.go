package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gestionale/server/internal/api"
	"gestionale/server/internal/config"
	"gestionale/server/internal/database"
	"gestionale/server/internal/models"
	"gestionale/server/internal/services"
	"gestionale/server/internal/utils"
)

func main() {
	// Load environment variables from .env if present; in production the
	// platform injects them directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ No .env file found, using system environment")
	} else {
		log.Printf("✅ Environment loaded from .env file")
	}

	cfg := config.Load()

	// Log the database URL with the password masked.
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL set: %s (driver: %s)", safeURL, cfg.DatabaseDriver)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Redis is optional: without it numbering falls back to UUID-derived
	// digits and every cacheable read goes straight to the database.
	redisClient, err := database.ConnectRedis(
		cfg.RedisURL,
		cfg.RedisSentinelAddrs,
		cfg.RedisMasterName,
	)
	var redisUtil *utils.RedisClient
	if err != nil {
		log.Printf("⚠️ Redis connection failed: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		redisUtil = utils.NewRedisClient(redisClient)
	}
	defer database.CloseRedis(redisClient)

	dialect := database.NewDialect(cfg.DatabaseDriver)

	// Kafka producer for order lifecycle events. A publisher without
	// brokers is a no-op, so the services can always call Publish.
	events := services.NewOrderEventPublisher(cfg.KafkaBrokers)
	defer events.Close()

	numbering := services.NewRedisNumberingService(redisUtil)
	orderService := services.NewOrderService(db, redisUtil, numbering, events)
	offerService := services.NewOfferService(db, redisUtil, numbering)
	dashboardService := services.NewDashboardService(db, dialect, redisUtil, cfg.DashboardCacheTTL)
	lookupService := services.NewLookupService(db, redisUtil, cfg.LookupCacheTTL, cfg.CatalogCacheTTL)
	log.Println("✅ Services initialized")

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "Gestionale Server",
			"version": "1.0.0",
		})
	})

	// Request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latency: %v", method, path, status, latency)
	})

	// CORS for the frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	apiGroup := r.Group("/api")

	orderController := api.NewOrderController(orderService)
	orderGroup := apiGroup.Group("/orders")
	{
		orderGroup.GET("", orderController.ListOrders)
		orderGroup.GET("/:id", orderController.GetOrder)
		orderGroup.POST("", orderController.CreateOrder)
		orderGroup.PUT("/:id", orderController.UpdateOrder)
		orderGroup.DELETE("/:id", orderController.RemoveOrder)
		orderGroup.POST("/:id/employees", orderController.SyncEmployees)
	}

	offerController := api.NewOfferController(offerService)
	offerGroup := apiGroup.Group("/offers")
	{
		offerGroup.GET("", offerController.ListOffers)
		offerGroup.GET("/:id", offerController.GetOffer)
		offerGroup.POST("", offerController.CreateOffer)
		offerGroup.PUT("/:id", offerController.UpdateOffer)
		offerGroup.DELETE("/:id", offerController.RemoveOffer)
	}

	dashboardController := api.NewDashboardController(dashboardService)
	dashboardGroup := apiGroup.Group("/dashboard")
	{
		dashboardGroup.GET("/statistics", dashboardController.GetStatistics)
		dashboardGroup.GET("/production-progress", dashboardController.GetProductionProgress)
		dashboardGroup.GET("/urgent-orders", dashboardController.GetUrgentOrders)
		dashboardGroup.GET("/recent-orders", dashboardController.GetRecentOrders)
		dashboardGroup.GET("/top-customers", dashboardController.GetTopCustomers)
		dashboardGroup.GET("/top-articles", dashboardController.GetTopArticles)
		dashboardGroup.GET("/performance", dashboardController.GetPerformanceMetrics)
		dashboardGroup.GET("/alerts", dashboardController.GetAlerts)
		dashboardGroup.GET("/comparison", dashboardController.GetComparisonStats)
		dashboardGroup.GET("/orders-trend", dashboardController.GetOrdersTrend)
	}

	lookupController := api.NewLookupController(lookupService)
	lookupGroup := apiGroup.Group("/lookups")
	{
		lookupGroup.GET("/customers", lookupController.Customers)
		lookupGroup.GET("/customers/:id/divisions", lookupController.CustomerDivisions)
		lookupGroup.GET("/customers/:id/shipping-addresses", lookupController.ShippingAddresses)
		lookupGroup.GET("/articles", lookupController.Articles)
		lookupGroup.GET("/suppliers", lookupController.Suppliers)
		lookupGroup.GET("/operations", lookupController.Operations)
		lookupGroup.GET("/employees", lookupController.Employees)
		lookupGroup.POST("/refresh", lookupController.Refresh)
	}

	// WebSocket hub for live dashboard updates
	go api.DashboardHub.Run()
	log.Println("📱 WebSocket hub started for dashboard clients")
	r.GET("/ws/dashboard", api.ServeDashboardWS)

	// Kafka → WebSocket bridge: relays order events published by the
	// mutation services to every open dashboard.
	if cfg.KafkaBrokers != "" {
		kafkaConsumer := api.NewKafkaWSConsumer(cfg.KafkaBrokers, cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert)
		kafkaConsumer.Start()
		defer kafkaConsumer.Stop()
	} else {
		log.Println("⚠️ Kafka WS consumer not started: KAFKA_BROKERS not set")
	}

	port := cfg.ServerPort
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📡 API available at http://0.0.0.0:%s/api", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
