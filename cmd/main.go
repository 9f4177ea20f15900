package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kosench/go-link-tracker/internal/auth"
	"github.com/Kosench/go-link-tracker/internal/cache"
	"github.com/Kosench/go-link-tracker/internal/classifier"
	"github.com/Kosench/go-link-tracker/internal/config"
	"github.com/Kosench/go-link-tracker/internal/database"
	"github.com/Kosench/go-link-tracker/internal/handler"
	"github.com/Kosench/go-link-tracker/internal/middleware"
	"github.com/Kosench/go-link-tracker/internal/repository"
	"github.com/Kosench/go-link-tracker/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = time.Minute
	shutdownTimeout   = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db, err := database.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect database: ", err)
	}
	defer db.Close()

	log.Println("✅ Successfully connected to database")

	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var urlRepo repository.URLRepository
	if redisClient != nil {
		urlRepo = repository.NewCachedURLRepository(db, redisClient)
	} else {
		urlRepo = repository.NewPostgresURLRepository(db)
	}
	visitRepo := repository.NewPostgresVisitRepository(db)

	baseURL := cfg.GetBaseURL()

	geoClient := classifier.NewIPAPIClient(
		cfg.Geo.BaseURL,
		time.Duration(cfg.Geo.TimeoutSeconds)*time.Second,
	)
	visitorClassifier := classifier.New(geoClient)
	tracker := service.NewHTTPVisitTracker(baseURL)

	urlService := service.NewURLService(urlRepo, baseURL)
	visitService := service.NewVisitService(visitRepo)
	redirectService := service.NewRedirectService(urlRepo, visitorClassifier, tracker)
	analyticsService := service.NewAnalyticsService(urlRepo, visitRepo, baseURL)

	urlHandler := handler.NewURLHandler(urlService)
	visitHandler := handler.NewVisitHandler(visitService)
	redirectHandler := handler.NewRedirectHandler(redirectService, baseURL)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.GetAllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", cfg.App.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Идентификатор пользователя проставляет внешний identity-провайдер
	router.Use(auth.Middleware(cfg.App.UserIDHeader))

	if redisClient != nil {
		router.Use(middleware.RedisRateLimit(redisClient, rateLimitRequests, rateLimitWindow))
	} else {
		router.Use(middleware.InMemoryRateLimit(rateLimitRequests, rateLimitWindow))
	}

	router.Static("/static", "./web/static")
	router.LoadHTMLGlob("web/templates/*")

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})

	router.GET("/health", healthHandler(db, redisClient))
	router.GET("/info", infoHandler(db, redisClient, cfg))

	api := router.Group("/api")
	{
		api.POST("/urls", urlHandler.CreateURL)
		api.GET("/user-urls", urlHandler.GetUserURLs)
		api.GET("/analytics", analyticsHandler.GetAnalytics)
		api.POST("/track-visit", visitHandler.TrackVisit)
	}

	// Статические маршруты (/health, /api/...) имеют приоритет над /:alias
	router.GET("/:alias", redirectHandler.Redirect)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", cfg.GetServerAddress())
		log.Printf("🔗 Redirect endpoint: GET /{alias}")
		log.Printf("📊 Dashboard API: GET /api/user-urls, GET /api/analytics")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	// Дожидаемся незавершенных отправок данных о переходах
	tracker.Shutdown()

	log.Println("✅ Server gracefully stopped")
}

// connectRedis подключается к Redis; при неудаче сервис работает без кэша
func connectRedis(cfg *config.Config) *cache.RedisClient {
	redisClient, err := cache.NewRedisClient(cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		CacheTTL:     cfg.Redis.CacheTTL,
	})
	if err != nil {
		log.Printf("⚠️  Failed to connect to Redis (running without cache): %v", err)
		return nil
	}

	log.Println("✅ Successfully connected to Redis")
	return redisClient
}

func healthHandler(db *sql.DB, redisClient *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		services := gin.H{}

		if err := database.HealthCheck(db); err != nil {
			services["database"] = "unhealthy"
			status = "degraded"
		} else {
			services["database"] = "healthy"
		}

		switch {
		case redisClient == nil:
			services["cache"] = "disabled"
		case redisClient.HealthCheck(c.Request.Context()) != nil:
			services["cache"] = "unhealthy"
			status = "degraded"
		default:
			services["cache"] = "healthy"
		}

		statusCode := http.StatusOK
		if status == "degraded" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"services": services,
		})
	}
}

func infoHandler(db *sql.DB, redisClient *cache.RedisClient, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		version, _ := database.GetVersion(db)

		c.JSON(http.StatusOK, gin.H{
			"service":          "Link Tracker",
			"version":          "1.0.0",
			"database_driver":  "pgx",
			"database_version": version,
			"cache_enabled":    redisClient != nil,
			"geo_provider":     cfg.Geo.BaseURL,
		})
	}
}
