package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/metrics"
	"blog-api/pkg/middleware"
	"blog-api/pkg/queue"
	blogHTTP "blog-api/services/blog/internal/controller/http"
	"blog-api/services/blog/internal/repo/persistent"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "blog-api/services/blog/docs" // Swagger docs
)

// Run wires the blog service and blocks until SIGINT or SIGTERM.
// redisClient and queueClient may be nil.
func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)
	likeRepo := persistent.NewLikeRepository(db)

	// Optional collaborators stay nil interfaces when their backend is down
	var likeCache usecase.LikeCountCache
	if redisClient != nil {
		likeCache = cache.NewLikeCountCache(redisClient)
	}
	var notifier usecase.Notifier
	if queueClient != nil {
		notifier = queueClient
	}

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo, m, log)
	postUseCase := usecase.NewPostUseCase(userRepo, postRepo, likeRepo, likeCache, m, log)
	likeUseCase := usecase.NewLikeUseCase(userRepo, postRepo, likeRepo, likeCache, notifier, m, log)

	// Initialize HTTP handlers
	blogHandler := blogHTTP.NewBlogHandler(userUseCase, postUseCase, likeUseCase, log)

	r := NewRouter(cfg, blogHandler, m, reg, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain in-flight requests before the backends go away
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := database.Close(db); err != nil {
		log.Error("Error closing database: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	log.Info("Blog service exited")
}

// NewRouter builds the gin engine. Rate limiting is only installed when
// redisClient is set.
func NewRouter(cfg *config.Config, blogHandler *blogHTTP.BlogHandler, m *metrics.Metrics, gatherer prometheus.Gatherer, redisClient *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.MetricsMiddleware(m))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/blog")
	if redisClient != nil {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, window))
	}
	blogHandler.RegisterRoutes(api)

	return r
}
