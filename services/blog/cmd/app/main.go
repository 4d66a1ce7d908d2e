package main

import (
	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
	blogApp "blog-api/services/blog/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Blog API
// @version         1.0
// @description     Users, posts and likes for the blog backend
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /blog

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Redis backs the like count cache and rate limiting; both are optional
	var redisClient *redis.Client
	if rc, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
	} else {
		redisClient = rc
	}

	var queueClient *queue.Client
	if cfg.QueueEnabled {
		qc, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		} else {
			queueClient = qc
		}
	}

	blogApp.Run(cfg, log, db, redisClient, queueClient)
}
