package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-content-service/internal/cache"
	"quiz-content-service/internal/config"
	"quiz-content-service/internal/db"
	"quiz-content-service/internal/event"
	"quiz-content-service/internal/handlers"
	"quiz-content-service/internal/repository"
	"quiz-content-service/internal/service"
	"quiz-content-service/internal/storage"
	"quiz-content-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	if err := db.InitMongo(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.CloseMongo()

	assets, err := storage.NewMinioAssetStore(&cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO asset store: %v", err)
	}

	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	quizRepo := repository.NewQuizRepository(db.Database)
	templateRepo := repository.NewTemplateRepository(db.Database)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	if err := quizRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to ensure quiz indexes: %v", err)
	}
	indexCancel()

	// Scoring reads through Redis when configured, straight from Mongo
	// otherwise.
	var quizReader service.QuizReader = quizRepo
	var invalidator service.CacheInvalidator
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		quizCache := cache.NewQuizCache(redisClient, quizRepo, cfg.Redis.TTL)
		quizReader = quizCache
		invalidator = quizCache
		log.Printf("Quiz content cache enabled via Redis at %s", cfg.Redis.Addr)
	} else {
		log.Println("Redis not configured, quiz content cache disabled")
	}

	quizService := service.NewQuizService(quizRepo, templateRepo, assets, publisher, invalidator)
	scoringService := service.NewScoringService(quizReader, publisher)
	quizHandler := handlers.NewQuizHandler(quizService, scoringService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.Server.ServiceName})
	})

	// Protected routes - authoring requires the gateway-supplied identity
	protectedQuiz := r.Group("/protected/quiz")
	protectedQuiz.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})
	{
		protectedQuiz.POST("/", quizHandler.CreateQuiz)
		protectedQuiz.GET("/:id", quizHandler.GetQuiz)
		protectedQuiz.PUT("/:id", quizHandler.UpdateQuiz)
	}

	// Public routes - playing a published quiz
	publicQuiz := r.Group("/public/quiz")
	{
		publicQuiz.GET("/:id", quizHandler.GetPublicQuiz)
		publicQuiz.POST("/:id/check-answers", quizHandler.CheckAnswers)
	}

	// Consul registration is optional; skip when no address is configured.
	var registry *discovery.ServiceRegistry
	if cfg.Consul.Address != "" {
		registry, err = discovery.NewServiceRegistry(cfg.Consul.Address, cfg.Consul.ServiceName, cfg.Consul.ServiceID, cfg.Server.Port)
		if err != nil {
			log.Printf("Failed to create Consul registry: %v", err)
		} else if err := registry.Register(); err != nil {
			log.Printf("Failed to register with Consul: %v", err)
			registry = nil
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("quiz-content-service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Failed to deregister from Consul: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
