package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"store-service/config"
	"store-service/controllers"
	"store-service/database"
	"store-service/kafka"
	"store-service/logger"
	"store-service/routes"
	"store-service/services"
)

func main() {

	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	// Connect MongoDB
	ctx := context.Background()
	mongoDB, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Disconnect(ctx)

	// Repositories
	cartRepo := database.NewCartRepository(mongoDB.DB)
	userRepo := database.NewUserRepository(mongoDB.DB)
	productRepo := database.NewProductRepository(mongoDB.DB)

	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to create cart indexes: %v", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to create user indexes: %v", err)
	}

	// Redis-backed catalog cache
	redisClient := database.NewRedisClient(cfg.RedisURL)
	products := database.NewCachedProductRepository(productRepo, redisClient, cfg.ProductCacheTTL)

	// Kafka producer for checkout events
	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	defer producer.Close()

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenMinutes)
	authService := services.NewAuthService(userRepo, tokenService)
	cartService := services.NewCartService(cartRepo, userRepo, products, producer, mongoDB)

	// Controllers
	authController := controllers.NewAuthController(authService)
	cartController := controllers.NewCartController(cartService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())

	routes.Register(router, authController, cartController, tokenService)

	// Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Store Service is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server shutdown complete.")
}
