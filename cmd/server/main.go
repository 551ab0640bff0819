package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meyashjha/ecommerce-fullstack/internal/auth"
	"github.com/meyashjha/ecommerce-fullstack/internal/cart"
	"github.com/meyashjha/ecommerce-fullstack/internal/cart/cache"
	"github.com/meyashjha/ecommerce-fullstack/internal/catalog"
	apihttp "github.com/meyashjha/ecommerce-fullstack/internal/http"
	"github.com/meyashjha/ecommerce-fullstack/internal/mongodb"
	"github.com/meyashjha/ecommerce-fullstack/internal/order"
	"github.com/meyashjha/ecommerce-fullstack/internal/outbox"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	JWTSecret       string
	JWTExpiry       time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", "localhost:9092"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    brokers,
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiry:       24 * time.Hour,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Set up MongoDB connection
	ctx := context.Background()
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	if err := catalog.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create product indexes: %v", err)
	}
	if err := cart.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	if err := order.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create order indexes: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Storage
	productRepo := catalog.NewMongoRepository(db)
	cartRepo := cart.NewMongoRepository(db)
	orderRepo := order.NewMongoRepository(db)
	eventStore := outbox.NewMongoStore(db)

	// Services
	cartCache := cache.NewRedisCache(redisClient)
	persistedCarts := cart.NewPersistedService(cartRepo, cartCache)
	localCarts := cart.NewLocalService()
	orderService := order.NewService(orderRepo, productRepo, persistedCarts, eventStore)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	// Outbox poller publishes recorded order events to Kafka
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	var poller *outbox.Poller
	if len(cfg.KafkaBrokers) > 0 {
		poller = outbox.NewPoller(eventStore, cfg.KafkaBrokers...)
		go poller.Run(pollerCtx)
		log.Printf("Outbox poller started, brokers: %s", strings.Join(cfg.KafkaBrokers, ","))
	}

	router := apihttp.NewRouter(
		apihttp.NewCatalogHandler(productRepo),
		apihttp.NewCartHandler(persistedCarts, localCarts, productRepo),
		apihttp.NewOrdersHandler(orderService),
		jwtService,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront API listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()
	if poller != nil {
		if err := poller.Close(); err != nil {
			log.Printf("outbox writer close: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}

	log.Println("server exited")
}
