package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/micJ-r/ecommerce-app/internal/auth"
	"github.com/micJ-r/ecommerce-app/internal/cache"
	"github.com/micJ-r/ecommerce-app/internal/config"
	"github.com/micJ-r/ecommerce-app/internal/events"
	apihttp "github.com/micJ-r/ecommerce-app/internal/http"
	"github.com/micJ-r/ecommerce-app/internal/repository"
	"github.com/micJ-r/ecommerce-app/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.ConnectMongoDB(ctx, repository.MongoOptions{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: cfg.MongoConnectTimeout,
		SelectTimeout:  cfg.MongoSelectTimeout,
		MaxPoolSize:    cfg.MongoMaxPoolSize,
		MinPoolSize:    cfg.MongoMinPoolSize,
	})
	if err != nil {
		log.Fatalf("connect mongodb: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()

	if err := repository.CreateUserIndexes(ctx, db); err != nil {
		log.Fatalf("create user indexes: %v", err)
	}

	var productCache cache.ProductCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		productCache = cache.NewRedisCache(redisClient)
		log.Printf("product cache: redis at %s", cfg.RedisAddr)
	} else {
		log.Println("product cache: disabled, every read hits mongodb")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.ServiceName)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("order events: kafka at %v", cfg.KafkaBrokers)
	} else {
		log.Println("order events: disabled, no brokers configured")
	}

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	carts := repository.NewCartRepository(db)

	catalogService := service.NewCatalogService(products, productCache)
	orderService := service.NewOrderService(orders, publisher)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTRefreshSecret)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Tokens:  tokens,
		Users:   users,
		Carts:   carts,
		Catalog: catalogService,
		Orders:  orderService,
		Timeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("http server: %v", err)
	case <-ctx.Done():
		log.Println("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
