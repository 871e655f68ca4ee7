package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fitquality/storefront/internal/catalog"
	"github.com/fitquality/storefront/internal/chat"
	"github.com/fitquality/storefront/internal/events"
	"github.com/fitquality/storefront/internal/httpapi"
	"github.com/fitquality/storefront/internal/orders"
	"github.com/fitquality/storefront/internal/postgres"
	"github.com/fitquality/storefront/internal/session"
	"github.com/fitquality/storefront/internal/users"
)

type Config struct {
	HTTPPort        string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	MigrationsPath  string
	RedisAddr       string
	MongoURI        string
	MongoDB         string
	KafkaBrokers    []string
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PostgresHost:    getEnv("PG_HOST", "localhost"),
		PostgresPort:    getEnvInt("PG_PORT", 5432),
		PostgresUser:    getEnv("PG_USER", "storefront"),
		PostgresPass:    getEnv("PG_PASSWORD", "storefront"),
		PostgresDB:      getEnv("PG_DATABASE", "storefront"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "storefront"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	db, err := postgres.Connect(&postgres.Credentials{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	mongoCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoDB, err := chat.ConnectMongoDB(mongoCtx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoDB.Client().Disconnect(ctx)
	}()

	sessions := session.NewRedisStore(redisClient, session.DefaultTTL)

	catalogRepo := catalog.NewCachedRepository(
		catalog.NewPostgresRepository(db),
		catalog.NewRedisProductCache(redisClient),
	)

	orderRepo := orders.NewPostgresRepository(db)
	placer := orders.NewPlacer(orderRepo)

	userService := users.NewService(users.NewPostgresRepository(db), sessions)
	chatStore := chat.NewMongoStore(mongoDB)
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)

	registry := httpapi.NewCartRegistry(catalogRepo, placer, sessions)

	router := httpapi.NewRouter(
		sessions,
		httpapi.NewAuthHandler(userService, registry),
		httpapi.NewProductHandler(catalogRepo),
		httpapi.NewCartHandler(registry, catalogRepo, publisher),
		httpapi.NewOrdersHandler(orderRepo),
		httpapi.NewChatHandler(chatStore),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
