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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/cart"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/checkout"
	h "github.com/Dele-Oyelese/Brittania-Brewing-application/internal/http"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/notify"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	MigrationsPath string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	KafkaBrokers []string

	TaxRate decimal.Decimal
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.05"))
	if err != nil {
		log.Fatalf("Invalid TAX_RATE: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          dbPort,
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "britannia"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "britannia"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		TaxRate:         taxRate,
	}
}

func main() {
	log.Println("portal starting...")

	cfg := loadConfig()

	// Postgres: orders, inventory, catalog, outbox
	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Mongo: durable carts
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mongoCancel()
	mongoDB, err := cart.ConnectMongoDB(mongoCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect error: %v", err)
		}
	}()

	// Redis: cart cache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	cartService := cart.NewService(
		cart.NewMongoRepository(mongoDB),
		cart.NewRedisCache(redisClient),
	)

	checkoutService := checkout.NewService(repo, cartService, cfg.TaxRate)

	// Notifications drain from the outbox after each order commits
	sender := notify.NewKafkaSender(cfg.KafkaBrokers...)
	defer sender.Close()
	poller := notify.NewOutboxPoller(repo, notify.NewDispatcher(sender))

	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	defer pollerCancel()
	go poller.Run(pollerCtx)

	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	orderHandler := h.NewOrderHandler(checkoutService, repo, cfg.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(repo, cfg.RequestTimeout)
	adminHandler := h.NewAdminHandler(repo, repo, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/beers", catalogHandler.ListBeers)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/lines", cartHandler.AddLine)
			r.Put("/lines/{beer_id}/{container_size}", cartHandler.SetQuantity)
			r.Delete("/lines/{beer_id}/{container_size}", cartHandler.RemoveLine)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.SubmitOrder)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{order_id}", orderHandler.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Put("/inventory/{beer_id}/{container_size}", adminHandler.SetStock)
			r.Patch("/orders/{order_id}/status", adminHandler.UpdateOrderStatus)
		})
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(r, "portal"),
	}

	go func() {
		log.Printf("Portal listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down portal...")
	pollerCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("Portal stopped")
}
