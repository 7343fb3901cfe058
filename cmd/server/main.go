package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"quarryledger/internal/config"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/auth"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/domain/documents/sale"
	"quarryledger/internal/domain/pricing"
	"quarryledger/internal/domain/reports"
	v1 "quarryledger/internal/infrastructure/http/v1"
	"quarryledger/internal/infrastructure/storage/postgres"
	"quarryledger/internal/infrastructure/storage/postgres/auth_repo"
	"quarryledger/internal/infrastructure/storage/postgres/catalog_repo"
	"quarryledger/internal/infrastructure/storage/postgres/document_repo"
	"quarryledger/internal/infrastructure/storage/postgres/register_repo"
	"quarryledger/internal/realtime"
	"quarryledger/pkg/logger"
	"quarryledger/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetDefault(log)

	ctx := context.Background()

	// Database.
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Infow("connected to database")

	txManager := postgres.NewTxManager(pool)

	// Repositories.
	userRepo := auth_repo.NewUserRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	quarryRepo := catalog_repo.NewQuarryRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	pricingRepo := register_repo.NewPricingRepo(txManager)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}
	recorder := audit.NewRecorder(auditStore)

	// Realtime hub, optionally bridged across instances via Redis.
	hub := realtime.NewHub()
	var fanout *realtime.RedisFanout
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		fanout = realtime.NewRedisFanout(redisClient, hub)
		if err := fanout.Start(ctx); err != nil {
			log.Fatalw("failed to start redis fanout", "error", err)
		}
		defer fanout.Stop()
		log.Infow("redis fanout enabled", "addr", cfg.RedisAddr)
	}

	// Auth.
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))
	watchdog := auth.NewWatchdog(cfg.SessionTimeout, func(sessionID string) {
		log.Infow("session expired due to inactivity", "session_id", sessionID)
	})
	authService := auth.NewService(userRepo, jwtService, watchdog, hub, auth.DefaultServiceConfig())

	// Document numbering (TX-2026-00001).
	numbers := numerator.New(pool)

	// Domain services.
	productService := product.NewService(productRepo, recorder, hub)
	quarryService := quarry.NewService(quarryRepo, authService, recorder, hub)
	customerService := customer.NewService(customerRepo, recorder, hub)
	pricingService := pricing.NewService(pricingRepo, productService, quarryService, recorder, hub)
	saleService := sale.NewService(saleRepo, customerService, numbers, recorder, hub)
	reportsService := reports.NewService(saleService, customerService, quarryService)

	router := v1.NewRouter(v1.RouterConfig{
		Logger: log,
		Pool:   pool,

		JWTValidator: jwtService,
		Sessions:     watchdog,

		AuthService:     authService,
		ProductService:  productService,
		QuarryService:   quarryService,
		CustomerService: customerService,
		PricingService:  pricingService,
		SaleService:     saleService,
		ReportsService:  reportsService,
		AuditRecorder:   recorder,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Infow("server stopped")
}
