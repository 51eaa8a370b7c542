package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-canteen/internal/auth"
	"campus-canteen/internal/config"
	"campus-canteen/internal/database"
	"campus-canteen/internal/logger"
	"campus-canteen/internal/messaging"
	"campus-canteen/internal/seed"
	"campus-canteen/internal/server"
	"campus-canteen/internal/services/identity"
	"campus-canteen/internal/services/menu"
	"campus-canteen/internal/services/order"
)

func main() {
	var (
		mode          = flag.String("mode", "api", "Run mode (api, seed)")
		configPath    = flag.String("config", "config.yaml", "Path to config file")
		port          = flag.Int("port", 0, "HTTP port (overrides config)")
		maxConcurrent = flag.Int("max-concurrent", 50, "Maximum concurrent order creations")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("campus-canteen")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting campus-canteen in %s mode", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "api":
		if err := runAPI(ctx, cfg, log, *maxConcurrent); err != nil {
			log.Error("service_failed", "API server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(ctx, cfg, log); err != nil {
			log.Error("seed_failed", "Seeding failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func runAPI(ctx context.Context, cfg *config.Config, log *logger.Logger, maxConcurrent int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())

	menuRepo := menu.NewRepository(db)
	menuService := menu.NewService(menuRepo, log)
	menuHandler := menu.NewHandler(menuService, log)

	identityRepo := identity.NewRepository(db)
	identityService := identity.NewService(identityRepo, tokens, log)
	identityHandler := identity.NewHandler(identityService, tokens, log)

	orderRepo := order.NewRepository(db)
	orderService := order.NewService(orderRepo, menuRepo, publisher, log, maxConcurrent)
	orderHandler := order.NewHandler(orderService, log)

	srv := server.New(tokens, identityHandler, menuHandler, orderHandler, db, log, cfg.Server.ClientOrigin)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("API server listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port":           cfg.Server.Port,
			"max_concurrent": maxConcurrent,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return seed.Run(ctx, identity.NewRepository(db), menu.NewRepository(db), log)
}
