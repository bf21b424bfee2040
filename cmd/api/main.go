package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer-address-api/internal/config"
	"github.com/Raymond9734/customer-address-api/internal/db"
	"github.com/Raymond9734/customer-address-api/internal/handler"
	"github.com/Raymond9734/customer-address-api/internal/repository"
	"github.com/Raymond9734/customer-address-api/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer address API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database and bring the schema up
	store := db.New(logger)
	if err := store.Connect(context.Background(), db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}); err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Initialize(context.Background()); err != nil {
		logger.Error("failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("connected to database")

	conn, err := store.Conn()
	if err != nil {
		logger.Error("failed to get database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(conn)
	addressRepo := repository.NewAddressRepository(conn)

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo, addressRepo, logger)
	addressSvc := service.NewAddressService(customerRepo, addressRepo, logger)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	addressHandler := handler.NewAddressHandler(addressSvc, logger)
	healthHandler := handler.NewHealthHandler(store, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.ListCustomers)
		r.Post("/", customerHandler.CreateCustomer)
		r.Get("/multiple-addresses", customerHandler.MultipleAddresses)
		r.Get("/single-address", customerHandler.SingleAddress)
		r.Get("/{id}", customerHandler.GetCustomer)
		r.Put("/{id}", customerHandler.UpdateCustomer)
		r.Delete("/{id}", customerHandler.DeleteCustomer)
		r.Get("/{id}/addresses", addressHandler.ListCustomerAddresses)
		r.Post("/{id}/addresses", addressHandler.CreateAddress)
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Get("/search", addressHandler.SearchAddresses)
		r.Put("/{addressId}", addressHandler.UpdateAddress)
		r.Delete("/{addressId}", addressHandler.DeleteAddress)
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := store.Close(); err != nil {
			logger.Error("store shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
