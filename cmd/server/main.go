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

	"github.com/mossyoak/campsite-availability-backend/internal/app"
	"github.com/mossyoak/campsite-availability-backend/internal/config"
	"github.com/mossyoak/campsite-availability-backend/internal/db"
	"github.com/mossyoak/campsite-availability-backend/migrations"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Apply schema migrations
	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	var prodOrigins []string
	if cfg.ProdOrigins != "" {
		prodOrigins = strings.Split(cfg.ProdOrigins, ",")
	}

	// Wire all modules
	container := app.NewContainer(app.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      prodOrigins,
		DBPool:           pool,
		JWTSecret:        cfg.JWTSecret,
		JWTTTL:           cfg.JWTAccessTokenTTL,
		BcryptCost:       cfg.BcryptCost,
		HoldTTL:          cfg.HoldTTL,
		ClaimLockTimeout: cfg.ClaimLockTimeout,
		ClaimRetries:     cfg.ClaimRetries,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
