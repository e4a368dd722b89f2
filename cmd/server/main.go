package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/assapir/jobflow/internal/app"
	"github.com/assapir/jobflow/internal/config"
	"github.com/assapir/jobflow/internal/server"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to start search pipeline: %v", err)
	}
	defer a.Close()

	var runs server.RunLister
	if a.Runs != nil {
		runs = a.Runs
	}
	api := server.New(a.Service, runs, server.NewClientLimiter(cfg.RateLimitWindow))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Router(),
	}
	go func() {
		log.Printf("🚀 Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
}
