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

	"github.com/joho/godotenv"

	"github.com/kaiyuanli/playroom/backend/internal/cache"
	"github.com/kaiyuanli/playroom/backend/internal/config"
	"github.com/kaiyuanli/playroom/backend/internal/events"
	"github.com/kaiyuanli/playroom/backend/internal/handler"
	"github.com/kaiyuanli/playroom/backend/internal/metrics"
	sessionservice "github.com/kaiyuanli/playroom/backend/internal/service/session"
	"github.com/kaiyuanli/playroom/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessionStore := store.NewMemoryStore()
	responseCache := cache.New(cfg.Session.CacheTTL, cfg.Session.CacheCapacity)
	m := metrics.New()

	hub := events.NewHub()
	go hub.Run(ctx)

	sessionSvc := sessionservice.NewService(sessionStore, responseCache, hub, m)
	router := handler.NewRouter(sessionSvc, hub, m, cfg.Server.AllowedOrigin)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Playroom session backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
