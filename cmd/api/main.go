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

	"github.com/zhouzirui/z-names/backend/internal/config"
	"github.com/zhouzirui/z-names/backend/internal/handler"
	namesHandler "github.com/zhouzirui/z-names/backend/internal/handler/names"
	"github.com/zhouzirui/z-names/backend/internal/model/membership"
	"github.com/zhouzirui/z-names/backend/internal/service/names"
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

	seed, err := membership.LoadSeed(cfg.Names.SeedFile)
	if err != nil {
		log.Fatalf("failed to load membership seed: %v", err)
	}
	likes, used := seed.Stores()
	log.Printf("membership stores seeded: %d liked, %d used", len(likes.Members()), len(used.Members()))

	source := names.NewHTTPSource(names.HTTPSourceConfig{
		BaseURL: cfg.Names.BaseURL,
		Path:    cfg.Names.Path,
		Timeout: cfg.Names.Timeout,
	})
	log.Printf("name source: %s", source.URL())

	namesService := names.NewService(source, likes, used)

	var hub *namesHandler.Hub
	if cfg.Names.WSEnabled {
		hub = namesHandler.NewHub(namesService.Load)
		go hub.Run(ctx)
	} else {
		log.Println("names live feed disabled by configuration")
	}

	router := handler.NewRouter(namesService, hub, cfg.Names.DataDir)

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

	log.Printf("names backend listening on %s", addr)
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
