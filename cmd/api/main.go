package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btc-mining-sim/internal/api"
	"btc-mining-sim/internal/config"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/observability"
	"btc-mining-sim/internal/scheduler"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from file (CONFIG_PATH) and environment
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config: %s", path)
	}
	cfg.ApplyEnv()

	base, err := cfg.Scenario.ToModelParams()
	if err != nil {
		log.Fatalf("Invalid scenario config: %v", err)
	}

	store, err := data.LoadMiners(cfg.MinerFile)
	if err != nil {
		log.Fatalf("Failed to load miners: %v", err)
	}
	log.Printf("Loaded %d miners from %s", len(store.All()), cfg.MinerFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics("")
	priceClient := data.NewCoinGeckoClient(cfg.PriceFeed.BaseURL)
	defer priceClient.Close()
	feed := &scheduler.PriceFeed{}

	if cfg.PriceFeed.Enabled {
		sched := scheduler.NewScheduler(ctx, priceClient, feed, metrics)
		if err := sched.Register(cfg.PriceFeed.Schedule); err != nil {
			log.Fatalf("Failed to schedule price refresh: %v", err)
		}
		if err := sched.RefreshNow(); err != nil {
			log.Printf("Initial price refresh failed: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Printf("Live price feed disabled; simulations use configured btc_price unless given")
	}

	// Set up Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, cleanup := api.NewRouter(api.Deps{
		Base:        base,
		Miners:      store,
		Weights:     cfg.Rank.Weights,
		Hashprice:   cfg.Rank.HashpriceUSDPerTHDay,
		PriceClient: priceClient,
		Feed:        feed,
		Metrics:     metrics,
		ResultTTL:   cfg.Server.ResultTTL,
	})
	defer cleanup()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
