// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hail/internal/config"
	httptransport "hail/internal/http"
	"hail/internal/infra"
	"hail/internal/maps"
	"hail/internal/modules/fare"
	"hail/internal/modules/order"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := fare.PolicyFromConfig(cfg.Fare)
	if err != nil {
		logger.Fatal("fare policy", zap.Error(err))
	}
	fareSvc := fare.NewService(policy)

	area := maps.NewArea(cfg.Area)
	var provider order.DistanceProvider
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps, area)
		if err != nil {
			logger.Fatal("maps client", zap.Error(err))
		}
		provider = routeSvc
	} else {
		logger.Warn("HAIL_MAPS_API_KEY not set; using offline distance estimates")
		provider = maps.NewStaticService(area)
	}
	if cfg.Redis.Addr != "" {
		provider = maps.NewCachedProvider(provider, infra.NewRedis(cfg.Redis.Addr), cfg.Maps.CacheTTL)
	}

	var store order.Store
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		store = order.NewPGStore(pool)
	} else {
		logger.Warn("HAIL_DB_DSN not set; orders held in memory only")
		store = order.NewMemStore()
	}

	orderSvc := order.NewService(store, provider, fareSvc, logger)
	router := httptransport.NewRouter(orderSvc, logger)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
