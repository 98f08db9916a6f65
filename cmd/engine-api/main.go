// README: Entry point; loads config, wires providers and services, starts HTTP server and the snapshot refresh loop.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulse/internal/config"
	httptransport "pulse/internal/http"
	"pulse/internal/infra"
	"pulse/internal/maps"
	"pulse/internal/market"
	"pulse/internal/modules/demand"
	"pulse/internal/modules/fraud"
	"pulse/internal/modules/matching"
	"pulse/internal/modules/pricing"
	"pulse/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := infra.NewLogger(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers := market.OfflineProviders()

	if cfg.Database.URL != "" {
		dbPool, err := infra.NewDB(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("postgres init: %v", err)
		}
		defer dbPool.Close()
		providers.History = market.NewHistoryStore(dbPool)
		logger.Info("demand history provider enabled")
	}

	var supply *market.RedisSupplyProvider
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		center := types.Point{Lat: cfg.Market.CenterLat, Lng: cfg.Market.CenterLng}
		supply = market.NewRedisSupplyProvider(redisClient, center, cfg.Market.SupplyRadiusKm)
		providers.Supply = supply
		logger.Info("driver supply provider enabled")
	}

	store := market.NewStore(providers, market.StoreConfig{
		RefreshInterval: time.Duration(cfg.Market.RefreshSeconds) * time.Second,
		RefreshTimeout:  time.Duration(cfg.Market.RefreshTimeoutSeconds) * time.Second,
	}, logger)

	demandSvc, err := demand.NewService(store, demand.DefaultPatternTables(),
		time.Duration(cfg.Demand.CacheTTLSeconds)*time.Second, logger)
	if err != nil {
		log.Fatal(err)
	}

	fareParams := pricing.FareParams{
		FlatRate:       cfg.Pricing.FlatRate,
		PerKmRate:      cfg.Pricing.PerKmRate,
		PerMinuteRate:  cfg.Pricing.PerMinuteRate,
		AvgSpeedKmH:    cfg.Pricing.AvgSpeedKmH,
		MinPrice:       cfg.Pricing.MinPrice,
		MaxPrice:       cfg.Pricing.MaxPrice,
		BaseCommission: cfg.Pricing.BaseCommission,
		Currency:       cfg.Pricing.Currency,
	}
	pricingSvc, err := pricing.NewService(fareParams, demandSvc, store,
		time.Duration(cfg.Pricing.CacheTTLSeconds)*time.Second, logger)
	if err != nil {
		log.Fatal(err)
	}

	matchingSvc, err := matching.NewService(matching.Weights{
		Distance:     cfg.Matching.DistanceWeight,
		Rating:       cfg.Matching.RatingWeight,
		Availability: cfg.Matching.AvailabilityWeight,
		VehicleType:  cfg.Matching.VehicleTypeWeight,
		Preferences:  cfg.Matching.PreferencesWeight,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}

	var routeSvc *maps.RouteService
	if cfg.Maps.APIKey != "" {
		routeSvc, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		logger.Info("route estimation enabled")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Market:   store,
		Supply:   supply,
		Demand:   demandSvc,
		Pricing:  pricingSvc,
		Fraud:    fraud.NewService(logger),
		Matching: matchingSvc,
		Routes:   routeSvc,
		Logger:   logger,
	})

	server := &http.Server{Addr: cfg.Server.Addr, Handler: handler.Routes()}

	go store.RunRefreshLoop(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("server shutdown")
		}
	}()

	logger.WithField("addr", cfg.Server.Addr).Info("engine listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
