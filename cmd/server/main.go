package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/tabletopforge/battletracker/internal/clients/dnd5e"
	"github.com/tabletopforge/battletracker/internal/config"
	mcphandler "github.com/tabletopforge/battletracker/internal/handlers/mcp"
	"github.com/tabletopforge/battletracker/internal/handlers/rest"
	"github.com/tabletopforge/battletracker/internal/logger"
	"github.com/tabletopforge/battletracker/internal/repositories/campaigns"
	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
	"github.com/tabletopforge/battletracker/internal/services"
)

func main() {
	// Load .env before anything reads the environment
	envLoaded := godotenv.Load() == nil

	log := logger.New()
	if envLoaded {
		log.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	providerConfig := &services.ProviderConfig{
		Logger: log,
	}

	// Optional D&D 5e SRD client for monster import
	if cfg.DND5E.Enabled {
		dndClient, clientErr := dnd5e.New(&dnd5e.Config{
			HttpClient: &http.Client{
				Timeout: time.Duration(cfg.DND5E.Timeout) * time.Second,
			},
		})
		if clientErr != nil {
			log.WithError(clientErr).Warn("failed to create dnd5e client, monster import disabled")
		} else {
			providerConfig.DNDClient = dndClient
		}
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	// Try to connect to Redis if URL is provided. Battles are always
	// in-memory; only the campaign library and dice log persist.
	if cfg.Redis.URL != "" {
		log.WithField("url", cfg.Redis.URL).Info("connecting to Redis")

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.WithError(parseErr).Warn("failed to parse Redis URL, falling back to in-memory repositories")
		} else {
			redisClient = redis.NewClient(opts)

			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				cancel()
				log.WithError(pingErr).Warn("failed to connect to Redis, falling back to in-memory repositories")
				redisClient = nil
			} else {
				cancel()
				log.Info("connected to Redis")

				providerConfig.CampaignRepository = campaigns.NewRedisRepository(&campaigns.RedisRepoConfig{
					Client: redisClient,
				})
				providerConfig.DiceLogRepository = dicelog.NewRedisRepository(&dicelog.RedisRepoConfig{
					Client: redisClient,
				})
			}
		}
	} else {
		log.Info("no REDIS_URL set, using in-memory repositories")
	}

	serviceProvider := services.NewProvider(providerConfig)

	hub := rest.NewHub()
	restHandler := rest.NewHandler(&rest.HandlerConfig{
		BattleService:   serviceProvider.BattleService,
		CampaignService: serviceProvider.CampaignService,
		DiceService:     serviceProvider.DiceService,
		Hub:             hub,
		Logger:          log,
	})

	mcpServer := mcphandler.NewServer(&mcphandler.Config{
		BattleService:   serviceProvider.BattleService,
		CampaignService: serviceProvider.CampaignService,
		DiceService:     serviceProvider.DiceService,
		Logger:          log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           restHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.WithField("addr", cfg.HTTP.Addr).Info("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.MCP.Transport == "stdio" {
		group.Go(func() error {
			log.Info("starting MCP server on stdio")
			return mcphandler.RunStdio(groupCtx, mcpServer)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server exited with error")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Warn("error closing Redis connection")
		}
	}

	log.Info("shutdown complete")
}
