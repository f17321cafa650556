package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"videoforge/internal/adapter/repo"
	"videoforge/internal/http/handlers"
	"videoforge/internal/http/httpapi"
	"videoforge/internal/infra"
	"videoforge/internal/infra/geoip"
	"videoforge/internal/media"
	"videoforge/internal/middleware"
	"videoforge/internal/providers/imagegen"
	"videoforge/internal/queue"
	"videoforge/internal/storage"
	"videoforge/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	store, err := storage.NewMediaStore(cfg.MediaDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare media directory")
	}

	engine := media.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath, logger)
	artifacts := repo.NewArtifactRepository(dbpool)
	jobs := queue.New(dbpool, logger)

	var images imagegen.Generator
	if cfg.OpenAIAPIKey != "" {
		httpClient := &http.Client{Timeout: 60 * time.Second}
		images = imagegen.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIImageModel, httpClient, store, logger)
	} else {
		logger.Warn().Msg("openai api key missing, using synthetic image generation")
		images = imagegen.NewSynthetic(store, logger)
	}

	flow := workflow.NewOrchestrator(images, engine, artifacts, jobs, logger)

	app := &handlers.App{
		Logger:    logger,
		Media:     engine,
		Artifacts: artifacts,
		Workflow:  flow,
		Jobs:      jobs,
		Store:     store,
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country logging disabled")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	router := httpapi.NewRouter(app, logger, countryLookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
