package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/api/rest"
	"github.com/JaviLianes8/RealTajoFCBack/internal/api/websocket"
	"github.com/JaviLianes8/RealTajoFCBack/internal/cache"
	"github.com/JaviLianes8/RealTajoFCBack/internal/config"
	"github.com/JaviLianes8/RealTajoFCBack/internal/publisher"
	"github.com/JaviLianes8/RealTajoFCBack/internal/reprocess"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

const serviceName = "realtajo"

func main() {
	configPath := flag.String("config", os.Getenv("REALTAJO_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := config.SetupLogging(cfg.Log, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	log.Info().Str("service", serviceName).Str("version", cfg.AppVersion).Msg("Starting league document service")

	backend, err := store.Open(cfg.Store.Driver, cfg.Store.DSN, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open store")
	}
	defer backend.Close()
	log.Info().Str("driver", cfg.Store.Driver).Str("data_dir", cfg.DataDir).Msg("✓ Store ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsServer := websocket.NewServer(cfg.AllowedOrigins)
	notifiers := publisher.Fanout{wsServer}

	var records store.RecordStore = backend
	if cfg.Redis.URL != "" {
		log.Info().Msg("Connecting to Redis...")
		redisCache, err := cache.ConnectWithRetry(ctx, cfg.Redis.URL, cfg.Redis.ConnectRetries, 2*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		log.Info().Msg("✓ Connected to Redis")

		records = cache.NewRecordCache(backend, redisCache, cfg.Redis.CacheTTL)
		notifiers = append(notifiers, publisher.NewRedisPublisher(redisCache.Client(), cfg.Redis.Stream))
		log.Info().Str("stream", cfg.Redis.Stream).Msg("✓ Redis publisher initialized")
	} else {
		log.Info().Msg("REDIS_URL not set, running without cache and event stream")
	}

	services := service.New(service.Deps{
		Store:    records,
		Archive:  backend,
		Notifier: notifiers,
		Team:     cfg.TrackedTeam,
	})

	reprocessService := reprocess.NewService(backend, services.Processors())
	reprocessService.Start()
	log.Info().Msg("✓ Reprocess service started")

	restServer := rest.NewServer(rest.Options{
		Port:           cfg.RESTPort,
		APIPrefix:      cfg.APIPrefix,
		Version:        cfg.AppVersion,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, services, reprocessService, backend)
	go func() {
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("REST server error")
		}
	}()
	log.Info().Str("port", cfg.RESTPort).Msg("✓ REST API server listening")

	go func() {
		if err := wsServer.Start(ctx, cfg.WSPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("WebSocket server error")
		}
	}()

	log.Info().
		Str("rest", "http://0.0.0.0:"+cfg.RESTPort+cfg.APIPrefix).
		Str("websocket", "ws://0.0.0.0:"+cfg.WSPort+"/ws/events").
		Str("team", cfg.TrackedTeam).
		Msg("✓ Service started successfully")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("REST API server shutdown error")
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("WebSocket server shutdown error")
	}
	if err := reprocessService.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Reprocess service shutdown error")
	}
	cancel()

	log.Info().Msg("Service stopped")
}
