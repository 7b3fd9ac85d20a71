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

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/JaviLianes8/RealTajoFCBack/internal/cache"
	"github.com/JaviLianes8/RealTajoFCBack/internal/config"
	"github.com/JaviLianes8/RealTajoFCBack/internal/mcpserver"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("REALTAJO_CONFIG"), "path to a YAML config file")
		addr       = flag.String("addr", "", "HTTP listen address (empty = stdio)")
		mcpPath    = flag.String("path", "/mcp", "HTTP path for the MCP endpoint")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	// stdout carries the protocol on stdio, so logs always go to stderr.
	if err := config.SetupLogging(cfg.Log, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}
	if *addr == "" {
		*addr = cfg.MCP.Addr
	}

	backend, err := store.Open(cfg.Store.Driver, cfg.Store.DSN, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer backend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var records store.RecordStore = backend
	if cfg.Redis.URL != "" {
		redisCache, err := cache.ConnectWithRetry(ctx, cfg.Redis.URL, cfg.Redis.ConnectRetries, 2*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		records = cache.NewRecordCache(backend, redisCache, cfg.Redis.CacheTTL)
	}

	services := service.New(service.Deps{Store: records, Archive: backend, Team: cfg.TrackedTeam})
	server := mcpserver.New(services, cfg.AppVersion)

	if *addr == "" {
		log.Info().Str("team", cfg.TrackedTeam).Msg("Serving MCP over stdio")
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("MCP server error")
		}
		return
	}

	mux := http.NewServeMux()
	mux.Handle(*mcpPath, mcpserver.HTTPHandler(server))
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", *addr).Str("path", *mcpPath).Msg("✓ MCP server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("MCP HTTP server error")
	}
}
