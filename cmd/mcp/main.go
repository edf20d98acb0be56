package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jwebster45206/state-of-play/internal/config"
	"github.com/jwebster45206/state-of-play/internal/engine"
	"github.com/jwebster45206/state-of-play/internal/logger"
	"github.com/jwebster45206/state-of-play/internal/mcp"
	"github.com/jwebster45206/state-of-play/internal/storage"
	"github.com/jwebster45206/state-of-play/pkg/scenario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.Setup(cfg)

	logg.Info("Starting State of Play MCP server",
		"server_id", cfg.ServerID,
		"server_name", cfg.ServerName,
		"scenario", cfg.ScenarioPath)

	s, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		logg.Error("Failed to load scenario", "path", cfg.ScenarioPath, "error", err)
		os.Exit(1)
	}

	store, err := storage.NewRedisStore(cfg.RedisURL, logg)
	if err != nil {
		logg.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error("Error closing storage connection", "error", err)
		}
	}()

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		logg.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	eng := engine.New(store, logg)
	server := mcp.New(cfg.ServerID, cfg.ServerName, eng, store, s, logg)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()
	if err := server.Bootstrap(bootCtx); err != nil {
		logg.Error("Failed to bootstrap game", "game_id", server.GameID(), "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, &sdk.StdioTransport{}); err != nil && ctx.Err() == nil {
		logg.Error("MCP server exited with error", "error", err)
		os.Exit(1)
	}

	logg.Info("MCP server stopped")
}
