package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/myood/winhook/config"
	"github.com/myood/winhook/recorder"
	"github.com/myood/winhook/storage"
	"github.com/myood/winhook/systray"
	"github.com/myood/winhook/web"
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	dataDir, err := config.Dir()
	if err != nil {
		slog.Error("Failed to resolve data directory", "error", err)
		os.Exit(1)
	}

	// Open event storage
	db, err := storage.Open(dataDir)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Start the dashboard if enabled
	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.NewServer(db, cfg.Web.Port)
		go func() {
			if err := webServer.Start(); err != nil {
				slog.Error("Web server error", "error", err)
			}
		}()
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// System tray; quitting the tray cancels the recorder
	tray := systray.NewSystrayManager(cfg.Web.Port, nil)
	go tray.Run()
	go func() {
		<-tray.WaitForQuit()
		cancel()
	}()
	defer tray.Stop()

	// Run recorder
	rec := recorder.New(cfg, db, webServer)
	if err := rec.Run(ctx); err != nil {
		slog.Error("Recorder error", "error", err)
		os.Exit(1)
	}

	slog.Info("winhook recorder stopped")
}
