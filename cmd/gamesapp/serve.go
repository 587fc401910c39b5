package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/jnycolej/GamesApp/internal/catalog"
	"github.com/jnycolej/GamesApp/internal/game"
	"github.com/jnycolej/GamesApp/internal/randutil"
	"github.com/jnycolej/GamesApp/internal/server"
)

// ServeCmd contains core server configuration
type ServeCmd struct {
	Config   string `short:"c" default:"gamesapp.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     *int64 `help:"Deterministic RNG seed for the server (optional)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	var loader catalog.Loader = catalog.Builtin()
	if cfg.Game.CatalogDir != "" {
		loader = &catalog.DirLoader{Dir: cfg.Game.CatalogDir, FallbackBuiltin: true}
		logger.Info("loading card catalogs from disk", "dir", cfg.Game.CatalogDir)
	}

	registry := game.NewRegistry(loader, quartz.NewReal(), rng, logger, cfg.GameConfig())
	srv := server.NewServer(registry, logger)

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	settings := cfg.GameConfig()
	logger.Info("starting gamesapp server",
		"addr", addr,
		"handSize", settings.HandSize,
		"minPlayers", settings.MinPlayers,
		"openHands", settings.OpenHandsAllowed,
		"evictionDelay", settings.EvictionDelay,
		"inviteTTL", settings.InviteTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		srv.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func setupLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
