package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"

	"github.com/jcaldw/trickortreth/internal/api"
	"github.com/jcaldw/trickortreth/internal/factory"
	redisstorage "github.com/jcaldw/trickortreth/internal/storage/redis"
)

type env struct {
	StorageType string `env:"STORAGE_TYPE,default=memory"`
	RedisURL    string `env:"REDIS_URL"`
	SqlitePath  string `env:"SQLITE_PATH,default=treth.db"`
	Port        int    `env:"PORT,default=8080"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var e env
	if err := envconfig.Process(context.Background(), &e); err != nil {
		logger.Error("failed to read environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg := factory.Config{
		Logger:      logger,
		StorageType: e.StorageType,
		SqlitePath:  e.SqlitePath,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if e.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = e.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		VisitController:  app.VisitController,
		PlayerService:    app.PlayerService,
		DoorbellRegistry: app.DoorbellRegistry,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = e.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
