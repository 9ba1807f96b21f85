package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/cli"
	"github.com/alexanderramin/ecostats/internal/config"
	"github.com/alexanderramin/ecostats/internal/db"
	"github.com/alexanderramin/ecostats/internal/logging"
	"github.com/alexanderramin/ecostats/internal/repository"
	"github.com/alexanderramin/ecostats/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The server logs everything; other commands stay quiet unless debugging.
	serving := len(os.Args) > 1 && os.Args[1] == "serve"
	var logger *zap.Logger
	if serving {
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
	} else {
		logger, err = logging.ForCLI(cfg.LogLevel, cfg.LogFormat)
	}
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	stationRepo, closeStations, err := openStationRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStations()

	stations := service.NewStationService(stationRepo, cfg.DatasetPath, cfg.StrictStats,
		service.NewZapUseCaseObserver(logger))
	kb, err := stations.Knowledge(ctx)
	if err != nil {
		return fmt.Errorf("loading station data: %w", err)
	}

	sessions, closeSessions, err := openSessionRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	app := &cli.App{
		Config:    cfg,
		Knowledge: kb,
		Stations:  stations,
		Chat: service.NewChatService(chatbot.NewBot(kb), sessions, logger,
			service.NewZapUseCaseObserver(logger)),
		Logger: logger,
	}

	// Detect interactive terminal for the chat entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func openStationRepo(ctx context.Context, cfg config.Config) (repository.StationRepo, func(), error) {
	if cfg.StationStore == config.StorePostgres {
		pool, err := db.OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		return repository.NewPostgresStationRepo(pool), pool.Close, nil
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return repository.NewSQLiteStationRepo(database), func() { _ = database.Close() }, nil
}

func openSessionRepo(ctx context.Context, cfg config.Config) (repository.SessionRepo, func(), error) {
	if cfg.SessionStore != config.StoreRedis {
		return repository.NewMemorySessionRepo(cfg.SessionTTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return repository.NewRedisSessionRepo(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
}
