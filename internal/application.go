package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/service"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/rest"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close game storage", "error", closeErr)
		}
	}()

	recorder := metrics.New()
	gameUseCase := usecase.NewGameUseCase(logger, service.NewGameService(gameRepo), recorder)

	return runServers(ctx, log,
		func(ctx context.Context) error {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if err := rest.New(logger, gameUseCase, recorder.Handler()).Start(ctx, conf.HTTPPort); err != nil {
				return fmt.Errorf("HTTP server error: %w", err)
			}

			return nil
		},
		func(ctx context.Context) error {
			log.Info("Starting WebSocket server", "port", conf.SocketPort)
			if err := websocket.New(logger, gameUseCase).Start(ctx, conf.SocketPort); err != nil {
				return fmt.Errorf("WebSocket server error: %w", err)
			}

			return nil
		},
	)
}

// runServers runs every server until ctx is canceled or one of them fails, then stops the rest
// and waits for all of them to return. It reports the first failure.
func runServers(ctx context.Context, log *slog.Logger, servers ...func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg    sync.WaitGroup
		errCh = make(chan error, len(servers))
	)

	for _, serve := range servers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := serve(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()
	wg.Wait()

	return err
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage == config.StorageMemory {
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() error { return nil }, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage, conf.Redis.Prefix, conf.SessionTTL), redisStorage.Close, nil
}
