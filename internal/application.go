package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/apprentice-bingo/internal/config"
	"github.com/rocketscienceinc/apprentice-bingo/internal/console"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/options"
	"github.com/rocketscienceinc/apprentice-bingo/internal/repository"
	"github.com/rocketscienceinc/apprentice-bingo/internal/repository/storage"
	"github.com/rocketscienceinc/apprentice-bingo/internal/store"
	"github.com/rocketscienceinc/apprentice-bingo/internal/usecase"
)

// RunApp - runs the application on stdin and stdout.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	generator, err := newGenerator(conf)
	if err != nil {
		return err
	}

	sessionRepo, closeRepo := openSessionRepo(ctx, log, conf)
	defer closeRepo()

	st, err := store.New(generator)
	if err != nil {
		return fmt.Errorf("could not create game store: %w", err)
	}

	manager := usecase.NewGameManager(logger, st, sessionRepo, conf.StorageKey)
	if !manager.Restore(ctx) {
		if err = applyDefaults(ctx, manager, conf); err != nil {
			return err
		}
	}

	return runConsole(ctx, log, console.New(logger, manager, os.Stdout, options.NewTeamID), os.Stdin)
}

func newGenerator(conf *config.Config) (*options.Generator, error) {
	if conf.PhrasesFile == "" {
		return options.Default(), nil
	}

	pool, err := options.LoadPool(conf.PhrasesFile)
	if err != nil {
		return nil, fmt.Errorf("could not load phrases: %w", err)
	}

	generator := options.NewGenerator(pool)
	if generator.PoolSize() < entity.CellCount {
		return nil, fmt.Errorf("phrases file %s has %d phrases, need %d", conf.PhrasesFile, generator.PoolSize(), entity.CellCount)
	}

	return generator, nil
}

// openSessionRepo connects the configured storage. An unreachable Redis
// falls back to memory so the game still runs.
func openSessionRepo(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func()) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemorySessionRepository(), func() {}
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		log.Warn("could not connect to redis storage, using memory", "error", err)
		return repository.NewMemorySessionRepository(), func() {}
	}

	log.Info("using redis storage", "addr", conf.Redis.GetRedisAddr())

	return repository.NewSessionRepository(redisStorage.Connection), func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}
}

// applyDefaults configures a fresh session from config and flags.
func applyDefaults(ctx context.Context, manager *usecase.GameManager, conf *config.Config) error {
	if conf.Seed != "" {
		if _, _, err := manager.RegenerateCard(ctx, conf.Seed); err != nil {
			return fmt.Errorf("could not draw seeded card: %w", err)
		}
	}

	mode, err := entity.ParseGameMode(conf.DefaultMode)
	if err != nil {
		return fmt.Errorf("bad default mode: %w", err)
	}
	if mode != entity.ModeLine {
		if _, err = manager.SetGameMode(ctx, mode); err != nil {
			return fmt.Errorf("could not set default mode: %w", err)
		}
	}

	if conf.DefaultTarget != entity.DefaultTargetNumber {
		if _, err = manager.SetTargetNumber(ctx, conf.DefaultTarget); err != nil {
			return fmt.Errorf("could not set default target: %w", err)
		}
	}

	return nil
}

func runConsole(ctx context.Context, log *slog.Logger, c *console.Console, in io.Reader) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(ctx, in)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
