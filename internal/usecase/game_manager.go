package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/bingo"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/store"
)

type sessionRepo interface {
	Save(ctx context.Context, key string, session *entity.Session) error
	Load(ctx context.Context, key string) (*entity.Session, error)
	Delete(ctx context.Context, key string) error
}

// GameManager serialises every mutation of one store and carries out the
// effects it returns. Persistence failures never fail a mutation.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	storageKey  string

	mu    sync.Mutex
	store *store.Store
}

func NewGameManager(logger *slog.Logger, st *store.Store, sessionRepo sessionRepo, storageKey string) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		storageKey:  storageKey,

		store: st,
	}
}

// Restore loads the persisted session. It reports false when the session
// is missing or unusable and the fresh session stays in place.
func (that *GameManager) Restore(ctx context.Context) bool {
	log := that.logger.With("method", "Restore")

	session, err := that.sessionRepo.Load(ctx, that.storageKey)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		log.Info("no saved session, starting fresh", "key", that.storageKey)
		return false
	}
	if err != nil {
		log.Error("failed to load session, starting fresh", "error", err)
		return false
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.store.Restore(session); err != nil {
		log.Error("saved session is invalid, starting fresh", "error", err)
		return false
	}

	log.Info("session restored", "game_id", session.GameID, "marked", session.MarkedSquares.Len())

	return true
}

func (that *GameManager) ToggleSquare(ctx context.Context, row, col int) ([]store.Effect, error) {
	return that.apply(ctx, "ToggleSquare", func() ([]store.Effect, error) {
		return that.store.ToggleSquare(row, col)
	})
}

func (that *GameManager) SetGameMode(ctx context.Context, mode entity.GameMode) ([]store.Effect, error) {
	return that.apply(ctx, "SetGameMode", func() ([]store.Effect, error) {
		return that.store.SetGameMode(mode)
	})
}

func (that *GameManager) SetTargetNumber(ctx context.Context, n int) ([]store.Effect, error) {
	return that.apply(ctx, "SetTargetNumber", func() ([]store.Effect, error) {
		return that.store.SetTargetNumber(n)
	})
}

func (that *GameManager) ResetMarks(ctx context.Context) ([]store.Effect, error) {
	return that.apply(ctx, "ResetMarks", func() ([]store.Effect, error) {
		return that.store.ResetMarks(), nil
	})
}

// RegenerateCard draws a new card and returns the seed that reproduces it.
func (that *GameManager) RegenerateCard(ctx context.Context, seed string) (string, []store.Effect, error) {
	var used string

	effects, err := that.apply(ctx, "RegenerateCard", func() ([]store.Effect, error) {
		var (
			effects []store.Effect
			err     error
		)
		used, effects, err = that.store.RegenerateCard(seed)

		return effects, err
	})

	return used, effects, err
}

func (that *GameManager) InitGame(ctx context.Context, gameID, teamID, teamName string, advisor entity.Advisor) ([]store.Effect, error) {
	return that.apply(ctx, "InitGame", func() ([]store.Effect, error) {
		return that.store.InitGame(gameID, teamID, teamName, advisor)
	})
}

func (that *GameManager) InitSinglePlayerMode(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error) {
	return that.apply(ctx, "InitSinglePlayerMode", func() ([]store.Effect, error) {
		return that.store.InitSinglePlayerMode(teamName, advisor)
	})
}

func (that *GameManager) InitQuickGame(ctx context.Context) ([]store.Effect, error) {
	return that.apply(ctx, "InitQuickGame", that.store.InitQuickGame)
}

func (that *GameManager) PrepareSoloMode(ctx context.Context) ([]store.Effect, error) {
	return that.apply(ctx, "PrepareSoloMode", that.store.PrepareSoloMode)
}

func (that *GameManager) CompleteSoloSetup(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error) {
	return that.apply(ctx, "CompleteSoloSetup", func() ([]store.Effect, error) {
		return that.store.CompleteSoloSetup(teamName, advisor)
	})
}

// SetTeam names the local team without dealing a new card.
func (that *GameManager) SetTeam(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error) {
	return that.apply(ctx, "SetTeam", func() ([]store.Effect, error) {
		return that.store.SetTeam(teamName, advisor)
	})
}

func (that *GameManager) SetIsLocked(ctx context.Context, locked bool) ([]store.Effect, error) {
	return that.apply(ctx, "SetIsLocked", func() ([]store.Effect, error) {
		return that.store.SetIsLocked(locked), nil
	})
}

func (that *GameManager) ResetGame(ctx context.Context) ([]store.Effect, error) {
	return that.apply(ctx, "ResetGame", that.store.ResetGame)
}

// Snapshot returns a detached copy of the current session.
func (that *GameManager) Snapshot() *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.store.Snapshot()
}

func (that *GameManager) View() store.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.store.View()
}

// Leaderboard ranks the session's teams for the current mode.
func (that *GameManager) Leaderboard() []*entity.Team {
	session := that.Snapshot()

	return bingo.RankTeams(session.Teams, session.GameMode)
}

func (that *GameManager) apply(ctx context.Context, method string, mutate func() ([]store.Effect, error)) ([]store.Effect, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	effects, err := mutate()
	if err != nil {
		return nil, err
	}

	that.run(ctx, method, effects)

	return effects, nil
}

func (that *GameManager) run(ctx context.Context, method string, effects []store.Effect) {
	log := that.logger.With("method", method)

	for _, effect := range effects {
		switch e := effect.(type) {
		case store.PersistEffect:
			if err := that.sessionRepo.Save(ctx, that.storageKey, e.Session); err != nil {
				log.Error("failed to persist session, continuing in memory", "error", err)
			}
		case store.ClearEffect:
			if err := that.sessionRepo.Delete(ctx, that.storageKey); err != nil {
				log.Error("failed to delete stored session", "error", err)
			}
		case store.WinEffect:
			log.Info("win recorded", "type", e.Win.Type.String(), "message", e.Win.Message)
		case store.LockEffect:
			log.Info("lock changed", "locked", e.Locked)
		case store.ViewEffect:
			log.Debug("view changed", "view", e.View)
		}
	}
}
