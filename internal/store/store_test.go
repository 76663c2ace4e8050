package store

import (
	"errors"
	"testing"
	"time"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow   = time.Date(2024, 10, 1, 20, 0, 0, 0, time.UTC)
	errNoCards = errors.New("no cards left")
)

type failingGenerator struct{}

func (failingGenerator) Grid(string) (entity.Grid, error) { return entity.Grid{}, errNoCards }

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(options.Default(),
		WithClock(func() time.Time { return fixedNow }),
		WithTeamIDs(func() string { return "team-1" }),
		WithSeeds(func() string { return "generated-seed" }),
	)
	require.NoError(t, err)

	return s
}

func mark(t *testing.T, s *Store, cells ...entity.Coordinate) []entity.Win {
	t.Helper()

	var wins []entity.Win
	for _, c := range cells {
		effects, err := s.ToggleSquare(c.Row, c.Col)
		require.NoError(t, err)
		wins = append(wins, NewWins(effects)...)
	}

	return wins
}

func typesOf(wins []entity.Win) []string {
	out := make([]string, 0, len(wins))
	for _, w := range wins {
		out = append(out, w.Type.String())
	}

	return out
}

func TestNew(t *testing.T) {
	t.Run("Starts from the initial defaults", func(t *testing.T) {
		// When: creating a store
		s := newStore(t)

		// Then: the session is unlocked, host, empty and in line mode
		assert.NoError(t, s.Grid().Validate())
		assert.True(t, s.IsHost())
		assert.False(t, s.IsLocked())
		assert.False(t, s.IsSinglePlayer())
		assert.Equal(t, entity.ModeLine, s.GameMode())
		assert.Equal(t, entity.DefaultTargetNumber, s.TargetNumber())
		assert.Empty(t, s.Teams())
		assert.Empty(t, s.MarkedSquares())
		assert.Equal(t, ViewModeSelect, s.View())
	})

	t.Run("Fails when no card can be drawn", func(t *testing.T) {
		_, err := New(failingGenerator{})

		assert.ErrorIs(t, err, errNoCards)
	})
}

func TestStore_ToggleSquare(t *testing.T) {
	t.Run("Line scenario records row 0 then row 1", func(t *testing.T) {
		// Given: a line-mode game
		s := newStore(t)

		// When: marking row 0
		wins := mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})

		// Then: one row_0 win
		assert.Equal(t, []string{"row_0"}, typesOf(wins))

		// When: marking the centre
		wins = mark(t, s, entity.Coordinate{1, 1})

		// Then: no new win
		assert.Empty(t, wins)

		// When: completing row 1
		wins = mark(t, s, entity.Coordinate{1, 0}, entity.Coordinate{1, 2})

		// Then: row_1 is recorded and two wins exist in total
		assert.Equal(t, []string{"row_1"}, typesOf(wins))
		assert.Equal(t, []string{"row_0", "row_1"}, typesOf(s.Wins()))
		assert.False(t, s.IsLocked())
	})

	t.Run("One mark can complete two lines", func(t *testing.T) {
		s := newStore(t)
		mark(t, s, entity.Coordinate{1, 0}, entity.Coordinate{1, 2}, entity.Coordinate{0, 1}, entity.Coordinate{2, 1})

		wins := mark(t, s, entity.Coordinate{1, 1})

		assert.ElementsMatch(t, []string{"row_1", "col_1"}, typesOf(wins))
	})

	t.Run("Full house scenario fires once on the ninth mark and locks", func(t *testing.T) {
		// Given: a full-house game
		s := newStore(t)
		_, err := s.SetGameMode(entity.ModeFullHouse)
		require.NoError(t, err)

		all := []entity.Coordinate{{2, 2}, {0, 1}, {1, 1}, {0, 0}, {2, 0}, {1, 2}, {0, 2}, {1, 0}}

		// When: marking eight cells, including complete lines
		wins := mark(t, s, all...)

		// Then: nothing fires and the board is open
		assert.Empty(t, wins)
		assert.False(t, s.IsLocked())

		// When: marking the ninth
		effects, err := s.ToggleSquare(2, 1)
		require.NoError(t, err)

		// Then: exactly one full_house win and the board locks
		assert.Equal(t, []string{"full_house"}, typesOf(NewWins(effects)))
		assert.Contains(t, effects, Effect(LockEffect{Locked: true}))
		assert.True(t, s.IsLocked())
		assert.Equal(t, []string{"full_house"}, typesOf(s.PreviousWins()))
	})

	t.Run("Locked board rejects toggles without changing state", func(t *testing.T) {
		// Given: a full house has fired
		s := newStore(t)
		_, err := s.SetGameMode(entity.ModeFullHouse)
		require.NoError(t, err)
		mark(t, s, entity.AllCoordinates()...)
		before := s.MarkedSquares()

		// When: toggling any cell
		effects, err := s.ToggleSquare(1, 1)

		// Then: ErrGameLocked and nothing changed
		require.ErrorIs(t, err, apperror.ErrGameLocked)
		assert.Nil(t, effects)
		assert.Equal(t, before, s.MarkedSquares())
	})

	t.Run("Number mode fires at the fifth distinct mark and locks", func(t *testing.T) {
		// Given: number mode with target 5
		s := newStore(t)
		_, err := s.SetGameMode(entity.ModeNumber)
		require.NoError(t, err)
		_, err = s.SetTargetNumber(5)
		require.NoError(t, err)

		// When: marking four cells, unmarking one, then marking two more
		assert.Empty(t, mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2}, entity.Coordinate{1, 0}))
		assert.Empty(t, mark(t, s, entity.Coordinate{1, 0}))
		assert.Empty(t, mark(t, s, entity.Coordinate{1, 1}))
		wins := mark(t, s, entity.Coordinate{2, 2})

		// Then: number_5 fires with the first five marks and the board locks
		require.Equal(t, []string{"number_5"}, typesOf(wins))
		assert.Equal(t, []entity.Coordinate{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 2}}, wins[0].Squares)
		assert.True(t, s.IsLocked())
	})

	t.Run("Rejects coordinates off the card", func(t *testing.T) {
		s := newStore(t)

		for _, c := range [][2]int{{-1, 0}, {0, 3}, {3, 3}} {
			effects, err := s.ToggleSquare(c[0], c[1])

			require.ErrorIs(t, err, apperror.ErrInvalidCoordinate)
			assert.Nil(t, effects)
		}
		assert.Empty(t, s.MarkedSquares())
	})

	t.Run("Unmarking keeps recorded wins and re-marking does not re-fire", func(t *testing.T) {
		// Given: row 0 recorded
		s := newStore(t)
		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})

		// When: unmarking and re-marking a row cell
		assert.Empty(t, mark(t, s, entity.Coordinate{0, 1}))
		wins := mark(t, s, entity.Coordinate{0, 1})

		// Then: no new win, history still holds row_0 once
		assert.Empty(t, wins)
		assert.Equal(t, []string{"row_0"}, typesOf(s.PreviousWins()))
		assert.Equal(t, []string{"row_0"}, typesOf(s.Wins()))
	})

	t.Run("Every toggle persists a snapshot last", func(t *testing.T) {
		s := newStore(t)

		effects, err := s.ToggleSquare(0, 0)
		require.NoError(t, err)

		require.NotEmpty(t, effects)
		persist, ok := effects[len(effects)-1].(PersistEffect)
		require.True(t, ok)
		assert.Equal(t, entity.MarkedSquares{{0, 0}}, persist.Session.MarkedSquares)
	})
}

func TestStore_NoDuplicateWinTypes(t *testing.T) {
	// Given: a long sequence of toggles across modes
	s := newStore(t)
	sequence := []entity.Coordinate{
		{0, 0}, {0, 1}, {0, 2}, {0, 1}, {0, 1}, {1, 1}, {2, 2}, {1, 1}, {1, 1},
		{1, 0}, {2, 0}, {1, 2}, {0, 0}, {0, 0}, {2, 1}, {0, 2}, {0, 2},
	}

	// When: toggling them all
	mark(t, s, sequence...)

	// Then: every type in history is unique
	seen := map[entity.WinType]bool{}
	for _, win := range s.PreviousWins() {
		assert.False(t, seen[win.Type], "duplicate %s", win.Type)
		seen[win.Type] = true
	}
	assert.NotEmpty(t, seen)
}

func TestStore_AddWin(t *testing.T) {
	s := newStore(t)
	win := entity.Win{Type: entity.DiagonalWin(entity.DiagonalUp), Message: "diag"}

	effects := s.AddWin(win)
	assert.Equal(t, []entity.Win{win}, NewWins(effects))

	assert.Nil(t, s.AddWin(win))
	assert.Len(t, s.Wins(), 1)
	assert.Len(t, s.PreviousWins(), 1)
}

func TestStore_ConfigurationClearsProgress(t *testing.T) {
	t.Run("SetGameMode clears marks and history", func(t *testing.T) {
		s := newStore(t)
		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})

		_, err := s.SetGameMode(entity.ModeNumber)
		require.NoError(t, err)

		assert.Equal(t, entity.ModeNumber, s.GameMode())
		assert.Empty(t, s.MarkedSquares())
		assert.Empty(t, s.Wins())
		assert.Empty(t, s.PreviousWins())
	})

	t.Run("SetGameMode rejects unknown modes atomically", func(t *testing.T) {
		s := newStore(t)
		mark(t, s, entity.Coordinate{0, 0})

		_, err := s.SetGameMode("blackout")

		require.ErrorIs(t, err, apperror.ErrInvalidGameMode)
		assert.Equal(t, entity.ModeLine, s.GameMode())
		assert.Len(t, s.MarkedSquares(), 1)
	})

	t.Run("SetTargetNumber validates the range", func(t *testing.T) {
		s := newStore(t)
		mark(t, s, entity.Coordinate{2, 2})

		for _, n := range []int{0, 10, -3} {
			_, err := s.SetTargetNumber(n)
			require.ErrorIs(t, err, apperror.ErrInvalidTargetNumber)
		}
		assert.Equal(t, entity.DefaultTargetNumber, s.TargetNumber())
		assert.Len(t, s.MarkedSquares(), 1)

		_, err := s.SetTargetNumber(9)
		require.NoError(t, err)
		assert.Equal(t, 9, s.TargetNumber())
		assert.Empty(t, s.MarkedSquares())
	})
}

func TestStore_ResetMarks(t *testing.T) {
	t.Run("Clears history so the same line fires again", func(t *testing.T) {
		// Given: row 0 recorded
		s := newStore(t)
		grid := s.Grid()
		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})

		// When: resetting marks and re-marking row 0
		s.ResetMarks()
		wins := mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})

		// Then: row_0 fires again on the same card
		assert.Equal(t, []string{"row_0"}, typesOf(wins))
		assert.Equal(t, grid, s.Grid())
	})

	t.Run("Unlocks and keeps the mode", func(t *testing.T) {
		s := newStore(t)
		_, err := s.SetGameMode(entity.ModeFullHouse)
		require.NoError(t, err)
		mark(t, s, entity.AllCoordinates()...)
		require.True(t, s.IsLocked())

		effects := s.ResetMarks()

		assert.Contains(t, effects, Effect(LockEffect{Locked: false}))
		assert.False(t, s.IsLocked())
		assert.Equal(t, entity.ModeFullHouse, s.GameMode())
	})
}

func TestStore_RegenerateCard(t *testing.T) {
	t.Run("Seeded cards are reproducible", func(t *testing.T) {
		// Given: two stores
		a, b := newStore(t), newStore(t)

		// When: regenerating both with the same seed
		seedA, _, err := a.RegenerateCard("abc")
		require.NoError(t, err)
		seedB, _, err := b.RegenerateCard("abc")
		require.NoError(t, err)

		// Then: the cards match and the seed is reported
		assert.Equal(t, "abc", seedA)
		assert.Equal(t, seedA, seedB)
		assert.Equal(t, a.Grid(), b.Grid())
		assert.Equal(t, "abc", a.Seed())
	})

	t.Run("Empty seed is replaced and returned", func(t *testing.T) {
		s := newStore(t)

		seed, _, err := s.RegenerateCard("")
		require.NoError(t, err)

		assert.Equal(t, "generated-seed", seed)
		expected, err := options.Default().Grid("generated-seed")
		require.NoError(t, err)
		assert.Equal(t, expected, s.Grid())
	})

	t.Run("Clears progress and unlocks", func(t *testing.T) {
		s := newStore(t)
		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})
		s.SetIsLocked(true)

		_, effects, err := s.RegenerateCard("xyz")
		require.NoError(t, err)

		assert.Empty(t, s.MarkedSquares())
		assert.Empty(t, s.PreviousWins())
		assert.False(t, s.IsLocked())
		assert.Contains(t, effects, Effect(LockEffect{Locked: false}))
	})
}

func TestStore_SetGrid(t *testing.T) {
	s := newStore(t)
	grid, err := entity.GridFromOptions([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i"})
	require.NoError(t, err)
	mark(t, s, entity.Coordinate{0, 0})

	_, err = s.SetGrid(grid)
	require.NoError(t, err)

	assert.Equal(t, grid, s.Grid())
	assert.Empty(t, s.MarkedSquares())

	_, err = s.SetGrid(entity.Grid{})
	require.ErrorIs(t, err, apperror.ErrInvalidGrid)
	assert.Equal(t, grid, s.Grid())
}

func TestStore_InitGame(t *testing.T) {
	t.Run("First participant becomes host", func(t *testing.T) {
		// Given: a fresh store
		s := newStore(t)

		// When: creating a game
		effects, err := s.InitGame("bingo-1234", "team-a", "Impact", entity.AdvisorTim)
		require.NoError(t, err)

		// Then: one team is registered and the caller is host
		assert.True(t, s.IsHost())
		assert.Equal(t, "bingo-1234", s.GameID())
		assert.Equal(t, "team-a", s.TeamID())
		require.Len(t, s.Teams(), 1)
		team := s.Teams()[0]
		assert.Equal(t, "Impact", team.Name)
		assert.Equal(t, entity.AdvisorTim, team.Advisor)
		assert.Equal(t, fixedNow, team.CreatedAt)
		assert.Contains(t, effects, Effect(ViewEffect{View: ViewGame}))
	})

	t.Run("Joining an existing session is not host", func(t *testing.T) {
		s := newStore(t)
		_, err := s.InitGame("bingo-1234", "team-a", "", entity.AdvisorKaren)
		require.NoError(t, err)
		assert.Equal(t, ViewTeamSelect, s.View())

		_, err = s.InitGame("bingo-1234", "team-b", "Apex", entity.AdvisorNick)
		require.NoError(t, err)

		assert.False(t, s.IsHost())
		assert.Equal(t, ViewGame, s.View())
	})

	t.Run("Empty team id is rejected", func(t *testing.T) {
		s := newStore(t)

		_, err := s.InitGame("bingo-1", "  ", "Apex", entity.AdvisorNick)

		require.ErrorIs(t, err, apperror.ErrInvalidTeamID)
		assert.Empty(t, s.GameID())
	})

	t.Run("Unknown advisor is rejected", func(t *testing.T) {
		s := newStore(t)

		_, err := s.InitGame("bingo-1", "team-a", "Apex", "alan")

		require.ErrorIs(t, err, apperror.ErrInvalidAdvisor)
	})

	t.Run("Team mirrors marks and wins", func(t *testing.T) {
		s := newStore(t)
		_, err := s.InitGame("bingo-1", "team-a", "Apex", entity.AdvisorNick)
		require.NoError(t, err)

		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{1, 0}, entity.Coordinate{2, 0})

		team := s.Teams()[0]
		assert.Equal(t, s.MarkedSquares(), team.MarkedSquares)
		assert.Equal(t, []string{"col_0"}, typesOf(team.Wins))
	})
}

func TestStore_SinglePlayer(t *testing.T) {
	t.Run("InitSinglePlayerMode builds one team", func(t *testing.T) {
		s := newStore(t)

		_, err := s.InitSinglePlayerMode("Phoenix", entity.AdvisorMargaret)
		require.NoError(t, err)

		assert.True(t, s.IsSinglePlayer())
		assert.True(t, s.IsHost())
		assert.False(t, s.SoloSetupMode())
		assert.Equal(t, "team-1", s.TeamID())
		require.Len(t, s.Teams(), 1)
		assert.Equal(t, entity.SinglePlayerUserID, s.Teams()[0].UserID)
		assert.Equal(t, "Phoenix", s.Teams()[0].Name)
		assert.Equal(t, ViewGame, s.View())
	})

	t.Run("InitQuickGame picks a name and advisor", func(t *testing.T) {
		s := newStore(t)

		_, err := s.InitQuickGame()
		require.NoError(t, err)

		assert.Contains(t, options.TeamNames, s.TeamName())
		assert.True(t, s.TeamAdvisor().Valid())
		assert.True(t, s.IsSinglePlayer())
	})

	t.Run("PrepareSoloMode waits for setup", func(t *testing.T) {
		// Given: solo preparation
		s := newStore(t)
		effects, err := s.PrepareSoloMode()
		require.NoError(t, err)

		// Then: the team selector is shown
		assert.True(t, s.SoloSetupMode())
		assert.Equal(t, ViewTeamSelect, s.View())
		assert.Contains(t, effects, Effect(ViewEffect{View: ViewTeamSelect}))

		// When: completing with a blank name
		_, err = s.CompleteSoloSetup(" ", entity.AdvisorClaude)

		// Then: it is rejected and setup continues
		require.ErrorIs(t, err, apperror.ErrInvalidTeamName)
		assert.True(t, s.SoloSetupMode())

		// When: completing properly
		_, err = s.CompleteSoloSetup("Kinetic", entity.AdvisorClaude)
		require.NoError(t, err)

		// Then: the game starts
		assert.False(t, s.SoloSetupMode())
		assert.Equal(t, "Kinetic", s.TeamName())
		assert.Equal(t, ViewGame, s.View())
	})
}

func TestStore_ResetGame(t *testing.T) {
	// Given: a locked solo game
	s := newStore(t)
	_, err := s.InitSinglePlayerMode("Apex", entity.AdvisorTim)
	require.NoError(t, err)
	s.SetIsLocked(true)

	// When: resetting
	effects, err := s.ResetGame()
	require.NoError(t, err)

	// Then: everything is back to defaults
	assert.False(t, s.IsLocked())
	assert.True(t, s.IsHost())
	assert.False(t, s.IsSinglePlayer())
	assert.Empty(t, s.Teams())
	assert.Empty(t, s.TeamID())
	assert.NoError(t, s.Grid().Validate())
	assert.Contains(t, effects, Effect(LockEffect{Locked: false}))
	assert.Contains(t, effects, Effect(ViewEffect{View: ViewModeSelect}))

	// And: the stored session is cleared before the fresh one is written
	require.NotEmpty(t, effects)
	assert.Equal(t, Effect(ClearEffect{}), effects[0])
	assert.IsType(t, PersistEffect{}, effects[len(effects)-1])
}

func TestStore_ResetGameDropsSeed(t *testing.T) {
	s := newStore(t)
	_, _, err := s.RegenerateCard("abc")
	require.NoError(t, err)

	_, err = s.ResetGame()
	require.NoError(t, err)

	assert.Empty(t, s.Seed())
}

func TestStore_InitKeepsSeededCard(t *testing.T) {
	expected, err := options.Default().Grid("abc")
	require.NoError(t, err)

	tests := []struct {
		name string
		init func(s *Store) error
	}{
		{
			name: "InitGame",
			init: func(s *Store) error {
				_, err := s.InitGame("bingo-1", "team-a", "Impact", entity.AdvisorTim)
				return err
			},
		},
		{
			name: "InitSinglePlayerMode",
			init: func(s *Store) error {
				_, err := s.InitSinglePlayerMode("Apex", entity.AdvisorNick)
				return err
			},
		},
		{
			name: "PrepareSoloMode",
			init: func(s *Store) error {
				_, err := s.PrepareSoloMode()
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a card dealt from a known seed
			s := newStore(t)
			_, _, err := s.RegenerateCard("abc")
			require.NoError(t, err)

			// When: starting a game
			require.NoError(t, tt.init(s))

			// Then: the card can still be reproduced from the seed
			assert.Equal(t, "abc", s.Seed())
			assert.Equal(t, expected, s.Grid())
		})
	}
}

func TestStore_SetTeam(t *testing.T) {
	t.Run("Names a joined team without a new card", func(t *testing.T) {
		// Given: a joined game with a mark
		s := newStore(t)
		_, err := s.InitGame("bingo-1234", "team-a", "", entity.AdvisorKaren)
		require.NoError(t, err)
		require.Equal(t, ViewTeamSelect, s.View())
		mark(t, s, entity.Coordinate{1, 1})
		before := s.Snapshot()

		// When: naming the team
		effects, err := s.SetTeam("  Impact ", "")
		require.NoError(t, err)

		// Then: only the name changes and the game view opens
		assert.Equal(t, "Impact", s.TeamName())
		assert.Equal(t, entity.AdvisorKaren, s.TeamAdvisor())
		assert.Equal(t, before.Grid, s.Grid())
		assert.Equal(t, before.MarkedSquares, s.MarkedSquares())
		assert.Equal(t, before.IsHost, s.IsHost())
		assert.Equal(t, "bingo-1234", s.GameID())
		require.Len(t, s.Teams(), 1)
		assert.Equal(t, "Impact", s.Teams()[0].Name)
		assert.Equal(t, entity.AdvisorKaren, s.Teams()[0].Advisor)
		assert.Contains(t, effects, Effect(ViewEffect{View: ViewGame}))
	})

	t.Run("Changes the advisor when given", func(t *testing.T) {
		s := newStore(t)
		_, err := s.InitGame("bingo-1", "team-a", "Apex", entity.AdvisorKaren)
		require.NoError(t, err)

		_, err = s.SetTeam("Apex", entity.AdvisorNick)
		require.NoError(t, err)

		assert.Equal(t, entity.AdvisorNick, s.TeamAdvisor())
		assert.Equal(t, entity.AdvisorNick, s.Teams()[0].Advisor)
	})

	t.Run("Rejects bad input without changes", func(t *testing.T) {
		s := newStore(t)

		_, err := s.SetTeam("Apex", entity.AdvisorNick)
		require.ErrorIs(t, err, apperror.ErrInvalidTeamID)

		_, err = s.InitGame("bingo-1", "team-a", "Apex", entity.AdvisorKaren)
		require.NoError(t, err)

		_, err = s.SetTeam("   ", entity.AdvisorNick)
		require.ErrorIs(t, err, apperror.ErrInvalidTeamName)

		_, err = s.SetTeam("Kinetic", "alan")
		require.ErrorIs(t, err, apperror.ErrInvalidAdvisor)

		assert.Equal(t, "Apex", s.TeamName())
		assert.Equal(t, entity.AdvisorKaren, s.TeamAdvisor())
	})
}

func TestStore_SetIsLocked(t *testing.T) {
	s := newStore(t)

	effects := s.SetIsLocked(true)
	assert.True(t, s.IsLocked())
	assert.Contains(t, effects, Effect(LockEffect{Locked: true}))

	_, err := s.ToggleSquare(0, 0)
	require.ErrorIs(t, err, apperror.ErrGameLocked)

	effects = s.SetIsLocked(true)
	assert.NotContains(t, effects, Effect(LockEffect{Locked: true}))

	s.SetIsLocked(false)
	_, err = s.ToggleSquare(0, 0)
	require.NoError(t, err)
}

func TestStore_SnapshotRestore(t *testing.T) {
	t.Run("Restores a snapshot", func(t *testing.T) {
		// Given: a game in progress
		s := newStore(t)
		_, err := s.InitSinglePlayerMode("Apex", entity.AdvisorTim)
		require.NoError(t, err)
		mark(t, s, entity.Coordinate{0, 0}, entity.Coordinate{0, 1}, entity.Coordinate{0, 2})
		snapshot := s.Snapshot()

		// When: restoring into a new store
		other := newStore(t)
		require.NoError(t, other.Restore(snapshot))

		// Then: state matches and history still deduplicates
		assert.Equal(t, s.Grid(), other.Grid())
		assert.Equal(t, s.MarkedSquares(), other.MarkedSquares())
		assert.Empty(t, mark(t, other, entity.Coordinate{0, 1}, entity.Coordinate{0, 1}))
	})

	t.Run("Snapshot is detached from the store", func(t *testing.T) {
		s := newStore(t)
		snapshot := s.Snapshot()

		mark(t, s, entity.Coordinate{1, 1})

		assert.Empty(t, snapshot.MarkedSquares)
	})

	t.Run("Rejects invalid sessions", func(t *testing.T) {
		s := newStore(t)
		good := s.Snapshot()

		require.ErrorIs(t, s.Restore(nil), ErrNilSession)

		bad := good.Clone()
		bad.Grid = entity.Grid{}
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidGrid)

		bad = good.Clone()
		bad.GameMode = "bogus"
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidGameMode)

		bad = good.Clone()
		bad.TargetNumber = 0
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidTargetNumber)

		bad = good.Clone()
		bad.MarkedSquares = entity.MarkedSquares{{4, 4}}
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidCoordinate)

		bad = good.Clone()
		bad.MarkedSquares = entity.MarkedSquares{{0, 0}, {0, 0}}
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidSession)

		bad = good.Clone()
		bad.Wins = []entity.Win{{Type: entity.RowWin(0)}}
		bad.PreviousWins = []entity.Win{}
		require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidSession)

		bad = good.Clone()
		bad.Teams = []*entity.Team{nil}
		require.NotPanics(t, func() {
			require.ErrorIs(t, s.Restore(bad), apperror.ErrInvalidSession)
		})

		assert.Equal(t, good.Grid, s.Grid())
		assert.Empty(t, s.MarkedSquares())
	})

	t.Run("Duplicate marks cannot trigger number mode early", func(t *testing.T) {
		// Given: a session claiming four marks on two squares
		s := newStore(t)
		_, err := s.SetGameMode(entity.ModeNumber)
		require.NoError(t, err)
		bad := s.Snapshot()
		bad.MarkedSquares = entity.MarkedSquares{{0, 0}, {0, 0}, {0, 1}, {0, 1}}

		// When: restoring it
		err = s.Restore(bad)

		// Then: it is refused and one more mark does not win
		require.ErrorIs(t, err, apperror.ErrInvalidSession)
		assert.Empty(t, mark(t, s, entity.Coordinate{1, 1}))
	})
}
