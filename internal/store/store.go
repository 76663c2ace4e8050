package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
	"github.com/rocketscienceinc/apprentice-bingo/internal/bingo"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/options"
)

const soloGameID = "solo"

var ErrNilSession = errors.New("session is nil")

type gridGenerator interface {
	Grid(seed string) (entity.Grid, error)
}

// Store is the single owner of a game session. It is not safe for
// concurrent use; wrap it behind one writer.
type Store struct {
	generator gridGenerator
	now       func() time.Time
	newTeamID func() string
	newSeed   func() string

	session *entity.Session
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithTeamIDs(newTeamID func() string) Option {
	return func(s *Store) { s.newTeamID = newTeamID }
}

func WithSeeds(newSeed func() string) Option {
	return func(s *Store) { s.newSeed = newSeed }
}

// New returns a store holding a fresh default session.
func New(generator gridGenerator, opts ...Option) (*Store, error) {
	s := &Store{
		generator: generator,
		now:       time.Now,
		newTeamID: options.NewTeamID,
		newSeed:   options.NewSeed,
	}
	for _, opt := range opts {
		opt(s)
	}

	session, err := s.freshSession("")
	if err != nil {
		return nil, err
	}
	s.session = session

	return s, nil
}

// Selectors.

func (that *Store) Grid() entity.Grid { return that.session.Grid }
func (that *Store) MarkedSquares() entity.MarkedSquares { return that.session.MarkedSquares.Clone() }
func (that *Store) GameID() string { return that.session.GameID }
func (that *Store) TeamID() string { return that.session.TeamID }
func (that *Store) TeamName() string { return that.session.TeamName }
func (that *Store) TeamAdvisor() entity.Advisor { return that.session.TeamAdvisor }
func (that *Store) IsHost() bool { return that.session.IsHost }
func (that *Store) IsLocked() bool { return that.session.IsLocked }
func (that *Store) IsSinglePlayer() bool { return that.session.IsSinglePlayer }
func (that *Store) SoloSetupMode() bool { return that.session.SoloSetupMode }
func (that *Store) GameMode() entity.GameMode { return that.session.GameMode }
func (that *Store) TargetNumber() int { return that.session.TargetNumber }
func (that *Store) Seed() string { return that.session.Seed }
func (that *Store) Wins() []entity.Win { return append([]entity.Win{}, that.session.Wins...) }
func (that *Store) PreviousWins() []entity.Win { return append([]entity.Win{}, that.session.PreviousWins...) }

func (that *Store) Teams() []*entity.Team {
	return that.Snapshot().Teams
}

// View mirrors the page routing: pick a mode, then a team, then play.
func (that *Store) View() View {
	s := that.session

	switch {
	case s.SoloSetupMode:
		return ViewTeamSelect
	case s.TeamID == "":
		return ViewModeSelect
	case !s.IsSinglePlayer && s.TeamName == "":
		return ViewTeamSelect
	default:
		return ViewGame
	}
}

// Snapshot returns a deep copy of the session.
func (that *Store) Snapshot() *entity.Session {
	return that.session.Clone()
}

// Restore replaces the session with a previously persisted one.
func (that *Store) Restore(session *entity.Session) error {
	if session == nil {
		return ErrNilSession
	}
	if err := validateSession(session); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	restored := session.Clone()
	if restored.Teams == nil {
		restored.Teams = []*entity.Team{}
	}
	if restored.MarkedSquares == nil {
		restored.MarkedSquares = entity.MarkedSquares{}
	}
	if restored.Wins == nil {
		restored.Wins = []entity.Win{}
	}
	if restored.PreviousWins == nil {
		restored.PreviousWins = []entity.Win{}
	}
	that.session = restored

	return nil
}

func validateSession(session *entity.Session) error {
	if err := session.Grid.Validate(); err != nil {
		return err
	}
	if !session.GameMode.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidGameMode, session.GameMode)
	}
	if err := entity.ValidateTargetNumber(session.TargetNumber); err != nil {
		return err
	}

	seen := entity.MarkedSquares{}
	for _, c := range session.MarkedSquares {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen.Contains(c) {
			return fmt.Errorf("%w: square (%d, %d) marked twice", apperror.ErrInvalidSession, c.Row, c.Col)
		}
		seen = append(seen, c)
	}

	for _, win := range session.Wins {
		if !entity.ContainsWin(session.PreviousWins, win.Type) {
			return fmt.Errorf("%w: win %s missing from history", apperror.ErrInvalidSession, win.Type)
		}
	}

	for i, team := range session.Teams {
		if team == nil {
			return fmt.Errorf("%w: team %d is empty", apperror.ErrInvalidSession, i)
		}
	}

	return nil
}

// InitGame starts a multiplayer session for one local team. The first
// game id seen by this store makes the caller host.
func (that *Store) InitGame(gameID, teamID, teamName string, advisor entity.Advisor) ([]Effect, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, apperror.ErrInvalidTeamID
	}
	if advisor == "" {
		advisor = entity.DefaultAdvisor
	}
	if !advisor.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidAdvisor, advisor)
	}
	if gameID == "" {
		gameID = options.NewGameCode()
	}

	before := that.View()
	isHost := that.session.GameID == ""

	session, err := that.freshSession(that.session.Seed)
	if err != nil {
		return nil, err
	}

	session.GameID = gameID
	session.TeamID = teamID
	session.TeamName = teamName
	session.TeamAdvisor = advisor
	session.IsHost = isHost
	session.Teams = []*entity.Team{entity.NewTeam(teamID, teamName, advisor, teamID, that.now())}
	that.session = session

	return that.commit(before), nil
}

// ToggleSquare flips a cell and records any newly satisfied wins.
func (that *Store) ToggleSquare(row, col int) ([]Effect, error) {
	cell, err := entity.NewCoordinate(row, col)
	if err != nil {
		return nil, err
	}
	if that.session.IsLocked {
		return nil, apperror.ErrGameLocked
	}

	before := that.View()
	s := that.session
	s.MarkedSquares.Toggle(cell)

	var effects []Effect
	terminal := false

	for _, win := range bingo.EvaluateWins(s.Grid, s.MarkedSquares, s.GameMode, s.TargetNumber) {
		if !that.addWin(win) {
			continue
		}
		effects = append(effects, WinEffect{Win: win})

		if s.GameMode.Terminal() && !win.Type.IsLine() {
			terminal = true
		}
	}

	if terminal && !s.IsLocked {
		s.IsLocked = true
		effects = append(effects, LockEffect{Locked: true})
	}

	return that.commit(before, effects...), nil
}

// AddWin records win unless a win of the same type is already in the
// session history. The caller gets back a WinEffect only when recorded.
func (that *Store) AddWin(win entity.Win) []Effect {
	before := that.View()
	if !that.addWin(win) {
		return nil
	}

	return that.commit(before, WinEffect{Win: win})
}

// SetGameMode changes the rule set and invalidates all progress.
func (that *Store) SetGameMode(mode entity.GameMode) ([]Effect, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidGameMode, mode)
	}

	before := that.View()
	that.session.GameMode = mode
	that.session.ClearProgress()

	return that.commit(before), nil
}

// SetTargetNumber changes the number-mode target and invalidates all progress.
func (that *Store) SetTargetNumber(n int) ([]Effect, error) {
	if err := entity.ValidateTargetNumber(n); err != nil {
		return nil, err
	}

	before := that.View()
	that.session.TargetNumber = n
	that.session.ClearProgress()

	return that.commit(before), nil
}

// ResetMarks keeps the card and mode but starts scoring again.
func (that *Store) ResetMarks() []Effect {
	before := that.View()
	that.session.ClearProgress()

	return that.commit(before, that.unlock()...)
}

// RegenerateCard draws a new card. An empty seed is replaced with a fresh
// one so the card can always be replayed; the seed used is returned.
func (that *Store) RegenerateCard(seed string) (string, []Effect, error) {
	if seed == "" {
		seed = that.newSeed()
	}

	grid, err := that.generator.Grid(seed)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate card: %w", err)
	}

	before := that.View()
	that.session.Grid = grid
	that.session.Seed = seed
	that.session.ClearProgress()

	return seed, that.commit(before, that.unlock()...), nil
}

// SetGrid installs a card chosen by the host.
func (that *Store) SetGrid(grid entity.Grid) ([]Effect, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	before := that.View()
	that.session.Grid = grid
	that.session.Seed = ""
	that.session.ClearProgress()

	return that.commit(before, that.unlock()...), nil
}

// ResetGame tears the session down to its initial defaults.
func (that *Store) ResetGame() ([]Effect, error) {
	session, err := that.freshSession("")
	if err != nil {
		return nil, err
	}

	before := that.View()
	wasLocked := that.session.IsLocked
	that.session = session

	effects := []Effect{ClearEffect{}}
	if wasLocked {
		effects = append(effects, LockEffect{Locked: false})
	}

	return that.commit(before, effects...), nil
}

// InitSinglePlayerMode starts a solo game. A blank name or advisor is
// picked at random.
func (that *Store) InitSinglePlayerMode(teamName string, advisor entity.Advisor) ([]Effect, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		teamName = options.RandomTeamName()
	}
	if advisor == "" {
		advisor = options.RandomAdvisor()
	}
	if !advisor.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidAdvisor, advisor)
	}

	session, err := that.freshSession(that.session.Seed)
	if err != nil {
		return nil, err
	}

	before := that.View()
	teamID := that.newTeamID()

	session.GameID = soloGameID
	session.TeamID = teamID
	session.TeamName = teamName
	session.TeamAdvisor = advisor
	session.IsHost = true
	session.IsSinglePlayer = true
	session.Teams = []*entity.Team{entity.NewTeam(teamID, teamName, advisor, entity.SinglePlayerUserID, that.now())}
	that.session = session

	return that.commit(before), nil
}

// InitQuickGame starts a solo game with a random team name and advisor.
func (that *Store) InitQuickGame() ([]Effect, error) {
	return that.InitSinglePlayerMode("", "")
}

// PrepareSoloMode enters the setup step where the player picks a name and
// advisor before the solo game starts.
func (that *Store) PrepareSoloMode() ([]Effect, error) {
	session, err := that.freshSession(that.session.Seed)
	if err != nil {
		return nil, err
	}

	before := that.View()
	session.IsSinglePlayer = true
	session.SoloSetupMode = true
	that.session = session

	return that.commit(before), nil
}

// CompleteSoloSetup finishes PrepareSoloMode with the chosen identity.
func (that *Store) CompleteSoloSetup(teamName string, advisor entity.Advisor) ([]Effect, error) {
	if strings.TrimSpace(teamName) == "" {
		return nil, apperror.ErrInvalidTeamName
	}
	if !advisor.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidAdvisor, advisor)
	}

	return that.InitSinglePlayerMode(teamName, advisor)
}

// SetTeam names the local team of a joined game. The card, marks, wins and
// host flag are kept. An empty advisor keeps the current one.
func (that *Store) SetTeam(teamName string, advisor entity.Advisor) ([]Effect, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, apperror.ErrInvalidTeamName
	}
	if that.session.TeamID == "" {
		return nil, apperror.ErrInvalidTeamID
	}
	if advisor == "" {
		advisor = that.session.TeamAdvisor
	}
	if advisor == "" {
		advisor = entity.DefaultAdvisor
	}
	if !advisor.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidAdvisor, advisor)
	}

	before := that.View()
	that.session.TeamName = teamName
	that.session.TeamAdvisor = advisor

	if team := that.session.CurrentTeam(); team != nil {
		team.Name = teamName
		team.Advisor = advisor
	} else {
		that.session.Teams = append(that.session.Teams,
			entity.NewTeam(that.session.TeamID, teamName, advisor, that.session.TeamID, that.now()))
	}

	return that.commit(before), nil
}

// SetIsLocked is the explicit lock override used by host controls.
func (that *Store) SetIsLocked(locked bool) []Effect {
	before := that.View()

	var effects []Effect
	if that.session.IsLocked != locked {
		that.session.IsLocked = locked
		effects = append(effects, LockEffect{Locked: locked})
	}

	return that.commit(before, effects...)
}

func (that *Store) addWin(win entity.Win) bool {
	if entity.ContainsWin(that.session.PreviousWins, win.Type) {
		return false
	}

	that.session.Wins = append(that.session.Wins, win)
	that.session.PreviousWins = append(that.session.PreviousWins, win)

	return true
}

func (that *Store) unlock() []Effect {
	if !that.session.IsLocked {
		return nil
	}
	that.session.IsLocked = false

	return []Effect{LockEffect{Locked: false}}
}

// commit mirrors progress onto the local team and appends the view and
// persist effects.
func (that *Store) commit(before View, effects ...Effect) []Effect {
	if team := that.session.CurrentTeam(); team != nil {
		team.MarkedSquares = that.session.MarkedSquares.Clone()
		team.Wins = append([]entity.Win{}, that.session.Wins...)
	}

	if after := that.View(); after != before {
		effects = append(effects, ViewEffect{View: after})
	}

	return append(effects, PersistEffect{Session: that.Snapshot()})
}

// freshSession builds the initial defaults around a card drawn from seed.
func (that *Store) freshSession(seed string) (*entity.Session, error) {
	grid, err := that.generator.Grid(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate card: %w", err)
	}

	return entity.NewSession(grid, seed), nil
}
