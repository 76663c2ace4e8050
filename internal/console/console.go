package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/store"
)

var (
	errQuit  = errors.New("quit")
	errUsage = errors.New("wrong arguments")
)

type uGame interface {
	ToggleSquare(ctx context.Context, row, col int) ([]store.Effect, error)
	SetGameMode(ctx context.Context, mode entity.GameMode) ([]store.Effect, error)
	SetTargetNumber(ctx context.Context, n int) ([]store.Effect, error)
	ResetMarks(ctx context.Context) ([]store.Effect, error)
	RegenerateCard(ctx context.Context, seed string) (string, []store.Effect, error)

	InitGame(ctx context.Context, gameID, teamID, teamName string, advisor entity.Advisor) ([]store.Effect, error)
	InitSinglePlayerMode(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error)
	InitQuickGame(ctx context.Context) ([]store.Effect, error)
	PrepareSoloMode(ctx context.Context) ([]store.Effect, error)
	CompleteSoloSetup(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error)
	SetTeam(ctx context.Context, teamName string, advisor entity.Advisor) ([]store.Effect, error)
	SetIsLocked(ctx context.Context, locked bool) ([]store.Effect, error)
	ResetGame(ctx context.Context) ([]store.Effect, error)

	Snapshot() *entity.Session
	View() store.View
	Leaderboard() []*entity.Team
}

type handler struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Console drives a game from line-oriented text commands.
type Console struct {
	logger *slog.Logger
	uGame  uGame
	out    io.Writer

	newTeamID func() string
	handlers  map[string]handler
	order     []string
}

func New(logger *slog.Logger, uGame uGame, out io.Writer, newTeamID func() string) *Console {
	console := &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		out:    out,

		newTeamID: newTeamID,
		handlers:  make(map[string]handler),
	}

	console.register("help", "help", console.handleHelp)
	console.register("board", "board", console.handleBoard)
	console.register("mark", "mark <row 1-3> <col 1-3>", console.handleMark)
	console.register("marks", "marks", console.handleMarks)
	console.register("wins", "wins", console.handleWins)
	console.register("mode", "mode <line|full_house|number>", console.handleMode)
	console.register("target", "target <1-9>", console.handleTarget)
	console.register("new", "new [seed]", console.handleNewCard)
	console.register("reset", "reset", console.handleReset)
	console.register("restart", "restart", console.handleRestart)
	console.register("solo", "solo", console.handleSolo)
	console.register("quick", "quick", console.handleQuick)
	console.register("host", "host [team name] [advisor]", console.handleHost)
	console.register("join", "join <code> [team name] [advisor]", console.handleJoin)
	console.register("setup", "setup <team name> [advisor]", console.handleSetup)
	console.register("lock", "lock <on|off>", console.handleLock)
	console.register("leaderboard", "leaderboard", console.handleLeaderboard)
	console.register("quit", "quit", console.handleQuit)

	return console
}

func (that *Console) register(name, usage string, run func(context.Context, []string) error) {
	that.handlers[name] = handler{usage: usage, run: run}
	that.order = append(that.order, name)
}

// Run reads commands from in until it is exhausted, quit is entered or ctx
// is cancelled.
func (that *Console) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	that.printf("Apprentice Bingo. Type help for commands.\n")
	that.showView(that.uGame.View())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		err := that.Execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			that.printf("Bye.\n")
			return nil
		}
		if err != nil {
			log.Debug("command failed", "error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

// Execute runs a single command line. Failures are reported to the output
// and also returned.
func (that *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := that.handlers[name]
	if !ok {
		that.printf("Unknown command %q. Type help for commands.\n", name)
		return fmt.Errorf("unknown command %q", name)
	}

	err := cmd.run(ctx, fields[1:])
	switch {
	case err == nil, errors.Is(err, errQuit):
	case errors.Is(err, errUsage):
		that.printf("Usage: %s\n", cmd.usage)
	default:
		that.printf("Error: %v\n", err)
	}

	return err
}

// report prints what the effects announce.
func (that *Console) report(effects []store.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case store.WinEffect:
			that.printf("*** %s *** %s\n", entity.FormatWinMessage(e.Win), e.Win.Message)
		case store.LockEffect:
			if e.Locked {
				that.printf("Board locked.\n")
			} else {
				that.printf("Board unlocked.\n")
			}
		case store.ViewEffect:
			that.showView(e.View)
		}
	}
}

func (that *Console) showView(view store.View) {
	switch view {
	case store.ViewModeSelect:
		that.printf("Start a game: solo, quick, host [team name] [advisor] or join <code>.\n")
	case store.ViewTeamSelect:
		that.printf("Choose your team: setup <team name> [advisor]. Advisors: %s.\n", advisorList())
	case store.ViewGame:
		that.printf("%s", RenderBoard(that.uGame.Snapshot()))
	}
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func advisorList() string {
	names := make([]string, 0, len(entity.Advisors))
	for _, advisor := range entity.Advisors {
		names = append(names, string(advisor))
	}

	return strings.Join(names, ", ")
}
