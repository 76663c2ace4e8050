package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/apprentice-bingo/internal/bingo"
	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
	"github.com/rocketscienceinc/apprentice-bingo/internal/options"
	"github.com/rocketscienceinc/apprentice-bingo/internal/store"
)

func (that *Console) handleHelp(_ context.Context, _ []string) error {
	that.printf("Commands:\n")
	for _, name := range that.order {
		that.printf("  %s\n", that.handlers[name].usage)
	}

	return nil
}

func (that *Console) handleBoard(_ context.Context, _ []string) error {
	that.printf("%s", RenderBoard(that.uGame.Snapshot()))
	return nil
}

func (that *Console) handleMark(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}

	effects, err := that.uGame.ToggleSquare(ctx, row-1, col-1)
	if err != nil {
		return fmt.Errorf("failed to mark square: %w", err)
	}

	that.printf("%s", RenderBoard(that.uGame.Snapshot()))
	that.report(effects)

	return nil
}

func (that *Console) handleMarks(_ context.Context, _ []string) error {
	session := that.uGame.Snapshot()
	if session.MarkedSquares.Len() == 0 {
		that.printf("No squares marked.\n")
		return nil
	}

	for i, c := range session.MarkedSquares {
		that.printf("%d. (%d, %d) %s\n", i+1, c.Row+1, c.Col+1, session.Grid.At(c))
	}

	return nil
}

func (that *Console) handleWins(_ context.Context, _ []string) error {
	session := that.uGame.Snapshot()
	if len(session.PreviousWins) == 0 {
		that.printf("No wins yet.\n")
		return nil
	}

	for _, win := range session.PreviousWins {
		that.printf("%s [%s] %s\n", entity.FormatWinMessage(win), win.Type, win.Message)
	}

	return nil
}

func (that *Console) handleMode(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	mode, err := entity.ParseGameMode(strings.ToLower(args[0]))
	if err != nil {
		return err
	}

	effects, err := that.uGame.SetGameMode(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}

	that.printf("Mode set to %s. Marks cleared.\n", mode)
	that.report(effects)

	return nil
}

func (that *Console) handleTarget(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}

	effects, err := that.uGame.SetTargetNumber(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to set target: %w", err)
	}

	that.printf("Target set to %d. Marks cleared.\n", n)
	that.report(effects)

	return nil
}

func (that *Console) handleNewCard(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	var seed string
	if len(args) == 1 {
		seed = args[0]
	}

	used, effects, err := that.uGame.RegenerateCard(ctx, seed)
	if err != nil {
		return fmt.Errorf("failed to draw a new card: %w", err)
	}

	that.printf("New card drawn. Replay it with: new %s\n", used)
	that.report(effects)
	that.printf("%s", RenderBoard(that.uGame.Snapshot()))

	return nil
}

func (that *Console) handleReset(ctx context.Context, _ []string) error {
	effects, err := that.uGame.ResetMarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset marks: %w", err)
	}

	that.printf("Marks cleared. Same card, try again.\n")
	that.report(effects)

	return nil
}

func (that *Console) handleRestart(ctx context.Context, _ []string) error {
	effects, err := that.uGame.ResetGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.printf("Game reset.\n")
	that.report(effects)

	return nil
}

func (that *Console) handleSolo(ctx context.Context, _ []string) error {
	effects, err := that.uGame.PrepareSoloMode(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare solo game: %w", err)
	}

	that.report(effects)

	return nil
}

func (that *Console) handleQuick(ctx context.Context, _ []string) error {
	effects, err := that.uGame.InitQuickGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start quick game: %w", err)
	}

	session := that.uGame.Snapshot()
	that.printf("Quick game for %s with %s.\n", session.TeamName, session.TeamAdvisor.DisplayName())
	that.report(effects)

	return nil
}

func (that *Console) handleHost(ctx context.Context, args []string) error {
	name, advisor := parseTeam(args)
	if name == "" {
		name = options.RandomTeamName()
	}

	effects, err := that.uGame.InitGame(ctx, options.NewGameCode(), that.newTeamID(), name, advisor)
	if err != nil {
		return fmt.Errorf("failed to host game: %w", err)
	}

	that.printf("Hosting game %s as %s. Share the code.\n", that.uGame.Snapshot().GameID, name)
	that.report(effects)

	return nil
}

func (that *Console) handleJoin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	name, advisor := parseTeam(args[1:])

	effects, err := that.uGame.InitGame(ctx, args[0], that.newTeamID(), name, advisor)
	if err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	that.printf("Joined game %s.\n", args[0])
	that.report(effects)

	return nil
}

// handleSetup finishes solo preparation, or names the team of a joined
// multiplayer game.
func (that *Console) handleSetup(ctx context.Context, args []string) error {
	name, advisor := parseTeam(args)
	if name == "" {
		return errUsage
	}

	session := that.uGame.Snapshot()

	var (
		effects []store.Effect
		err     error
	)
	switch {
	case session.SoloSetupMode:
		if advisor == "" {
			advisor = entity.DefaultAdvisor
		}
		effects, err = that.uGame.CompleteSoloSetup(ctx, name, advisor)
	case session.TeamID != "":
		effects, err = that.uGame.SetTeam(ctx, name, advisor)
	default:
		that.printf("Nothing to set up. Start with solo, host or join.\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to set up team: %w", err)
	}

	that.report(effects)

	return nil
}

func (that *Console) handleLock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	var locked bool
	switch strings.ToLower(args[0]) {
	case "on":
		locked = true
	case "off":
		locked = false
	default:
		return errUsage
	}

	effects, err := that.uGame.SetIsLocked(ctx, locked)
	if err != nil {
		return fmt.Errorf("failed to change lock: %w", err)
	}

	that.report(effects)

	return nil
}

func (that *Console) handleLeaderboard(_ context.Context, _ []string) error {
	session := that.uGame.Snapshot()
	teams := that.uGame.Leaderboard()
	if len(teams) == 0 {
		that.printf("No teams yet.\n")
		return nil
	}

	for i, team := range teams {
		progress := bingo.Progress(team, session.GameMode, session.TargetNumber)
		that.printf("%d. %s (%s) %.0f%% wins: %d\n", i+1, team.Name, team.Advisor.DisplayName(), progress, len(team.Wins))
	}

	return nil
}

func (that *Console) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

// parseTeam reads "<team name...> [advisor]". The last word is taken as the
// advisor when it names one.
func parseTeam(args []string) (string, entity.Advisor) {
	if len(args) == 0 {
		return "", ""
	}

	var advisor entity.Advisor
	if last := entity.Advisor(strings.ToLower(args[len(args)-1])); last.Valid() {
		advisor = last
		args = args[:len(args)-1]
	}

	return strings.Join(args, " "), advisor
}
