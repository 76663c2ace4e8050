package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/apprentice-bingo/internal"
	"github.com/rocketscienceinc/apprentice-bingo/internal/config"
)

const releaseVersion = "0.1.0"

type flags struct {
	configPath string
	seed       string
	mode       string
	target     int
}

// main - is the entry point of the application. It parses flags, loads the configuration and runs the game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "apprentice-bingo",
		Short:         "Play Apprentice bingo on a 3x3 card from the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Load(f.configPath)
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("seed") {
				conf.Seed = f.seed
			}
			if fs.Changed("mode") {
				conf.DefaultMode = f.mode
			}
			if fs.Changed("target") {
				conf.DefaultTarget = f.target
			}

			if err = app.RunApp(cmd.Context(), initLogger(conf), conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", defaultConfigPath(), "path to the YAML config file")
	fs.StringVarP(&f.seed, "seed", "s", "", "seed for a reproducible card (env: BINGO_SEED)")
	fs.StringVarP(&f.mode, "mode", "m", "line", "game mode: line, full_house or number (env: BINGO_DEFAULT_MODE)")
	fs.IntVarP(&f.target, "target", "t", 5, "squares to mark in number mode, 1-9 (env: BINGO_DEFAULT_TARGET)")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func defaultConfigPath() string {
	baseDir, err := os.Getwd()
	if err != nil {
		return "config.yml"
	}

	return filepath.Join(baseDir, "config.yml")
}

// initialize logger. Logs go to stderr so they stay out of the board output.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
