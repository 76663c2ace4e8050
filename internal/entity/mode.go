package entity

import (
	"fmt"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
)

type GameMode string

const (
	ModeLine      GameMode = "line"
	ModeFullHouse GameMode = "full_house"
	ModeNumber    GameMode = "number"
)

const (
	MinTargetNumber     = 1
	MaxTargetNumber     = CellCount
	DefaultTargetNumber = 5
)

func ParseGameMode(s string) (GameMode, error) {
	mode := GameMode(s)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidGameMode, s)
	}

	return mode, nil
}

func (that GameMode) Valid() bool {
	switch that {
	case ModeLine, ModeFullHouse, ModeNumber:
		return true
	default:
		return false
	}
}

// Terminal reports whether a win in this mode ends the game.
func (that GameMode) Terminal() bool {
	return that == ModeFullHouse || that == ModeNumber
}

func ValidateTargetNumber(n int) error {
	if n < MinTargetNumber || n > MaxTargetNumber {
		return fmt.Errorf("%w: %d (must be %d-%d)", apperror.ErrInvalidTargetNumber, n, MinTargetNumber, MaxTargetNumber)
	}

	return nil
}
