package bingo

import (
	"slices"

	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

// Progress returns how far a team is towards the mode's goal, 0-100.
func Progress(team *entity.Team, mode entity.GameMode, targetNumber int) float64 {
	var done, goal int

	switch mode {
	case entity.ModeLine:
		done, goal = len(team.Wins), LineCount
	case entity.ModeFullHouse:
		done, goal = team.MarkedSquares.Len(), entity.CellCount
	case entity.ModeNumber:
		done, goal = team.MarkedSquares.Len(), targetNumber
	default:
		return 0
	}

	if goal <= 0 {
		return 0
	}

	return min(float64(done)/float64(goal)*100, 100)
}

// RankTeams orders teams best first for mode. Ties keep their input order.
func RankTeams(teams []*entity.Team, mode entity.GameMode) []*entity.Team {
	ranked := slices.Clone(teams)

	slices.SortStableFunc(ranked, func(a, b *entity.Team) int {
		switch mode {
		case entity.ModeLine:
			return len(b.Wins) - len(a.Wins)
		case entity.ModeFullHouse:
			aHas, bHas := a.HasWin(entity.FullHouseWin()), b.HasWin(entity.FullHouseWin())
			if aHas != bHas {
				if aHas {
					return -1
				}
				return 1
			}
			return b.MarkedSquares.Len() - a.MarkedSquares.Len()
		case entity.ModeNumber:
			return b.MarkedSquares.Len() - a.MarkedSquares.Len()
		default:
			return 0
		}
	})

	return ranked
}
