package bingo

import (
	"fmt"

	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

type combo struct {
	winType entity.WinType
	cells   [entity.GridSize]entity.Coordinate
	message string
}

// winCombos lists every line on the card: rows, columns, then diagonals.
var winCombos = []combo{
	{entity.RowWin(0), [3]entity.Coordinate{{0, 0}, {0, 1}, {0, 2}}, "Row 1 complete!"},
	{entity.RowWin(1), [3]entity.Coordinate{{1, 0}, {1, 1}, {1, 2}}, "Row 2 complete!"},
	{entity.RowWin(2), [3]entity.Coordinate{{2, 0}, {2, 1}, {2, 2}}, "Row 3 complete!"},
	{entity.ColumnWin(0), [3]entity.Coordinate{{0, 0}, {1, 0}, {2, 0}}, "Column 1 complete!"},
	{entity.ColumnWin(1), [3]entity.Coordinate{{0, 1}, {1, 1}, {2, 1}}, "Column 2 complete!"},
	{entity.ColumnWin(2), [3]entity.Coordinate{{0, 2}, {1, 2}, {2, 2}}, "Column 3 complete!"},
	{entity.DiagonalWin(entity.DiagonalDown), [3]entity.Coordinate{{0, 0}, {1, 1}, {2, 2}}, "Diagonal (top-left to bottom-right) complete!"},
	{entity.DiagonalWin(entity.DiagonalUp), [3]entity.Coordinate{{0, 2}, {1, 1}, {2, 0}}, "Diagonal (top-right to bottom-left) complete!"},
}

// LineCount is the number of distinct lines a card offers.
var LineCount = len(winCombos)

// EvaluateWins returns every win condition the marks currently satisfy
// under mode. It does not consult any history.
func EvaluateWins(grid entity.Grid, marked entity.MarkedSquares, mode entity.GameMode, targetNumber int) []entity.Win {
	if grid.IsEmpty() {
		return []entity.Win{}
	}

	if mode == entity.ModeNumber {
		if win, ok := numberWin(marked, targetNumber); ok {
			return []entity.Win{win}
		}
		return []entity.Win{}
	}

	wins := []entity.Win{}
	for _, win := range structuralWins(marked) {
		if offered(mode, win.Type) {
			wins = append(wins, win)
		}
	}

	return wins
}

// offered reports whether mode scores a structural win of type t.
func offered(mode entity.GameMode, t entity.WinType) bool {
	switch mode {
	case entity.ModeLine:
		return t.IsLine()
	case entity.ModeFullHouse:
		return t.Kind == entity.KindFullHouse
	case entity.ModeNumber:
		return false
	default:
		return false
	}
}

// structuralWins reports every completed line plus full house, regardless of mode.
func structuralWins(marked entity.MarkedSquares) []entity.Win {
	wins := lineWins(marked)
	if win, ok := fullHouseWin(marked); ok {
		wins = append(wins, win)
	}

	return wins
}

func lineWins(marked entity.MarkedSquares) []entity.Win {
	wins := []entity.Win{}
	for _, c := range winCombos {
		if marked.Contains(c.cells[0]) && marked.Contains(c.cells[1]) && marked.Contains(c.cells[2]) {
			wins = append(wins, entity.Win{
				Type:    c.winType,
				Squares: c.cells[:],
				Message: c.message,
			})
		}
	}

	return wins
}

func fullHouseWin(marked entity.MarkedSquares) (entity.Win, bool) {
	all := entity.AllCoordinates()
	for _, c := range all {
		if !marked.Contains(c) {
			return entity.Win{}, false
		}
	}

	return entity.Win{
		Type:    entity.FullHouseWin(),
		Squares: all,
		Message: "FULL HOUSE! All squares complete!",
	}, true
}

func numberWin(marked entity.MarkedSquares, target int) (entity.Win, bool) {
	if target < entity.MinTargetNumber || marked.Len() < target {
		return entity.Win{}, false
	}

	return entity.Win{
		Type:    entity.NumberWin(target),
		Squares: marked.First(target),
		Message: fmt.Sprintf("You've marked %d squares!", target),
	}, true
}
