package console

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/apprentice-bingo/internal/entity"
)

// RenderBoard draws the card with a status line. Marked cells show [x].
func RenderBoard(session *entity.Session) string {
	var b strings.Builder

	name := session.TeamName
	if name == "" {
		name = "No team"
	}
	fmt.Fprintf(&b, "%s | Advisor: %s | Mode: %s", name, session.TeamAdvisor.DisplayName(), describeMode(session))
	if session.IsLocked {
		b.WriteString(" | LOCKED")
	}
	b.WriteString("\n")

	width := 0
	for _, c := range entity.AllCoordinates() {
		width = max(width, utf8.RuneCountInString(session.Grid.At(c)))
	}

	rule := "+" + strings.Repeat(strings.Repeat("-", width+6)+"+", entity.GridSize) + "\n"

	b.WriteString(rule)
	for row := range entity.GridSize {
		b.WriteString("|")
		for col := range entity.GridSize {
			c := entity.Coordinate{Row: row, Col: col}
			box := "[ ]"
			if session.MarkedSquares.Contains(c) {
				box = "[x]"
			}
			phrase := session.Grid.At(c)
			pad := width - utf8.RuneCountInString(phrase)
			fmt.Fprintf(&b, " %s %s%s |", box, phrase, strings.Repeat(" ", pad))
		}
		b.WriteString("\n")
		b.WriteString(rule)
	}

	fmt.Fprintf(&b, "Marked %d/%d | Wins: %d\n", session.MarkedSquares.Len(), entity.CellCount, len(session.PreviousWins))

	return b.String()
}

func describeMode(session *entity.Session) string {
	switch session.GameMode {
	case entity.ModeLine:
		return "any line"
	case entity.ModeFullHouse:
		return "full house"
	case entity.ModeNumber:
		return fmt.Sprintf("mark %d squares", session.TargetNumber)
	default:
		return string(session.GameMode)
	}
}
