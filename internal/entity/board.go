package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
)

const (
	GridSize  = 3
	CellCount = GridSize * GridSize
)

// Coordinate addresses a single grid cell, 0-indexed.
type Coordinate struct {
	Row int
	Col int
}

func NewCoordinate(row, col int) (Coordinate, error) {
	c := Coordinate{Row: row, Col: col}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

func (that Coordinate) Validate() error {
	if that.Row < 0 || that.Row >= GridSize || that.Col < 0 || that.Col >= GridSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, that.Row, that.Col)
	}

	return nil
}

// MarshalJSON encodes the coordinate as a [row, col] pair.
func (that Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal coordinate: %w", err)
	}

	that.Row, that.Col = pair[0], pair[1]

	return nil
}

// AllCoordinates returns every cell in row-major order.
func AllCoordinates() []Coordinate {
	cells := make([]Coordinate, 0, CellCount)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cells = append(cells, Coordinate{Row: row, Col: col})
		}
	}

	return cells
}

// Grid is the 3x3 card of phrases.
type Grid [GridSize][GridSize]string

// GridFromOptions lays out exactly nine phrases row by row.
func GridFromOptions(options []string) (Grid, error) {
	var grid Grid
	if len(options) != CellCount {
		return grid, fmt.Errorf("%w: need %d phrases, got %d", apperror.ErrInvalidGrid, CellCount, len(options))
	}

	for i, option := range options {
		grid[i/GridSize][i%GridSize] = option
	}

	return grid, nil
}

func (that Grid) At(c Coordinate) string {
	return that[c.Row][c.Col]
}

func (that Grid) IsEmpty() bool {
	return that == Grid{}
}

// Validate rejects grids with blank or repeated phrases.
func (that Grid) Validate() error {
	seen := make(map[string]struct{}, CellCount)
	for _, c := range AllCoordinates() {
		phrase := that.At(c)
		if phrase == "" {
			return fmt.Errorf("%w: empty cell at (%d, %d)", apperror.ErrInvalidGrid, c.Row, c.Col)
		}
		if _, ok := seen[phrase]; ok {
			return fmt.Errorf("%w: duplicate phrase %q", apperror.ErrInvalidGrid, phrase)
		}
		seen[phrase] = struct{}{}
	}

	return nil
}

// MarkedSquares is a set of coordinates that remembers insertion order.
type MarkedSquares []Coordinate

func (that MarkedSquares) Contains(c Coordinate) bool {
	return that.indexOf(c) >= 0
}

func (that MarkedSquares) Len() int {
	return len(that)
}

// Toggle flips c and reports whether it is marked afterwards.
func (that *MarkedSquares) Toggle(c Coordinate) bool {
	if i := that.indexOf(c); i >= 0 {
		*that = append((*that)[:i:i], (*that)[i+1:]...)
		return false
	}

	*that = append(*that, c)

	return true
}

// First returns the first n marks in insertion order.
func (that MarkedSquares) First(n int) []Coordinate {
	if n > len(that) {
		n = len(that)
	}

	out := make([]Coordinate, n)
	copy(out, that[:n])

	return out
}

func (that MarkedSquares) Clone() MarkedSquares {
	out := make(MarkedSquares, len(that))
	copy(out, that)

	return out
}

func (that MarkedSquares) indexOf(c Coordinate) int {
	for i, marked := range that {
		if marked == c {
			return i
		}
	}

	return -1
}
