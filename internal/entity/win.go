package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
)

type WinKind string

const (
	KindRow       WinKind = "row"
	KindColumn    WinKind = "col"
	KindDiagonal  WinKind = "diag"
	KindFullHouse WinKind = "full_house"
	KindNumber    WinKind = "number"
)

const (
	DiagonalDown = 1 // (0,0) to (2,2)
	DiagonalUp   = 2 // (0,2) to (2,0)
)

// WinType identifies a win condition. Index is the row or column for line
// wins, 1 or 2 for diagonals and the target count for number wins.
type WinType struct {
	Kind  WinKind
	Index int
}

func RowWin(row int) WinType        { return WinType{Kind: KindRow, Index: row} }
func ColumnWin(col int) WinType     { return WinType{Kind: KindColumn, Index: col} }
func DiagonalWin(which int) WinType { return WinType{Kind: KindDiagonal, Index: which} }
func FullHouseWin() WinType         { return WinType{Kind: KindFullHouse} }
func NumberWin(target int) WinType  { return WinType{Kind: KindNumber, Index: target} }

// IsLine reports whether the win is a row, column or diagonal.
func (that WinType) IsLine() bool {
	switch that.Kind {
	case KindRow, KindColumn, KindDiagonal:
		return true
	case KindFullHouse, KindNumber:
		return false
	default:
		return false
	}
}

// String renders the tag used on the wire, e.g. "row_0" or "number_5".
func (that WinType) String() string {
	if that.Kind == KindFullHouse {
		return string(KindFullHouse)
	}

	return string(that.Kind) + "_" + strconv.Itoa(that.Index)
}

func ParseWinType(s string) (WinType, error) {
	if s == string(KindFullHouse) {
		return FullHouseWin(), nil
	}

	kind, index, ok := strings.Cut(s, "_")
	if !ok {
		return WinType{}, fmt.Errorf("%w: %q", apperror.ErrUnknownWinType, s)
	}

	n, err := strconv.Atoi(index)
	if err != nil {
		return WinType{}, fmt.Errorf("%w: %q", apperror.ErrUnknownWinType, s)
	}

	switch t := (WinType{Kind: WinKind(kind), Index: n}); {
	case t.Kind == KindRow && n >= 0 && n < GridSize,
		t.Kind == KindColumn && n >= 0 && n < GridSize,
		t.Kind == KindDiagonal && (n == DiagonalDown || n == DiagonalUp),
		t.Kind == KindNumber && n >= MinTargetNumber && n <= MaxTargetNumber:
		return t, nil
	default:
		return WinType{}, fmt.Errorf("%w: %q", apperror.ErrUnknownWinType, s)
	}
}

func (that WinType) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *WinType) UnmarshalText(text []byte) error {
	t, err := ParseWinType(string(text))
	if err != nil {
		return err
	}

	*that = t

	return nil
}

// Win is a recorded win. It is never mutated after creation.
type Win struct {
	Type    WinType      `json:"type"`
	Squares []Coordinate `json:"squares"`
	Message string       `json:"message"`
}

// ContainsWin reports whether a win of type t is present in wins.
func ContainsWin(wins []Win, t WinType) bool {
	for _, win := range wins {
		if win.Type == t {
			return true
		}
	}

	return false
}

// FormatWinMessage returns the headline shown when a win is announced.
func FormatWinMessage(win Win) string {
	switch win.Type.Kind {
	case KindRow:
		switch win.Type.Index {
		case 0:
			return "Top Row Complete!"
		case 1:
			return "Middle Row Complete!"
		case 2:
			return "Bottom Row Complete!"
		}
	case KindColumn:
		switch win.Type.Index {
		case 0:
			return "Left Column Complete!"
		case 1:
			return "Middle Column Complete!"
		case 2:
			return "Right Column Complete!"
		}
	case KindDiagonal:
		if win.Type.Index == DiagonalDown {
			return "Diagonal (↘) Complete!"
		}
		return "Diagonal (↙) Complete!"
	case KindFullHouse:
		return "FULL HOUSE!"
	case KindNumber:
		return fmt.Sprintf("%d Squares Complete!", win.Type.Index)
	}

	if win.Message != "" {
		return win.Message
	}

	return "Win!"
}
