package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/apprentice-bingo/internal/apperror"
)

type Advisor string

const (
	AdvisorKaren    Advisor = "karen"
	AdvisorTim      Advisor = "tim"
	AdvisorClaude   Advisor = "claude"
	AdvisorNick     Advisor = "nick"
	AdvisorMargaret Advisor = "margaret"

	DefaultAdvisor = AdvisorKaren
)

const SinglePlayerUserID = "single-player"

var Advisors = []Advisor{AdvisorKaren, AdvisorTim, AdvisorClaude, AdvisorNick, AdvisorMargaret}

var advisorNames = map[Advisor]string{
	AdvisorKaren:    "Karen Brady",
	AdvisorTim:      "Tim Campbell",
	AdvisorClaude:   "Claude Littner",
	AdvisorNick:     "Nick Hewer",
	AdvisorMargaret: "Margaret Mountford",
}

func ParseAdvisor(s string) (Advisor, error) {
	advisor := Advisor(s)
	if !advisor.Valid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidAdvisor, s)
	}

	return advisor, nil
}

func (that Advisor) Valid() bool {
	_, ok := advisorNames[that]
	return ok
}

// DisplayName returns the advisor's full name, or "None" when unset.
func (that Advisor) DisplayName() string {
	if that == "" {
		return "None"
	}
	if name, ok := advisorNames[that]; ok {
		return name
	}

	return string(that)
}

type Team struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Advisor       Advisor       `json:"advisor"`
	MarkedSquares MarkedSquares `json:"markedSquares"`
	Wins          []Win         `json:"wins"`
	CreatedAt     time.Time     `json:"createdAt"`
	UserID        string        `json:"userId"`
}

func NewTeam(id, name string, advisor Advisor, userID string, createdAt time.Time) *Team {
	return &Team{
		ID:            id,
		Name:          name,
		Advisor:       advisor,
		MarkedSquares: MarkedSquares{},
		Wins:          []Win{},
		CreatedAt:     createdAt,
		UserID:        userID,
	}
}

func (that *Team) HasWin(t WinType) bool {
	return ContainsWin(that.Wins, t)
}

// Clone returns a deep copy. A nil team clones to nil.
func (that *Team) Clone() *Team {
	if that == nil {
		return nil
	}

	clone := *that
	clone.MarkedSquares = that.MarkedSquares.Clone()
	clone.Wins = append([]Win(nil), that.Wins...)

	return &clone
}
