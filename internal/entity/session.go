package entity

// Session is the complete game state owned by the store. It is also the
// shape written through the persistence boundary.
type Session struct {
	GameID      string  `json:"gameId,omitempty"`
	TeamID      string  `json:"teamId,omitempty"`
	TeamName    string  `json:"teamName,omitempty"`
	TeamAdvisor Advisor `json:"teamAdvisor,omitempty"`

	Grid          Grid          `json:"grid"`
	Seed          string        `json:"seed,omitempty"`
	MarkedSquares MarkedSquares `json:"markedSquares"`
	Teams         []*Team       `json:"teams"`

	IsHost         bool `json:"isHost"`
	IsLocked       bool `json:"isLocked"`
	IsSinglePlayer bool `json:"isSinglePlayer"`
	SoloSetupMode  bool `json:"soloSetupMode"`

	GameMode     GameMode `json:"gameMode"`
	TargetNumber int      `json:"targetNumber"`

	Wins         []Win `json:"wins"`
	PreviousWins []Win `json:"previousWins"`
}

// NewSession returns the initial defaults: no teams, unlocked, host.
func NewSession(grid Grid, seed string) *Session {
	return &Session{
		Grid:          grid,
		Seed:          seed,
		MarkedSquares: MarkedSquares{},
		Teams:         []*Team{},
		IsHost:        true,
		GameMode:      ModeLine,
		TargetNumber:  DefaultTargetNumber,
		Wins:          []Win{},
		PreviousWins:  []Win{},
	}
}

// CurrentTeam returns the team matching TeamID, if any.
func (that *Session) CurrentTeam() *Team {
	for _, team := range that.Teams {
		if team.ID == that.TeamID {
			return team
		}
	}

	return nil
}

// ClearProgress drops marks and the whole win history.
func (that *Session) ClearProgress() {
	that.MarkedSquares = MarkedSquares{}
	that.Wins = []Win{}
	that.PreviousWins = []Win{}
}

func (that *Session) Clone() *Session {
	clone := *that
	clone.MarkedSquares = that.MarkedSquares.Clone()
	clone.Wins = append([]Win{}, that.Wins...)
	clone.PreviousWins = append([]Win{}, that.PreviousWins...)

	clone.Teams = make([]*Team, 0, len(that.Teams))
	for _, team := range that.Teams {
		clone.Teams = append(clone.Teams, team.Clone())
	}

	return &clone
}
