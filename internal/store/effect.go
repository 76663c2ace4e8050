package store

import "github.com/rocketscienceinc/apprentice-bingo/internal/entity"

// Effect is work a mutation asks the caller to carry out. The store itself
// performs no I/O.
type Effect interface {
	isEffect()
}

// PersistEffect carries a snapshot to write through the persistence boundary.
type PersistEffect struct {
	Session *entity.Session
}

// ClearEffect asks for the stored session to be dropped. It precedes the
// PersistEffect of the replacement session.
type ClearEffect struct{}

// WinEffect announces a newly recorded win.
type WinEffect struct {
	Win entity.Win
}

// LockEffect reports a lock state change.
type LockEffect struct {
	Locked bool
}

// ViewEffect asks the presentation layer to switch screens.
type ViewEffect struct {
	View View
}

func (PersistEffect) isEffect() {}
func (ClearEffect) isEffect()   {}
func (WinEffect) isEffect()     {}
func (LockEffect) isEffect()    {}
func (ViewEffect) isEffect()    {}

// View is the screen the presentation layer should show.
type View string

const (
	ViewModeSelect View = "mode-select"
	ViewTeamSelect View = "team-select"
	ViewGame       View = "game"
)

// NewWins extracts the wins announced by effects.
func NewWins(effects []Effect) []entity.Win {
	var wins []entity.Win
	for _, effect := range effects {
		if e, ok := effect.(WinEffect); ok {
			wins = append(wins, e.Win)
		}
	}

	return wins
}
