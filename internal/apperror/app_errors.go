package apperror

import "errors"

var (
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidTargetNumber  = errors.New("invalid target number")
	ErrGameLocked           = errors.New("game is locked")
	ErrInsufficientPoolSize = errors.New("insufficient pool size")
	ErrInvalidTeamID        = errors.New("invalid team id")
	ErrInvalidTeamName      = errors.New("invalid team name")
	ErrInvalidGameMode      = errors.New("invalid game mode")
	ErrInvalidAdvisor       = errors.New("invalid advisor")
	ErrInvalidGrid          = errors.New("invalid grid")
	ErrInvalidSession       = errors.New("invalid session")
	ErrUnknownWinType       = errors.New("unknown win type")
	ErrSessionNotFound      = errors.New("session not found")
)
