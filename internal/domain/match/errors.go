package match

import "errors"

var (
	ErrTeamFull        = errors.New("team is full")
	ErrAlreadyJoined   = errors.New("player already joined the match")
	ErrNotJoined       = errors.New("player has not joined the match")
	ErrInvalidTeam     = errors.New("invalid team")
	ErrInvalidCapacity = errors.New("invalid match capacity")
	ErrInvalidRoster   = errors.New("invalid match roster")
)
