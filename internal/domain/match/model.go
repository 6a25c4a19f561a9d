package match

import (
	"fmt"
	"strings"
	"time"
)

// Team identifies one side of a match.
type Team int

const (
	TeamNone Team = 0
	TeamOne  Team = 1
	TeamTwo  Team = 2
)

func (t Team) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

// Match is an organized game between two capacity-bounded teams.
type Match struct {
	ID         string
	ClubID     string
	Title      string
	Location   string
	KickoffAt  time.Time
	MaxPlayers int
	CreatedBy  string
	CreatedAt  time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("match title is required")
	}
	if strings.TrimSpace(m.CreatedBy) == "" {
		return fmt.Errorf("match creator is required")
	}
	return validateCapacity(m.MaxPlayers)
}

type Player struct {
	MemberID    string
	DisplayName string
	Team        Team
	JoinedAt    time.Time
}

func validateCapacity(maxPlayers int) error {
	if maxPlayers <= 0 || maxPlayers%2 != 0 {
		return fmt.Errorf("%w: max players must be a positive even number, got %d", ErrInvalidCapacity, maxPlayers)
	}
	return nil
}
