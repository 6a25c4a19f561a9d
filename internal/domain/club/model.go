package club

import (
	"fmt"
	"strings"
	"time"
)

// Club is the canonical club profile. Roster data never backfills it.
type Club struct {
	ID        string
	Name      string
	ImageURL  string
	CreatedBy string
	CreatedAt time.Time
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("club id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	if strings.TrimSpace(c.CreatedBy) == "" {
		return fmt.Errorf("club creator is required")
	}

	return nil
}

// Member is one user's membership in a club.
type Member struct {
	ID          string
	DisplayName string
	Position    Position
	JoinedAt    time.Time
}
