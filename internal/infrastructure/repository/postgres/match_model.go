package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	ClubPublicID  sql.NullString `db:"club_public_id"`
	Title         string         `db:"title"`
	Location      string         `db:"location"`
	KickoffAt     time.Time      `db:"kickoff_at"`
	MaxPlayers    int            `db:"max_players"`
	CreatedBy     string         `db:"created_by"`
	RosterVersion int64          `db:"roster_version"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID     string         `db:"public_id"`
	ClubPublicID sql.NullString `db:"club_public_id"`
	Title        string         `db:"title"`
	Location     string         `db:"location"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	MaxPlayers   int            `db:"max_players"`
	CreatedBy    string         `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
}

type matchPlayerTableModel struct {
	ID            int64     `db:"id"`
	MatchPublicID string    `db:"match_public_id"`
	MemberID      string    `db:"member_id"`
	DisplayName   string    `db:"display_name"`
	Team          int       `db:"team"`
	JoinedAt      time.Time `db:"joined_at"`
}

type matchPlayerInsertModel struct {
	MatchPublicID string    `db:"match_public_id"`
	MemberID      string    `db:"member_id"`
	DisplayName   string    `db:"display_name"`
	Team          int       `db:"team"`
	JoinedAt      time.Time `db:"joined_at"`
}
