package postgres

import (
	"database/sql"
	"time"
)

type clubTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	Name            string         `db:"name"`
	ImageURL        sql.NullString `db:"image_url"`
	CreatedBy       string         `db:"created_by"`
	CaptainMemberID string         `db:"captain_member_id"`
	RosterVersion   int64          `db:"roster_version"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type clubInsertModel struct {
	PublicID        string         `db:"public_id"`
	Name            string         `db:"name"`
	ImageURL        sql.NullString `db:"image_url"`
	CreatedBy       string         `db:"created_by"`
	CaptainMemberID string         `db:"captain_member_id"`
	CreatedAt       time.Time      `db:"created_at"`
}

type clubMemberTableModel struct {
	ID           int64     `db:"id"`
	ClubPublicID string    `db:"club_public_id"`
	MemberID     string    `db:"member_id"`
	DisplayName  string    `db:"display_name"`
	Position     string    `db:"position"`
	JoinedAt     time.Time `db:"joined_at"`
}

type clubMemberInsertModel struct {
	ClubPublicID string    `db:"club_public_id"`
	MemberID     string    `db:"member_id"`
	DisplayName  string    `db:"display_name"`
	Position     string    `db:"position"`
	JoinedAt     time.Time `db:"joined_at"`
}
