package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
)

const (
	clubSelectColumns   = `id, public_id, name, image_url, created_by, captain_member_id, roster_version, created_at, updated_at`
	memberSelectColumns = `id, club_public_id, member_id, display_name, position, joined_at`

	insertClubQuery = `INSERT INTO clubs (public_id, name, image_url, created_by, captain_member_id, created_at)
VALUES (:public_id, :name, :image_url, :created_by, :captain_member_id, :created_at)`
	insertClubMemberQuery = `INSERT INTO club_members (club_public_id, member_id, display_name, position, joined_at)
VALUES (:club_public_id, :member_id, :display_name, :position, :joined_at)`
)

var clubVersion = bumpVersionQuery{table: "clubs", idColumn: "public_id"}

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	row, exists, err := r.getClubRow(ctx, r.db, clubID)
	if err != nil || !exists {
		return club.Club{}, exists, err
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club, captain club.Member) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create club tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	clubRow := clubInsertModel{
		PublicID:        item.ID,
		Name:            item.Name,
		ImageURL:        sql.NullString{String: item.ImageURL, Valid: strings.TrimSpace(item.ImageURL) != ""},
		CreatedBy:       item.CreatedBy,
		CaptainMemberID: captain.ID,
		CreatedAt:       item.CreatedAt,
	}
	if _, err = tx.NamedExecContext(ctx, insertClubQuery, clubRow); err != nil {
		return fmt.Errorf("insert club: %w", err)
	}
	if _, err = tx.NamedExecContext(ctx, insertClubMemberQuery, memberInsertRow(item.ID, captain)); err != nil {
		return fmt.Errorf("insert club captain: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create club: %w", err)
	}
	return nil
}

func (r *ClubRepository) Delete(ctx context.Context, clubID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE public_id = $1`, clubID); err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}

// GetRoster reads the club row and its members in one repeatable-read
// transaction so the version matches the member list.
func (r *ClubRepository) GetRoster(ctx context.Context, clubID string) (club.Roster, bool, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return club.Roster{}, false, fmt.Errorf("begin roster read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row, exists, err := r.getClubRow(ctx, tx, clubID)
	if err != nil || !exists {
		return club.Roster{}, exists, err
	}

	var members []clubMemberTableModel
	query := `SELECT ` + memberSelectColumns + ` FROM club_members WHERE club_public_id = $1 ORDER BY joined_at, id`
	if err := tx.SelectContext(ctx, &members, query, clubID); err != nil {
		return club.Roster{}, false, fmt.Errorf("list club members: %w", err)
	}

	roster := club.Roster{
		ClubID:    row.PublicID,
		CaptainID: row.CaptainMemberID,
		Version:   row.RosterVersion,
		Members:   make([]club.Member, 0, len(members)),
	}
	for _, m := range members {
		roster.Members = append(roster.Members, club.Member{
			ID:          m.MemberID,
			DisplayName: m.DisplayName,
			Position:    club.Position(m.Position),
			JoinedAt:    m.JoinedAt,
		})
	}
	return roster, true, nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID string, expectedVersion int64, member club.Member) error {
	return withRosterVersion(ctx, r.db, clubVersion, clubID, expectedVersion, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, insertClubMemberQuery, memberInsertRow(clubID, member))
		return mapWriteError("insert club member", err)
	})
}

func (r *ClubRepository) PersistPositionClaim(ctx context.Context, clubID string, expectedVersion int64, memberID string, pos club.Position) error {
	return withRosterVersion(ctx, r.db, clubVersion, clubID, expectedVersion, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE club_members SET position = $3 WHERE club_public_id = $1 AND member_id = $2`,
			clubID, memberID, string(pos),
		)
		if err != nil {
			return mapWriteError("update member position", err)
		}
		return expectOneRow(res, "member position update")
	})
}

func (r *ClubRepository) PersistCaptainTransfer(ctx context.Context, clubID string, expectedVersion int64, newCaptainID string) error {
	return withRosterVersion(ctx, r.db, clubVersion, clubID, expectedVersion, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE clubs SET captain_member_id = $2
WHERE public_id = $1 AND EXISTS (SELECT 1 FROM club_members WHERE club_public_id = $1 AND member_id = $2)`,
			clubID, newCaptainID,
		)
		if err != nil {
			return mapWriteError("update club captain", err)
		}
		return expectOneRow(res, "captain transfer")
	})
}

func (r *ClubRepository) PersistKick(ctx context.Context, clubID string, expectedVersion int64, memberID string) error {
	return r.removeMember(ctx, clubID, expectedVersion, memberID, "kick")
}

func (r *ClubRepository) PersistLeave(ctx context.Context, clubID string, expectedVersion int64, memberID string) error {
	return r.removeMember(ctx, clubID, expectedVersion, memberID, "leave")
}

// removeMember deletes the membership row. The last member taking the
// captaincy with them leaves an empty captain id behind.
func (r *ClubRepository) removeMember(ctx context.Context, clubID string, expectedVersion int64, memberID, op string) error {
	return withRosterVersion(ctx, r.db, clubVersion, clubID, expectedVersion, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM club_members WHERE club_public_id = $1 AND member_id = $2`, clubID, memberID)
		if err != nil {
			return mapWriteError(op+" member", err)
		}
		if err := expectOneRow(res, op+" member"); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE clubs SET captain_member_id = '' WHERE public_id = $1 AND captain_member_id = $2`,
			clubID, memberID,
		)
		return mapWriteError("clear departed captain", err)
	})
}

func (r *ClubRepository) getClubRow(ctx context.Context, q sqlx.QueryerContext, clubID string) (clubTableModel, bool, error) {
	var row clubTableModel
	query := `SELECT ` + clubSelectColumns + ` FROM clubs WHERE public_id = $1`
	if err := sqlx.GetContext(ctx, q, &row, query, clubID); err != nil {
		if isNotFound(err) {
			return clubTableModel{}, false, nil
		}
		return clubTableModel{}, false, fmt.Errorf("get club: %w", err)
	}
	return row, true, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:        row.PublicID,
		Name:      row.Name,
		ImageURL:  row.ImageURL.String,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
	}
}

func memberInsertRow(clubID string, m club.Member) clubMemberInsertModel {
	return clubMemberInsertModel{
		ClubPublicID: clubID,
		MemberID:     m.ID,
		DisplayName:  m.DisplayName,
		Position:     string(m.Position),
		JoinedAt:     m.JoinedAt,
	}
}
