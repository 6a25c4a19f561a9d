package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

const (
	matchSelectColumns  = `id, public_id, club_public_id, title, location, kickoff_at, max_players, created_by, roster_version, created_at, updated_at`
	playerSelectColumns = `id, match_public_id, member_id, display_name, team, joined_at`

	insertMatchQuery = `INSERT INTO matches (public_id, club_public_id, title, location, kickoff_at, max_players, created_by, created_at)
VALUES (:public_id, :club_public_id, :title, :location, :kickoff_at, :max_players, :created_by, :created_at)`
	insertMatchPlayerQuery = `INSERT INTO match_players (match_public_id, member_id, display_name, team, joined_at)
VALUES (:match_public_id, :member_id, :display_name, :team, :joined_at)`
)

var matchVersion = bumpVersionQuery{table: "matches", idColumn: "public_id"}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	row, exists, err := r.getMatchRow(ctx, r.db, matchID)
	if err != nil || !exists {
		return match.Match{}, exists, err
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	row := matchInsertModel{
		PublicID:     item.ID,
		ClubPublicID: sql.NullString{String: item.ClubID, Valid: item.ClubID != ""},
		Title:        item.Title,
		Location:     item.Location,
		KickoffAt:    item.KickoffAt,
		MaxPlayers:   item.MaxPlayers,
		CreatedBy:    item.CreatedBy,
		CreatedAt:    item.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, insertMatchQuery, row); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetRoster(ctx context.Context, matchID string) (match.Roster, bool, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return match.Roster{}, false, fmt.Errorf("begin match roster read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row, exists, err := r.getMatchRow(ctx, tx, matchID)
	if err != nil || !exists {
		return match.Roster{}, exists, err
	}

	var players []matchPlayerTableModel
	query := `SELECT ` + playerSelectColumns + ` FROM match_players WHERE match_public_id = $1 ORDER BY joined_at, id`
	if err := tx.SelectContext(ctx, &players, query, matchID); err != nil {
		return match.Roster{}, false, fmt.Errorf("list match players: %w", err)
	}

	roster := match.Roster{
		MatchID:    row.PublicID,
		MaxPlayers: row.MaxPlayers,
		Version:    row.RosterVersion,
		Players:    make([]match.Player, 0, len(players)),
	}
	for _, p := range players {
		roster.Players = append(roster.Players, match.Player{
			MemberID:    p.MemberID,
			DisplayName: p.DisplayName,
			Team:        match.Team(p.Team),
			JoinedAt:    p.JoinedAt,
		})
	}
	return roster, true, nil
}

func (r *MatchRepository) PersistTeamJoin(ctx context.Context, matchID string, expectedVersion int64, player match.Player) error {
	return withRosterVersion(ctx, r.db, matchVersion, matchID, expectedVersion, func(tx *sqlx.Tx) error {
		row := matchPlayerInsertModel{
			MatchPublicID: matchID,
			MemberID:      player.MemberID,
			DisplayName:   player.DisplayName,
			Team:          int(player.Team),
			JoinedAt:      player.JoinedAt,
		}
		_, err := tx.NamedExecContext(ctx, insertMatchPlayerQuery, row)
		return mapWriteError("insert match player", err)
	})
}

func (r *MatchRepository) PersistTeamLeave(ctx context.Context, matchID string, expectedVersion int64, memberID string) error {
	return withRosterVersion(ctx, r.db, matchVersion, matchID, expectedVersion, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_public_id = $1 AND member_id = $2`, matchID, memberID)
		if err != nil {
			return mapWriteError("delete match player", err)
		}
		return expectOneRow(res, "match player leave")
	})
}

func (r *MatchRepository) PersistTeamSwitch(ctx context.Context, matchID string, expectedVersion int64, memberID string, team match.Team) error {
	return withRosterVersion(ctx, r.db, matchVersion, matchID, expectedVersion, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE match_players SET team = $3 WHERE match_public_id = $1 AND member_id = $2`,
			matchID, memberID, int(team),
		)
		if err != nil {
			return mapWriteError("switch match team", err)
		}
		return expectOneRow(res, "match team switch")
	})
}

func (r *MatchRepository) getMatchRow(ctx context.Context, q sqlx.QueryerContext, matchID string) (matchTableModel, bool, error) {
	var row matchTableModel
	query := `SELECT ` + matchSelectColumns + ` FROM matches WHERE public_id = $1`
	if err := sqlx.GetContext(ctx, q, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return matchTableModel{}, false, nil
		}
		return matchTableModel{}, false, fmt.Errorf("get match: %w", err)
	}
	return row, true, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		ClubID:     row.ClubPublicID.String,
		Title:      row.Title,
		Location:   row.Location,
		KickoffAt:  row.KickoffAt,
		MaxPlayers: row.MaxPlayers,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
	}
}
