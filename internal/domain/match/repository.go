package match

import "context"

// Repository is the match side of the remote roster store. Versions follow
// the same rules as club rosters.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error

	GetRoster(ctx context.Context, matchID string) (Roster, bool, error)
	PersistTeamJoin(ctx context.Context, matchID string, expectedVersion int64, player Player) error
	PersistTeamLeave(ctx context.Context, matchID string, expectedVersion int64, memberID string) error
	PersistTeamSwitch(ctx context.Context, matchID string, expectedVersion int64, memberID string, team Team) error
}
