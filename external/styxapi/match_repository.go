package styxapi

import (
	"context"

	"github.com/valyala/fasthttp"

	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

// MatchRepository implements match.Repository on top of the remote roster API.
type MatchRepository struct {
	client *Client
}

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	var out matchDTO
	found, err := r.client.get(ctx, resourcePath("matches", matchID), &out)
	if err != nil || !found {
		return match.Match{}, false, err
	}
	return out.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	return r.client.write(ctx, fasthttp.MethodPost, "/matches", matchToDTO(item))
}

func (r *MatchRepository) GetRoster(ctx context.Context, matchID string) (match.Roster, bool, error) {
	var out matchRosterDTO
	found, err := r.client.get(ctx, resourcePath("matches", matchID, "roster"), &out)
	if err != nil || !found {
		return match.Roster{}, false, err
	}
	return out.toDomain(), true, nil
}

func (r *MatchRepository) PersistTeamJoin(ctx context.Context, matchID string, expectedVersion int64, player match.Player) error {
	return r.client.write(ctx, fasthttp.MethodPost, resourcePath("matches", matchID, "roster", "players"), joinTeamRequest{
		ExpectedVersion: expectedVersion,
		Player:          playerToDTO(player),
	})
}

func (r *MatchRepository) PersistTeamLeave(ctx context.Context, matchID string, expectedVersion int64, memberID string) error {
	path := versionQuery(resourcePath("matches", matchID, "roster", "players", memberID), expectedVersion)
	return r.client.write(ctx, fasthttp.MethodDelete, path, nil)
}

func (r *MatchRepository) PersistTeamSwitch(ctx context.Context, matchID string, expectedVersion int64, memberID string, team match.Team) error {
	return r.client.write(ctx, fasthttp.MethodPut, resourcePath("matches", matchID, "roster", "players", memberID, "team"), switchTeamRequest{
		ExpectedVersion: expectedVersion,
		Team:            int(team),
	})
}
