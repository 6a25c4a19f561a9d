package styxapi

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
)

// ClubRepository implements club.Repository on top of the remote roster API.
type ClubRepository struct {
	client *Client
}

func NewClubRepository(client *Client) *ClubRepository {
	return &ClubRepository{client: client}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	var out clubDTO
	found, err := r.client.get(ctx, resourcePath("clubs", clubID), &out)
	if err != nil || !found {
		return club.Club{}, false, err
	}
	return out.toDomain(), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club, captain club.Member) error {
	return r.client.write(ctx, fasthttp.MethodPost, "/clubs", createClubRequest{
		Club:    clubToDTO(item),
		Captain: memberToDTO(captain),
	})
}

func (r *ClubRepository) Delete(ctx context.Context, clubID string) error {
	_, err := r.client.call(ctx, fasthttp.MethodDelete, resourcePath("clubs", clubID), nil, r.client.maxRetries)
	if crerr.Is(err, errRemoteNotFound) {
		return nil
	}
	return err
}

func (r *ClubRepository) GetRoster(ctx context.Context, clubID string) (club.Roster, bool, error) {
	var out clubRosterDTO
	found, err := r.client.get(ctx, resourcePath("clubs", clubID, "roster"), &out)
	if err != nil || !found {
		return club.Roster{}, false, err
	}
	return out.toDomain(), true, nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID string, expectedVersion int64, member club.Member) error {
	return r.client.write(ctx, fasthttp.MethodPost, resourcePath("clubs", clubID, "roster", "members"), addMemberRequest{
		ExpectedVersion: expectedVersion,
		Member:          memberToDTO(member),
	})
}

func (r *ClubRepository) PersistPositionClaim(ctx context.Context, clubID string, expectedVersion int64, memberID string, pos club.Position) error {
	return r.client.write(ctx, fasthttp.MethodPut, resourcePath("clubs", clubID, "roster", "members", memberID, "position"), claimPositionRequest{
		ExpectedVersion: expectedVersion,
		Position:        string(pos),
	})
}

func (r *ClubRepository) PersistCaptainTransfer(ctx context.Context, clubID string, expectedVersion int64, newCaptainID string) error {
	return r.client.write(ctx, fasthttp.MethodPut, resourcePath("clubs", clubID, "roster", "captain"), transferCaptaincyRequest{
		ExpectedVersion: expectedVersion,
		MemberID:        newCaptainID,
	})
}

func (r *ClubRepository) PersistKick(ctx context.Context, clubID string, expectedVersion int64, memberID string) error {
	path := versionQuery(resourcePath("clubs", clubID, "roster", "members", memberID), expectedVersion)
	return r.client.write(ctx, fasthttp.MethodDelete, path, nil)
}

func (r *ClubRepository) PersistLeave(ctx context.Context, clubID string, expectedVersion int64, memberID string) error {
	return r.client.write(ctx, fasthttp.MethodPost, resourcePath("clubs", clubID, "roster", "members", memberID, "leave"), versionRequest{
		ExpectedVersion: expectedVersion,
	})
}
