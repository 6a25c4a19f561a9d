package styxapi

import (
	"time"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

type clubDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type memberDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Position    string    `json:"position,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

type clubRosterDTO struct {
	ClubID    string      `json:"club_id"`
	CaptainID string      `json:"captain_id"`
	Members   []memberDTO `json:"members"`
	Version   int64       `json:"version"`
}

type createClubRequest struct {
	Club    clubDTO   `json:"club"`
	Captain memberDTO `json:"captain"`
}

type addMemberRequest struct {
	ExpectedVersion int64     `json:"expected_version"`
	Member          memberDTO `json:"member"`
}

type claimPositionRequest struct {
	ExpectedVersion int64  `json:"expected_version"`
	Position        string `json:"position"`
}

type transferCaptaincyRequest struct {
	ExpectedVersion int64  `json:"expected_version"`
	MemberID        string `json:"member_id"`
}

type versionRequest struct {
	ExpectedVersion int64 `json:"expected_version"`
}

type matchDTO struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id,omitempty"`
	Title      string    `json:"title"`
	Location   string    `json:"location,omitempty"`
	KickoffAt  time.Time `json:"kickoff_at"`
	MaxPlayers int       `json:"max_players"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type playerDTO struct {
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	Team        int       `json:"team"`
	JoinedAt    time.Time `json:"joined_at"`
}

type matchRosterDTO struct {
	MatchID    string      `json:"match_id"`
	MaxPlayers int         `json:"max_players"`
	Players    []playerDTO `json:"players"`
	Version    int64       `json:"version"`
}

type joinTeamRequest struct {
	ExpectedVersion int64     `json:"expected_version"`
	Player          playerDTO `json:"player"`
}

type switchTeamRequest struct {
	ExpectedVersion int64 `json:"expected_version"`
	Team            int   `json:"team"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL, CreatedBy: c.CreatedBy, CreatedAt: c.CreatedAt}
}

func (d clubDTO) toDomain() club.Club {
	return club.Club{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL, CreatedBy: d.CreatedBy, CreatedAt: d.CreatedAt}
}

func memberToDTO(m club.Member) memberDTO {
	return memberDTO{ID: m.ID, DisplayName: m.DisplayName, Position: string(m.Position), JoinedAt: m.JoinedAt}
}

func (d memberDTO) toDomain() club.Member {
	return club.Member{ID: d.ID, DisplayName: d.DisplayName, Position: club.Position(d.Position), JoinedAt: d.JoinedAt}
}

func (d clubRosterDTO) toDomain() club.Roster {
	members := make([]club.Member, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, m.toDomain())
	}
	return club.Roster{ClubID: d.ClubID, CaptainID: d.CaptainID, Members: members, Version: d.Version}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		ClubID:     m.ClubID,
		Title:      m.Title,
		Location:   m.Location,
		KickoffAt:  m.KickoffAt,
		MaxPlayers: m.MaxPlayers,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

func (d matchDTO) toDomain() match.Match {
	return match.Match{
		ID:         d.ID,
		ClubID:     d.ClubID,
		Title:      d.Title,
		Location:   d.Location,
		KickoffAt:  d.KickoffAt,
		MaxPlayers: d.MaxPlayers,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
	}
}

func playerToDTO(p match.Player) playerDTO {
	return playerDTO{MemberID: p.MemberID, DisplayName: p.DisplayName, Team: int(p.Team), JoinedAt: p.JoinedAt}
}

func (d matchRosterDTO) toDomain() match.Roster {
	players := make([]match.Player, 0, len(d.Players))
	for _, p := range d.Players {
		players = append(players, match.Player{
			MemberID:    p.MemberID,
			DisplayName: p.DisplayName,
			Team:        match.Team(p.Team),
			JoinedAt:    p.JoinedAt,
		})
	}
	return match.Roster{MatchID: d.MatchID, MaxPlayers: d.MaxPlayers, Players: players, Version: d.Version}
}
