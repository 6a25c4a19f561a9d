package httpapi

import (
	"time"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

type createClubRequest struct {
	Name     string `json:"name" validate:"required,max=60"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=512"`
}

// claimPositionRequest takes a null position to clear the member's slot.
type claimPositionRequest struct {
	Position *string `json:"position" validate:"omitempty,max=16"`
}

type transferCaptaincyRequest struct {
	MemberID string `json:"member_id" validate:"required,max=128"`
}

type createMatchRequest struct {
	ClubID     string    `json:"club_id" validate:"required,max=128"`
	Title      string    `json:"title" validate:"required,max=120"`
	Location   string    `json:"location" validate:"omitempty,max=200"`
	KickoffAt  time.Time `json:"kickoff_at" validate:"required"`
	MaxPlayers int       `json:"max_players" validate:"required,gt=0,lte=50"`
}

type assignTeamRequest struct {
	Team int `json:"team" validate:"required"`
}

type auditRostersRequest struct {
	ClubIDs  []string `json:"club_ids" validate:"omitempty,max=500,dive,required"`
	MatchIDs []string `json:"match_ids" validate:"omitempty,max=500,dive,required"`
}

type clubDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type clubMemberDTO struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Position    *string   `json:"position"`
	IsCaptain   bool      `json:"is_captain"`
	JoinedAt    time.Time `json:"joined_at"`
}

type clubRosterDTO struct {
	ClubID    string            `json:"club_id"`
	CaptainID string            `json:"captain_id"`
	Version   int64             `json:"version"`
	Members   []clubMemberDTO   `json:"members"`
	Positions map[string]string `json:"positions"`
	Bench     []string          `json:"bench"`
}

type clubDetailsDTO struct {
	Club   clubDTO       `json:"club"`
	Roster clubRosterDTO `json:"roster"`
}

type leaveClubDTO struct {
	ClubDeleted bool          `json:"club_deleted"`
	Roster      clubRosterDTO `json:"roster"`
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

type matchPlayerDTO struct {
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}

type matchRosterDTO struct {
	MatchID         string           `json:"match_id"`
	MaxPlayers      int              `json:"max_players"`
	CapacityPerTeam int              `json:"capacity_per_team"`
	Version         int64            `json:"version"`
	TeamOne         []matchPlayerDTO `json:"team_one"`
	TeamTwo         []matchPlayerDTO `json:"team_two"`
}

type assignmentResultDTO struct {
	Outcome           string          `json:"outcome"`
	MemberID          string          `json:"member_id"`
	RequestedPosition *string         `json:"requested_position,omitempty"`
	RequestedTeam     int             `json:"requested_team,omitempty"`
	Fallback          *string         `json:"fallback,omitempty"`
	ClubRoster        *clubRosterDTO  `json:"club_roster,omitempty"`
	MatchRoster       *matchRosterDTO `json:"match_roster,omitempty"`
}

type auditFindingDTO struct {
	Scope      string `json:"scope"`
	RosterID   string `json:"roster_id"`
	Version    int64  `json:"version,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type auditReportDTO struct {
	ValidCount   int               `json:"valid_count"`
	InvalidCount int               `json:"invalid_count"`
	MissingCount int               `json:"missing_count"`
	FailedCount  int               `json:"failed_count"`
	Findings     []auditFindingDTO `json:"findings"`
}

func clubToDTO(v club.Club) clubDTO {
	return clubDTO{ID: v.ID, Name: v.Name, ImageURL: v.ImageURL, CreatedBy: v.CreatedBy, CreatedAt: v.CreatedAt}
}

func clubRosterToDTO(v club.Roster) clubRosterDTO {
	members := make([]clubMemberDTO, 0, len(v.Members))
	for _, m := range v.Members {
		members = append(members, clubMemberDTO{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			Position:    optionalPosition(m.Position),
			IsCaptain:   m.ID == v.CaptainID,
			JoinedAt:    m.JoinedAt,
		})
	}

	positions := make(map[string]string)
	for pos, memberID := range v.PositionMap() {
		positions[pos.String()] = memberID
	}

	bench := make([]string, 0)
	for _, m := range v.Bench() {
		bench = append(bench, m.ID)
	}

	return clubRosterDTO{
		ClubID:    v.ClubID,
		CaptainID: v.CaptainID,
		Version:   v.Version,
		Members:   members,
		Positions: positions,
		Bench:     bench,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		ClubID:     v.ClubID,
		Title:      v.Title,
		Location:   v.Location,
		KickoffAt:  v.KickoffAt,
		MaxPlayers: v.MaxPlayers,
		CreatedBy:  v.CreatedBy,
		CreatedAt:  v.CreatedAt,
	}
}

func matchRosterToDTO(v match.Roster) matchRosterDTO {
	return matchRosterDTO{
		MatchID:         v.MatchID,
		MaxPlayers:      v.MaxPlayers,
		CapacityPerTeam: v.Capacity(),
		Version:         v.Version,
		TeamOne:         matchPlayersToDTO(v.TeamPlayers(match.TeamOne)),
		TeamTwo:         matchPlayersToDTO(v.TeamPlayers(match.TeamTwo)),
	}
}

func matchPlayersToDTO(players []match.Player) []matchPlayerDTO {
	out := make([]matchPlayerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, matchPlayerDTO{MemberID: p.MemberID, DisplayName: p.DisplayName, JoinedAt: p.JoinedAt})
	}
	return out
}

func assignmentResultToDTO(v assignment.Result) assignmentResultDTO {
	out := assignmentResultDTO{
		Outcome:  string(v.Outcome),
		MemberID: v.Applied.MemberID,
	}

	switch v.Applied.Scope {
	case assignment.ScopeClub:
		requested := v.Applied.Position.String()
		out.RequestedPosition = &requested
		if v.FellBack() {
			fallback := v.Fallback.String()
			out.Fallback = &fallback
		}
	case assignment.ScopeMatch:
		out.RequestedTeam = int(v.Applied.Team)
	}

	if v.Club != nil {
		roster := clubRosterToDTO(*v.Club)
		out.ClubRoster = &roster
	}
	if v.Match != nil {
		roster := matchRosterToDTO(*v.Match)
		out.MatchRoster = &roster
	}
	return out
}

func auditReportToDTO(v usecase.AuditReport) auditReportDTO {
	findings := make([]auditFindingDTO, 0, len(v.Findings))
	for _, f := range v.Findings {
		findings = append(findings, auditFindingDTO{
			Scope:      string(f.Scope),
			RosterID:   f.RosterID,
			Version:    f.Version,
			Status:     f.Status,
			Message:    f.Message,
			DurationMs: f.DurationMs,
		})
	}
	return auditReportDTO{
		ValidCount:   v.ValidCount,
		InvalidCount: v.InvalidCount,
		MissingCount: v.MissingCount,
		FailedCount:  v.FailedCount,
		Findings:     findings,
	}
}

func optionalPosition(pos club.Position) *string {
	if pos == club.PositionNone {
		return nil
	}
	value := pos.String()
	return &value
}
