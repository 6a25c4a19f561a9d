package assignment

import (
	"errors"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

// AssignClubPosition applies a slot claim to a copy of roster. A taken pitch
// slot degrades to the bench instead of failing. Applied.ActorID is left for
// the caller to fill.
func AssignClubPosition(roster club.Roster, memberID string, pos club.Position) (Result, error) {
	next := roster.Clone()
	result := Result{
		Applied: Request{
			MemberID: memberID,
			Scope:    ScopeClub,
			RosterID: roster.ClubID,
			Position: pos,
		},
	}

	current, ok := next.Member(memberID)
	if ok && current.Position == pos {
		result.Outcome = OutcomeUnchanged
		result.Club = &next
		return result, nil
	}

	err := next.ClaimPosition(memberID, pos)
	switch {
	case err == nil:
		result.Outcome = claimOutcome(pos)
	case errors.Is(err, club.ErrSlotTaken):
		if benchErr := next.ClaimPosition(memberID, club.PositionSubstitute); benchErr != nil {
			return Result{}, benchErr
		}
		result.Fallback = club.PositionSubstitute
		result.Outcome = OutcomeBenched
		if current.Position == club.PositionSubstitute {
			result.Outcome = OutcomeUnchanged
		}
	default:
		return Result{}, err
	}

	result.Club = &next
	return result, nil
}

// AssignMatchTeam joins memberID to team, or switches sides when already
// joined. A full team is a hard stop.
func AssignMatchTeam(roster match.Roster, player match.Player) (Result, error) {
	next := roster.Clone()
	result := Result{
		Applied: Request{
			MemberID: player.MemberID,
			Scope:    ScopeMatch,
			RosterID: roster.MatchID,
			Team:     player.Team,
		},
	}

	current, joined := next.TeamOf(player.MemberID)
	switch {
	case joined && current == player.Team:
		result.Outcome = OutcomeUnchanged
	case joined:
		if err := next.SwitchTeam(player.MemberID, player.Team); err != nil {
			return Result{}, err
		}
		result.Outcome = OutcomeSwitched
	default:
		if err := next.Join(player); err != nil {
			return Result{}, err
		}
		result.Outcome = OutcomeJoined
	}

	result.Match = &next
	return result, nil
}

func LeaveMatch(roster match.Roster, memberID string) (Result, error) {
	next := roster.Clone()
	if err := next.Leave(memberID); err != nil {
		return Result{}, err
	}

	return Result{
		Applied: Request{
			MemberID: memberID,
			Scope:    ScopeMatch,
			RosterID: roster.MatchID,
		},
		Outcome: OutcomeLeft,
		Match:   &next,
	}, nil
}

func claimOutcome(pos club.Position) Outcome {
	switch {
	case pos == club.PositionNone:
		return OutcomeCleared
	case pos.IsSubstitute():
		return OutcomeBenched
	default:
		return OutcomeClaimed
	}
}
