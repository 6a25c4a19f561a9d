package match

import "fmt"

// Roster is a snapshot of a match's two teams.
type Roster struct {
	MatchID    string
	MaxPlayers int
	Players    []Player
	Version    int64
}

func NewRoster(matchID string, maxPlayers int) (Roster, error) {
	if err := validateCapacity(maxPlayers); err != nil {
		return Roster{}, err
	}
	return Roster{MatchID: matchID, MaxPlayers: maxPlayers}, nil
}

func (r Roster) Clone() Roster {
	copied := r
	copied.Players = append([]Player(nil), r.Players...)
	return copied
}

// Capacity is the number of players allowed on one team.
func (r Roster) Capacity() int {
	return r.MaxPlayers / 2
}

func (r Roster) Count(team Team) int {
	n := 0
	for _, p := range r.Players {
		if p.Team == team {
			n++
		}
	}
	return n
}

func (r Roster) IsFull() bool {
	return r.Count(TeamOne)+r.Count(TeamTwo) >= r.MaxPlayers
}

func (r Roster) TeamOf(memberID string) (Team, bool) {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return TeamNone, false
	}
	return r.Players[idx].Team, true
}

func (r Roster) TeamPlayers(team Team) []Player {
	out := make([]Player, 0, r.Capacity())
	for _, p := range r.Players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

func (r *Roster) Join(p Player) error {
	if p.MemberID == "" {
		return fmt.Errorf("%w: member id is required", ErrInvalidRoster)
	}
	if !p.Team.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTeam, p.Team)
	}
	if current, ok := r.TeamOf(p.MemberID); ok {
		return fmt.Errorf("%w: member=%s team=%d", ErrAlreadyJoined, p.MemberID, current)
	}
	if r.Count(p.Team) >= r.Capacity() {
		return fmt.Errorf("%w: team=%d capacity=%d", ErrTeamFull, p.Team, r.Capacity())
	}

	r.Players = append(r.Players, p)
	return nil
}

func (r *Roster) Leave(memberID string) error {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotJoined, memberID)
	}

	players := make([]Player, 0, len(r.Players)-1)
	players = append(players, r.Players[:idx]...)
	players = append(players, r.Players[idx+1:]...)
	r.Players = players
	return nil
}

// SwitchTeam moves a joined player in place, so the player is never absent
// from both teams. Switching to the current team is a no-op.
func (r *Roster) SwitchTeam(memberID string, team Team) error {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotJoined, memberID)
	}
	if !team.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTeam, team)
	}
	if r.Players[idx].Team == team {
		return nil
	}
	if r.Count(team) >= r.Capacity() {
		return fmt.Errorf("%w: team=%d capacity=%d", ErrTeamFull, team, r.Capacity())
	}

	r.Players[idx].Team = team
	return nil
}

// Validate checks capacity and single-membership on a fetched snapshot.
func (r Roster) Validate() error {
	if r.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidRoster)
	}
	if err := validateCapacity(r.MaxPlayers); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		if _, dup := seen[p.MemberID]; dup {
			return fmt.Errorf("%w: member %s joined twice", ErrInvalidRoster, p.MemberID)
		}
		seen[p.MemberID] = struct{}{}
		if !p.Team.Valid() {
			return fmt.Errorf("%w: member %s on team %d", ErrInvalidRoster, p.MemberID, p.Team)
		}
	}
	for _, team := range []Team{TeamOne, TeamTwo} {
		if n := r.Count(team); n > r.Capacity() {
			return fmt.Errorf("%w: team %d has %d players, capacity %d", ErrInvalidRoster, team, n, r.Capacity())
		}
	}

	return nil
}

func (r Roster) indexOf(memberID string) int {
	if memberID == "" {
		return -1
	}
	for i, p := range r.Players {
		if p.MemberID == memberID {
			return i
		}
	}
	return -1
}
