package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	rosters map[string]match.Roster
}

func NewMatchRepository(matches []match.Match, rosters []match.Roster) *MatchRepository {
	r := &MatchRepository{
		matches: make(map[string]match.Match, len(matches)),
		rosters: make(map[string]match.Roster, len(matches)),
	}
	for _, m := range matches {
		r.matches[m.ID] = m
		r.rosters[m.ID] = match.Roster{MatchID: m.ID, MaxPlayers: m.MaxPlayers, Version: 1}
	}
	for _, roster := range rosters {
		if roster.Version == 0 {
			roster.Version = 1
		}
		r.rosters[roster.MatchID] = roster.Clone()
	}
	return r
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	roster, err := match.NewRoster(item.ID, item.MaxPlayers)
	if err != nil {
		return err
	}
	roster.Version = 1

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[item.ID]; exists {
		return fmt.Errorf("match %s already exists", item.ID)
	}
	r.matches[item.ID] = item
	r.rosters[item.ID] = roster
	return nil
}

func (r *MatchRepository) GetRoster(_ context.Context, matchID string) (match.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster, ok := r.rosters[matchID]
	if !ok {
		return match.Roster{}, false, nil
	}
	return roster.Clone(), true, nil
}

func (r *MatchRepository) PersistTeamJoin(_ context.Context, matchID string, expectedVersion int64, player match.Player) error {
	return r.update(matchID, expectedVersion, func(roster *match.Roster) error {
		return roster.Join(player)
	})
}

func (r *MatchRepository) PersistTeamLeave(_ context.Context, matchID string, expectedVersion int64, memberID string) error {
	return r.update(matchID, expectedVersion, func(roster *match.Roster) error {
		return roster.Leave(memberID)
	})
}

func (r *MatchRepository) PersistTeamSwitch(_ context.Context, matchID string, expectedVersion int64, memberID string, team match.Team) error {
	return r.update(matchID, expectedVersion, func(roster *match.Roster) error {
		return roster.SwitchTeam(memberID, team)
	})
}

func (r *MatchRepository) update(matchID string, expectedVersion int64, fn func(*match.Roster) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rosters[matchID]
	if !ok {
		return fmt.Errorf("%w: match %s no longer exists", assignment.ErrStaleSnapshot, matchID)
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: match %s at version %d, expected %d", assignment.ErrStaleSnapshot, matchID, stored.Version, expectedVersion)
	}

	next := stored.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Version++
	r.rosters[matchID] = next
	return nil
}
