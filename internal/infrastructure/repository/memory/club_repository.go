package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
)

type ClubRepository struct {
	mu      sync.RWMutex
	clubs   map[string]club.Club
	rosters map[string]club.Roster
}

func NewClubRepository(clubs []club.Club, rosters []club.Roster) *ClubRepository {
	r := &ClubRepository{
		clubs:   make(map[string]club.Club, len(clubs)),
		rosters: make(map[string]club.Roster, len(rosters)),
	}
	for _, c := range clubs {
		r.clubs[c.ID] = c
	}
	for _, roster := range rosters {
		if roster.Version == 0 {
			roster.Version = 1
		}
		r.rosters[roster.ClubID] = roster.Clone()
	}
	return r
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubs[clubID]
	return item, ok, nil
}

func (r *ClubRepository) Create(_ context.Context, item club.Club, captain club.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clubs[item.ID]; exists {
		return fmt.Errorf("club %s already exists", item.ID)
	}

	roster := club.NewRoster(item.ID, captain)
	roster.Version = 1
	r.clubs[item.ID] = item
	r.rosters[item.ID] = roster
	return nil
}

func (r *ClubRepository) Delete(_ context.Context, clubID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clubs, clubID)
	delete(r.rosters, clubID)
	return nil
}

func (r *ClubRepository) GetRoster(_ context.Context, clubID string) (club.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster, ok := r.rosters[clubID]
	if !ok {
		return club.Roster{}, false, nil
	}
	return roster.Clone(), true, nil
}

func (r *ClubRepository) AddMember(_ context.Context, clubID string, expectedVersion int64, member club.Member) error {
	return r.update(clubID, expectedVersion, func(roster *club.Roster) error {
		return roster.AddMember(member)
	})
}

func (r *ClubRepository) PersistPositionClaim(_ context.Context, clubID string, expectedVersion int64, memberID string, pos club.Position) error {
	return r.update(clubID, expectedVersion, func(roster *club.Roster) error {
		return roster.ClaimPosition(memberID, pos)
	})
}

func (r *ClubRepository) PersistCaptainTransfer(_ context.Context, clubID string, expectedVersion int64, newCaptainID string) error {
	return r.update(clubID, expectedVersion, func(roster *club.Roster) error {
		return roster.SetCaptain(newCaptainID)
	})
}

func (r *ClubRepository) PersistKick(_ context.Context, clubID string, expectedVersion int64, memberID string) error {
	return r.update(clubID, expectedVersion, func(roster *club.Roster) error {
		return roster.KickMember(memberID)
	})
}

func (r *ClubRepository) PersistLeave(_ context.Context, clubID string, expectedVersion int64, memberID string) error {
	return r.update(clubID, expectedVersion, func(roster *club.Roster) error {
		return roster.RemoveSelf(memberID)
	})
}

// update applies fn to the stored roster when its version still matches and
// bumps the version. A failed fn leaves the stored roster untouched.
func (r *ClubRepository) update(clubID string, expectedVersion int64, fn func(*club.Roster) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rosters[clubID]
	if !ok {
		return fmt.Errorf("%w: club %s no longer exists", assignment.ErrStaleSnapshot, clubID)
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: club %s at version %d, expected %d", assignment.ErrStaleSnapshot, clubID, stored.Version, expectedVersion)
	}

	next := stored.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.Version++
	r.rosters[clubID] = next
	return nil
}
