package club

import "fmt"

// Roster is a snapshot of one club's members, slots and captaincy.
// Version is the storage revision the snapshot was read at.
type Roster struct {
	ClubID    string
	CaptainID string
	Members   []Member
	Version   int64
}

// NewRoster starts a club roster with its creator as captain.
func NewRoster(clubID string, creator Member) Roster {
	creator.Position = PositionNone
	return Roster{
		ClubID:    clubID,
		CaptainID: creator.ID,
		Members:   []Member{creator},
	}
}

func (r Roster) Clone() Roster {
	copied := r
	copied.Members = append([]Member(nil), r.Members...)
	return copied
}

func (r Roster) IsEmpty() bool {
	return len(r.Members) == 0
}

func (r Roster) Member(memberID string) (Member, bool) {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return Member{}, false
	}
	return r.Members[idx], true
}

func (r Roster) IsCaptain(memberID string) bool {
	return memberID != "" && r.CaptainID == memberID
}

// PositionHolder returns the member holding a pitch slot.
func (r Roster) PositionHolder(pos Position) (string, bool) {
	if !pos.IsPitch() {
		return "", false
	}
	for _, m := range r.Members {
		if m.Position == pos {
			return m.ID, true
		}
	}
	return "", false
}

// PositionMap maps every held pitch slot to its holder.
func (r Roster) PositionMap() map[Position]string {
	out := make(map[Position]string, pitchPositionCount)
	for _, m := range r.Members {
		if m.Position.IsPitch() {
			out[m.Position] = m.ID
		}
	}
	return out
}

func (r Roster) Bench() []Member {
	return r.filter(func(m Member) bool { return m.Position.IsSubstitute() })
}

func (r Roster) Unassigned() []Member {
	return r.filter(func(m Member) bool { return m.Position == PositionNone })
}

// AddMember registers a club join. New members start unassigned.
func (r *Roster) AddMember(m Member) error {
	if m.ID == "" {
		return fmt.Errorf("%w: member id is required", ErrInvalidRoster)
	}
	if r.indexOf(m.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyMember, m.ID)
	}

	m.Position = PositionNone
	r.Members = append(r.Members, m)
	if r.CaptainID == "" {
		r.CaptainID = m.ID
	}
	return nil
}

// ClaimPosition moves a member to pos. Pitch slots are unique, the bench is
// unbounded and PositionNone clears the member's slot. A member holds one
// position at a time, so claiming a new one releases the previous one.
func (r *Roster) ClaimPosition(memberID string, pos Position) error {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotAMember, memberID)
	}
	if !pos.Valid() {
		return &UnknownPositionError{Raw: string(pos)}
	}
	if r.Members[idx].Position == pos {
		return nil
	}
	if pos.IsPitch() {
		if holder, taken := r.PositionHolder(pos); taken && holder != memberID {
			return &SlotTakenError{Position: pos, HolderID: holder}
		}
	}

	r.Members[idx].Position = pos
	return nil
}

// SetCaptain hands captaincy to another current member.
func (r *Roster) SetCaptain(memberID string) error {
	if r.indexOf(memberID) < 0 {
		return fmt.Errorf("%w: %s", ErrNotAMember, memberID)
	}
	r.CaptainID = memberID
	return nil
}

// KickMember removes a member other than the captain.
func (r *Roster) KickMember(memberID string) error {
	if r.IsCaptain(memberID) {
		return fmt.Errorf("%w: %s", ErrCannotKickCaptain, memberID)
	}
	idx := r.indexOf(memberID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotAMember, memberID)
	}

	r.removeAt(idx)
	return nil
}

// RemoveSelf lets a member leave. The captain may only leave as the last
// member, which empties the roster; otherwise captaincy must move first.
func (r *Roster) RemoveSelf(memberID string) error {
	idx := r.indexOf(memberID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotAMember, memberID)
	}
	if r.IsCaptain(memberID) {
		if len(r.Members) > 1 {
			return fmt.Errorf("%w: %s", ErrCaptainMustTransferFirst, memberID)
		}
		r.CaptainID = ""
	}

	r.removeAt(idx)
	return nil
}

// Validate checks the roster invariants on a fetched snapshot.
func (r Roster) Validate() error {
	if r.ClubID == "" {
		return fmt.Errorf("%w: club id is required", ErrInvalidRoster)
	}
	if len(r.Members) == 0 {
		if r.CaptainID != "" {
			return fmt.Errorf("%w: captain %s set on empty roster", ErrInvalidRoster, r.CaptainID)
		}
		return nil
	}

	seen := make(map[string]struct{}, len(r.Members))
	slots := make(map[Position]string, pitchPositionCount)
	for _, m := range r.Members {
		if m.ID == "" {
			return fmt.Errorf("%w: member id is required", ErrInvalidRoster)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member %s", ErrInvalidRoster, m.ID)
		}
		seen[m.ID] = struct{}{}

		if !m.Position.Valid() {
			return fmt.Errorf("%w: member %s has unknown position %q", ErrInvalidRoster, m.ID, m.Position)
		}
		if !m.Position.IsPitch() {
			continue
		}
		if holder, taken := slots[m.Position]; taken {
			return fmt.Errorf("%w: position %s held by %s and %s", ErrInvalidRoster, m.Position, holder, m.ID)
		}
		slots[m.Position] = m.ID
	}

	if _, ok := seen[r.CaptainID]; !ok {
		return fmt.Errorf("%w: captain %q is not a member", ErrInvalidRoster, r.CaptainID)
	}

	return nil
}

func (r Roster) indexOf(memberID string) int {
	if memberID == "" {
		return -1
	}
	for i, m := range r.Members {
		if m.ID == memberID {
			return i
		}
	}
	return -1
}

func (r *Roster) removeAt(idx int) {
	members := make([]Member, 0, len(r.Members)-1)
	members = append(members, r.Members[:idx]...)
	members = append(members, r.Members[idx+1:]...)
	r.Members = members
}

func (r Roster) filter(keep func(Member) bool) []Member {
	out := make([]Member, 0, len(r.Members))
	for _, m := range r.Members {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
