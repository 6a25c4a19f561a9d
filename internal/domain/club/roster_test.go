package club

import (
	"errors"
	"testing"
)

func newTestRoster(t *testing.T, memberIDs ...string) Roster {
	t.Helper()

	roster := NewRoster("club-1", Member{ID: "captain", DisplayName: "Captain"})
	for _, id := range memberIDs {
		if err := roster.AddMember(Member{ID: id, DisplayName: id}); err != nil {
			t.Fatalf("add member %s: %v", id, err)
		}
	}
	return roster
}

func TestRoster_ClaimPosition_SlotTakenByOtherMember(t *testing.T) {
	roster := newTestRoster(t, "a", "b")
	if err := roster.ClaimPosition("a", PositionStriker); err != nil {
		t.Fatalf("claim striker for a: %v", err)
	}

	err := roster.ClaimPosition("b", PositionStriker)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	var taken *SlotTakenError
	if !errors.As(err, &taken) || taken.HolderID != "a" {
		t.Fatalf("expected holder a in error, got %v", err)
	}

	holder, ok := roster.PositionHolder(PositionStriker)
	if !ok || holder != "a" {
		t.Fatalf("expected a to keep striker, got %q", holder)
	}
	if m, _ := roster.Member("b"); m.Position != PositionNone {
		t.Fatalf("expected b unassigned, got %q", m.Position)
	}
}

func TestRoster_ClaimPosition_MovingReleasesPreviousSlot(t *testing.T) {
	roster := newTestRoster(t, "a", "b")
	if err := roster.ClaimPosition("a", PositionGoalkeeper); err != nil {
		t.Fatalf("claim goalkeeper: %v", err)
	}
	if err := roster.ClaimPosition("a", PositionLeftWing); err != nil {
		t.Fatalf("claim left wing: %v", err)
	}

	if _, ok := roster.PositionHolder(PositionGoalkeeper); ok {
		t.Fatalf("expected goalkeeper slot to be released")
	}
	if err := roster.ClaimPosition("b", PositionGoalkeeper); err != nil {
		t.Fatalf("expected b to take released goalkeeper slot: %v", err)
	}
}

func TestRoster_ClaimPosition_BenchHasNoLimit(t *testing.T) {
	ids := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10", "m11", "m12", "m13"}
	roster := newTestRoster(t, ids...)
	for _, id := range ids {
		if err := roster.ClaimPosition(id, PositionSubstitute); err != nil {
			t.Fatalf("bench %s: %v", id, err)
		}
	}
	if got := len(roster.Bench()); got != len(ids) {
		t.Fatalf("expected %d on bench, got %d", len(ids), got)
	}
}

func TestRoster_ClaimPosition_ClearAndIdempotent(t *testing.T) {
	roster := newTestRoster(t, "a")
	if err := roster.ClaimPosition("a", PositionCentreMid); err != nil {
		t.Fatalf("claim: %v", err)
	}
	once := roster.Clone()
	if err := roster.ClaimPosition("a", PositionCentreMid); err != nil {
		t.Fatalf("repeat claim should be a no-op: %v", err)
	}
	if m1, _ := once.Member("a"); m1 != mustMember(t, roster, "a") {
		t.Fatalf("repeat claim changed member state")
	}

	if err := roster.ClaimPosition("a", PositionNone); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if m := mustMember(t, roster, "a"); m.Position != PositionNone {
		t.Fatalf("expected cleared position, got %q", m.Position)
	}
}

func TestRoster_ClaimPosition_Rejections(t *testing.T) {
	roster := newTestRoster(t, "a")

	if err := roster.ClaimPosition("ghost", PositionStriker); !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
	if err := roster.ClaimPosition("a", Position("LIBERO")); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestRoster_PitchSlotsStayUnique(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	roster := newTestRoster(t, ids...)

	claims := []struct {
		member string
		pos    Position
	}{
		{"a", PositionStriker},
		{"b", PositionStriker},
		{"c", PositionGoalkeeper},
		{"a", PositionGoalkeeper},
		{"d", PositionStriker},
		{"b", PositionSubstitute},
		{"c", PositionStriker},
	}
	for _, c := range claims {
		err := roster.ClaimPosition(c.member, c.pos)
		if err != nil && !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("claim %s->%s: unexpected error %v", c.member, c.pos, err)
		}
		if err == nil && c.pos.IsPitch() {
			if holder, _ := roster.PositionHolder(c.pos); holder != c.member {
				t.Fatalf("claim %s->%s succeeded but holder is %s", c.member, c.pos, holder)
			}
		}
		if err := roster.Validate(); err != nil {
			t.Fatalf("roster invalid after claim %s->%s: %v", c.member, c.pos, err)
		}
	}
}

func TestRoster_SetCaptain(t *testing.T) {
	roster := newTestRoster(t, "a")

	if err := roster.SetCaptain("ghost"); !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
	if roster.CaptainID != "captain" {
		t.Fatalf("captain changed after failed transfer: %s", roster.CaptainID)
	}
	if err := roster.SetCaptain("a"); err != nil {
		t.Fatalf("transfer captaincy: %v", err)
	}
	if !roster.IsCaptain("a") {
		t.Fatalf("expected a to be captain")
	}
}

func TestRoster_KickMember(t *testing.T) {
	roster := newTestRoster(t, "a")
	if err := roster.ClaimPosition("a", PositionRightBack); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if err := roster.KickMember("captain"); !errors.Is(err, ErrCannotKickCaptain) {
		t.Fatalf("expected ErrCannotKickCaptain, got %v", err)
	}
	if err := roster.KickMember("ghost"); !errors.Is(err, ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
	if err := roster.KickMember("a"); err != nil {
		t.Fatalf("kick a: %v", err)
	}
	if _, ok := roster.PositionHolder(PositionRightBack); ok {
		t.Fatalf("expected kicked member slot to be released")
	}
	if err := roster.Validate(); err != nil {
		t.Fatalf("roster invalid after kick: %v", err)
	}
}

func TestRoster_TransferThenKickFormerCaptain(t *testing.T) {
	roster := newTestRoster(t, "a")
	if err := roster.SetCaptain("a"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := roster.KickMember("captain"); err != nil {
		t.Fatalf("kick former captain: %v", err)
	}
	if roster.CaptainID != "a" {
		t.Fatalf("unexpected captain %s", roster.CaptainID)
	}
}

func TestRoster_RemoveSelf(t *testing.T) {
	t.Run("captain must transfer first", func(t *testing.T) {
		roster := newTestRoster(t, "a")
		if err := roster.RemoveSelf("captain"); !errors.Is(err, ErrCaptainMustTransferFirst) {
			t.Fatalf("expected ErrCaptainMustTransferFirst, got %v", err)
		}
		if len(roster.Members) != 2 {
			t.Fatalf("roster changed after rejected leave")
		}
	})

	t.Run("member leaves", func(t *testing.T) {
		roster := newTestRoster(t, "a")
		if err := roster.RemoveSelf("a"); err != nil {
			t.Fatalf("leave: %v", err)
		}
		if _, ok := roster.Member("a"); ok {
			t.Fatalf("expected a to be gone")
		}
	})

	t.Run("last captain empties roster", func(t *testing.T) {
		roster := newTestRoster(t)
		if err := roster.RemoveSelf("captain"); err != nil {
			t.Fatalf("leave as last member: %v", err)
		}
		if !roster.IsEmpty() || roster.CaptainID != "" {
			t.Fatalf("expected empty roster without captain, got %+v", roster)
		}
		if err := roster.Validate(); err != nil {
			t.Fatalf("empty roster should validate: %v", err)
		}
	})
}

func TestRoster_AddMember(t *testing.T) {
	roster := newTestRoster(t, "a")
	if err := roster.AddMember(Member{ID: "a"}); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if err := roster.AddMember(Member{ID: "b", Position: PositionStriker}); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if m := mustMember(t, roster, "b"); m.Position != PositionNone {
		t.Fatalf("new members must start unassigned, got %q", m.Position)
	}
}

func TestRoster_ValidateRejectsBrokenSnapshots(t *testing.T) {
	cases := map[string]Roster{
		"captain not member": {
			ClubID:    "c",
			CaptainID: "ghost",
			Members:   []Member{{ID: "a"}},
		},
		"duplicate slot": {
			ClubID:    "c",
			CaptainID: "a",
			Members:   []Member{{ID: "a", Position: PositionStriker}, {ID: "b", Position: PositionStriker}},
		},
		"duplicate member": {
			ClubID:    "c",
			CaptainID: "a",
			Members:   []Member{{ID: "a"}, {ID: "a"}},
		},
	}
	for name, roster := range cases {
		t.Run(name, func(t *testing.T) {
			if err := roster.Validate(); !errors.Is(err, ErrInvalidRoster) {
				t.Fatalf("expected ErrInvalidRoster, got %v", err)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	got, err := ParsePosition(" bu ")
	if err != nil || got != PositionStriker {
		t.Fatalf("expected BU, got %q err=%v", got, err)
	}
	if got, err := ParsePosition(""); err != nil || got != PositionNone {
		t.Fatalf("expected empty to clear, got %q err=%v", got, err)
	}
	if _, err := ParsePosition("XX"); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func mustMember(t *testing.T, roster Roster, id string) Member {
	t.Helper()
	m, ok := roster.Member(id)
	if !ok {
		t.Fatalf("member %s not found", id)
	}
	return m
}
