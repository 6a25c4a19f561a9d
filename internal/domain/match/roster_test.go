package match

import (
	"errors"
	"fmt"
	"testing"
)

func fillTeam(t *testing.T, r *Roster, team Team, n int, prefix string) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-%d", prefix, i)
		if err := r.Join(Player{MemberID: id, Team: team}); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
}

func TestNewRoster_RejectsInvalidCapacity(t *testing.T) {
	for _, maxPlayers := range []int{0, -2, 7} {
		if _, err := NewRoster("m", maxPlayers); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("max=%d: expected ErrInvalidCapacity, got %v", maxPlayers, err)
		}
	}
}

func TestRoster_Join_TeamFull(t *testing.T) {
	roster, err := NewRoster("m", 10)
	if err != nil {
		t.Fatalf("new roster: %v", err)
	}
	fillTeam(t, &roster, TeamOne, 5, "t1")
	fillTeam(t, &roster, TeamTwo, 3, "t2")

	if err := roster.Join(Player{MemberID: "sixth", Team: TeamOne}); !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
	if err := roster.Join(Player{MemberID: "sixth", Team: TeamTwo}); err != nil {
		t.Fatalf("join team two: %v", err)
	}
	if got := roster.Count(TeamTwo); got != 4 {
		t.Fatalf("expected 4 on team two, got %d", got)
	}
}

func TestRoster_Join_Rejections(t *testing.T) {
	roster, _ := NewRoster("m", 4)
	if err := roster.Join(Player{MemberID: "a", Team: TeamOne}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := roster.Join(Player{MemberID: "a", Team: TeamTwo}); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	if err := roster.Join(Player{MemberID: "b", Team: Team(3)}); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam, got %v", err)
	}
}

func TestRoster_SwitchTeam_DestinationFullKeepsPlayer(t *testing.T) {
	roster, _ := NewRoster("m", 10)
	fillTeam(t, &roster, TeamOne, 2, "t1")
	fillTeam(t, &roster, TeamTwo, 5, "t2")

	err := roster.SwitchTeam("t1-0", TeamTwo)
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
	if team, ok := roster.TeamOf("t1-0"); !ok || team != TeamOne {
		t.Fatalf("expected player to remain on team one, got team=%d ok=%t", team, ok)
	}
	if roster.Count(TeamOne) != 2 || roster.Count(TeamTwo) != 5 {
		t.Fatalf("counts changed after rejected switch")
	}
}

func TestRoster_SwitchTeam(t *testing.T) {
	roster, _ := NewRoster("m", 4)
	if err := roster.SwitchTeam("ghost", TeamTwo); !errors.Is(err, ErrNotJoined) {
		t.Fatalf("expected ErrNotJoined, got %v", err)
	}
	fillTeam(t, &roster, TeamOne, 1, "p")

	if err := roster.SwitchTeam("p-0", TeamOne); err != nil {
		t.Fatalf("switch to same team should be a no-op: %v", err)
	}
	if err := roster.SwitchTeam("p-0", TeamTwo); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if team, _ := roster.TeamOf("p-0"); team != TeamTwo {
		t.Fatalf("expected team two, got %d", team)
	}
	if len(roster.Players) != 1 {
		t.Fatalf("switch must not duplicate the player")
	}
}

func TestRoster_Leave(t *testing.T) {
	roster, _ := NewRoster("m", 4)
	if err := roster.Leave("ghost"); !errors.Is(err, ErrNotJoined) {
		t.Fatalf("expected ErrNotJoined, got %v", err)
	}
	fillTeam(t, &roster, TeamOne, 2, "p")
	if err := roster.Leave("p-0"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if _, ok := roster.TeamOf("p-0"); ok {
		t.Fatalf("expected p-0 gone")
	}
	if err := roster.Join(Player{MemberID: "q", Team: TeamOne}); err != nil {
		t.Fatalf("join freed slot: %v", err)
	}
}

func TestRoster_IsFull(t *testing.T) {
	roster, _ := NewRoster("m", 4)
	fillTeam(t, &roster, TeamOne, 2, "a")
	fillTeam(t, &roster, TeamTwo, 1, "b")
	if roster.IsFull() {
		t.Fatalf("3 of 4 should not be full")
	}
	fillTeam(t, &roster, TeamTwo, 1, "c")
	if !roster.IsFull() {
		t.Fatalf("4 of 4 should be full")
	}
}

func TestRoster_CapacityHoldsAcrossOperations(t *testing.T) {
	roster, _ := NewRoster("m", 6)
	ops := []func() error{
		func() error { return roster.Join(Player{MemberID: "a", Team: TeamOne}) },
		func() error { return roster.Join(Player{MemberID: "b", Team: TeamOne}) },
		func() error { return roster.Join(Player{MemberID: "c", Team: TeamOne}) },
		func() error { return roster.Join(Player{MemberID: "d", Team: TeamOne}) },
		func() error { return roster.Join(Player{MemberID: "d", Team: TeamTwo}) },
		func() error { return roster.SwitchTeam("a", TeamTwo) },
		func() error { return roster.SwitchTeam("d", TeamOne) },
		func() error { return roster.Join(Player{MemberID: "e", Team: TeamTwo}) },
		func() error { return roster.Join(Player{MemberID: "f", Team: TeamTwo}) },
		func() error { return roster.Leave("b") },
		func() error { return roster.SwitchTeam("f", TeamOne) },
	}
	for i, op := range ops {
		_ = op()
		if roster.Count(TeamOne) > roster.Capacity() || roster.Count(TeamTwo) > roster.Capacity() {
			t.Fatalf("capacity exceeded after op %d: t1=%d t2=%d", i, roster.Count(TeamOne), roster.Count(TeamTwo))
		}
		if err := roster.Validate(); err != nil {
			t.Fatalf("invalid roster after op %d: %v", i, err)
		}
	}
}
