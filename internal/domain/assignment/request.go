package assignment

import (
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
)

// Scope selects which roster a request targets.
type Scope string

const (
	ScopeClub  Scope = "club"
	ScopeMatch Scope = "match"
)

// Request is a UI-level claim. An empty Position clears a club slot and a
// zero Team leaves a match. ActorID is set by the service that authorized it.
type Request struct {
	ActorID  string
	MemberID string
	Scope    Scope
	RosterID string
	Position club.Position
	Team     match.Team
}

type Outcome string

const (
	OutcomeClaimed   Outcome = "claimed"
	OutcomeCleared   Outcome = "cleared"
	OutcomeBenched   Outcome = "benched"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeJoined    Outcome = "joined"
	OutcomeSwitched  Outcome = "switched"
	OutcomeLeft      Outcome = "left"
)

// Result reports what was applied and the roster after it. Fallback is set
// when the requested slot was taken and the member went to the bench.
type Result struct {
	Applied  Request
	Outcome  Outcome
	Fallback club.Position
	Club     *club.Roster
	Match    *match.Roster
}

func (r Result) Changed() bool {
	return r.Outcome != OutcomeUnchanged
}

func (r Result) FellBack() bool {
	return r.Fallback != club.PositionNone
}
