package club

import "strings"

// Position is a roster slot key. The empty value means unassigned.
type Position string

const (
	PositionNone Position = ""

	PositionGoalkeeper      Position = "GB"
	PositionLeftBack        Position = "DG"
	PositionLeftCentreBack  Position = "DCG"
	PositionRightCentreBack Position = "DCD"
	PositionRightBack       Position = "DD"
	PositionLeftCentreMid   Position = "MCG"
	PositionCentreMid       Position = "MC"
	PositionRightCentreMid  Position = "MCD"
	PositionLeftWing        Position = "AG"
	PositionStriker         Position = "BU"
	PositionRightWing       Position = "AD"

	PositionSubstitute Position = "REMPLACANT"
)

const pitchPositionCount = 11

// PitchPositions lists the on-field slots from goal to attack.
var PitchPositions = [pitchPositionCount]Position{
	PositionGoalkeeper,
	PositionLeftBack,
	PositionLeftCentreBack,
	PositionRightCentreBack,
	PositionRightBack,
	PositionLeftCentreMid,
	PositionCentreMid,
	PositionRightCentreMid,
	PositionLeftWing,
	PositionStriker,
	PositionRightWing,
}

var pitchSet = func() map[Position]struct{} {
	out := make(map[Position]struct{}, pitchPositionCount)
	for _, p := range PitchPositions {
		out[p] = struct{}{}
	}
	return out
}()

// IsPitch reports whether p is one of the eleven unique on-field slots.
func (p Position) IsPitch() bool {
	_, ok := pitchSet[p]
	return ok
}

func (p Position) IsSubstitute() bool {
	return p == PositionSubstitute
}

// Valid accepts pitch slots, the bench and the unassigned value.
func (p Position) Valid() bool {
	return p == PositionNone || p == PositionSubstitute || p.IsPitch()
}

func (p Position) String() string {
	return string(p)
}

// ParsePosition normalizes raw input from clients. Unknown keys are rejected.
func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return PositionNone, &UnknownPositionError{Raw: raw}
	}
	return p, nil
}
