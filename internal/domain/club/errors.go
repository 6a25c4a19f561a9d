package club

import (
	"errors"
	"fmt"
)

var (
	ErrSlotTaken                = errors.New("position slot already taken")
	ErrNotAMember               = errors.New("not a club member")
	ErrAlreadyMember            = errors.New("already a club member")
	ErrCannotKickCaptain        = errors.New("captain cannot be kicked")
	ErrCaptainMustTransferFirst = errors.New("captain must transfer captaincy before leaving")
	ErrUnknownPosition          = errors.New("unknown position")
	ErrInvalidRoster            = errors.New("invalid club roster")
)

// SlotTakenError names the member currently holding the requested slot.
type SlotTakenError struct {
	Position Position
	HolderID string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("%s: position=%s holder=%s", ErrSlotTaken, e.Position, e.HolderID)
}

func (e *SlotTakenError) Unwrap() error {
	return ErrSlotTaken
}

type UnknownPositionError struct {
	Raw string
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownPosition, e.Raw)
}

func (e *UnknownPositionError) Unwrap() error {
	return ErrUnknownPosition
}
