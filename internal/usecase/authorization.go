package usecase

import (
	"fmt"

	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/user"
)

// authorizeMemberAction lets members act on themselves. Acting on another
// member takes the captaincy or an admin principal.
func authorizeMemberAction(roster club.Roster, actor user.Principal, memberID string) error {
	if actor.IsAdmin || actor.UserID == memberID {
		return nil
	}
	if roster.IsCaptain(actor.UserID) {
		return nil
	}
	return fmt.Errorf("%w: only the captain can manage member %s", ErrForbidden, memberID)
}

func authorizeCaptainAction(roster club.Roster, actor user.Principal, action string) error {
	if actor.IsAdmin || roster.IsCaptain(actor.UserID) {
		return nil
	}
	return fmt.Errorf("%w: only the captain can %s", ErrForbidden, action)
}

func requirePrincipal(actor user.Principal) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	return nil
}
