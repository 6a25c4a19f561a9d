package club

import "context"

// Repository is the club side of the remote roster store. Every persist call
// carries the roster version it was computed from and fails with a stale
// snapshot error when the stored roster moved on. Create stores the roster at
// version 1 and every accepted persist bumps the version by one.
type Repository interface {
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	Create(ctx context.Context, item Club, captain Member) error
	Delete(ctx context.Context, clubID string) error

	GetRoster(ctx context.Context, clubID string) (Roster, bool, error)
	AddMember(ctx context.Context, clubID string, expectedVersion int64, member Member) error
	PersistPositionClaim(ctx context.Context, clubID string, expectedVersion int64, memberID string, pos Position) error
	PersistCaptainTransfer(ctx context.Context, clubID string, expectedVersion int64, newCaptainID string) error
	PersistKick(ctx context.Context, clubID string, expectedVersion int64, memberID string) error
	PersistLeave(ctx context.Context, clubID string, expectedVersion int64, memberID string) error
}
