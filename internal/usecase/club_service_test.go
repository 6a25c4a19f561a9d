package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/user"
	"github.com/Baguimon/STYX-sub000/internal/infrastructure/repository/memory"
	clubmock "github.com/Baguimon/STYX-sub000/internal/mocks/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/platform/id"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
)

var (
	captainLea = user.Principal{UserID: memory.SeedCaptainID, DisplayName: "Léa"}
	memberHugo = user.Principal{UserID: "user-hugo", DisplayName: "Hugo"}
	memberTom  = user.Principal{UserID: "user-tom", DisplayName: "Tom"}
	adminAna   = user.Principal{UserID: "user-admin", DisplayName: "Ana", IsAdmin: true}
	outsider   = user.Principal{UserID: "user-outsider", DisplayName: "Sam"}
)

func newSeededClubService(t *testing.T) (*ClubService, *memory.ClubRepository) {
	t.Helper()

	repo := memory.NewClubRepository(memory.SeedClubs(), memory.SeedClubRosters())
	svc := NewClubService(repo, id.NewSequence("club-new-1", "club-new-2"), logging.NewNop(), AssignmentConfig{MaxAttempts: 3})
	return svc, repo
}

func TestClubService_ClaimPosition_TakenSlotFallsBackToBench(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newSeededClubService(t)

	result, err := svc.ClaimPosition(ctx, ClaimPositionInput{
		Actor:    memberHugo,
		ClubID:   memory.ClubIDStyx,
		MemberID: memberHugo.UserID,
		Position: "bu",
	})
	if err != nil {
		t.Fatalf("claim position: %v", err)
	}
	if result.Fallback != club.PositionSubstitute || result.Outcome != assignment.OutcomeBenched {
		t.Fatalf("expected bench fallback, got outcome=%s fallback=%q", result.Outcome, result.Fallback)
	}

	stored, _, _ := repo.GetRoster(ctx, memory.ClubIDStyx)
	hugo, _ := stored.Member(memberHugo.UserID)
	if hugo.Position != club.PositionSubstitute {
		t.Fatalf("expected stored position REMPLACANT, got %q", hugo.Position)
	}
	if holder, _ := stored.PositionHolder(club.PositionStriker); holder != "user-karim" {
		t.Fatalf("expected karim to keep BU, got %q", holder)
	}
	if stored.Version != 2 || result.Club.Version != 2 {
		t.Fatalf("expected version 2, stored=%d result=%d", stored.Version, result.Club.Version)
	}
}

func TestClubService_ClaimPosition_Authorization(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	_, err := svc.ClaimPosition(ctx, ClaimPositionInput{
		Actor:    memberHugo,
		ClubID:   memory.ClubIDStyx,
		MemberID: memberTom.UserID,
		Position: "",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	for _, actor := range []user.Principal{captainLea, adminAna} {
		result, err := svc.ClaimPosition(ctx, ClaimPositionInput{
			Actor:    actor,
			ClubID:   memory.ClubIDStyx,
			MemberID: memberHugo.UserID,
			Position: string(club.PositionRightBack),
		})
		if err != nil {
			t.Fatalf("%s assigns hugo: %v", actor.UserID, err)
		}
		if result.Applied.ActorID != actor.UserID {
			t.Fatalf("expected applied actor %s, got %s", actor.UserID, result.Applied.ActorID)
		}
	}
}

func TestClubService_ClaimPosition_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	_, err := svc.ClaimPosition(ctx, ClaimPositionInput{Actor: memberHugo, ClubID: memory.ClubIDStyx, MemberID: memberHugo.UserID, Position: "LIBERO"})
	if !errors.Is(err, club.ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}

	_, err = svc.ClaimPosition(ctx, ClaimPositionInput{Actor: outsider, ClubID: memory.ClubIDStyx, MemberID: outsider.UserID, Position: "GB"})
	if !errors.Is(err, club.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}

	_, err = svc.ClaimPosition(ctx, ClaimPositionInput{Actor: memberHugo, ClubID: "missing", MemberID: memberHugo.UserID, Position: "GB"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.ClaimPosition(ctx, ClaimPositionInput{ClubID: memory.ClubIDStyx, MemberID: memberHugo.UserID, Position: "GB"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClubService_ClaimPosition_UnchangedDoesNotPersist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newSeededClubService(t)

	result, err := svc.ClaimPosition(ctx, ClaimPositionInput{Actor: memberTom, ClubID: memory.ClubIDStyx, MemberID: memberTom.UserID, Position: "GB"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if result.Changed() {
		t.Fatalf("expected unchanged outcome, got %s", result.Outcome)
	}
	stored, _, _ := repo.GetRoster(ctx, memory.ClubIDStyx)
	if stored.Version != 1 {
		t.Fatalf("expected version to stay at 1, got %d", stored.Version)
	}
}

func TestClubService_ClaimPosition_ConcurrentClaimsKeepSlotUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	roster := club.NewRoster("club-rush", club.Member{ID: "cap"})
	const contenders = 12
	for i := 0; i < contenders; i++ {
		if err := roster.AddMember(club.Member{ID: fmt.Sprintf("m-%02d", i)}); err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}
	repo := memory.NewClubRepository(nil, []club.Roster{roster})
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	var wg sync.WaitGroup
	outcomes := make(chan assignment.Outcome, contenders)
	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		memberID := fmt.Sprintf("m-%02d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.ClaimPosition(ctx, ClaimPositionInput{
				Actor:    user.Principal{UserID: memberID},
				ClubID:   "club-rush",
				MemberID: memberID,
				Position: "AG",
			})
			if err != nil {
				errs <- err
				return
			}
			outcomes <- result.Outcome
		}()
	}
	wg.Wait()
	close(outcomes)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
	claimed, benched := 0, 0
	for outcome := range outcomes {
		switch outcome {
		case assignment.OutcomeClaimed:
			claimed++
		case assignment.OutcomeBenched:
			benched++
		}
	}
	if claimed != 1 || benched != contenders-1 {
		t.Fatalf("expected 1 claim and %d benched, got claimed=%d benched=%d", contenders-1, claimed, benched)
	}

	stored, _, _ := repo.GetRoster(ctx, "club-rush")
	if err := stored.Validate(); err != nil {
		t.Fatalf("stored roster invalid: %v", err)
	}
	if got := len(stored.Bench()); got != contenders-1 {
		t.Fatalf("expected %d on bench, got %d", contenders-1, got)
	}
}

func TestClubService_ClaimPosition_StaleSnapshotRefetchesAndFallsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	before := club.Roster{
		ClubID:    "club-1",
		CaptainID: "cap",
		Version:   4,
		Members:   []club.Member{{ID: "cap"}, {ID: "a"}, {ID: "b"}},
	}
	after := before.Clone()
	after.Version = 5
	after.Members[2].Position = club.PositionStriker

	repo.On("GetRoster", mock.Anything, "club-1").Return(before, true, nil).Once()
	repo.On("PersistPositionClaim", mock.Anything, "club-1", int64(4), "a", club.PositionStriker).
		Return(fmt.Errorf("remote rejected: %w", assignment.ErrStaleSnapshot)).
		Once()
	repo.On("GetRoster", mock.Anything, "club-1").Return(after, true, nil).Once()
	repo.On("PersistPositionClaim", mock.Anything, "club-1", int64(5), "a", club.PositionSubstitute).
		Return(nil).
		Once()

	result, err := svc.ClaimPosition(ctx, ClaimPositionInput{
		Actor:    user.Principal{UserID: "a"},
		ClubID:   "club-1",
		MemberID: "a",
		Position: "BU",
	})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !result.FellBack() {
		t.Fatalf("expected the refetched claim to fall back to the bench")
	}
	if result.Club.Version != 6 {
		t.Fatalf("expected version 6, got %d", result.Club.Version)
	}
}

func TestClubService_ClaimPosition_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	roster := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}}}
	repo.On("GetRoster", mock.Anything, "club-1").Return(roster, true, nil).Times(3)
	repo.On("PersistPositionClaim", mock.Anything, "club-1", int64(1), "a", club.PositionGoalkeeper).
		Return(assignment.ErrStaleSnapshot).
		Times(3)

	_, err := svc.ClaimPosition(ctx, ClaimPositionInput{Actor: user.Principal{UserID: "a"}, ClubID: "club-1", MemberID: "a", Position: "GB"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestClubService_ClaimPosition_DependencyErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	roster := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}}}
	repo.On("GetRoster", mock.Anything, "club-1").Return(roster, true, nil).Once()
	repo.On("PersistPositionClaim", mock.Anything, "club-1", int64(1), "a", club.PositionGoalkeeper).
		Return(fmt.Errorf("%w: remote api down", ErrDependencyUnavailable)).
		Once()

	_, err := svc.ClaimPosition(ctx, ClaimPositionInput{Actor: user.Principal{UserID: "a"}, ClubID: "club-1", MemberID: "a", Position: "GB"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClubService_TransferThenKickFormerCaptain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	if _, err := svc.KickMember(ctx, memberHugo, memory.ClubIDStyx, memberTom.UserID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-captain kick, got %v", err)
	}
	if _, err := svc.KickMember(ctx, captainLea, memory.ClubIDStyx, captainLea.UserID); !errors.Is(err, club.ErrCannotKickCaptain) {
		t.Fatalf("expected ErrCannotKickCaptain, got %v", err)
	}

	roster, err := svc.TransferCaptaincy(ctx, captainLea, memory.ClubIDStyx, memberTom.UserID)
	if err != nil {
		t.Fatalf("transfer captaincy: %v", err)
	}
	if roster.CaptainID != memberTom.UserID {
		t.Fatalf("expected tom as captain, got %s", roster.CaptainID)
	}

	roster, err = svc.KickMember(ctx, memberTom, memory.ClubIDStyx, captainLea.UserID)
	if err != nil {
		t.Fatalf("kick former captain: %v", err)
	}
	if _, ok := roster.Member(captainLea.UserID); ok {
		t.Fatalf("expected lea to be removed")
	}
	if _, held := roster.PositionHolder(club.PositionCentreMid); held {
		t.Fatalf("expected MC to be freed by the kick")
	}
	if roster.Version != 3 {
		t.Fatalf("expected version 3, got %d", roster.Version)
	}
}

func TestClubService_TransferCaptaincy_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	if _, err := svc.TransferCaptaincy(ctx, memberHugo, memory.ClubIDStyx, memberHugo.UserID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.TransferCaptaincy(ctx, captainLea, memory.ClubIDStyx, outsider.UserID); !errors.Is(err, club.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
	if _, err := svc.TransferCaptaincy(ctx, adminAna, memory.ClubIDStyx, memberHugo.UserID); err != nil {
		t.Fatalf("admin transfer: %v", err)
	}
}

func TestClubService_LeaveClub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	if _, err := svc.LeaveClub(ctx, captainLea, memory.ClubIDStyx); !errors.Is(err, club.ErrCaptainMustTransferFirst) {
		t.Fatalf("expected ErrCaptainMustTransferFirst, got %v", err)
	}

	left, err := svc.LeaveClub(ctx, memberHugo, memory.ClubIDStyx)
	if err != nil {
		t.Fatalf("hugo leaves: %v", err)
	}
	if left.ClubDeleted {
		t.Fatalf("club must survive while members remain")
	}
	if _, err := svc.LeaveClub(ctx, memberHugo, memory.ClubIDStyx); !errors.Is(err, club.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember on second leave, got %v", err)
	}
}

func TestClubService_LastMemberLeavingDeletesClub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	created, err := svc.CreateClub(ctx, CreateClubInput{Actor: outsider, Name: "  Solo FC "})
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if created.Club.ID != "club-new-1" || created.Club.Name != "Solo FC" {
		t.Fatalf("unexpected club: %+v", created.Club)
	}
	if created.Roster.CaptainID != outsider.UserID {
		t.Fatalf("expected creator as captain, got %s", created.Roster.CaptainID)
	}

	if _, err := svc.GetClub(ctx, created.Club.ID); err != nil {
		t.Fatalf("get club: %v", err)
	}

	left, err := svc.LeaveClub(ctx, outsider, created.Club.ID)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if !left.ClubDeleted || !left.Roster.IsEmpty() {
		t.Fatalf("expected empty roster and deleted club, got %+v", left)
	}

	if _, err := svc.GetClub(ctx, created.Club.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestClubService_JoinClub(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	roster, err := svc.JoinClub(ctx, outsider, memory.ClubIDStyx)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	joined, ok := roster.Member(outsider.UserID)
	if !ok || joined.Position != club.PositionNone {
		t.Fatalf("expected unassigned new member, got %+v ok=%t", joined, ok)
	}
	if _, err := svc.JoinClub(ctx, outsider, memory.ClubIDStyx); !errors.Is(err, club.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestClubService_CreateClub_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newSeededClubService(t)
	if _, err := svc.CreateClub(context.Background(), CreateClubInput{Actor: outsider, Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClubService_GetClub_UsesDirectoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{ClubCacheTTL: 0})

	profile := club.Club{ID: "club-1", Name: "FC Styx", CreatedBy: "cap"}
	roster := club.NewRoster("club-1", club.Member{ID: "cap"})
	repo.On("GetByID", mock.Anything, "club-1").Return(profile, true, nil).Once()
	repo.On("GetRoster", mock.Anything, "club-1").Return(roster, true, nil).Twice()

	for i := 0; i < 2; i++ {
		details, err := svc.GetClub(ctx, "club-1")
		if err != nil {
			t.Fatalf("get club: %v", err)
		}
		if details.Club.Name != "FC Styx" || details.Roster.CaptainID != "cap" {
			t.Fatalf("unexpected details: %+v", details)
		}
	}
}

func TestClubService_JoinClub_StaleAfterStoredWriteSucceeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	before := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}}}
	after := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 2, Members: []club.Member{{ID: "a"}, {ID: "b"}}}

	repo.On("GetRoster", mock.Anything, "club-1").Return(before, true, nil).Once()
	repo.On("AddMember", mock.Anything, "club-1", int64(1), mock.AnythingOfType("club.Member")).
		Return(fmt.Errorf("%w: %w: gateway timeout", ErrDependencyUnavailable, assignment.ErrStaleSnapshot)).
		Once()
	repo.On("GetRoster", mock.Anything, "club-1").Return(after, true, nil).Once()

	roster, err := svc.JoinClub(ctx, user.Principal{UserID: "b"}, "club-1")
	if err != nil {
		t.Fatalf("expected join already stored to succeed, got %v", err)
	}
	if _, ok := roster.Member("b"); !ok || roster.Version != 2 {
		t.Fatalf("expected b in roster at version 2, got %+v", roster)
	}
}

func TestClubService_KickMember_StaleAfterStoredWriteSucceeds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	before := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}, {ID: "b"}}}
	after := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 2, Members: []club.Member{{ID: "a"}}}

	repo.On("GetRoster", mock.Anything, "club-1").Return(before, true, nil).Once()
	repo.On("PersistKick", mock.Anything, "club-1", int64(1), "b").Return(assignment.ErrStaleSnapshot).Once()
	repo.On("GetRoster", mock.Anything, "club-1").Return(after, true, nil).Once()

	roster, err := svc.KickMember(ctx, user.Principal{UserID: "a"}, "club-1", "b")
	if err != nil {
		t.Fatalf("expected kick already stored to succeed, got %v", err)
	}
	if _, ok := roster.Member("b"); ok {
		t.Fatalf("expected b gone, got %+v", roster)
	}
}

func TestClubService_KickMember_UnknownMemberStillFailsOnFirstAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newSeededClubService(t)

	if _, err := svc.KickMember(ctx, captainLea, memory.ClubIDStyx, "user-nobody"); !errors.Is(err, club.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestClubService_LeaveClub_FailedDeleteIsFinishedByRetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	solo := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}}}
	shell := club.Roster{ClubID: "club-1", Version: 2}

	repo.On("GetRoster", mock.Anything, "club-1").Return(solo, true, nil).Once()
	repo.On("PersistLeave", mock.Anything, "club-1", int64(1), "a").Return(nil).Once()
	repo.On("Delete", mock.Anything, "club-1").Return(fmt.Errorf("%w: remote api down", ErrDependencyUnavailable)).Once()

	left, err := svc.LeaveClub(ctx, user.Principal{UserID: "a"}, "club-1")
	if err != nil {
		t.Fatalf("stored leave must not fail on cleanup: %v", err)
	}
	if left.ClubDeleted || !left.Roster.IsEmpty() {
		t.Fatalf("expected empty roster with club kept, got %+v", left)
	}

	repo.On("GetRoster", mock.Anything, "club-1").Return(shell, true, nil).Once()
	repo.On("Delete", mock.Anything, "club-1").Return(nil).Once()

	left, err = svc.LeaveClub(ctx, user.Principal{UserID: "a"}, "club-1")
	if err != nil {
		t.Fatalf("retry leave: %v", err)
	}
	if !left.ClubDeleted {
		t.Fatalf("expected retry to delete the empty club")
	}
}

func TestClubService_ClaimPosition_UnknownWriteOutcomeGivesUpAsUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := clubmock.NewRepository(t)
	svc := NewClubService(repo, nil, logging.NewNop(), AssignmentConfig{MaxAttempts: 3})

	roster := club.Roster{ClubID: "club-1", CaptainID: "a", Version: 1, Members: []club.Member{{ID: "a"}}}
	repo.On("GetRoster", mock.Anything, "club-1").Return(roster, true, nil).Times(3)
	repo.On("PersistPositionClaim", mock.Anything, "club-1", int64(1), "a", club.PositionGoalkeeper).
		Return(fmt.Errorf("%w: %w: bad gateway", ErrDependencyUnavailable, assignment.ErrStaleSnapshot)).
		Times(3)

	_, err := svc.ClaimPosition(ctx, ClaimPositionInput{Actor: user.Principal{UserID: "a"}, ClubID: "club-1", MemberID: "a", Position: "GB"})
	if !errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
