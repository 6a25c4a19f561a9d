package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/user"
	"github.com/Baguimon/STYX-sub000/internal/platform/cache"
	"github.com/Baguimon/STYX-sub000/internal/platform/id"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
)

const clubNameMaxLength = 60

type AssignmentConfig struct {
	MaxAttempts  int
	ClubCacheTTL time.Duration
}

type CreateClubInput struct {
	Actor    user.Principal
	Name     string
	ImageURL string
}

type ClaimPositionInput struct {
	Actor    user.Principal
	ClubID   string
	MemberID string
	Position string
}

// ClubDetails is a club profile next to its current roster.
type ClubDetails struct {
	Club   club.Club
	Roster club.Roster
}

type LeaveClubResult struct {
	Roster      club.Roster
	ClubDeleted bool
}

type ClubService struct {
	repo        club.Repository
	ids         id.Generator
	directory   *cache.Store[club.Club]
	sequencer   *keyedSequencer
	logger      *logging.Logger
	maxAttempts int
	now         func() time.Time
}

func NewClubService(repo club.Repository, ids id.Generator, logger *logging.Logger, cfg AssignmentConfig) *ClubService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &ClubService{
		repo:        repo,
		ids:         ids,
		directory:   cache.NewStore[club.Club](cfg.ClubCacheTTL),
		sequencer:   newKeyedSequencer(),
		logger:      logger.Named("club_service"),
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
}

func (s *ClubService) CreateClub(ctx context.Context, input CreateClubInput) (ClubDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.CreateClub")
	defer span.End()

	if err := requirePrincipal(input.Actor); err != nil {
		return ClubDetails{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ClubDetails{}, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > clubNameMaxLength {
		return ClubDetails{}, fmt.Errorf("%w: club name must be at most %d characters", ErrInvalidInput, clubNameMaxLength)
	}

	clubID, err := s.ids.NewID()
	if err != nil {
		return ClubDetails{}, fmt.Errorf("generate club id: %w", err)
	}

	now := s.now().UTC()
	item := club.Club{
		ID:        clubID,
		Name:      name,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		CreatedBy: input.Actor.UserID,
		CreatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return ClubDetails{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	captain := club.Member{
		ID:          input.Actor.UserID,
		DisplayName: input.Actor.DisplayName,
		JoinedAt:    now,
	}

	if err := s.repo.Create(ctx, item, captain); err != nil {
		return ClubDetails{}, fmt.Errorf("create club: %w", err)
	}
	s.directory.Set(ctx, clubID, item)

	roster := club.NewRoster(clubID, captain)
	roster.Version = 1
	s.logger.InfoContext(ctx, "club created", "club_id", clubID, "captain_id", captain.ID)

	return ClubDetails{Club: item, Roster: roster}, nil
}

// GetClub loads the profile through the club directory cache and the roster
// straight from the store, in parallel.
func (s *ClubService) GetClub(ctx context.Context, clubID string) (ClubDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return ClubDetails{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	var (
		details   ClubDetails
		clubErr   error
		rosterErr error
		wg        conc.WaitGroup
	)
	wg.Go(func() {
		details.Club, clubErr = s.lookupClub(ctx, clubID)
	})
	wg.Go(func() {
		details.Roster, rosterErr = s.fetchRoster(ctx, clubID)
	})
	wg.Wait()

	if clubErr != nil {
		return ClubDetails{}, clubErr
	}
	if rosterErr != nil {
		return ClubDetails{}, rosterErr
	}
	return details, nil
}

func (s *ClubService) GetRoster(ctx context.Context, clubID string) (club.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetRoster")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return club.Roster{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	return s.fetchRoster(ctx, clubID)
}

func (s *ClubService) JoinClub(ctx context.Context, actor user.Principal, clubID string) (club.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.JoinClub")
	defer span.End()

	var out club.Roster
	err := s.mutate(ctx, "join_club", clubID, actor, func(ctx context.Context, roster club.Roster, retried bool) error {
		member := club.Member{
			ID:          actor.UserID,
			DisplayName: actor.DisplayName,
			JoinedAt:    s.now().UTC(),
		}
		next := roster.Clone()
		if err := next.AddMember(member); err != nil {
			if retried && errors.Is(err, club.ErrAlreadyMember) {
				s.logger.InfoContext(ctx, "club join already applied", "club_id", roster.ClubID, "user_id", actor.UserID)
				out = next
				return nil
			}
			return err
		}
		if err := s.repo.AddMember(ctx, roster.ClubID, roster.Version, member); err != nil {
			return fmt.Errorf("persist club join: %w", err)
		}

		next.Version = roster.Version + 1
		out = next
		return nil
	})
	if err != nil {
		return club.Roster{}, err
	}
	return out, nil
}

// ClaimPosition moves a member to a pitch slot, the bench, or clears the
// slot when Position is empty. A slot held by someone else puts the member on
// the bench instead and the result reports the fallback.
func (s *ClubService) ClaimPosition(ctx context.Context, input ClaimPositionInput) (assignment.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ClaimPosition")
	defer span.End()

	memberID := strings.TrimSpace(input.MemberID)
	if memberID == "" {
		return assignment.Result{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	pos, err := club.ParsePosition(input.Position)
	if err != nil {
		return assignment.Result{}, err
	}

	var out assignment.Result
	err = s.mutate(ctx, "claim_position", input.ClubID, input.Actor, func(ctx context.Context, roster club.Roster, _ bool) error {
		if err := authorizeMemberAction(roster, input.Actor, memberID); err != nil {
			return err
		}

		result, err := assignment.AssignClubPosition(roster, memberID, pos)
		if err != nil {
			return err
		}
		result.Applied.ActorID = input.Actor.UserID

		if result.Changed() {
			final, _ := result.Club.Member(memberID)
			if err := s.repo.PersistPositionClaim(ctx, roster.ClubID, roster.Version, memberID, final.Position); err != nil {
				return fmt.Errorf("persist position claim: %w", err)
			}
			result.Club.Version = roster.Version + 1
		}
		if result.FellBack() {
			s.logger.InfoContext(ctx, "slot taken, placed on bench",
				"club_id", roster.ClubID,
				"member_id", memberID,
				"requested", pos.String(),
			)
		}

		out = result
		return nil
	})
	if err != nil {
		return assignment.Result{}, err
	}
	return out, nil
}

func (s *ClubService) TransferCaptaincy(ctx context.Context, actor user.Principal, clubID, newCaptainID string) (club.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.TransferCaptaincy")
	defer span.End()

	newCaptainID = strings.TrimSpace(newCaptainID)
	if newCaptainID == "" {
		return club.Roster{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	var out club.Roster
	err := s.mutate(ctx, "transfer_captaincy", clubID, actor, func(ctx context.Context, roster club.Roster, _ bool) error {
		if err := authorizeCaptainAction(roster, actor, "transfer captaincy"); err != nil {
			return err
		}

		next := roster.Clone()
		if err := next.SetCaptain(newCaptainID); err != nil {
			return err
		}
		if roster.CaptainID == newCaptainID {
			out = next
			return nil
		}
		if err := s.repo.PersistCaptainTransfer(ctx, roster.ClubID, roster.Version, newCaptainID); err != nil {
			return fmt.Errorf("persist captain transfer: %w", err)
		}

		next.Version = roster.Version + 1
		out = next
		s.logger.InfoContext(ctx, "captaincy transferred",
			"club_id", roster.ClubID,
			"from", roster.CaptainID,
			"to", newCaptainID,
		)
		return nil
	})
	if err != nil {
		return club.Roster{}, err
	}
	return out, nil
}

func (s *ClubService) KickMember(ctx context.Context, actor user.Principal, clubID, memberID string) (club.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.KickMember")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return club.Roster{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	var out club.Roster
	err := s.mutate(ctx, "kick_member", clubID, actor, func(ctx context.Context, roster club.Roster, retried bool) error {
		if err := authorizeCaptainAction(roster, actor, "kick members"); err != nil {
			return err
		}

		next := roster.Clone()
		if err := next.KickMember(memberID); err != nil {
			if retried && errors.Is(err, club.ErrNotAMember) {
				s.logger.InfoContext(ctx, "kick already applied", "club_id", roster.ClubID, "member_id", memberID)
				out = next
				return nil
			}
			return err
		}
		if err := s.repo.PersistKick(ctx, roster.ClubID, roster.Version, memberID); err != nil {
			return fmt.Errorf("persist kick: %w", err)
		}

		next.Version = roster.Version + 1
		out = next
		return nil
	})
	if err != nil {
		return club.Roster{}, err
	}
	return out, nil
}

// LeaveClub removes the actor from the club. The last member leaving deletes
// the club.
func (s *ClubService) LeaveClub(ctx context.Context, actor user.Principal, clubID string) (LeaveClubResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.LeaveClub")
	defer span.End()

	var out LeaveClubResult
	err := s.mutate(ctx, "leave_club", clubID, actor, func(ctx context.Context, roster club.Roster, retried bool) error {
		next := roster.Clone()
		if err := next.RemoveSelf(actor.UserID); err != nil {
			// A stale retry or a leftover empty shell means the leave already landed.
			if !errors.Is(err, club.ErrNotAMember) || (!retried && !roster.IsEmpty()) {
				return err
			}
			s.logger.InfoContext(ctx, "club leave already applied", "club_id", roster.ClubID, "user_id", actor.UserID)
			out = LeaveClubResult{Roster: next}
		} else {
			if err := s.repo.PersistLeave(ctx, roster.ClubID, roster.Version, actor.UserID); err != nil {
				return fmt.Errorf("persist leave: %w", err)
			}
			next.Version = roster.Version + 1
			out = LeaveClubResult{Roster: next}
		}

		if next.IsEmpty() {
			out.ClubDeleted = s.deleteEmptyClub(ctx, roster.ClubID)
		}
		return nil
	})
	if err != nil {
		return LeaveClubResult{}, err
	}
	return out, nil
}

// deleteEmptyClub removes a club whose last member left. The leave is already
// stored, so a failed delete is only logged. Leaving the empty shell again retries it.
func (s *ClubService) deleteEmptyClub(ctx context.Context, clubID string) bool {
	if err := s.repo.Delete(ctx, clubID); err != nil {
		s.logger.WarnContext(ctx, "delete empty club failed", "club_id", clubID, "error", err)
		return false
	}
	s.directory.Delete(ctx, clubID)
	s.logger.InfoContext(ctx, "last member left, club deleted", "club_id", clubID)
	return true
}

// mutate serializes work per club and hands apply a freshly fetched roster on
// every attempt. retried is set once a persist came back stale, when the
// earlier write may have landed after all.
func (s *ClubService) mutate(
	ctx context.Context,
	op, clubID string,
	actor user.Principal,
	apply func(ctx context.Context, roster club.Roster, retried bool) error,
) error {
	if err := requirePrincipal(actor); err != nil {
		return err
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	return s.sequencer.Do(ctx, clubID, func(ctx context.Context) error {
		return runFreshCycle(ctx, s.logger, s.maxAttempts, op, clubID, func(ctx context.Context, attempt int) error {
			roster, err := s.fetchRoster(ctx, clubID)
			if err != nil {
				return err
			}
			return apply(ctx, roster, attempt > 1)
		})
	})
}

func (s *ClubService) fetchRoster(ctx context.Context, clubID string) (club.Roster, error) {
	roster, exists, err := s.repo.GetRoster(ctx, clubID)
	if err != nil {
		return club.Roster{}, fmt.Errorf("fetch club roster: %w", err)
	}
	if !exists {
		return club.Roster{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	return roster, nil
}

func (s *ClubService) lookupClub(ctx context.Context, clubID string) (club.Club, error) {
	return s.directory.GetOrLoad(ctx, clubID, func(ctx context.Context) (club.Club, error) {
		item, exists, err := s.repo.GetByID(ctx, clubID)
		if err != nil {
			return club.Club{}, fmt.Errorf("get club by id: %w", err)
		}
		if !exists {
			return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
		}
		return item, nil
	})
}
