package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/domain/user"
	"github.com/Baguimon/STYX-sub000/internal/platform/id"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
)

type CreateMatchInput struct {
	Actor      user.Principal
	ClubID     string
	Title      string
	Location   string
	KickoffAt  time.Time
	MaxPlayers int
}

type MatchService struct {
	matchRepo   match.Repository
	clubRepo    club.Repository
	ids         id.Generator
	sequencer   *keyedSequencer
	logger      *logging.Logger
	maxAttempts int
	now         func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	clubRepo club.Repository,
	ids id.Generator,
	logger *logging.Logger,
	cfg AssignmentConfig,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &MatchService{
		matchRepo:   matchRepo,
		clubRepo:    clubRepo,
		ids:         ids,
		sequencer:   newKeyedSequencer(),
		logger:      logger.Named("match_service"),
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
}

// CreateMatch organizes a match for a club. Only the club captain or an admin
// may create one.
func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	if err := requirePrincipal(input.Actor); err != nil {
		return match.Match{}, err
	}
	input.ClubID = strings.TrimSpace(input.ClubID)
	input.Title = strings.TrimSpace(input.Title)
	if input.ClubID == "" {
		return match.Match{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return match.Match{}, fmt.Errorf("%w: match title is required", ErrInvalidInput)
	}
	if _, err := match.NewRoster("", input.MaxPlayers); err != nil {
		return match.Match{}, err
	}

	roster, exists, err := s.clubRepo.GetRoster(ctx, input.ClubID)
	if err != nil {
		return match.Match{}, fmt.Errorf("fetch club roster: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: club=%s", ErrNotFound, input.ClubID)
	}
	if err := authorizeCaptainAction(roster, input.Actor, "create matches"); err != nil {
		return match.Match{}, err
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	item := match.Match{
		ID:         matchID,
		ClubID:     input.ClubID,
		Title:      input.Title,
		Location:   strings.TrimSpace(input.Location),
		KickoffAt:  input.KickoffAt.UTC(),
		MaxPlayers: input.MaxPlayers,
		CreatedBy:  input.Actor.UserID,
		CreatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", matchID, "club_id", item.ClubID, "max_players", item.MaxPlayers)
	return item, nil
}

func (s *MatchService) GetRoster(ctx context.Context, matchID string) (match.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetRoster")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Roster{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	return s.fetchRoster(ctx, matchID)
}

// AssignTeam joins the actor to team, or moves them across when they already
// play on the other side. A full team is reported as is.
func (s *MatchService) AssignTeam(ctx context.Context, actor user.Principal, matchID string, team match.Team) (assignment.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AssignTeam")
	defer span.End()

	if !team.Valid() {
		return assignment.Result{}, fmt.Errorf("%w: %d", match.ErrInvalidTeam, team)
	}

	var out assignment.Result
	err := s.mutate(ctx, "assign_team", matchID, actor, func(ctx context.Context, roster match.Roster, _ bool) error {
		player := match.Player{
			MemberID:    actor.UserID,
			DisplayName: actor.DisplayName,
			Team:        team,
			JoinedAt:    s.now().UTC(),
		}
		result, err := assignment.AssignMatchTeam(roster, player)
		if err != nil {
			return err
		}
		result.Applied.ActorID = actor.UserID

		switch result.Outcome {
		case assignment.OutcomeJoined:
			err = s.matchRepo.PersistTeamJoin(ctx, roster.MatchID, roster.Version, player)
		case assignment.OutcomeSwitched:
			err = s.matchRepo.PersistTeamSwitch(ctx, roster.MatchID, roster.Version, player.MemberID, team)
		}
		if err != nil {
			return fmt.Errorf("persist team assignment: %w", err)
		}
		if result.Changed() {
			result.Match.Version = roster.Version + 1
		}

		out = result
		return nil
	})
	if err != nil {
		return assignment.Result{}, err
	}
	return out, nil
}

func (s *MatchService) LeaveMatch(ctx context.Context, actor user.Principal, matchID string) (assignment.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.LeaveMatch")
	defer span.End()

	var out assignment.Result
	err := s.mutate(ctx, "leave_match", matchID, actor, func(ctx context.Context, roster match.Roster, retried bool) error {
		result, err := assignment.LeaveMatch(roster, actor.UserID)
		if retried && errors.Is(err, match.ErrNotJoined) {
			s.logger.InfoContext(ctx, "match leave already applied", "match_id", roster.MatchID, "user_id", actor.UserID)
			current := roster.Clone()
			out = assignment.Result{
				Applied: assignment.Request{
					ActorID:  actor.UserID,
					MemberID: actor.UserID,
					Scope:    assignment.ScopeMatch,
					RosterID: roster.MatchID,
				},
				Outcome: assignment.OutcomeLeft,
				Match:   &current,
			}
			return nil
		}
		if err != nil {
			return err
		}
		result.Applied.ActorID = actor.UserID
		if err := s.matchRepo.PersistTeamLeave(ctx, roster.MatchID, roster.Version, actor.UserID); err != nil {
			return fmt.Errorf("persist team leave: %w", err)
		}
		result.Match.Version = roster.Version + 1

		out = result
		return nil
	})
	if err != nil {
		return assignment.Result{}, err
	}
	return out, nil
}

func (s *MatchService) mutate(
	ctx context.Context,
	op, matchID string,
	actor user.Principal,
	apply func(ctx context.Context, roster match.Roster, retried bool) error,
) error {
	if err := requirePrincipal(actor); err != nil {
		return err
	}
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if err := s.authorizeClubMember(ctx, item, actor); err != nil {
		return err
	}

	return s.sequencer.Do(ctx, matchID, func(ctx context.Context) error {
		return runFreshCycle(ctx, s.logger, s.maxAttempts, op, matchID, func(ctx context.Context, attempt int) error {
			roster, err := s.fetchRoster(ctx, matchID)
			if err != nil {
				return err
			}
			return apply(ctx, roster, attempt > 1)
		})
	})
}

// authorizeClubMember restricts match teams to members of the organizing
// club. Matches without a club are open to every principal.
func (s *MatchService) authorizeClubMember(ctx context.Context, item match.Match, actor user.Principal) error {
	if actor.IsAdmin || item.ClubID == "" {
		return nil
	}

	roster, exists, err := s.clubRepo.GetRoster(ctx, item.ClubID)
	if err != nil {
		return fmt.Errorf("fetch club roster: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: club=%s", ErrNotFound, item.ClubID)
	}
	if _, ok := roster.Member(actor.UserID); !ok {
		return fmt.Errorf("%w: only members of club %s can play this match", ErrForbidden, item.ClubID)
	}
	return nil
}

func (s *MatchService) fetchRoster(ctx context.Context, matchID string) (match.Roster, error) {
	roster, exists, err := s.matchRepo.GetRoster(ctx, matchID)
	if err != nil {
		return match.Roster{}, fmt.Errorf("fetch match roster: %w", err)
	}
	if !exists {
		return match.Roster{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return roster, nil
}
