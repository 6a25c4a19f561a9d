package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
)

const (
	auditStatusValid    = "valid"
	auditStatusInvalid  = "invalid"
	auditStatusMissing  = "missing"
	auditStatusFailed   = "failed"
	defaultAuditWorkers = 8
	maxAuditTargets     = 500
)

type AuditInput struct {
	ClubIDs  []string
	MatchIDs []string
}

type AuditFinding struct {
	Scope      assignment.Scope
	RosterID   string
	Version    int64
	Status     string
	Message    string
	DurationMs int64
}

type AuditReport struct {
	Findings     []AuditFinding
	ValidCount   int
	InvalidCount int
	MissingCount int
	FailedCount  int
}

type auditTarget struct {
	scope    assignment.Scope
	rosterID string
}

// AuditService re-validates stored roster snapshots. Writes from several
// devices are last-writer-wins at the store, so this is how drift is found.
type AuditService struct {
	clubRepo  club.Repository
	matchRepo match.Repository
	workers   int
	logger    *logging.Logger
}

func NewAuditService(clubRepo club.Repository, matchRepo match.Repository, workers int, logger *logging.Logger) *AuditService {
	if workers < 1 {
		workers = defaultAuditWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AuditService{
		clubRepo:  clubRepo,
		matchRepo: matchRepo,
		workers:   workers,
		logger:    logger.Named("audit_service"),
	}
}

func (s *AuditService) AuditRosters(ctx context.Context, input AuditInput) (AuditReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditService.AuditRosters")
	defer span.End()

	targets := buildAuditTargets(input)
	if len(targets) == 0 {
		return AuditReport{}, fmt.Errorf("%w: at least one club or match id is required", ErrInvalidInput)
	}
	if len(targets) > maxAuditTargets {
		return AuditReport{}, fmt.Errorf("%w: at most %d rosters per audit", ErrInvalidInput, maxAuditTargets)
	}

	workerCount := s.workers
	if workerCount > len(targets) {
		workerCount = len(targets)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return AuditReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	findings := make(chan AuditFinding, len(targets))
	var counts [4]atomic.Int32

	var workers sync.WaitGroup
	for _, target := range targets {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			finding := s.auditOne(ctx, target)
			finding.DurationMs = time.Since(start).Milliseconds()
			counts[auditStatusIndex(finding.Status)].Add(1)
			findings <- finding
		}); err != nil {
			workers.Done()
			return AuditReport{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(findings)

	report := AuditReport{Findings: make([]AuditFinding, 0, len(targets))}
	for finding := range findings {
		report.Findings = append(report.Findings, finding)
	}
	sort.SliceStable(report.Findings, func(i, j int) bool {
		if report.Findings[i].Scope != report.Findings[j].Scope {
			return report.Findings[i].Scope < report.Findings[j].Scope
		}
		return report.Findings[i].RosterID < report.Findings[j].RosterID
	})

	report.ValidCount = int(counts[0].Load())
	report.InvalidCount = int(counts[1].Load())
	report.MissingCount = int(counts[2].Load())
	report.FailedCount = int(counts[3].Load())

	if report.InvalidCount > 0 {
		s.logger.WarnContext(ctx, "roster audit found invalid snapshots",
			"invalid", report.InvalidCount,
			"audited", len(report.Findings),
		)
	}
	return report, nil
}

func (s *AuditService) auditOne(ctx context.Context, target auditTarget) AuditFinding {
	finding := AuditFinding{Scope: target.scope, RosterID: target.rosterID}

	var (
		version   int64
		exists    bool
		fetchErr  error
		validated error
	)
	switch target.scope {
	case assignment.ScopeClub:
		var roster club.Roster
		roster, exists, fetchErr = s.clubRepo.GetRoster(ctx, target.rosterID)
		version, validated = roster.Version, roster.Validate()
	case assignment.ScopeMatch:
		var roster match.Roster
		roster, exists, fetchErr = s.matchRepo.GetRoster(ctx, target.rosterID)
		version, validated = roster.Version, roster.Validate()
	}

	switch {
	case fetchErr != nil:
		finding.Status = auditStatusFailed
		finding.Message = fetchErr.Error()
		s.logger.ErrorContext(ctx, "roster audit fetch failed",
			"scope", string(target.scope),
			"roster_id", target.rosterID,
			"error", fetchErr,
		)
	case !exists:
		finding.Status = auditStatusMissing
	case validated != nil:
		finding.Status = auditStatusInvalid
		finding.Version = version
		finding.Message = validated.Error()
	default:
		finding.Status = auditStatusValid
		finding.Version = version
	}
	return finding
}

func auditStatusIndex(status string) int {
	switch status {
	case auditStatusValid:
		return 0
	case auditStatusInvalid:
		return 1
	case auditStatusMissing:
		return 2
	default:
		return 3
	}
}

func buildAuditTargets(input AuditInput) []auditTarget {
	out := make([]auditTarget, 0, len(input.ClubIDs)+len(input.MatchIDs))
	seen := make(map[auditTarget]struct{}, cap(out))
	add := func(scope assignment.Scope, ids []string) {
		for _, raw := range ids {
			target := auditTarget{scope: scope, rosterID: strings.TrimSpace(raw)}
			if target.rosterID == "" {
				continue
			}
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			out = append(out, target)
		}
	}
	add(assignment.ScopeClub, input.ClubIDs)
	add(assignment.ScopeMatch, input.MatchIDs)
	return out
}
