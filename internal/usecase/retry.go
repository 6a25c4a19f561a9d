package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
)

const defaultAssignmentMaxAttempts = 3

// runFreshCycle runs one fetch/apply/persist cycle and re-runs it from a
// fresh fetch while the store reports a stale snapshot.
func runFreshCycle(
	ctx context.Context,
	logger *logging.Logger,
	maxAttempts int,
	op, rosterID string,
	cycle func(ctx context.Context, attempt int) error,
) error {
	if maxAttempts < 1 {
		maxAttempts = defaultAssignmentMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := cycle(ctx, attempt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, assignment.ErrStaleSnapshot) {
			return err
		}

		lastErr = err
		logger.WarnContext(ctx, "stale roster snapshot, refetching",
			"operation", op,
			"roster_id", rosterID,
			"attempt", attempt,
			"max_attempts", maxAttempts,
		)
	}

	if errors.Is(lastErr, ErrDependencyUnavailable) {
		return fmt.Errorf("%w: %s on roster %s gave up after %d attempts: %v", ErrDependencyUnavailable, op, rosterID, maxAttempts, lastErr)
	}
	return fmt.Errorf("%w: %s on roster %s gave up after %d attempts: %v", ErrConflict, op, rosterID, maxAttempts, lastErr)
}
