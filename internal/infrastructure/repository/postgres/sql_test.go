package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
)

func TestMapWriteError(t *testing.T) {
	t.Run("unique violation is a stale snapshot", func(t *testing.T) {
		err := mapWriteError("update member position", &pq.Error{Code: pqUniqueViolation, Message: "duplicate key value violates unique constraint \"club_members_pitch_slot_uidx\""})
		if !errors.Is(err, assignment.ErrStaleSnapshot) {
			t.Fatalf("expected ErrStaleSnapshot, got %v", err)
		}
	})

	t.Run("wrapped serialization failure is a stale snapshot", func(t *testing.T) {
		err := mapWriteError("commit", fmt.Errorf("exec: %w", &pq.Error{Code: pqSerializationFailure}))
		if !errors.Is(err, assignment.ErrStaleSnapshot) {
			t.Fatalf("expected ErrStaleSnapshot, got %v", err)
		}
	})

	t.Run("other errors keep their cause", func(t *testing.T) {
		cause := fakeErr("pq: relation club_members does not exist")
		err := mapWriteError("insert club member", cause)
		if errors.Is(err, assignment.ErrStaleSnapshot) || !errors.Is(err, cause) {
			t.Fatalf("unexpected mapping: %v", err)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if err := mapWriteError("noop", nil); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get club: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestBumpVersionQuery(t *testing.T) {
	got := clubVersion.sql()
	for _, part := range []string{"UPDATE clubs", "roster_version = roster_version + 1", "public_id = $1", "roster_version = $2"} {
		if !strings.Contains(got, part) {
			t.Fatalf("expected %q in %q", part, got)
		}
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
