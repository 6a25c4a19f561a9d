package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestKeyedSequencer_SerializesSameKeyInArrivalOrder(t *testing.T) {
	t.Parallel()

	seq := newKeyedSequencer()
	release := make(chan struct{})
	started := make(chan struct{})

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = seq.Do(context.Background(), "club-1", func(context.Context) error {
			close(started)
			<-release
			mu.Lock()
			order = append(order, 0)
			mu.Unlock()
			return nil
		})
	}()
	<-started

	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = seq.Do(context.Background(), "club-1", func(context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		waitForWaiters(t, seq, "club-1", i)
	}

	close(release)
	wg.Wait()

	for i, got := range order {
		if got != i {
			t.Fatalf("expected arrival order, got %v", order)
		}
	}
	if seq.activeKeys() != 0 {
		t.Fatalf("expected lanes to be released, got %d", seq.activeKeys())
	}
}

func TestKeyedSequencer_DistinctKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	seq := newKeyedSequencer()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = seq.Do(context.Background(), "club-1", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	done := make(chan error, 1)
	go func() {
		done <- seq.Do(context.Background(), "club-2", func(context.Context) error { return nil })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("work on another key was blocked")
	}
}

func TestKeyedSequencer_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	seq := newKeyedSequencer()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = seq.Do(context.Background(), "club-1", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	called := false
	err := seq.Do(ctx, "club-1", func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if called {
		t.Fatalf("work must not run after the wait was cancelled")
	}
}

func waitForWaiters(t *testing.T, seq *keyedSequencer, key string, want int) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if seq.waiting(key) >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d waiters on %s", want, key)
}
