package usecase

import (
	"context"
	"sync"
)

// keyedSequencer runs work for the same key one at a time, in the order the
// callers arrived. Distinct keys do not wait on each other.
type keyedSequencer struct {
	mu    sync.Mutex
	lanes map[string]*sequencerLane
}

// sequencerLane exists while a key has a running holder. Waiters are woken
// one at a time by closing their channel.
type sequencerLane struct {
	waiters []chan struct{}
}

func newKeyedSequencer() *keyedSequencer {
	return &keyedSequencer{lanes: make(map[string]*sequencerLane)}
}

func (s *keyedSequencer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	if err := s.acquire(ctx, key); err != nil {
		return err
	}
	defer s.release(key)

	return fn(ctx)
}

func (s *keyedSequencer) acquire(ctx context.Context, key string) error {
	s.mu.Lock()
	lane, busy := s.lanes[key]
	if !busy {
		s.lanes[key] = &sequencerLane{}
		s.mu.Unlock()
		return nil
	}
	turn := make(chan struct{})
	lane.waiters = append(lane.waiters, turn)
	s.mu.Unlock()

	select {
	case <-turn:
		return nil
	case <-ctx.Done():
	}

	s.mu.Lock()
	for i, w := range lane.waiters {
		if w == turn {
			lane.waiters = append(lane.waiters[:i], lane.waiters[i+1:]...)
			s.mu.Unlock()
			return ctx.Err()
		}
	}
	s.mu.Unlock()

	// The turn was handed over while ctx was cancelled. Pass it on.
	s.release(key)
	return ctx.Err()
}

func (s *keyedSequencer) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lane, ok := s.lanes[key]
	if !ok {
		return
	}
	if len(lane.waiters) == 0 {
		delete(s.lanes, key)
		return
	}
	next := lane.waiters[0]
	lane.waiters = lane.waiters[1:]
	close(next)
}

func (s *keyedSequencer) activeKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lanes)
}

func (s *keyedSequencer) waiting(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lane, ok := s.lanes[key]; ok {
		return len(lane.waiters)
	}
	return 0
}
