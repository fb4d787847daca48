// Package simnet provides a pluggable simulated-network policy: randomized
// latency within a configurable range plus a configurable probability of
// failing with a generic network error. The in-memory store runs every
// operation through it to model the asynchrony and flakiness of a remote
// API. A nil *Simulator is valid and does nothing, which keeps tests
// deterministic by default.
package simnet

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
)

// Config controls the simulated network conditions.
type Config struct {
	MinDelay    time.Duration // lower bound of the per-operation delay
	MaxDelay    time.Duration // upper bound, inclusive; clamped up to MinDelay
	FailureRate float64       // probability in [0,1] of failing an operation
}

// Simulator applies a Config to store operations. Safe for concurrent use.
type Simulator struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Simulator from cfg. A zero Config yields no delay and no
// failures.
func New(cfg Config) *Simulator {
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	if cfg.FailureRate < 0 {
		cfg.FailureRate = 0
	}
	if cfg.FailureRate > 1 {
		cfg.FailureRate = 1
	}
	return &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Simulate blocks for a random duration within [MinDelay, MaxDelay], then
// fails with apperrors.ErrNetwork at the configured rate. It returns early
// with the context error if ctx is cancelled during the delay. Calling
// Simulate on a nil Simulator is a no-op.
func (s *Simulator) Simulate(ctx context.Context) error {
	if s == nil {
		return nil
	}

	delay, fail := s.roll()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if fail {
		return apperrors.ErrNetwork
	}
	return nil
}

// roll draws the delay and failure outcome under the lock; rand.Rand is not
// safe for concurrent use.
func (s *Simulator) roll() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delay := s.cfg.MinDelay
	if span := s.cfg.MaxDelay - s.cfg.MinDelay; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span) + 1))
	}
	fail := s.cfg.FailureRate > 0 && s.rng.Float64() < s.cfg.FailureRate
	return delay, fail
}
