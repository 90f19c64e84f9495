// Package ratelimit implements the failed-login attempt limiter: a
// fixed-size sliding window per client address. It is a soft deterrent
// against brute-force guessing, not a security boundary; state may be
// lost on restart.
package ratelimit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AttemptStore persists failed-attempt timestamps per key.
type AttemptStore interface {
	// Prune drops entries recorded before cutoff and returns how many
	// remain for the key.
	Prune(ctx context.Context, key string, cutoff time.Time) (int, error)

	// Add records an attempt for the key at the given time.
	Add(ctx context.Context, key string, at time.Time) error
}

// Limiter tracks failed login attempts per client address within a
// sliding window and blocks once the threshold is reached.
type Limiter struct {
	store  AttemptStore
	window time.Duration
	max    int
	now    func() time.Time
	log    *logrus.Logger
}

// New creates a Limiter over the given store.
func New(store AttemptStore, window time.Duration, max int, log *logrus.Logger) *Limiter {
	return &Limiter{
		store:  store,
		window: window,
		max:    max,
		now:    time.Now,
		log:    log,
	}
}

// SetClock overrides the limiter's time source (used for testing).
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Allow reports whether a login attempt from addr may proceed. It prunes
// the address's window first, so aged-out failures no longer count.
// Store errors fail open: a broken backing store must not lock everyone
// out of login.
func (l *Limiter) Allow(ctx context.Context, addr string) bool {
	cutoff := l.now().Add(-l.window)
	count, err := l.store.Prune(ctx, addr, cutoff)
	if err != nil {
		if l.log != nil {
			l.log.WithError(err).WithField("addr", addr).Warn("rate limiter store unavailable")
		}
		return true
	}
	return count < l.max
}

// RecordFailure notes a failed credential check from addr. Successful
// logins are never recorded; the window ages failures out naturally.
func (l *Limiter) RecordFailure(ctx context.Context, addr string) {
	if err := l.store.Add(ctx, addr, l.now()); err != nil && l.log != nil {
		l.log.WithError(err).WithField("addr", addr).Warn("failed to record login attempt")
	}
}
