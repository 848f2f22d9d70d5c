// Package ratelimit implements per-identity sliding-window admission control.
//
// Each route class (general, search, auth, mutation) carries its own
// (window, max) pair. The check-and-increment is atomic with respect to
// concurrent requests from the same identity, so no admissions are lost or
// double-counted under parallelism. Rejections increment a per-identity
// violation counter that a periodic sweep prunes once aged out.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/gvnetwork/contacts-api/internal/logger"
)

// Class names one admission window shared by a group of routes.
type Class string

const (
	ClassGeneral  Class = "general"
	ClassSearch   Class = "search"
	ClassAuth     Class = "auth"
	ClassMutation Class = "mutation"
)

// Limit is the admission bound of a single class: at most Max requests per
// Window for one identity.
type Limit struct {
	Max    int
	Window time.Duration
}

// Decision is the structured outcome of an admission check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// RetryAfter is how long the caller should wait before retrying.
	// Zero when Allowed is true.
	RetryAfter time.Duration

	// Reason is a short human-readable refusal reason. Empty when allowed.
	Reason string
}

type violation struct {
	count    int
	lastSeen time.Time
}

// Limiter tracks sliding windows per (class, identity) pair. Safe for
// concurrent use by parallel request handlers.
type Limiter struct {
	mu         sync.Mutex
	limits     map[Class]Limit
	windows    map[string][]time.Time
	violations map[string]*violation

	logger *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New constructs a Limiter with the given per-class limits.
func New(limits map[Class]Limit, log *logger.Logger) *Limiter {
	log.Debug().Int("classes", len(limits)).Msg("creating rate limiter")
	return &Limiter{
		limits:     limits,
		windows:    make(map[string][]time.Time),
		violations: make(map[string]*violation),
		logger:     log,
		now:        time.Now,
	}
}

// Allow performs the admission check for one request of the given class from
// the given identity. Exactly Max admissions succeed within a window; the
// next request is rejected with a retry-after hint and recorded as a
// violation.
//
// Unknown classes are admitted: a misconfigured route should not turn into
// a denial of service.
func (l *Limiter) Allow(class Class, identity string) Decision {
	limit, ok := l.limits[class]
	if !ok || limit.Max <= 0 {
		return Decision{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := string(class) + "|" + identity

	// Drop admissions that have slid out of the window.
	window := l.windows[key]
	fresh := window[:0]
	for _, admitted := range window {
		if now.Sub(admitted) < limit.Window {
			fresh = append(fresh, admitted)
		}
	}

	if len(fresh) >= limit.Max {
		l.windows[key] = fresh
		l.recordViolation(identity, now)

		retryAfter := limit.Window - now.Sub(fresh[0])
		if retryAfter < 0 {
			retryAfter = 0
		}

		return Decision{
			Allowed:    false,
			RetryAfter: retryAfter,
			Reason:     fmt.Sprintf("rate limit exceeded: %d requests per %s", limit.Max, limit.Window),
		}
	}

	l.windows[key] = append(fresh, now)
	return Decision{Allowed: true}
}

// Violations returns the recorded violation count for identity.
func (l *Limiter) Violations(identity string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.violations[identity]; ok {
		return v.count
	}
	return 0
}

// SweepViolations removes violation records whose last rejection is older
// than maxAge and returns the number removed. Called periodically by a
// background worker.
func (l *Limiter) SweepViolations(maxAge time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for identity, v := range l.violations {
		if now.Sub(v.lastSeen) > maxAge {
			delete(l.violations, identity)
			removed++
		}
	}

	return removed
}

// Reset clears all windows and violation counters. Intended for tests.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.windows = make(map[string][]time.Time)
	l.violations = make(map[string]*violation)
}

// recordViolation must be called with l.mu held.
func (l *Limiter) recordViolation(identity string, now time.Time) {
	v, ok := l.violations[identity]
	if !ok {
		v = &violation{}
		l.violations[identity] = v
	}
	v.count++
	v.lastSeen = now
}
