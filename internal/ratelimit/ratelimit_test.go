// SPDX-License-Identifier: Apache-2.0

package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limits map[Class]Limit) (*Limiter, *time.Time) {
	l := New(limits, logger.Nop())

	current := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	return l, &current
}

func TestAllow_ExactlyMaxAdmissions(t *testing.T) {
	l, _ := newTestLimiter(map[Class]Limit{ClassSearch: {Max: 30, Window: time.Minute}})

	for i := 0; i < 30; i++ {
		decision := l.Allow(ClassSearch, "10.0.0.1")
		require.True(t, decision.Allowed, "request %d must be admitted", i+1)
	}

	for i := 0; i < 5; i++ {
		decision := l.Allow(ClassSearch, "10.0.0.1")
		assert.False(t, decision.Allowed)
		assert.Greater(t, decision.RetryAfter, time.Duration(0))
		assert.Contains(t, decision.Reason, "rate limit exceeded")
	}

	assert.Equal(t, 5, l.Violations("10.0.0.1"))
}

func TestAllow_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(map[Class]Limit{ClassAuth: {Max: 1, Window: time.Minute}})

	require.True(t, l.Allow(ClassAuth, "10.0.0.1").Allowed)
	assert.False(t, l.Allow(ClassAuth, "10.0.0.1").Allowed)
	assert.True(t, l.Allow(ClassAuth, "10.0.0.2").Allowed)
}

func TestAllow_ClassesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(map[Class]Limit{
		ClassAuth:    {Max: 1, Window: time.Minute},
		ClassGeneral: {Max: 10, Window: time.Minute},
	})

	require.True(t, l.Allow(ClassAuth, "10.0.0.1").Allowed)
	assert.False(t, l.Allow(ClassAuth, "10.0.0.1").Allowed)
	assert.True(t, l.Allow(ClassGeneral, "10.0.0.1").Allowed)
}

func TestAllow_WindowSlides(t *testing.T) {
	l, current := newTestLimiter(map[Class]Limit{ClassSearch: {Max: 2, Window: time.Minute}})

	require.True(t, l.Allow(ClassSearch, "ip").Allowed)
	require.True(t, l.Allow(ClassSearch, "ip").Allowed)
	require.False(t, l.Allow(ClassSearch, "ip").Allowed)

	// Advancing past the window frees both slots.
	*current = current.Add(61 * time.Second)
	assert.True(t, l.Allow(ClassSearch, "ip").Allowed)
	assert.True(t, l.Allow(ClassSearch, "ip").Allowed)
	assert.False(t, l.Allow(ClassSearch, "ip").Allowed)
}

func TestAllow_RetryAfterShrinksAsWindowAges(t *testing.T) {
	l, current := newTestLimiter(map[Class]Limit{ClassSearch: {Max: 1, Window: time.Minute}})

	require.True(t, l.Allow(ClassSearch, "ip").Allowed)

	*current = current.Add(45 * time.Second)
	decision := l.Allow(ClassSearch, "ip")
	require.False(t, decision.Allowed)
	assert.Equal(t, 15*time.Second, decision.RetryAfter)
}

func TestAllow_UnknownClassAdmits(t *testing.T) {
	l, _ := newTestLimiter(map[Class]Limit{})

	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow(ClassGeneral, "ip").Allowed)
	}
	assert.Equal(t, 0, l.Violations("ip"))
}

func TestSweepViolations(t *testing.T) {
	l, current := newTestLimiter(map[Class]Limit{ClassAuth: {Max: 1, Window: time.Minute}})

	require.True(t, l.Allow(ClassAuth, "ip").Allowed)
	require.False(t, l.Allow(ClassAuth, "ip").Allowed)
	require.Equal(t, 1, l.Violations("ip"))

	// Too young to sweep.
	assert.Equal(t, 0, l.SweepViolations(24*time.Hour))

	*current = current.Add(25 * time.Hour)
	assert.Equal(t, 1, l.SweepViolations(24*time.Hour))
	assert.Equal(t, 0, l.Violations("ip"))
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(map[Class]Limit{ClassAuth: {Max: 1, Window: time.Minute}})

	require.True(t, l.Allow(ClassAuth, "ip").Allowed)
	require.False(t, l.Allow(ClassAuth, "ip").Allowed)

	l.Reset()

	assert.True(t, l.Allow(ClassAuth, "ip").Allowed)
	assert.Equal(t, 0, l.Violations("ip"))
}

func TestClientIdentity(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/contacts", nil)
	assert.Equal(t, unknownIdentity, ClientIdentity(r))

	r.Header.Set("CF-Connecting-IP", "3.3.3.3")
	assert.Equal(t, "3.3.3.3", ClientIdentity(r))

	r.Header.Set("X-Real-IP", "2.2.2.2")
	assert.Equal(t, "2.2.2.2", ClientIdentity(r))

	// X-Forwarded-For wins, first hop only.
	r.Header.Set("X-Forwarded-For", "1.1.1.1, 9.9.9.9")
	assert.Equal(t, "1.1.1.1", ClientIdentity(r))
}
