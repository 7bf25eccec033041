package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientStore_SameKeyReturnsSameLimiter(t *testing.T) {
	s := NewClientStore(10, 1)
	require.Same(t, s.Limiter("k"), s.Limiter("k"))
	require.NotSame(t, s.Limiter("k"), s.Limiter("other"))
}

func TestClientStore_LowBurstRejectsSecondImmediateAllow(t *testing.T) {
	s := NewClientStore(0.02, 1)

	lim := s.Limiter("k")
	require.True(t, lim.Allow())
	require.False(t, lim.Allow(), "burst=1 should reject the second immediate call")
}

func TestClientStore_CleanupRemovesIdleEntries(t *testing.T) {
	s := NewClientStore(10, 1, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	before := s.Limiter("k")
	time.Sleep(4 * time.Millisecond)

	s.Cleanup()
	require.Zero(t, s.Len())

	after := s.Limiter("k")
	require.NotSame(t, before, after)
}

func TestDecide_AllowsWithoutStore(t *testing.T) {
	dec := Decide(nil, "k", 0)
	require.True(t, dec.Allowed)
	require.Zero(t, dec.RetryAfter)
}

func TestDecide_DefaultRetryAfter(t *testing.T) {
	s := NewClientStore(0.02, 1)
	require.True(t, Decide(s, "k", 0).Allowed)

	dec := Decide(s, "k", 0)
	require.False(t, dec.Allowed)
	require.Equal(t, time.Second, dec.RetryAfter)
}
