package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPolicy_ReportsHeadersOnEveryCall(t *testing.T) {
	clock := newFakeClock()
	p := NewPolicy(GlobalPolicyConfig(2, time.Minute), WithClock(clock.Now))

	dec := p.Evaluate("10.0.0.1")
	require.True(t, dec.Allowed)
	require.Equal(t, 2, dec.Limit)
	require.Equal(t, 1, dec.Remaining)
	require.Equal(t, clock.Now().Add(time.Minute).Unix(), dec.Reset)
	require.Zero(t, dec.RetryAfter)
	require.Empty(t, dec.Code)
}

func TestPolicy_DenialCarriesRetryAfterAndCode(t *testing.T) {
	clock := newFakeClock()
	p := NewPolicy(CreatePolicyConfig(1, time.Minute), WithClock(clock.Now))

	require.True(t, p.Evaluate("ip").Allowed)

	clock.Advance(20*time.Second + 500*time.Millisecond)
	dec := p.Evaluate("ip")
	require.False(t, dec.Allowed)
	require.Equal(t, 0, dec.Remaining)
	require.Equal(t, int64(40), dec.RetryAfter)
	require.Equal(t, CreateCode, dec.Code)
	require.Equal(t, CreateMessage, dec.Message)
}

func TestPolicy_ResetRoundsUp(t *testing.T) {
	clock := newFakeClock()
	clock.Advance(250 * time.Millisecond)
	p := NewPolicy(GlobalPolicyConfig(1, time.Second), WithClock(clock.Now))

	dec := p.Evaluate("ip")
	want := clock.Now().Add(time.Second).Truncate(time.Second).Add(time.Second).Unix()
	require.Equal(t, want, dec.Reset)
}

func TestPolicy_EmptyIdentitySharesUnknownBucket(t *testing.T) {
	p := NewPolicy(GlobalPolicyConfig(1, time.Minute))

	require.True(t, p.Evaluate("").Allowed)
	require.False(t, p.Evaluate("   ").Allowed)
	require.False(t, p.Evaluate(UnknownKey).Allowed)
	require.True(t, p.Evaluate("10.0.0.2").Allowed)
}

func TestPolicy_InstancesAreIndependent(t *testing.T) {
	global := NewPolicy(GlobalPolicyConfig(1, time.Minute))
	create := NewPolicy(CreatePolicyConfig(1, time.Minute))

	require.True(t, global.Evaluate("ip").Allowed)
	require.True(t, create.Evaluate("ip").Allowed)
	require.False(t, global.Evaluate("ip").Allowed)
}

func TestPolicy_StartStop(t *testing.T) {
	p := NewPolicy(GlobalPolicyConfig(1, time.Millisecond), WithSweepInterval(time.Millisecond))
	p.Start()
	p.Evaluate("ip")
	p.Stop()
	p.Stop()
}

func TestCeilSeconds(t *testing.T) {
	require.Equal(t, int64(0), ceilSeconds(0))
	require.Equal(t, int64(1), ceilSeconds(1))
	require.Equal(t, int64(1), ceilSeconds(1000))
	require.Equal(t, int64(2), ceilSeconds(1001))
	require.Equal(t, int64(-1), ceilSeconds(-1500))
}
