package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestWindowStore_CountsDownThenLimits(t *testing.T) {
	s := NewWindowStore(time.Minute, 2)

	r1 := s.Check("k")
	require.False(t, r1.Limited)
	require.Equal(t, 1, r1.Remaining)

	r2 := s.Check("k")
	require.False(t, r2.Limited)
	require.Equal(t, 0, r2.Remaining)

	r3 := s.Check("k")
	require.True(t, r3.Limited)
	require.Equal(t, 0, r3.Remaining)
	require.Equal(t, r1.ResetAt, r3.ResetAt)
}

func TestWindowStore_DenialDoesNotExtendWindow(t *testing.T) {
	clock := newFakeClock()
	s := NewWindowStore(time.Minute, 1, WithClock(clock.Now))

	first := s.Check("k")
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		res := s.Check("k")
		require.True(t, res.Limited)
		require.Equal(t, first.ResetAt, res.ResetAt)
	}

	clock.Advance(10 * time.Second)
	res := s.Check("k")
	require.False(t, res.Limited)
	require.Equal(t, 0, res.Remaining)
	require.Equal(t, clock.Now().Add(time.Minute), res.ResetAt)
}

func TestWindowStore_WindowBoundaryIsExclusive(t *testing.T) {
	clock := newFakeClock()
	s := NewWindowStore(time.Second, 1, WithClock(clock.Now))

	s.Check("k")
	clock.Advance(time.Second - time.Millisecond)
	require.True(t, s.Check("k").Limited)

	clock.Advance(time.Millisecond)
	require.False(t, s.Check("k").Limited)
}

func TestWindowStore_RealWindowElapses(t *testing.T) {
	s := NewWindowStore(100*time.Millisecond, 1)

	require.False(t, s.Check("k").Limited)
	require.True(t, s.Check("k").Limited)

	time.Sleep(110 * time.Millisecond)

	res := s.Check("k")
	require.False(t, res.Limited)
	require.Equal(t, 0, res.Remaining)
}

func TestWindowStore_KeysAreIndependent(t *testing.T) {
	s := NewWindowStore(time.Minute, 1)

	require.False(t, s.Check("a").Limited)
	require.True(t, s.Check("a").Limited)

	res := s.Check("b")
	require.False(t, res.Limited)
	require.Equal(t, 0, res.Remaining)
}

func TestWindowStore_SweepRemovesOnlyExpired(t *testing.T) {
	clock := newFakeClock()
	s := NewWindowStore(time.Minute, 5, WithClock(clock.Now))

	s.Check("old")
	clock.Advance(30 * time.Second)
	s.Check("new")
	clock.Advance(30 * time.Second)

	require.Equal(t, 1, s.Sweep())
	require.Equal(t, 1, s.Len())

	res := s.Check("new")
	require.Equal(t, 3, res.Remaining)
}

func TestWindowStore_BackgroundSweeper(t *testing.T) {
	s := NewWindowStore(5*time.Millisecond, 1, WithSweepInterval(10*time.Millisecond))
	s.Start()
	defer s.Stop()

	s.Check("k")
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWindowStore_StopHaltsSweeps(t *testing.T) {
	s := NewWindowStore(time.Millisecond, 1, WithSweepInterval(5*time.Millisecond))
	s.Start()
	s.Stop()

	s.Check("k")
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 1, s.Len())
}

func TestWindowStore_StopIsIdempotent(t *testing.T) {
	never := NewWindowStore(time.Minute, 1)
	never.Stop()
	never.Stop()

	s := NewWindowStore(time.Minute, 1, WithSweepInterval(time.Millisecond))
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	s.Start()
}

func TestWindowStore_ConcurrentChecksNeverOveradmit(t *testing.T) {
	const limit = 50
	s := NewWindowStore(time.Minute, limit)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !s.Check("k").Limited {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, limit, allowed)
}
