package ratelimit

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultSweepInterval is how often expired windows are reclaimed.
const DefaultSweepInterval = time.Minute

// Result is the outcome of a single Check.
type Result struct {
	Limited   bool
	Remaining int
	ResetAt   time.Time
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// WindowStore counts requests per key inside fixed, non-overlapping windows.
// Each key's window starts on its first request and lasts for the configured
// length; expired windows are dropped by a background sweeper started with
// Start and halted with Stop.
type WindowStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	window        time.Duration
	maxRequests   int
	sweepInterval time.Duration
	now           func() time.Time
	log           *logrus.Entry

	lifeMu  sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

type StoreOption func(*WindowStore)

// WithSweepInterval overrides how often expired windows are reclaimed.
func WithSweepInterval(d time.Duration) StoreOption {
	return func(s *WindowStore) { s.sweepInterval = d }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *WindowStore) { s.now = now }
}

func WithLogger(log *logrus.Entry) StoreOption {
	return func(s *WindowStore) { s.log = log }
}

func NewWindowStore(window time.Duration, maxRequests int, opts ...StoreOption) *WindowStore {
	s := &WindowStore{
		entries:       make(map[string]*windowEntry),
		window:        window,
		maxRequests:   maxRequests,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		log:           logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WindowStore) Window() time.Duration { return s.window }
func (s *WindowStore) MaxRequests() int      { return s.maxRequests }

// Check records one request for key and reports whether it is over the limit.
// A denied request still counts, so a sustained burst stays blocked until the
// original window elapses.
func (s *WindowStore) Check(key string) Result {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || !now.Before(ent.resetAt) {
		ent = &windowEntry{count: 1, resetAt: now.Add(s.window)}
		s.entries[key] = ent
		return Result{Limited: false, Remaining: max(s.maxRequests-1, 0), ResetAt: ent.resetAt}
	}

	ent.count++
	if ent.count > s.maxRequests {
		return Result{Limited: true, Remaining: 0, ResetAt: ent.resetAt}
	}
	return Result{Limited: false, Remaining: s.maxRequests - ent.count, ResetAt: ent.resetAt}
}

// Sweep removes every window whose reset time has passed and returns how
// many were removed.
func (s *WindowStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, ent := range s.entries {
		if !now.Before(ent.resetAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys, expired or not.
func (s *WindowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start launches the background sweeper. Calling it again, or after Stop,
// does nothing.
func (s *WindowStore) Start() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.started || s.stopped || s.sweepInterval <= 0 {
		return
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.sweepLoop(s.stop, s.done)
}

// Stop halts the sweeper and waits for it to exit; no sweep runs after Stop
// returns. It is safe to call more than once and without a prior Start.
func (s *WindowStore) Stop() {
	s.lifeMu.Lock()
	if s.stopped || !s.started {
		s.stopped = true
		s.lifeMu.Unlock()
		return
	}
	s.stopped = true
	close(s.stop)
	done := s.done
	s.lifeMu.Unlock()

	<-done
}

func (s *WindowStore) sweepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(s.sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.log.WithField("removed", n).Debug("Swept expired rate limit windows")
			}
		}
	}
}
