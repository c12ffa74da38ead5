package application

import (
	"sync"
	"time"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// DefaultPollInterval is the delay between two payment request status polls
const DefaultPollInterval = 3 * time.Second

// PollScheduler arms at most one delayed poll per session. A session stays
// armed from Arm until Done is called by the poll it fired, so a poll that is
// waiting or running is never doubled.
type PollScheduler struct {
	clock    domain.Clock
	interval time.Duration

	mu    sync.Mutex
	armed map[string]domain.Timer
}

func NewPollScheduler(clock domain.Clock, interval time.Duration) *PollScheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollScheduler{
		clock:    clock,
		interval: interval,
		armed:    make(map[string]domain.Timer),
	}
}

// Arm schedules fire after the poll interval. It reports false when a poll is
// already armed for the session.
func (s *PollScheduler) Arm(sessionKey string, fire func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.armed[sessionKey]; ok {
		return false
	}
	s.armed[sessionKey] = s.clock.AfterFunc(s.interval, fire)
	return true
}

// Done releases the session once its fired poll has started
func (s *PollScheduler) Done(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.armed, sessionKey)
}

// Cancel stops a pending poll
func (s *PollScheduler) Cancel(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.armed[sessionKey]; ok {
		t.Stop()
		delete(s.armed, sessionKey)
	}
}

func (s *PollScheduler) Armed(sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.armed[sessionKey]
	return ok
}

func (s *PollScheduler) Interval() time.Duration {
	return s.interval
}

// Stop cancels every pending poll
func (s *PollScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.armed {
		t.Stop()
		delete(s.armed, key)
	}
}
