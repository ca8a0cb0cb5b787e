package guideline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/seoku/promptforge/internal/models"
)

// MinRefreshMinutes is the floor for the refresh period.
const MinRefreshMinutes = 5

// Scheduler re-resolves the guideline document on a fixed period. At most
// one timer is active per scheduler; scheduling again cancels the previous
// timer first.
type Scheduler struct {
	resolver *Resolver

	mu   sync.Mutex
	stop chan struct{}

	// tick converts a period in minutes to a ticker interval. Overridden in
	// tests to avoid multi-minute waits.
	tick func(minutes int) time.Duration
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(resolver *Resolver) *Scheduler {
	return &Scheduler{
		resolver: resolver,
		tick: func(minutes int) time.Duration {
			return time.Duration(minutes) * time.Minute
		},
	}
}

// Schedule starts periodic re-resolution. Periods below MinRefreshMinutes
// are raised to the floor. On each tick the resolver runs; a success invokes
// onRefresh with the new document, a failure is logged and the timer keeps
// ticking at the same period.
func (s *Scheduler) Schedule(periodMinutes int, onRefresh func(*models.GuidelineDocument)) {
	if periodMinutes < MinRefreshMinutes {
		periodMinutes = MinRefreshMinutes
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	stop := make(chan struct{})
	s.stop = stop

	go s.run(s.tick(periodMinutes), stop, onRefresh)
}

func (s *Scheduler) run(interval time.Duration, stop chan struct{}, onRefresh func(*models.GuidelineDocument)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			doc, err := s.resolver.Resolve(context.Background())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: scheduled refresh failed: %v\n", err)
				continue
			}
			if onRefresh != nil {
				onRefresh(doc)
			}
		}
	}
}

// Stop cancels the active timer, if any. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}
