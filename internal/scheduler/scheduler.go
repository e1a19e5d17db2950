package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultCheckInterval = 60 * time.Second

// ContentScheduler runs the periodic content pipeline: publish everything
// that is due, then top up today's quota. A tick failure is logged and never
// stops the loop.
type ContentScheduler struct {
	coordinator *Coordinator
	generator   *Generator
	interval    time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

func New(coordinator *Coordinator, generator *Generator, logger *slog.Logger) *ContentScheduler {
	return &ContentScheduler{
		coordinator: coordinator,
		generator:   generator,
		interval:    defaultCheckInterval,
		logger:      logger,
	}
}

// Start launches the scheduler loop on a background goroutine. Calling Start
// while the loop is already running is a no-op.
func (s *ContentScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("content scheduler already running")
		return
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stopCh, s.done)
	s.logger.Info("content scheduler started")
}

// Stop signals the loop to exit and waits for the current tick to finish.
// The in-flight publication is allowed to complete; only the next tick is
// skipped. Safe to call concurrently and repeatedly: only the first caller
// closes the stop channel, every caller waits for the loop to drain.
func (s *ContentScheduler) Stop() {
	s.mu.Lock()
	done := s.done
	if s.running {
		s.running = false
		s.logger.Info("content scheduler stopping")
		close(s.stopCh)
	}
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// IsRunning reports whether the loop is active.
func (s *ContentScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ContentScheduler) run(stopCh, done chan struct{}) {
	defer close(done)

	for {
		s.tick()

		select {
		case <-stopCh:
			s.logger.Info("content scheduler stopped")
			return
		case <-time.After(s.interval):
		}
	}
}

// tick runs one publish-then-generate pass. Errors from either step are
// contained here so a transient failure never kills the loop.
func (s *ContentScheduler) tick() {
	ctx := context.Background()

	results, err := s.coordinator.PublishDue(ctx)
	if err != nil {
		s.logger.Error("error in due-post check", "error", err)
	} else if len(results) > 0 {
		succeeded := 0
		for _, r := range results {
			if r.Published {
				succeeded++
			}
		}
		s.logger.Info("published posts", "succeeded", succeeded, "failed", len(results)-succeeded)
	}

	if err := s.generator.GenerateIfNeeded(ctx); err != nil {
		s.logger.Error("error in content generation", "error", err)
	}
}
