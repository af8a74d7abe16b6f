package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RefreshScheduler owns the periodic auto-update timer. It is an explicit
// handle rather than package state so tests can run isolated instances.
// Start is idempotent: any prior schedule is cancelled before a new one is
// registered, so two concurrent timers can never exist on one scheduler.
type RefreshScheduler struct {
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefreshScheduler(logger *slog.Logger) *RefreshScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshScheduler{logger: logger}
}

// Start schedules task to run every interval until Stop or a later Start.
func (s *RefreshScheduler) Start(interval time.Duration, task func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task(ctx)
			}
		}
	}()

	s.logger.Info("refresh schedule started", slog.Duration("interval", interval))
}

// Stop cancels the schedule and waits for the worker to exit. Safe to call
// when nothing is scheduled.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *RefreshScheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.logger.Info("refresh schedule stopped")
}

// Running reports whether a schedule is currently registered.
func (s *RefreshScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
