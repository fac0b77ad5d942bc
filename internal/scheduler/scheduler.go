// Package scheduler drives the update loop: it decides each cycle whether
// the panel gets a fast partial refresh or a ghosting-clearing full refresh,
// and wraps every display write in a bounded retry. This is the only writer
// the panel ever sees; one cycle is in flight at a time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// Provider supplies point-in-time system statistics.
type Provider interface {
	Snapshot() (*model.Stats, error)
}

// Renderer turns a snapshot into a panel-sized frame. It must accept a nil
// snapshot and render placeholders.
type Renderer interface {
	Render(*model.Stats) *image.Gray
}

// Display pushes a rendered frame to the panel.
type Display interface {
	Write(frame *image.Gray, mode model.RefreshMode) error
	ClearAndSleep() error
}

// Config is the immutable scheduling configuration, fixed at startup.
type Config struct {
	// UpdateInterval is the fixed cycle rate. Each cycle is anchored to its
	// own start time: if a cycle overruns the interval, the next one starts
	// immediately instead of compounding drift.
	UpdateInterval time.Duration

	// FullRefreshEvery forces a full refresh whenever the cycle counter is a
	// multiple of it, so partial-refresh ghosting never accumulates past
	// that many cycles. Cycle 0 is always a full refresh.
	FullRefreshEvery int

	Retry RetryPolicy
}

// Status is a snapshot of the scheduler's progress for the preview API.
type Status struct {
	Cycles     uint64
	LastMode   model.RefreshMode
	LastUpdate time.Time
	Started    time.Time
}

// Scheduler owns the cycle counter and the update loop.
type Scheduler struct {
	cfg      Config
	provider Provider
	renderer Renderer
	display  Display

	mu         sync.Mutex
	cycle      uint64
	lastFrame  *image.Gray
	lastMode   model.RefreshMode
	lastUpdate time.Time
	started    time.Time
}

// New validates cfg and builds a Scheduler.
func New(cfg Config, provider Provider, renderer Renderer, display Display) (*Scheduler, error) {
	if cfg.UpdateInterval <= 0 {
		return nil, errors.New("scheduler: update interval must be positive")
	}
	if cfg.FullRefreshEvery <= 0 {
		return nil, errors.New("scheduler: full refresh interval must be positive")
	}
	if cfg.Retry.MaxAttempts < 0 {
		return nil, errors.New("scheduler: max retry attempts must be non-negative")
	}
	if cfg.Retry.Delay < 0 {
		return nil, errors.New("scheduler: retry delay must be non-negative")
	}
	if provider == nil || renderer == nil || display == nil {
		return nil, errors.New("scheduler: provider, renderer and display are required")
	}
	return &Scheduler{
		cfg:      cfg,
		provider: provider,
		renderer: renderer,
		display:  display,
	}, nil
}

// Run executes update cycles until ctx is canceled (returns nil) or the
// retry budget of a display write is exhausted (returns the fatal error).
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		cycleStart := time.Now()

		cycle := s.Cycles()
		mode := modeFor(cycle, s.cfg.FullRefreshEvery)
		frame := s.nextFrame()

		err := s.cfg.Retry.Do(ctx, func() error {
			return s.display.Write(frame, mode)
		})
		switch {
		case err == nil:
			s.recordSuccess(frame, mode)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			log.Printf("scheduler: giving up on cycle %d after %s refresh failed: %v", cycle, mode, err)
			return fmt.Errorf("cycle %d (%s refresh): %w", cycle, mode, err)
		}

		if err := waitUntil(ctx, cycleStart.Add(s.cfg.UpdateInterval)); err != nil {
			return nil
		}
	}
}

// modeFor computes the refresh mode for a cycle counter value. Cycle 0 is
// always a full refresh so the first frame starts from a clean panel.
func modeFor(cycle uint64, fullRefreshEvery int) model.RefreshMode {
	if cycle%uint64(fullRefreshEvery) == 0 {
		return model.RefreshFull
	}
	return model.RefreshPartial
}

// nextFrame renders the current snapshot. A failed snapshot reuses the
// previously rendered frame (stale data beats a crashed loop); before any
// frame exists it renders placeholders.
func (s *Scheduler) nextFrame() *image.Gray {
	st, err := s.provider.Snapshot()
	if err != nil {
		log.Printf("scheduler: metrics snapshot failed, reusing previous frame: %v", err)
		s.mu.Lock()
		last := s.lastFrame
		s.mu.Unlock()
		if last != nil {
			return last
		}
		return s.renderer.Render(nil)
	}
	return s.renderer.Render(st)
}

func (s *Scheduler) recordSuccess(frame *image.Gray, mode model.RefreshMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle++
	s.lastFrame = frame
	s.lastMode = mode
	s.lastUpdate = time.Now()
}

// Cycles returns the number of completed update cycles.
func (s *Scheduler) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}

// Status reports the scheduler's progress.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Cycles:     s.cycle,
		LastMode:   s.lastMode,
		LastUpdate: s.lastUpdate,
		Started:    s.started,
	}
}

// LastFrame returns the most recently displayed frame, or nil before the
// first successful cycle.
func (s *Scheduler) LastFrame() *image.Gray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFrame
}

// waitUntil blocks until deadline or ctx cancellation. Deadlines in the past
// return immediately.
func waitUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
