package tests

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tinytelemetry/inkstat/internal/epd"
	"github.com/tinytelemetry/inkstat/internal/model"
	"github.com/tinytelemetry/inkstat/internal/render"
	"github.com/tinytelemetry/inkstat/internal/scheduler"
	"github.com/tinytelemetry/inkstat/internal/sysinfo"
)

// countingSink wraps the PNG sink and records refresh modes so the test can
// observe the full/partial cadence end to end.
type countingSink struct {
	inner *epd.PNGFile

	mu     sync.Mutex
	modes  []model.RefreshMode
	clears int
	cancel context.CancelFunc
	stopAt int
}

func (s *countingSink) Write(frame *image.Gray, mode model.RefreshMode) error {
	if err := s.inner.Write(frame, mode); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = append(s.modes, mode)
	if len(s.modes) >= s.stopAt && s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *countingSink) ClearAndSleep() error {
	s.mu.Lock()
	s.clears++
	s.mu.Unlock()
	return s.inner.ClearAndSleep()
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newFixtureCollector(t *testing.T) *sysinfo.Collector {
	t.Helper()

	procDir := t.TempDir()
	sysDir := t.TempDir()

	writeFixture(t, filepath.Join(procDir, "stat"), "cpu  120 0 80 790 10 0 0\n")
	writeFixture(t, filepath.Join(procDir, "meminfo"),
		"MemTotal: 512000 kB\nMemAvailable: 128000 kB\n")
	writeFixture(t, filepath.Join(procDir, "uptime"), "93784.2 1000.0\n")
	writeFixture(t, filepath.Join(sysDir, "class", "thermal", "thermal_zone0", "temp"),
		"46500\n")

	return sysinfo.NewCollector(sysinfo.Options{
		ProcPath:        procDir,
		SysPath:         sysDir,
		InternetAddr:    "127.0.0.1:1",
		InternetTimeout: 50 * time.Millisecond,
		ProbeAddr:       "127.0.0.1:9",
	})
}

// TestPipeline_EndToEnd drives the real collector, renderer and scheduler
// against a PNG sink for several cycles and checks the refresh cadence, the
// written frame and the shutdown clear.
func TestPipeline_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	framePath := filepath.Join(t.TempDir(), "frame.png")
	sink := &countingSink{
		inner:  epd.NewPNGFile(framePath),
		cancel: cancel,
		stopAt: 5,
	}

	sched, err := scheduler.New(scheduler.Config{
		UpdateInterval:   time.Millisecond,
		FullRefreshEvery: 2,
		Retry:            scheduler.RetryPolicy{MaxAttempts: 1, Delay: time.Millisecond},
	}, newFixtureCollector(t), render.New(), sink)
	if err != nil {
		t.Fatalf("scheduler.New: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline did not complete")
	}

	sink.mu.Lock()
	modes := append([]model.RefreshMode(nil), sink.modes...)
	sink.mu.Unlock()

	want := []model.RefreshMode{
		model.RefreshFull, model.RefreshPartial,
		model.RefreshFull, model.RefreshPartial,
		model.RefreshFull,
	}
	if len(modes) < len(want) {
		t.Fatalf("writes = %d, want at least %d", len(modes), len(want))
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("write[%d] = %s, want %s", i, modes[i], want[i])
		}
	}

	// The written frame is a decodable panel-sized PNG.
	f, err := os.Open(framePath)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	wantBounds := image.Rect(0, 0, model.DisplayWidth, model.DisplayHeight)
	if img.Bounds() != wantBounds {
		t.Errorf("frame bounds = %v, want %v", img.Bounds(), wantBounds)
	}

	if got := sched.Cycles(); got < 5 {
		t.Errorf("Cycles = %d, want at least 5", got)
	}

	// Shutdown parks the display exactly once (done by the daemon wiring).
	if err := sink.ClearAndSleep(); err != nil {
		t.Fatalf("ClearAndSleep: %v", err)
	}
	if _, err := os.Stat(framePath); !os.IsNotExist(err) {
		t.Error("frame file still present after shutdown clear")
	}
}

// TestPipeline_SchedulerSurvivesMetricsLoss removes the fixture proc tree
// mid-run and checks the loop keeps writing stale frames.
func TestPipeline_SchedulerSurvivesMetricsLoss(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	procDir := t.TempDir()
	writeFixture(t, filepath.Join(procDir, "stat"), "cpu  10 0 10 80 0 0 0\n")
	collector := sysinfo.NewCollector(sysinfo.Options{
		ProcPath:        procDir,
		SysPath:         t.TempDir(),
		InternetAddr:    "127.0.0.1:1",
		InternetTimeout: 50 * time.Millisecond,
		ProbeAddr:       "127.0.0.1:9",
	})

	framePath := filepath.Join(t.TempDir(), "frame.png")
	sink := &countingSink{
		inner:  epd.NewPNGFile(framePath),
		cancel: cancel,
		stopAt: 4,
	}

	sched, err := scheduler.New(scheduler.Config{
		UpdateInterval:   time.Millisecond,
		FullRefreshEvery: 100,
	}, collector, render.New(), sink)
	if err != nil {
		t.Fatalf("scheduler.New: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	// Yank the metrics source after the loop has started.
	time.Sleep(5 * time.Millisecond)
	os.Remove(filepath.Join(procDir, "stat"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline did not complete")
	}

	if got := sched.Cycles(); got < 4 {
		t.Errorf("Cycles = %d, want at least 4; metrics loss must not stall the loop", got)
	}
}
