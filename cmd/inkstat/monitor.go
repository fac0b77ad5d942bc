package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/inkstat/internal/httpserver"
	"github.com/tinytelemetry/inkstat/internal/render"
	"github.com/tinytelemetry/inkstat/internal/scheduler"
	"github.com/tinytelemetry/inkstat/internal/sysinfo"
)

// runMonitor wires the collector, renderer, display sink and scheduler
// together and drives the update loop until a signal or a fatal display
// failure stops it. Whatever way the loop ends, the panel is parked in its
// safe low-power state exactly once before returning.
func runMonitor(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	sink, err := buildDisplaySink(cfg)
	if err != nil {
		return fmt.Errorf("failed to open display: %w", err)
	}

	collector := sysinfo.NewCollector(sysinfo.Options{
		DiskPath:      cfg.DiskPath,
		WifiInterface: cfg.WifiInterface,
	})

	sched, err := scheduler.New(scheduler.Config{
		UpdateInterval:   cfg.UpdateInterval,
		FullRefreshEvery: cfg.FullRefreshEvery,
		Retry: scheduler.RetryPolicy{
			MaxAttempts: cfg.MaxRetryAttempts,
			Delay:       cfg.RetryDelay,
		},
	}, collector, render.New(), sink)
	if err != nil {
		return err
	}

	if cfg.PreviewEnabled {
		preview := httpserver.NewServer(cfg.PreviewAddr, sched)
		if err := preview.Start(); err != nil {
			log.Printf("Warning: failed to start preview server: %v", err)
		} else {
			defer preview.Stop()
		}
	}

	// Set up context and signal handling before the run loop.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now — not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg)
	log.Printf("monitor: starting update loop (interval %v, full refresh every %d cycles)",
		cfg.UpdateInterval, cfg.FullRefreshEvery)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx)
	})

	runErr := g.Wait()
	cancel()
	signal.Stop(sigCh)

	// Park the panel before exit regardless of how the loop ended. A failed
	// clear is logged, never allowed to hang or mask the loop's own error.
	if err := sink.ClearAndSleep(); err != nil {
		log.Printf("monitor: display shutdown failed: %v", err)
	}

	if runErr != nil {
		log.Printf("monitor: update loop failed after %d cycles: %v", sched.Cycles(), runErr)
		return runErr
	}
	log.Printf("monitor: stopped after %d cycles", sched.Cycles())
	return nil
}

func printStartupBanner(cfg appConfig) {
	fmt.Printf("inkstat %s\n", version)
	fmt.Printf("  display:      %s\n", cfg.Display)
	fmt.Printf("  interval:     %v\n", cfg.UpdateInterval)
	fmt.Printf("  full refresh: every %d cycles\n", cfg.FullRefreshEvery)
	fmt.Printf("  retries:      %d (delay %v)\n", cfg.MaxRetryAttempts, cfg.RetryDelay)
	if cfg.PreviewEnabled {
		fmt.Printf("  preview:      http://%s/preview.png\n", cfg.PreviewAddr)
	}
	if cfg.ConfigPath != "" {
		fmt.Printf("  config:       %s\n", cfg.ConfigPath)
	}
}

func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "inkstat")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(logDir, "inkstat.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}
