package render

import (
	"image"
	"testing"
	"time"

	"github.com/tinytelemetry/inkstat/internal/model"
)

func sampleStats() *model.Stats {
	return &model.Stats{
		Hostname:        "pi-zero",
		Time:            time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
		CPUPercent:      12.5,
		CPUTempC:        48.2,
		MemUsedPercent:  40,
		DiskUsedPercent: 60,
		UptimeSeconds:   90000,
		Network: model.NetworkInfo{
			LANIP:      "192.168.1.20",
			Internet:   true,
			WifiSignal: "-55 dBm",
		},
	}
}

func TestRender_Dimensions(t *testing.T) {
	frame := New().Render(sampleStats())

	want := image.Rect(0, 0, model.DisplayWidth, model.DisplayHeight)
	if frame.Bounds() != want {
		t.Errorf("bounds = %v, want %v", frame.Bounds(), want)
	}
}

func TestRender_InkOnPaper(t *testing.T) {
	frame := New().Render(sampleStats())

	// Corners stay paper-white; the layout keeps margins clear.
	for _, p := range []image.Point{
		{0, 0},
		{model.DisplayWidth - 1, 0},
		{0, model.DisplayHeight - 1},
		{model.DisplayWidth - 1, model.DisplayHeight - 1},
	} {
		if got := frame.GrayAt(p.X, p.Y).Y; got != paper {
			t.Errorf("corner %v = %d, want %d", p, got, paper)
		}
	}

	inkPixels := 0
	for y := 0; y < model.DisplayHeight; y++ {
		for x := 0; x < model.DisplayWidth; x++ {
			if frame.GrayAt(x, y).Y == ink {
				inkPixels++
			}
		}
	}
	if inkPixels == 0 {
		t.Fatal("rendered frame contains no ink")
	}
}

func TestRender_HeaderRule(t *testing.T) {
	frame := New().Render(sampleStats())

	for x := 0; x < model.DisplayWidth; x++ {
		if frame.GrayAt(x, 23).Y != ink {
			t.Fatalf("header rule broken at x=%d", x)
		}
	}
}

func TestRender_NilStatsPlaceholder(t *testing.T) {
	frame := New().Render(nil)

	want := image.Rect(0, 0, model.DisplayWidth, model.DisplayHeight)
	if frame.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", frame.Bounds(), want)
	}

	inkPixels := 0
	for y := 0; y < model.DisplayHeight; y++ {
		for x := 0; x < model.DisplayWidth; x++ {
			if frame.GrayAt(x, y).Y == ink {
				inkPixels++
			}
		}
	}
	if inkPixels == 0 {
		t.Fatal("placeholder frame contains no ink")
	}
}

func TestRender_FreshFramePerCall(t *testing.T) {
	r := New()
	a := r.Render(sampleStats())
	b := r.Render(sampleStats())
	if a == b {
		t.Error("Render returned the same frame twice; frames must not be shared")
	}
}
