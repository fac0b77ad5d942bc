package epd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// PNGFile writes each frame to a PNG file instead of hardware, so the layout
// can be inspected on a development machine. Writes replace the file
// atomically via a rename.
type PNGFile struct {
	path string

	mu sync.Mutex
}

// NewPNGFile creates a PNG sink writing to path.
func NewPNGFile(path string) *PNGFile {
	return &PNGFile{path: path}
}

// Write encodes the frame to the configured path. The refresh mode has no
// effect on a file.
func (f *PNGFile) Write(frame *image.Gray, _ model.RefreshMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("epd: mkdir for %s: %w", f.path, err)
	}

	tmp := f.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("epd: create %s: %w", tmp, err)
	}
	if err := png.Encode(out, frame); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("epd: encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("epd: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("epd: rename %s: %w", tmp, err)
	}
	return nil
}

// ClearAndSleep removes the frame file, mirroring the panel being cleared.
func (f *PNGFile) ClearAndSleep() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("epd: remove %s: %w", f.path, err)
	}
	return nil
}
