// Package epd pushes rendered frames to the physical e-paper panel. It
// provides the SPI-attached Waveshare 2.13" V4 sink plus a PNG file sink and
// a null sink for running without hardware.
package epd

import (
	"image"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// rotatePortrait converts a landscape 250x122 frame into the panel's native
// 122x250 portrait orientation.
func rotatePortrait(src *image.Gray) *image.Gray {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetGray(x, y, src.GrayAt(y, h-1-x))
		}
	}
	return dst
}

// Null discards every frame. Used for dry runs.
type Null struct{}

func (Null) Write(*image.Gray, model.RefreshMode) error { return nil }
func (Null) ClearAndSleep() error                       { return nil }
