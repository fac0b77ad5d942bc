package epd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// Panel drives the Waveshare 2.13" V4 HAT over SPI via periph.io.
type Panel struct {
	port spi.PortCloser
	dev  *waveshare2in13v4.Dev
}

// OpenPanel initializes the periph host, opens the SPI port (empty selects
// the first available, typically /dev/spidev0.0), and brings the panel up
// with a cleared screen.
func OpenPanel(spiPort string) (*Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("epd: periph host init: %w", err)
	}

	port, err := spireg.Open(spiPort)
	if err != nil {
		return nil, fmt.Errorf("epd: open spi port %q: %w", spiPort, err)
	}

	opts := waveshare2in13v4.EPD2in13v4
	dev, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("epd: init hat: %w", err)
	}

	if err := dev.Init(); err != nil {
		port.Close()
		return nil, fmt.Errorf("epd: init panel: %w", err)
	}
	if err := dev.Clear(color.White); err != nil {
		port.Close()
		return nil, fmt.Errorf("epd: clear panel: %w", err)
	}

	return &Panel{port: port, dev: dev}, nil
}

// Write pushes a landscape frame to the panel. A full refresh re-runs the
// controller init sequence first so the waveform table is reloaded; a
// partial refresh redraws in place and accumulates ghosting.
func (p *Panel) Write(frame *image.Gray, mode model.RefreshMode) error {
	portrait := rotatePortrait(frame)
	buf := image1bit.NewVerticalLSB(p.dev.Bounds())
	draw.Draw(buf, buf.Bounds(), portrait, image.Point{}, draw.Src)

	if mode == model.RefreshFull {
		if err := p.dev.Init(); err != nil {
			return fmt.Errorf("epd: reinit for full refresh: %w", err)
		}
		if err := p.dev.Draw(p.dev.Bounds(), buf, image.Point{}); err != nil {
			return fmt.Errorf("epd: full draw: %w", err)
		}
		return nil
	}

	if err := p.dev.DrawPartial(p.dev.Bounds(), buf, image.Point{}); err != nil {
		return fmt.Errorf("epd: partial draw: %w", err)
	}
	return nil
}

// ClearAndSleep parks the panel in its safe low-power state: re-init, clear
// to white, then deep sleep. All steps are attempted; the first failure is
// reported.
func (p *Panel) ClearAndSleep() error {
	var firstErr error
	record := func(op string, err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("epd: %s: %w", op, err)
		}
	}

	record("shutdown init", p.dev.Init())
	record("shutdown clear", p.dev.Clear(color.White))
	record("sleep", p.dev.Sleep())
	record("halt", p.dev.Halt())
	record("close spi", p.port.Close())

	return firstErr
}
