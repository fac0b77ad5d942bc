// Package render draws a Stats snapshot into the fixed 250x122 monochrome
// layout shown on the panel: a hostname and clock header, a network section,
// and five metric boxes along the bottom edge.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tinytelemetry/inkstat/internal/model"
)

const (
	ink   = 0   // black
	paper = 255 // white
)

// Renderer produces panel-sized frames. Render is total: a nil snapshot
// renders the same layout with every value as a placeholder, never an error.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render draws st into a fresh 250x122 landscape frame.
func (r *Renderer) Render(st *model.Stats) *image.Gray {
	if st == nil {
		st = &model.Stats{
			CPUPercent:      -1,
			CPUTempC:        -1,
			MemUsedPercent:  -1,
			DiskUsedPercent: -1,
			UptimeSeconds:   -1,
		}
	}

	img := image.NewGray(image.Rect(0, 0, model.DisplayWidth, model.DisplayHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: paper}}, image.Point{}, draw.Src)

	r.drawHeader(img, st)
	r.drawNetwork(img, st)
	r.drawMetricBoxes(img, st)

	return img
}

func (r *Renderer) drawHeader(img *image.Gray, st *model.Stats) {
	host := st.Hostname
	if host == "" {
		host = "N/A"
	}
	textLarge(img, 5, 16, host, ink)
	if !st.Time.IsZero() {
		text(img, 130, 14, st.Time.Format("2006-01-02 15:04"), ink)
	}
	line(img, 0, 23, model.DisplayWidth-1, 23, ink)
}

func (r *Renderer) drawNetwork(img *image.Gray, st *model.Stats) {
	const top = 30
	text(img, 5, top+8, "Network Info:", ink)
	text(img, 10, top+28, "IP: "+st.Network.LANIPString(), ink)
	text(img, 130, top+8, "Net: "+st.Network.InternetString(), ink)
	text(img, 130, top+28, "WiFi: "+st.Network.WifiString(), ink)
}

func (r *Renderer) drawMetricBoxes(img *image.Gray, st *model.Stats) {
	const (
		top      = 75
		boxWidth = 47
		boxH     = 40
		spacing  = 3
		startX   = 2
	)
	line(img, 0, top-10, model.DisplayWidth-1, top-10, ink)

	boxes := []struct {
		label string
		value string
	}{
		{"CPU", st.CPUString()},
		{"TEMP", st.TempString()},
		{"MEM", st.MemString()},
		{"DISK", st.DiskString()},
		{"UP", st.UptimeString()},
	}

	for i, b := range boxes {
		x := startX + i*(boxWidth+spacing)
		rectOutline(img, x, top, x+boxWidth, top+boxH, ink)
		text(img, x+4, top+12, b.label, ink)
		text(img, x+4, top+30, b.value, ink)
	}
}
