package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// text draws s with the 7x13 fixed font, with (x, y) at the baseline start.
func text(img *image.Gray, x, y int, s string, c uint8) {
	drawString(img, x, y, s, c, basicfont.Face7x13)
}

// textLarge draws s with the bold 8x16 header font.
func textLarge(img *image.Gray, x, y int, s string, c uint8) {
	drawString(img, x, y, s, c, inconsolata.Bold8x16)
}

func drawString(img *image.Gray, x, y int, s string, c uint8, face font.Face) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: c}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// line draws a straight segment using Bresenham's algorithm, clipped to the
// image bounds.
func line(img *image.Gray, x0, y0, x1, y1 int, c uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Rect) {
			img.SetGray(x0, y0, color.Gray{Y: c})
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func rectOutline(img *image.Gray, x0, y0, x1, y1 int, c uint8) {
	line(img, x0, y0, x1, y0, c)
	line(img, x0, y1, x1, y1, c)
	line(img, x0, y0, x0, y1, c)
	line(img, x1, y0, x1, y1, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
