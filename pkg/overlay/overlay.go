// Package overlay draws annotation bounds onto images.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/menta2k/gvision/pkg/types"
)

// Green is the default rectangle color, 0x00ff00
var Green = color.NRGBA{0, 255, 0, 255}

// Style controls how rectangles are drawn
type Style struct {
	Color  color.NRGBA
	Stroke int
}

// DefaultStyle returns a 1px green stroke
func DefaultStyle() Style {
	return Style{Color: Green, Stroke: 1}
}

// ParseColor parses a #rrggbb hex color
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}, nil
}

// Rect returns the rectangle spanned by vertex 0 and vertex 2 of a polygon.
// ok is false when the polygon has fewer than three vertices.
func Rect(bounds types.Bounds) (image.Rectangle, bool) {
	if len(bounds) < 3 {
		return image.Rectangle{}, false
	}
	p0, p2 := bounds[0], bounds[2]
	return image.Rect(int(p0.X), int(p0.Y), int(p2.X), int(p2.Y)), true
}

// DrawBounds copies img and draws the rectangle of every polygon on the copy
func DrawBounds(img image.Image, polygons []types.Bounds, style Style) *image.NRGBA {
	nrgba := imaging.Clone(img)
	stroke := style.Stroke
	if stroke < 1 {
		stroke = 1
	}
	for _, poly := range polygons {
		r, ok := Rect(poly)
		if !ok {
			continue
		}
		drawRect(nrgba, r, style.Color, stroke)
	}
	return nrgba
}

// drawRect outlines r, inclusive of its max corner, growing the stroke inwards
func drawRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, stroke int) {
	// image.Rect canonicalizes, so Min <= Max
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	for s := 0; s < stroke; s++ {
		if x0+s > x1-s || y0+s > y1-s {
			break
		}
		drawHLine(img, y0+s, x0, x1+1, c)
		drawHLine(img, y1-s, x0, x1+1, c)
		drawVLine(img, x0+s, y0, y1+1, c)
		drawVLine(img, x1-s, y0, y1+1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if x0 >= x1 {
		return
	}
	i := img.PixOffset(x0, y)
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	if y0 >= y1 {
		return
	}
	i := img.PixOffset(x, y0)
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
