package pixel

import (
	"image/color"
)

// neighbors lists the 8 cardinal and diagonal directions.
var neighbors = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, 1}, {-1, 1}, {1, -1},
}

// Grayscale returns a tight copy of src with every color channel replaced by
// floor(0.299R + 0.587G + 0.114B). Alpha is copied unchanged.
func Grayscale(src *Buffer) *Buffer {
	out := src.Tight()
	n := out.Channels
	for off := 0; off+2 < len(out.Pix); off += n {
		r := int(out.Pix[off])
		g := int(out.Pix[off+1])
		b := int(out.Pix[off+2])
		// integer weights keep the result exact, which makes the transform idempotent
		gray := byte((299*r + 587*g + 114*b) / 1000)
		out.Pix[off] = gray
		out.Pix[off+1] = gray
		out.Pix[off+2] = gray
	}
	return out
}

// Stroke is the color source for Border: flat, or a left-to-right gradient
// keyed on the painted pixel's x position across the whole image.
type Stroke struct {
	Start    color.RGBA
	End      color.RGBA
	Gradient bool
}

// SolidStroke paints every border pixel with c.
func SolidStroke(c color.RGBA) Stroke {
	return Stroke{Start: c, End: c}
}

// GradientStroke interpolates from start at x=0 towards end at x=width.
func GradientStroke(start, end color.RGBA) Stroke {
	return Stroke{Start: start, End: end, Gradient: true}
}

func (s Stroke) at(x, width int) (uint8, uint8, uint8) {
	if !s.Gradient {
		return s.Start.R, s.Start.G, s.Start.B
	}
	t := float64(x) / float64(width)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t)
	}
	return lerp(s.Start.R, s.End.R), lerp(s.Start.G, s.End.G), lerp(s.Start.B, s.End.B)
}

// Border paints an inward stroke along the silhouette of src and returns the
// result as a new tight buffer; src is not modified.
//
// A pixel is solid when the buffer has no alpha or its alpha is non-zero. A
// solid pixel is an edge when any of its 8 neighbors is outside the image or
// not solid. From every edge pixel the stroke walks width steps (the edge
// itself is step 0) in each of the 8 directions, recoloring the solid pixels
// it lands on. Edge and solidity tests always read the unmodified snapshot.
func Border(src *Buffer, stroke Stroke, width int) *Buffer {
	snapshot := src.Tight()
	out := src.Tight()
	if width < 1 {
		return out
	}

	w, h := snapshot.Width, snapshot.Height
	solid := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			solid[y*w+x] = !snapshot.HasAlpha() || snapshot.Pix[snapshot.Offset(x, y)+3] > 0
		}
	}
	isSolid := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && solid[y*w+x]
	}
	paint := func(x, y int) {
		if !isSolid(x, y) {
			return
		}
		r, g, b := stroke.at(x, w)
		out.SetRGB(x, y, r, g, b)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !solid[y*w+x] || !isEdge(isSolid, x, y) {
				continue
			}
			paint(x, y)
			for step := 1; step < width; step++ {
				for _, d := range neighbors {
					paint(x+d[0]*step, y+d[1]*step)
				}
			}
		}
	}

	return out
}

func isEdge(isSolid func(x, y int) bool, x, y int) bool {
	for _, d := range neighbors {
		if !isSolid(x+d[0], y+d[1]) {
			return true
		}
	}
	return false
}
