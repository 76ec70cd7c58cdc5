// Package pixel holds the raw byte buffer icons are rendered into and the
// per-pixel transforms applied to it.
package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Buffer is an 8-bit RGB or RGBA pixel buffer. Row y starts at y*Stride; a
// buffer is tight when Stride == Width*Channels.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Stride   int
	Pix      []byte
}

// New allocates a tight, zeroed buffer. Channels must be 3 or 4.
func New(width, height, channels int) *Buffer {
	if channels != 3 && channels != 4 {
		panic(fmt.Sprintf("pixel: unsupported channel count %d", channels))
	}
	stride := width * channels
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Stride:   stride,
		Pix:      make([]byte, stride*height),
	}
}

// HasAlpha reports whether the buffer carries an alpha channel.
func (b *Buffer) HasAlpha() bool {
	return b.Channels > 3
}

// IsTight reports whether rows are packed without padding.
func (b *Buffer) IsTight() bool {
	return b.Stride == b.Width*b.Channels
}

// Offset returns the index of the first channel of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return y*b.Stride + x*b.Channels
}

// Get returns the byte at off.
func (b *Buffer) Get(off int) byte {
	return b.Pix[off]
}

// Set writes v at off.
func (b *Buffer) Set(off int, v byte) {
	b.Pix[off] = v
}

// At returns the pixel at (x, y); alpha is 0xff for RGB buffers.
func (b *Buffer) At(x, y int) color.NRGBA {
	off := b.Offset(x, y)
	c := color.NRGBA{R: b.Pix[off], G: b.Pix[off+1], B: b.Pix[off+2], A: 0xff}
	if b.HasAlpha() {
		c.A = b.Pix[off+3]
	}
	return c
}

// SetRGB overwrites the color channels of (x, y), leaving alpha alone.
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	off := b.Offset(x, y)
	b.Pix[off] = r
	b.Pix[off+1] = g
	b.Pix[off+2] = bl
}

// Tight returns a tight copy of the buffer. The copy never aliases b.
func (b *Buffer) Tight() *Buffer {
	out := New(b.Width, b.Height, b.Channels)
	row := b.Width * b.Channels
	for y := 0; y < b.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+row], b.Pix[y*b.Stride:y*b.Stride+row])
	}
	return out
}

// Crop copies the w×h region at (x, y) into a new tight buffer.
// The region must lie within the buffer.
func (b *Buffer) Crop(x, y, w, h int) *Buffer {
	out := New(w, h, b.Channels)
	row := w * b.Channels
	for dy := 0; dy < h; dy++ {
		src := b.Offset(x, y+dy)
		copy(out.Pix[dy*out.Stride:dy*out.Stride+row], b.Pix[src:src+row])
	}
	return out
}

// Equal reports whether two buffers hold the same pixels, ignoring padding.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels {
		return false
	}
	row := b.Width * b.Channels
	for y := 0; y < b.Height; y++ {
		if !bytes.Equal(b.Pix[y*b.Stride:y*b.Stride+row], o.Pix[y*o.Stride:y*o.Stride+row]) {
			return false
		}
	}
	return true
}

// FromImage converts any image into a tight 4-channel (non-premultiplied) buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{
		Width:    dst.Rect.Dx(),
		Height:   dst.Rect.Dy(),
		Channels: 4,
		Stride:   dst.Stride,
		Pix:      dst.Pix,
	}
}

// Image copies the buffer into an *image.NRGBA.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetNRGBA(x, y, b.At(x, y))
		}
	}
	return img
}

// Scale resizes the buffer with bilinear interpolation. The result is a new
// 4-channel buffer; a same-size request returns a tight copy.
func Scale(src *Buffer, width, height int) *Buffer {
	if width == src.Width && height == src.Height {
		return src.Tight()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	from := src.Image()
	draw.BiLinear.Scale(dst, dst.Bounds(), from, from.Bounds(), draw.Src, nil)
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: 4,
		Stride:   dst.Stride,
		Pix:      dst.Pix,
	}
}
