package pixel

import (
	"image/color"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

var (
	green = color.RGBA{G: 0xff, A: 0xff}
	black = color.RGBA{A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func filled(w, h, channels int, c color.NRGBA) *Buffer {
	b := New(w, h, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := b.Offset(x, y)
			b.Pix[off], b.Pix[off+1], b.Pix[off+2] = c.R, c.G, c.B
			if b.HasAlpha() {
				b.Pix[off+3] = c.A
			}
		}
	}
	return b
}

// padded returns a copy of b whose rows carry pad extra bytes of junk.
func padded(b *Buffer, pad int) *Buffer {
	row := b.Width * b.Channels
	out := &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Stride: row + pad}
	out.Pix = make([]byte, out.Stride*b.Height)
	for i := range out.Pix {
		out.Pix[i] = 0xee
	}
	for y := 0; y < b.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+row], b.Pix[y*b.Stride:y*b.Stride+row])
	}
	return out
}

func TestGrayscaleTruncatesLuminance(t *testing.T) {
	t.Parallel()

	src := filled(1, 1, 4, color.NRGBA{R: 255, A: 255})
	out := Grayscale(src)

	require.Equal(t, color.NRGBA{R: 76, G: 76, B: 76, A: 255}, out.At(0, 0))
	require.Equal(t, color.NRGBA{R: 255, A: 255}, src.At(0, 0), "input must not be modified")
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	t.Parallel()

	src := filled(2, 2, 4, color.NRGBA{R: 10, G: 200, B: 30, A: 17})
	out := Grayscale(src)

	got := out.At(1, 1)
	require.EqualValues(t, 17, got.A)
	require.EqualValues(t, (299*10+587*200+114*30)/1000, got.R)
	require.Equal(t, got.R, got.G)
	require.Equal(t, got.R, got.B)
}

func TestGrayscaleRGB(t *testing.T) {
	t.Parallel()

	src := filled(3, 1, 3, color.NRGBA{R: 0, G: 0, B: 255})
	out := Grayscale(src)

	require.Equal(t, 3, out.Channels)
	require.Equal(t, color.NRGBA{R: 29, G: 29, B: 29, A: 255}, out.At(2, 0))
}

func TestGrayscaleRepacksPaddedInput(t *testing.T) {
	t.Parallel()

	src := filled(3, 2, 4, color.NRGBA{R: 90, G: 40, B: 250, A: 255})
	src.SetRGB(1, 1, 1, 2, 3)

	fromPadded := Grayscale(padded(src, 5))
	require.True(t, fromPadded.IsTight())
	require.True(t, fromPadded.Equal(Grayscale(src)))
}

func TestGrayscaleIdempotentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("grayscale(grayscale(x)) == grayscale(x)", prop.ForAll(
		func(r, g, b, a uint8) bool {
			src := filled(2, 1, 4, color.NRGBA{R: r, G: g, B: b, A: a})
			once := Grayscale(src)
			return Grayscale(once).Equal(once)
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.TestingRun(t)
}

func TestBorderOpaqueThreeByThree(t *testing.T) {
	t.Parallel()

	src := filled(3, 3, 4, white)
	out := Border(src, SolidStroke(green), 1)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				require.Equal(t, white, out.At(x, y), "center must be unchanged")
				continue
			}
			require.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, out.At(x, y), "perimeter pixel (%d,%d)", x, y)
		}
	}
	require.Equal(t, white, src.At(0, 0), "input must not be modified")
}

func TestBorderWidthReachesInward(t *testing.T) {
	t.Parallel()

	src := filled(5, 5, 4, white)
	out := Border(src, SolidStroke(green), 2)

	require.Equal(t, white, out.At(2, 2))
	for _, p := range [][2]int{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}} {
		require.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, out.At(p[0], p[1]), "inner ring pixel %v", p)
	}
}

func TestBorderSkipsTransparentPixels(t *testing.T) {
	t.Parallel()

	clear := color.NRGBA{R: 9, G: 9, B: 9, A: 0}
	src := filled(5, 5, 4, clear)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			off := src.Offset(x, y)
			src.Pix[off], src.Pix[off+1], src.Pix[off+2], src.Pix[off+3] = 0xff, 0xff, 0xff, 0x80
		}
	}

	out := Border(src, SolidStroke(green), 3)

	require.Equal(t, clear, out.At(0, 0), "transparent pixels are never painted")
	require.Equal(t, clear, out.At(4, 2))
	require.Equal(t, color.NRGBA{G: 0xff, A: 0x80}, out.At(1, 1), "alpha is preserved")
	require.Equal(t, color.NRGBA{G: 0xff, A: 0x80}, out.At(2, 2), "stroke walks inward from the silhouette")
}

func TestBorderGradientUsesAbsoluteX(t *testing.T) {
	t.Parallel()

	src := filled(4, 1, 3, white)
	out := Border(src, GradientStroke(black, color.RGBA{R: 200, G: 100, A: 0xff}), 1)

	require.Equal(t, color.NRGBA{A: 255}, out.At(0, 0))
	require.Equal(t, color.NRGBA{R: 50, G: 25, A: 255}, out.At(1, 0))
	require.Equal(t, color.NRGBA{R: 100, G: 50, A: 255}, out.At(2, 0))
	require.Equal(t, color.NRGBA{R: 150, G: 75, A: 255}, out.At(3, 0))
}

func TestBorderDetectsEdgesFromSnapshot(t *testing.T) {
	t.Parallel()

	// An opaque 4x4 block: width 4 would repaint everything if edge tests read
	// freshly painted pixels; with the snapshot only true edges seed strokes.
	src := filled(4, 4, 4, white)
	a := Border(src, SolidStroke(green), 1)
	b := Border(padded(src, 3), SolidStroke(green), 1)

	require.True(t, a.Equal(b))
	require.Equal(t, white, a.At(1, 1))
	require.Equal(t, white, a.At(2, 2))
}

func TestBorderZeroWidthIsCopy(t *testing.T) {
	t.Parallel()

	src := filled(3, 3, 4, white)
	out := Border(src, SolidStroke(green), 0)
	require.True(t, out.Equal(src))
}
