package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTightRemovesPadding(t *testing.T) {
	t.Parallel()

	src := filled(2, 3, 3, color.NRGBA{R: 1, G: 2, B: 3})
	p := padded(src, 7)
	require.False(t, p.IsTight())

	tight := p.Tight()
	require.True(t, tight.IsTight())
	require.Len(t, tight.Pix, 2*3*3)
	require.True(t, tight.Equal(p))
	require.True(t, tight.Equal(src))
}

func TestCropIsTightCopy(t *testing.T) {
	t.Parallel()

	src := New(4, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGB(x, y, uint8(x), uint8(y), 0)
		}
	}

	cell := src.Crop(2, 2, 2, 2)
	require.True(t, cell.IsTight())
	require.Equal(t, 2, cell.Width)
	require.EqualValues(t, 3, cell.At(1, 1).R)
	require.EqualValues(t, 3, cell.At(1, 1).G)

	cell.SetRGB(0, 0, 99, 99, 99)
	require.EqualValues(t, 2, src.At(2, 2).R, "crop must not alias the source")
}

func TestFromImageRoundTrip(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	b := FromImage(img)
	require.Equal(t, 4, b.Channels)
	require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 40}, b.At(2, 1))
	require.Equal(t, img.Pix, b.Image().Pix)
}

func TestFromImageHonorsSubImageBounds(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(5, 6, color.NRGBA{R: 77, A: 255})

	b := FromImage(img.SubImage(image.Rect(4, 4, 8, 8)))
	require.Equal(t, 4, b.Width)
	require.True(t, b.IsTight())
	require.Equal(t, color.NRGBA{R: 77, A: 255}, b.At(1, 2))
}

func TestScaleBilinear(t *testing.T) {
	t.Parallel()

	src := filled(4, 4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	up := Scale(src, 8, 8)
	require.Equal(t, 8, up.Width)
	require.Equal(t, 8, up.Height)
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, up.At(5, 5))

	same := Scale(src, 4, 4)
	require.True(t, same.Equal(src))
	same.SetRGB(0, 0, 0, 0, 0)
	require.EqualValues(t, 200, src.At(0, 0).R)
}

func TestRGBImageIsOpaque(t *testing.T) {
	t.Parallel()

	src := filled(1, 1, 3, color.NRGBA{R: 5, G: 6, B: 7})
	require.Equal(t, color.NRGBA{R: 5, G: 6, B: 7, A: 255}, src.Image().NRGBAAt(0, 0))
}
