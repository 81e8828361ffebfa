package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoPixels returns a 2x1 image: red on the left, blue on the right.
func twoPixels() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, blue)
	return img
}

func paramsFor(t *testing.T, f photoedit.FilterState, actions ...photoedit.TransformAction) photoedit.RenderParams {
	t.Helper()
	tr := photoedit.DefaultTransformState()
	for _, a := range actions {
		var err error
		tr, err = tr.Apply(a)
		require.NoError(t, err)
	}
	return photoedit.Params(f, tr)
}

func rgbaAt(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRender_DefaultsAreLossless(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src.SetRGBA(2, 1, color.RGBA{R: 254, G: 127, B: 9, A: 255})

	out, err := Render(src, paramsFor(t, photoedit.DefaultFilterState()))
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, src.RGBAAt(x, y), rgbaAt(t, out, x, y))
		}
	}
}

func TestRender_HalfBrightnessFullGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	f := photoedit.DefaultFilterState()
	f.Brightness = 50
	f.Grayscale = 100

	out, err := Render(src, paramsFor(t, f))
	require.NoError(t, err)

	// (100, 50, 25) after brightness, then luminance weights.
	got := rgbaAt(t, out, 0, 0)
	require.InDelta(t, 59, int(got.R), 1)
	require.Equal(t, got.R, got.G)
	require.Equal(t, got.R, got.B)
	require.Equal(t, uint8(255), got.A)
}

func TestRender_RotateRightSwapsAxes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	out, err := Render(src, paramsFor(t, photoedit.DefaultFilterState(), photoedit.RotateRight))
	require.NoError(t, err)
	require.Equal(t, 2, out.Bounds().Dx())
	require.Equal(t, 4, out.Bounds().Dy())
}

func TestRender_RotateRightPlacesPixels(t *testing.T) {
	out, err := Render(twoPixels(), paramsFor(t, photoedit.DefaultFilterState(), photoedit.RotateRight))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1, 2), out.Bounds())

	// Clockwise: the left edge becomes the top edge.
	require.Equal(t, red, rgbaAt(t, out, 0, 0))
	require.Equal(t, blue, rgbaAt(t, out, 0, 1))
}

func TestRender_RotateLeftPlacesPixels(t *testing.T) {
	out, err := Render(twoPixels(), paramsFor(t, photoedit.DefaultFilterState(), photoedit.RotateLeft))
	require.NoError(t, err)

	require.Equal(t, blue, rgbaAt(t, out, 0, 0))
	require.Equal(t, red, rgbaAt(t, out, 0, 1))
}

func TestRender_HalfTurnKeepsSize(t *testing.T) {
	out, err := Render(twoPixels(), paramsFor(t, photoedit.DefaultFilterState(), photoedit.RotateRight, photoedit.RotateRight))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	require.Equal(t, blue, rgbaAt(t, out, 0, 0))
	require.Equal(t, red, rgbaAt(t, out, 1, 0))
}

func TestRender_FlipHorizontal(t *testing.T) {
	out, err := Render(twoPixels(), paramsFor(t, photoedit.DefaultFilterState(), photoedit.FlipHorizontal))
	require.NoError(t, err)
	require.Equal(t, blue, rgbaAt(t, out, 0, 0))
	require.Equal(t, red, rgbaAt(t, out, 1, 0))
}

func TestRender_FlipVertical(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	src.SetRGBA(0, 0, red)
	src.SetRGBA(0, 1, blue)

	out, err := Render(src, paramsFor(t, photoedit.DefaultFilterState(), photoedit.FlipVertical))
	require.NoError(t, err)
	require.Equal(t, blue, rgbaAt(t, out, 0, 0))
	require.Equal(t, red, rgbaAt(t, out, 0, 1))
}

func TestRender_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.SetRGBA(10, 20, red)
	src.SetRGBA(11, 20, blue)

	out, err := Render(src, paramsFor(t, photoedit.DefaultFilterState()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	require.Equal(t, red, rgbaAt(t, out, 0, 0))
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, photoedit.RenderParams{})
	require.ErrorIs(t, err, ErrNoImage)

	_, err = Render(image.NewRGBA(image.Rect(0, 0, 0, 5)), paramsFor(t, photoedit.DefaultFilterState()))
	require.ErrorIs(t, err, ErrEmptyImage)
}

func TestExport_WritesPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, twoPixels(), paramsFor(t, photoedit.DefaultFilterState(), photoedit.RotateLeft))
	require.NoError(t, err)

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1, 2), decoded.Bounds())
}

func TestSurfaceSize(t *testing.T) {
	for turns := 0; turns < 4; turns++ {
		p := photoedit.Params(photoedit.DefaultFilterState(), photoedit.TransformState{QuarterTurns: turns, FlipHorizontal: 1, FlipVertical: 1})
		w, h := SurfaceSize(640, 480, p)
		if turns%2 == 1 {
			require.Equal(t, [2]int{480, 640}, [2]int{w, h})
		} else {
			require.Equal(t, [2]int{640, 480}, [2]int{w, h})
		}
	}
}
