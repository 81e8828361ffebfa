package export

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// ColorMatrix applies a 4x5 colour matrix to a pixmap, the way the
// browser's CSS filter functions are defined:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Colour values are straight-alpha in [0, 255]; the offset column is in the
// same units. Results are clamped after every matrix.
type ColorMatrix struct {
	M [20]float64
}

var _ scene.Filter = (*ColorMatrix)(nil)

// Brightness implements brightness(amount): a linear slope on each channel.
// amount is a fraction, 1 leaves the image unchanged.
func Brightness(amount float64) *ColorMatrix {
	if amount < 0 {
		amount = 0
	}
	return &ColorMatrix{M: [20]float64{
		amount, 0, 0, 0, 0,
		0, amount, 0, 0, 0,
		0, 0, amount, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Saturate implements saturate(amount). 0 is fully desaturated, 1 is
// unchanged, values above 1 oversaturate.
func Saturate(amount float64) *ColorMatrix {
	if amount < 0 {
		amount = 0
	}
	s := amount
	return &ColorMatrix{M: [20]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Invert implements invert(amount), amount in [0, 1].
func Invert(amount float64) *ColorMatrix {
	a := clampUnit(amount)
	slope := 1 - 2*a
	offset := 255 * a
	return &ColorMatrix{M: [20]float64{
		slope, 0, 0, 0, offset,
		0, slope, 0, 0, offset,
		0, 0, slope, 0, offset,
		0, 0, 0, 1, 0,
	}}
}

// Grayscale implements grayscale(amount), amount in [0, 1].
func Grayscale(amount float64) *ColorMatrix {
	g := 1 - clampUnit(amount)
	return &ColorMatrix{M: [20]float64{
		0.2126 + 0.7874*g, 0.7152 - 0.7152*g, 0.0722 - 0.0722*g, 0, 0,
		0.2126 - 0.2126*g, 0.7152 + 0.2848*g, 0.0722 - 0.0722*g, 0, 0,
		0.2126 - 0.2126*g, 0.7152 - 0.7152*g, 0.0722 + 0.9278*g, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Apply transforms the pixels of src inside bounds and writes them to dst.
// Pixmap data is premultiplied; the matrix runs on straight alpha.
func (m *ColorMatrix) Apply(src, dst *gg.Pixmap, bounds scene.Rect) {
	if src == nil || dst == nil {
		return
	}

	minX := clampInt(int(bounds.MinX), 0, min(src.Width(), dst.Width()))
	maxX := clampInt(int(bounds.MaxX), 0, min(src.Width(), dst.Width()))
	minY := clampInt(int(bounds.MinY), 0, min(src.Height(), dst.Height()))
	maxY := clampInt(int(bounds.MaxY), 0, min(src.Height(), dst.Height()))
	if minX >= maxX || minY >= maxY {
		return
	}

	srcData := src.Data()
	dstData := dst.Data()
	srcWidth := src.Width()
	dstWidth := dst.Width()
	k := &m.M

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			si := (y*srcWidth + x) * 4
			di := (y*dstWidth + x) * 4

			a := float64(srcData[si+3])
			var r, g, b float64
			if a > 0 {
				r = float64(srcData[si+0]) * 255 / a
				g = float64(srcData[si+1]) * 255 / a
				b = float64(srcData[si+2]) * 255 / a
			}

			nr := clamp255(k[0]*r + k[1]*g + k[2]*b + k[3]*a + k[4])
			ng := clamp255(k[5]*r + k[6]*g + k[7]*b + k[8]*a + k[9])
			nb := clamp255(k[10]*r + k[11]*g + k[12]*b + k[13]*a + k[14])
			na := clamp255(k[15]*r + k[16]*g + k[17]*b + k[18]*a + k[19])

			f := na / 255
			dstData[di+0] = toByte(nr * f)
			dstData[di+1] = toByte(ng * f)
			dstData[di+2] = toByte(nb * f)
			dstData[di+3] = toByte(na)
		}
	}
}

// ExpandBounds returns input unchanged; colour matrices are per-pixel.
func (m *ColorMatrix) ExpandBounds(input scene.Rect) scene.Rect {
	return input
}

// FilterChain builds the filter pipeline for p in CSS order: brightness,
// saturate, invert, grayscale. Functions at their neutral value are left out.
func FilterChain(p photoedit.RenderParams) *scene.FilterChain {
	chain := scene.NewFilterChain()
	if p.Brightness != 100 {
		chain.Add(Brightness(p.Brightness / 100))
	}
	if p.Saturation != 100 {
		chain.Add(Saturate(p.Saturation / 100))
	}
	if p.Inversion != 0 {
		chain.Add(Invert(p.Inversion / 100))
	}
	if p.Grayscale != 0 {
		chain.Add(Grayscale(p.Grayscale / 100))
	}
	return chain
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

func toByte(v float64) uint8 {
	return uint8(clamp255(math.Round(v)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
