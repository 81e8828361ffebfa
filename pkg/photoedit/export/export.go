// Package export rasterizes an edited image onto an offscreen drawing
// surface and encodes it for download.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"golang.org/x/image/draw"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

const (
	// Filename is the name the download is saved under.
	Filename = "image.png"
	// ContentType matches the encoding Encode produces.
	ContentType = "image/png"
)

var (
	ErrNoImage    = errors.New("no image loaded")
	ErrEmptyImage = errors.New("image has no pixels")
)

// SurfaceSize returns the drawing surface size for an image of natural size
// w x h. Odd quarter turns swap the axes so the whole image stays on the
// surface, as it does in the rotated preview.
func SurfaceSize(w, h int, p photoedit.RenderParams) (int, int) {
	if p.QuarterTurns()%2 == 1 {
		return h, w
	}
	return w, h
}

// Render replays p onto a new surface holding img.
func Render(img image.Image, p photoedit.RenderParams) (image.Image, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	src := pixmapFromImage(img)
	filtered := gg.NewPixmap(w, h)
	FilterChain(p).Apply(src, filtered, scene.Rect{MaxX: float32(w), MaxY: float32(h)})

	sw, sh := SurfaceSize(w, h, p)
	surface := gg.NewPixmap(sw, sh)
	dc := gg.NewContext(sw, sh, gg.WithPixmap(surface))
	defer dc.Close()

	dc.Translate(float64(sw)/2, float64(sh)/2)
	if p.Degrees != 0 {
		dc.Rotate(p.Radians())
	}
	dc.Scale(p.ScaleX, p.ScaleY)
	drawCentered(dc, surface, filtered)

	return surface.ToImage(), nil
}

// pixmapFromImage copies img into a premultiplied RGBA pixmap byte for byte.
func pixmapFromImage(img image.Image) *gg.Pixmap {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	pm := gg.NewPixmap(b.Dx(), b.Dy())
	copy(pm.Data(), rgba.Pix)
	return pm
}

// drawCentered draws pm at its natural size centred on the current origin
// of dc, whose target is surface. Each surface pixel is mapped back through
// the inverse transform and takes the source pixel under its centre.
func drawCentered(dc *gg.Context, surface, pm *gg.Pixmap) {
	inv := dc.GetTransform().Invert()
	halfW := float64(pm.Width()) / 2
	halfH := float64(pm.Height()) / 2
	src := pm.Data()
	dst := surface.Data()

	for y := 0; y < surface.Height(); y++ {
		for x := 0; x < surface.Width(); x++ {
			pt := inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
			sx := int(math.Floor(pt.X + halfW))
			sy := int(math.Floor(pt.Y + halfH))
			if sx < 0 || sy < 0 || sx >= pm.Width() || sy >= pm.Height() {
				continue
			}
			si := (sy*pm.Width() + sx) * 4
			di := (y*surface.Width() + x) * 4
			copy(dst[di:di+4], src[si:si+4])
		}
	}
}

// Encode writes img in the fixed export format.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Export renders img with p and writes the encoded result to w.
func Export(w io.Writer, img image.Image, p photoedit.RenderParams) error {
	out, err := Render(img, p)
	if err != nil {
		return err
	}
	return Encode(w, out)
}
