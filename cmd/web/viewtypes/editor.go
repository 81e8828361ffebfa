package viewtypes

import (
	"fmt"
	"html/template"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// PlaceholderURL is shown in the preview until an image is loaded.
const PlaceholderURL = "/static/img/image-placeholder.svg"

// Editor is everything the editor templates need to render one session.
type Editor struct {
	Snapshot photoedit.Snapshot
	// Error is shown in the banner above the controls, if set.
	Error string
	Help  template.HTML
}

// FilterButton is one entry in the filter option grid.
type FilterButton struct {
	Name   photoedit.FilterName
	Label  string
	Active bool
	// OnClick is the datastar action expression.
	OnClick string
}

// TransformButton is one entry in the rotate/flip grid.
type TransformButton struct {
	Action  photoedit.TransformAction
	Icon    string
	Title   string
	OnClick string
}

// HasImage gates the Save Image control.
func (v Editor) HasImage() bool {
	return v.Snapshot.Image != nil
}

// ImageURL is the preview source: the loaded image's blob or the placeholder.
func (v Editor) ImageURL() string {
	if v.Snapshot.Image == nil || v.Snapshot.Image.URL == "" {
		return PlaceholderURL
	}
	return v.Snapshot.Image.URL
}

// PreviewStyle is the inline style of the preview image.
func (v Editor) PreviewStyle() string {
	return v.Snapshot.Style().Attr()
}

// PreviewAttrs are the dynamic attributes of the preview image.
func (v Editor) PreviewAttrs() templ.Attributes {
	return templ.Attributes{
		"src":   v.ImageURL(),
		"style": v.PreviewStyle(),
	}
}

// ImageMeta describes the loaded image, e.g. "cat.jpg · 1024×768 · 1.2 MB".
func (v Editor) ImageMeta() string {
	img := v.Snapshot.Image
	if img == nil {
		return "No image loaded"
	}
	return fmt.Sprintf("%s · %d×%d · %s", img.Name, img.Width, img.Height, humanize.Bytes(uint64(img.Size)))
}

func (v Editor) FilterButtons() []FilterButton {
	out := make([]FilterButton, 0, len(photoedit.FilterNames))
	for _, name := range photoedit.FilterNames {
		out = append(out, FilterButton{
			Name:    name,
			Label:   name.Label(),
			Active:  name == v.Snapshot.Active,
			OnClick: post("/api/editor/filters/" + string(name)),
		})
	}
	return out
}

func (v Editor) TransformButtons() []TransformButton {
	titles := map[photoedit.TransformAction]string{
		photoedit.RotateLeft:     "Rotate left",
		photoedit.RotateRight:    "Rotate right",
		photoedit.FlipHorizontal: "Flip horizontally",
		photoedit.FlipVertical:   "Flip vertically",
	}
	out := make([]TransformButton, 0, len(photoedit.TransformActions))
	for _, a := range photoedit.TransformActions {
		out = append(out, TransformButton{
			Action:  a,
			Icon:    a.Icon(),
			Title:   titles[a],
			OnClick: post("/api/editor/transforms/" + string(a)),
		})
	}
	return out
}

// ActiveLabel names the filter the slider controls.
func (v Editor) ActiveLabel() string {
	return v.Snapshot.Active.Label()
}

// Readout is the slider's value display, e.g. "150%".
func (v Editor) Readout() string {
	return photoedit.FmtNum(v.Snapshot.ActiveValue()) + "%"
}

func (v Editor) SliderMin() string {
	return photoedit.FmtNum(v.Snapshot.ActiveRange().Min)
}

func (v Editor) SliderMax() string {
	return photoedit.FmtNum(v.Snapshot.ActiveRange().Max)
}

func (v Editor) SliderStep() string {
	return photoedit.FmtNum(v.Snapshot.ActiveRange().Step)
}

func (v Editor) SliderValue() string {
	return photoedit.FmtNum(v.Snapshot.ActiveValue())
}

func post(url string) string {
	return "@post('" + url + "')"
}

// Signals is the datastar signal patch that keeps the bound slider in step
// with the server.
func (v Editor) Signals() string {
	return fmt.Sprintf("{sliderValue: %s}", v.SliderValue())
}
