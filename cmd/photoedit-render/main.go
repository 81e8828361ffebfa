// Command photoedit-render applies an editor adjustment to an image file
// without a browser and writes the PNG the editor's Save button would produce.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"thirdcoast.systems/photoedit/pkg/imagefile"
	"thirdcoast.systems/photoedit/pkg/photoedit"
	"thirdcoast.systems/photoedit/pkg/photoedit/export"
)

type options struct {
	in         string
	out        string
	brightness float64
	saturation float64
	inversion  float64
	grayscale  float64
	rotate     []string
	flipH      bool
	flipV      bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := pflag.NewFlagSet("photoedit-render", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.in, "in", "i", "", "input image file (required)")
	fs.StringVarP(&o.out, "out", "o", export.Filename, "output PNG file, - for stdout")
	fs.Float64Var(&o.brightness, "brightness", 100, "brightness percent (0-200)")
	fs.Float64Var(&o.saturation, "saturation", 100, "saturation percent (0-200)")
	fs.Float64Var(&o.inversion, "inversion", 0, "inversion percent (0-100)")
	fs.Float64Var(&o.grayscale, "grayscale", 0, "grayscale percent (0-100)")
	fs.StringSliceVar(&o.rotate, "rotate", nil, "quarter turns to apply in order: left or right (repeatable)")
	fs.BoolVar(&o.flipH, "flip-h", false, "mirror horizontally")
	fs.BoolVar(&o.flipV, "flip-v", false, "mirror vertically")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.in == "" {
		return nil, errors.New("--in is required")
	}
	return o, nil
}

// edit replays the options through an editor the same way the browser
// controls do: select a filter, move the slider, press transform buttons.
func (o *options) edit(ed *photoedit.Editor) error {
	values := map[photoedit.FilterName]float64{
		photoedit.FilterBrightness: o.brightness,
		photoedit.FilterSaturation: o.saturation,
		photoedit.FilterInversion:  o.inversion,
		photoedit.FilterGrayscale:  o.grayscale,
	}
	for _, name := range photoedit.FilterNames {
		v := values[name]
		r, _ := photoedit.Ranges(name)
		if !(v >= r.Min && v <= r.Max) {
			return fmt.Errorf("--%s %s: want %s to %s", name, photoedit.FmtNum(v), photoedit.FmtNum(r.Min), photoedit.FmtNum(r.Max))
		}
		if err := ed.SelectFilter(name); err != nil {
			return err
		}
		ed.AdjustSlider(v)
	}

	var actions []photoedit.TransformAction
	for _, r := range o.rotate {
		a, err := photoedit.ParseTransformAction(r)
		if err != nil {
			return err
		}
		if a != photoedit.RotateLeft && a != photoedit.RotateRight {
			return fmt.Errorf("--rotate %q: want left or right", r)
		}
		actions = append(actions, a)
	}
	if o.flipH {
		actions = append(actions, photoedit.FlipHorizontal)
	}
	if o.flipV {
		actions = append(actions, photoedit.FlipVertical)
	}
	for _, a := range actions {
		if _, err := ed.ApplyTransform(a); err != nil {
			return err
		}
	}
	return nil
}

func run(args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(o.in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	file, err := imagefile.Decode(o.in, data)
	if err != nil {
		return err
	}

	ed := photoedit.NewEditor()
	defer ed.Close()
	if _, err := ed.CompleteLoad(ed.BeginLoad(), &photoedit.Image{
		Pixels: file.Pixels,
		Width:  file.Width,
		Height: file.Height,
		Name:   file.Name,
		MIME:   file.MIME,
		Size:   file.Size,
	}); err != nil {
		return err
	}
	if err := o.edit(ed); err != nil {
		return err
	}

	snap := ed.Snapshot()
	var w io.Writer = os.Stdout
	if o.out != "-" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Export(w, snap.Image.Pixels, snap.Params()); err != nil {
		return err
	}

	slog.Info("rendered",
		"in", o.in,
		"out", o.out,
		"size", humanize.Bytes(uint64(file.Size)),
		"filter", snap.Style().Filter,
		"transform", snap.Style().Transform,
	)
	return nil
}
