package photoedit

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// RenderParams is the single mapping from editor state to rendering
// parameters. The live preview formats it as CSS, the exporter replays it
// onto a drawing surface.
type RenderParams struct {
	// Percentages as entered on the slider.
	Brightness float64
	Saturation float64
	Inversion  float64
	Grayscale  float64

	Degrees int
	ScaleX  float64
	ScaleY  float64
}

// Params derives RenderParams from the two state records.
func Params(f FilterState, t TransformState) RenderParams {
	return RenderParams{
		Brightness: f.Brightness,
		Saturation: f.Saturation,
		Inversion:  f.Inversion,
		Grayscale:  f.Grayscale,
		Degrees:    t.Degrees(),
		ScaleX:     sign(t.FlipHorizontal),
		ScaleY:     sign(t.FlipVertical),
	}
}

// Radians returns the rotation in radians.
func (p RenderParams) Radians() float64 {
	return float64(p.Degrees) * math.Pi / 180
}

// QuarterTurns returns the rotation as a count of clockwise quarter turns.
func (p RenderParams) QuarterTurns() int {
	return normalizeTurns(p.Degrees / 90)
}

// CSSFilter formats the filter list in the order the browser applies it.
func (p RenderParams) CSSFilter() string {
	return fmt.Sprintf("brightness(%s%%) saturate(%s%%) invert(%s%%) grayscale(%s%%)",
		FmtNum(p.Brightness), FmtNum(p.Saturation), FmtNum(p.Inversion), FmtNum(p.Grayscale))
}

// CSSTransform formats the rotation and flip as a CSS transform.
func (p RenderParams) CSSTransform() string {
	return fmt.Sprintf("rotate(%ddeg) scale(%s, %s)", p.Degrees, FmtNum(p.ScaleX), FmtNum(p.ScaleY))
}

// Style is the pair of CSS properties assigned to the preview image.
type Style struct {
	Filter    string `json:"filter"`
	Transform string `json:"transform"`
}

// Attr renders the style as an inline style attribute value.
func (s Style) Attr() string {
	return "filter: " + s.Filter + "; transform: " + s.Transform + ";"
}

// ComputeStyle is a pure function of the two state records.
func ComputeStyle(f FilterState, t TransformState) Style {
	p := Params(f, t)
	return Style{Filter: p.CSSFilter(), Transform: p.CSSTransform()}
}

// PreviewStyle is ComputeStyle with the rotation written as spin signed
// quarter turns, so a CSS transition always turns the way the last step
// went. A spin that disagrees with t modulo four is ignored.
func PreviewStyle(f FilterState, t TransformState, spin int) Style {
	p := Params(f, t)
	if normalizeTurns(spin) == normalizeTurns(t.QuarterTurns) {
		p.Degrees = spin * 90
	}
	return Style{Filter: p.CSSFilter(), Transform: p.CSSTransform()}
}

// ErrMalformedStyle is returned by ParseStyle for strings ComputeStyle
// could not have produced.
var ErrMalformedStyle = errors.New("malformed style")

var (
	num         = `(-?[0-9]+(?:\.[0-9]+)?)`
	filterRe    = regexp.MustCompile(`^brightness\(` + num + `%\) saturate\(` + num + `%\) invert\(` + num + `%\) grayscale\(` + num + `%\)$`)
	transformRe = regexp.MustCompile(`^rotate\(` + num + `deg\) scale\(` + num + `, ` + num + `\)$`)
)

// ParseStyle recovers the state records from a Style.
func ParseStyle(s Style) (FilterState, TransformState, error) {
	fm := filterRe.FindStringSubmatch(s.Filter)
	if fm == nil {
		return FilterState{}, TransformState{}, fmt.Errorf("%w: filter %q", ErrMalformedStyle, s.Filter)
	}
	tm := transformRe.FindStringSubmatch(s.Transform)
	if tm == nil {
		return FilterState{}, TransformState{}, fmt.Errorf("%w: transform %q", ErrMalformedStyle, s.Transform)
	}

	vals := make([]float64, 0, 7)
	for _, raw := range append(fm[1:], tm[1:]...) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return FilterState{}, TransformState{}, fmt.Errorf("%w: %v", ErrMalformedStyle, err)
		}
		vals = append(vals, v)
	}

	deg := vals[4]
	if math.Mod(deg, 90) != 0 {
		return FilterState{}, TransformState{}, fmt.Errorf("%w: rotation %s is not a quarter turn", ErrMalformedStyle, FmtNum(deg))
	}

	f := FilterState{Brightness: vals[0], Saturation: vals[1], Inversion: vals[2], Grayscale: vals[3]}
	t := TransformState{
		QuarterTurns:   normalizeTurns(int(deg) / 90),
		FlipHorizontal: vals[5],
		FlipVertical:   vals[6],
	}
	return f, t, nil
}
