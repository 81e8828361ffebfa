package photoedit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterName identifies one field of FilterState.
type FilterName string

const (
	FilterBrightness FilterName = "brightness"
	FilterSaturation FilterName = "saturation"
	FilterInversion  FilterName = "inversion"
	FilterGrayscale  FilterName = "grayscale"
)

// ErrUnknownFilter is returned for a filter name outside the fixed set.
var ErrUnknownFilter = errors.New("unknown filter")

// FilterNames lists the filters in the order the selector shows them.
var FilterNames = []FilterName{FilterBrightness, FilterSaturation, FilterInversion, FilterGrayscale}

// FilterRange describes the slider bounds for a filter.
type FilterRange struct {
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Clamp limits v to [Min, Max].
func (r FilterRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

var filterRanges = map[FilterName]FilterRange{
	FilterBrightness: {Min: 0, Max: 200, Step: 1, Default: 100},
	FilterSaturation: {Min: 0, Max: 200, Step: 1, Default: 100},
	FilterInversion:  {Min: 0, Max: 100, Step: 1, Default: 0},
	FilterGrayscale:  {Min: 0, Max: 100, Step: 1, Default: 0},
}

// Ranges returns the slider range for a filter.
func Ranges(name FilterName) (FilterRange, bool) {
	r, ok := filterRanges[name]
	return r, ok
}

// ParseFilterName accepts the lowercase field name or the button label
// ("Saturation").
func ParseFilterName(s string) (FilterName, error) {
	name := FilterName(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := filterRanges[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return name, nil
}

var labelCaser = cases.Title(language.English)

// Label returns the human-readable button label.
func (n FilterName) Label() string {
	return labelCaser.String(string(n))
}

// FilterState holds the photometric adjustment intensities, in percent.
type FilterState struct {
	Brightness float64 `json:"brightness"`
	Saturation float64 `json:"saturation"`
	Inversion  float64 `json:"inversion"`
	Grayscale  float64 `json:"grayscale"`
}

// DefaultFilterState returns brightness=100, saturation=100, inversion=0,
// grayscale=0.
func DefaultFilterState() FilterState {
	return FilterState{
		Brightness: filterRanges[FilterBrightness].Default,
		Saturation: filterRanges[FilterSaturation].Default,
		Inversion:  filterRanges[FilterInversion].Default,
		Grayscale:  filterRanges[FilterGrayscale].Default,
	}
}

// Value reads the field named by name.
func (f FilterState) Value(name FilterName) float64 {
	switch name {
	case FilterBrightness:
		return f.Brightness
	case FilterSaturation:
		return f.Saturation
	case FilterInversion:
		return f.Inversion
	case FilterGrayscale:
		return f.Grayscale
	default:
		return 0
	}
}

// With returns a copy of f with the field named by name set to v.
func (f FilterState) With(name FilterName, v float64) FilterState {
	switch name {
	case FilterBrightness:
		f.Brightness = v
	case FilterSaturation:
		f.Saturation = v
	case FilterInversion:
		f.Inversion = v
	case FilterGrayscale:
		f.Grayscale = v
	}
	return f
}

// FmtNum formats a float without trailing zeros.
func FmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
