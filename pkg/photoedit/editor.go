// Package photoedit holds the state of the image editor: the filter and
// transform records, the slider's active filter, and the loaded image.
package photoedit

import (
	"errors"
	"image"
	"sync"
)

// ErrStaleLoad is returned when a load completes after a newer one began.
var ErrStaleLoad = errors.New("stale image load")

// Image is the picture currently shown in the preview.
type Image struct {
	Pixels image.Image
	// Natural (unscaled) size in pixels.
	Width  int
	Height int
	Name   string
	MIME   string
	Size   int64
	// URL is the temporary reference the preview element loads.
	URL string
	// Release frees the temporary reference. Called exactly once, when the
	// image is replaced or the editor is closed.
	Release func()
}

func (img *Image) release() {
	if img == nil || img.Release == nil {
		return
	}
	rel := img.Release
	img.Release = nil
	rel()
}

// LoadToken identifies one image load. Only the most recent token may
// complete.
type LoadToken uint64

// Snapshot is a consistent copy of the editor state.
type Snapshot struct {
	Filters   FilterState
	Transform TransformState
	// Spin counts signed quarter turns since the last reset. It only
	// steers the preview rotation.
	Spin   int
	Active FilterName
	Image  *Image
}

// Params returns the render parameters for the snapshot.
func (s Snapshot) Params() RenderParams {
	return Params(s.Filters, s.Transform)
}

// Style returns the preview style for the snapshot.
func (s Snapshot) Style() Style {
	return PreviewStyle(s.Filters, s.Transform, s.Spin)
}

// ActiveRange returns the slider range of the active filter.
func (s Snapshot) ActiveRange() FilterRange {
	r, _ := Ranges(s.Active)
	return r
}

// ActiveValue returns the value the slider currently shows.
func (s Snapshot) ActiveValue() float64 {
	return s.Filters.Value(s.Active)
}

// Editor is one instance of the editing widget. It is safe for concurrent
// use.
type Editor struct {
	mu        sync.Mutex
	filters   FilterState
	transform TransformState
	spin      int
	active    FilterName
	image     *Image
	loads     LoadToken
	closed    bool
}

// NewEditor returns an editor in its default state with no image.
func NewEditor() *Editor {
	return &Editor{
		filters:   DefaultFilterState(),
		transform: DefaultTransformState(),
		active:    FilterBrightness,
	}
}

// SelectFilter points the slider at name. Values and styling are untouched.
func (e *Editor) SelectFilter(name FilterName) error {
	if _, ok := Ranges(name); !ok {
		return ErrUnknownFilter
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = name
	return nil
}

// AdjustSlider writes v into the active filter and returns the new style.
// v is clamped to the active filter's range.
func (e *Editor) AdjustSlider(v float64) Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, _ := Ranges(e.active)
	e.filters = e.filters.With(e.active, r.Clamp(v))
	return e.styleLocked()
}

// ApplyTransform mutates the transform record and returns the new style.
func (e *Editor) ApplyTransform(action TransformAction) (Style, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.transform.Apply(action)
	if err != nil {
		return Style{}, err
	}
	e.transform = t
	switch action {
	case RotateLeft:
		e.spin--
	case RotateRight:
		e.spin++
	}
	return e.styleLocked(), nil
}

// Reset restores the defaults and points the slider at brightness.
func (e *Editor) Reset() Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	return e.styleLocked()
}

func (e *Editor) styleLocked() Style {
	return PreviewStyle(e.filters, e.transform, e.spin)
}

func (e *Editor) resetLocked() {
	e.filters = DefaultFilterState()
	e.transform = DefaultTransformState()
	e.spin = 0
	e.active = FilterBrightness
}

// BeginLoad starts an image load. Any load begun earlier becomes stale.
func (e *Editor) BeginLoad() LoadToken {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loads++
	return e.loads
}

// CompleteLoad installs img once it has been decoded, releases the image it
// replaces and resets the editor. A stale token releases img instead and
// returns ErrStaleLoad.
func (e *Editor) CompleteLoad(tok LoadToken, img *Image) (Style, error) {
	e.mu.Lock()
	if tok != e.loads || e.closed {
		e.mu.Unlock()
		img.release()
		return Style{}, ErrStaleLoad
	}
	prev := e.image
	e.image = img
	e.resetLocked()
	style := e.styleLocked()
	e.mu.Unlock()

	prev.release()
	return style, nil
}

// Snapshot returns a copy of the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Filters:   e.filters,
		Transform: e.transform,
		Spin:      e.spin,
		Active:    e.active,
		Image:     e.image,
	}
}

// Close releases the loaded image. Later loads are rejected as stale.
func (e *Editor) Close() {
	e.mu.Lock()
	img := e.image
	e.image = nil
	e.closed = true
	e.mu.Unlock()

	img.release()
}
