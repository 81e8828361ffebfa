package photoedit

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, released *int) *Image {
	t.Helper()
	return &Image{
		Pixels:  image.NewRGBA(image.Rect(0, 0, 4, 2)),
		Width:   4,
		Height:  2,
		Release: func() { *released++ },
	}
}

func TestEditor_SelectSaturationAndDrag(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SelectFilter(FilterSaturation))

	style := e.AdjustSlider(150)

	snap := e.Snapshot()
	require.Equal(t, 150.0, snap.Filters.Saturation)
	require.Equal(t, FilterSaturation, snap.Active)
	require.Contains(t, style.Filter, "saturate(150%)")
	require.Equal(t, 150.0, snap.ActiveValue())
}

func TestEditor_SelectDoesNotChangeValues(t *testing.T) {
	e := NewEditor()
	before := e.Snapshot()
	require.NoError(t, e.SelectFilter(FilterGrayscale))
	after := e.Snapshot()

	require.Equal(t, before.Filters, after.Filters)
	require.Equal(t, before.Style(), after.Style())
	require.Equal(t, FilterGrayscale, after.Active)

	require.ErrorIs(t, e.SelectFilter("blur"), ErrUnknownFilter)
}

func TestEditor_SliderClampsToRange(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SelectFilter(FilterInversion))
	e.AdjustSlider(150)
	require.Equal(t, 100.0, e.Snapshot().Filters.Inversion)

	e.AdjustSlider(-5)
	require.Equal(t, 0.0, e.Snapshot().Filters.Inversion)
}

func TestEditor_RotateRightThenFlipVertical(t *testing.T) {
	e := NewEditor()
	_, err := e.ApplyTransform(RotateRight)
	require.NoError(t, err)
	style, err := e.ApplyTransform(FlipVertical)
	require.NoError(t, err)

	snap := e.Snapshot()
	require.Equal(t, 90, snap.Transform.Degrees())
	require.Equal(t, 1.0, snap.Transform.FlipHorizontal)
	require.Equal(t, -1.0, snap.Transform.FlipVertical)
	require.Equal(t, "rotate(90deg) scale(1, -1)", style.Transform)
}

func TestEditor_RotateLeftTurnsCounterClockwise(t *testing.T) {
	e := NewEditor()
	style, err := e.ApplyTransform(RotateLeft)
	require.NoError(t, err)
	require.Equal(t, "rotate(-90deg) scale(1, 1)", style.Transform)

	snap := e.Snapshot()
	require.Equal(t, 3, snap.Transform.QuarterTurns)
	require.Equal(t, 270, snap.Params().Degrees)
	require.Equal(t, style, snap.Style())

	style, err = e.ApplyTransform(RotateRight)
	require.NoError(t, err)
	require.Equal(t, "rotate(0deg) scale(1, 1)", style.Transform)
}

func TestEditor_RotateRightFourTimesKeepsTurning(t *testing.T) {
	e := NewEditor()
	var style Style
	for i := 0; i < 4; i++ {
		var err error
		style, err = e.ApplyTransform(RotateRight)
		require.NoError(t, err)
	}
	require.Equal(t, "rotate(360deg) scale(1, 1)", style.Transform)

	snap := e.Snapshot()
	require.Equal(t, DefaultTransformState(), snap.Transform)
	require.Equal(t, 0, snap.Params().QuarterTurns())

	require.Equal(t, "rotate(0deg) scale(1, 1)", e.Reset().Transform)
	require.Equal(t, 0, e.Snapshot().Spin)
}

func TestEditor_FlipHorizontalTwice(t *testing.T) {
	e := NewEditor()
	_, err := e.ApplyTransform(FlipHorizontal)
	require.NoError(t, err)
	require.Equal(t, -1.0, e.Snapshot().Transform.FlipHorizontal)
	_, err = e.ApplyTransform(FlipHorizontal)
	require.NoError(t, err)
	require.Equal(t, 1.0, e.Snapshot().Transform.FlipHorizontal)
}

func TestEditor_ResetIdempotent(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SelectFilter(FilterGrayscale))
	e.AdjustSlider(80)
	_, err := e.ApplyTransform(RotateLeft)
	require.NoError(t, err)

	once := e.Reset()
	snapOnce := e.Snapshot()
	twice := e.Reset()
	snapTwice := e.Snapshot()

	require.Equal(t, once, twice)
	require.Equal(t, snapOnce, snapTwice)
	require.Equal(t, DefaultFilterState(), snapTwice.Filters)
	require.Equal(t, DefaultTransformState(), snapTwice.Transform)
	require.Equal(t, FilterBrightness, snapTwice.Active)
}

func TestEditor_LoadResetsAndReleasesPrevious(t *testing.T) {
	e := NewEditor()
	var firstReleased, secondReleased int

	tok := e.BeginLoad()
	_, err := e.CompleteLoad(tok, testImage(t, &firstReleased))
	require.NoError(t, err)

	require.NoError(t, e.SelectFilter(FilterSaturation))
	e.AdjustSlider(10)
	_, err = e.ApplyTransform(FlipHorizontal)
	require.NoError(t, err)

	tok = e.BeginLoad()
	style, err := e.CompleteLoad(tok, testImage(t, &secondReleased))
	require.NoError(t, err)

	snap := e.Snapshot()
	require.Equal(t, DefaultFilterState(), snap.Filters)
	require.Equal(t, DefaultTransformState(), snap.Transform)
	require.Equal(t, FilterBrightness, snap.Active)
	require.Equal(t, ComputeStyle(DefaultFilterState(), DefaultTransformState()), style)
	require.Equal(t, 1, firstReleased)
	require.Equal(t, 0, secondReleased)

	e.Close()
	require.Equal(t, 1, secondReleased)
	require.Nil(t, e.Snapshot().Image)
}

func TestEditor_StaleLoadDiscarded(t *testing.T) {
	e := NewEditor()
	var slowReleased, fastReleased int

	slow := e.BeginLoad()
	fast := e.BeginLoad()

	_, err := e.CompleteLoad(fast, testImage(t, &fastReleased))
	require.NoError(t, err)

	_, err = e.CompleteLoad(slow, testImage(t, &slowReleased))
	require.ErrorIs(t, err, ErrStaleLoad)
	require.Equal(t, 1, slowReleased)
	require.Equal(t, 0, fastReleased)
	require.Equal(t, 4, e.Snapshot().Image.Width)
}

func TestEditor_LoadAfterCloseRejected(t *testing.T) {
	e := NewEditor()
	var released int
	tok := e.BeginLoad()
	e.Close()

	_, err := e.CompleteLoad(tok, testImage(t, &released))
	require.ErrorIs(t, err, ErrStaleLoad)
	require.Equal(t, 1, released)
}

func TestEditor_ConcurrentUse(t *testing.T) {
	e := NewEditor()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := FilterNames[i%len(FilterNames)]
			_ = e.SelectFilter(name)
			e.AdjustSlider(float64(i))
			_, _ = e.ApplyTransform(TransformActions[i%len(TransformActions)])
			_ = e.Snapshot().Style()
		}(i)
	}
	wg.Wait()

	snap := e.Snapshot()
	require.GreaterOrEqual(t, snap.Transform.QuarterTurns, 0)
	require.Less(t, snap.Transform.QuarterTurns, 4)
}
