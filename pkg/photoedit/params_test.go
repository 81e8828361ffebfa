package photoedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeStyle_Defaults(t *testing.T) {
	s := ComputeStyle(DefaultFilterState(), DefaultTransformState())
	require.Equal(t, "brightness(100%) saturate(100%) invert(0%) grayscale(0%)", s.Filter)
	require.Equal(t, "rotate(0deg) scale(1, 1)", s.Transform)
}

func TestComputeStyle_Fractional(t *testing.T) {
	f := FilterState{Brightness: 12.5, Saturation: 0, Inversion: 100, Grayscale: 33.25}
	s := ComputeStyle(f, TransformState{QuarterTurns: 3, FlipHorizontal: -1, FlipVertical: 1})
	require.Equal(t, "brightness(12.5%) saturate(0%) invert(100%) grayscale(33.25%)", s.Filter)
	require.Equal(t, "rotate(270deg) scale(-1, 1)", s.Transform)
}

func TestParseStyle_RoundTrip(t *testing.T) {
	for _, b := range []float64{0, 50, 100, 150.5, 200} {
		for _, inv := range []float64{0, 1, 99.75, 100} {
			for turns := 0; turns < 4; turns++ {
				for _, fh := range []float64{1, -1} {
					f := FilterState{Brightness: b, Saturation: 200 - b, Inversion: inv, Grayscale: 100 - inv}
					tr := TransformState{QuarterTurns: turns, FlipHorizontal: fh, FlipVertical: -fh}

					gotF, gotT, err := ParseStyle(ComputeStyle(f, tr))
					require.NoError(t, err)
					require.Equal(t, f, gotF)
					require.Equal(t, tr, gotT)
				}
			}
		}
	}
}

func TestPreviewStyle_SignedRotation(t *testing.T) {
	f := DefaultFilterState()

	s := PreviewStyle(f, TransformState{QuarterTurns: 3, FlipHorizontal: 1, FlipVertical: 1}, -1)
	require.Equal(t, "rotate(-90deg) scale(1, 1)", s.Transform)
	_, tr, err := ParseStyle(s)
	require.NoError(t, err)
	require.Equal(t, 3, tr.QuarterTurns)

	s = PreviewStyle(f, TransformState{QuarterTurns: 0, FlipHorizontal: 1, FlipVertical: 1}, 4)
	require.Equal(t, "rotate(360deg) scale(1, 1)", s.Transform)

	// A spin that disagrees with the record falls back to the bounded angle.
	s = PreviewStyle(f, TransformState{QuarterTurns: 1, FlipHorizontal: 1, FlipVertical: 1}, 2)
	require.Equal(t, "rotate(90deg) scale(1, 1)", s.Transform)
}

func TestParseStyle_Malformed(t *testing.T) {
	good := ComputeStyle(DefaultFilterState(), DefaultTransformState())

	_, _, err := ParseStyle(Style{Filter: "blur(2px)", Transform: good.Transform})
	require.ErrorIs(t, err, ErrMalformedStyle)

	_, _, err = ParseStyle(Style{Filter: good.Filter, Transform: "rotate(45deg) scale(1, 1)"})
	require.ErrorIs(t, err, ErrMalformedStyle)

	_, _, err = ParseStyle(Style{Filter: good.Filter, Transform: "scale(1, 1)"})
	require.ErrorIs(t, err, ErrMalformedStyle)
}

func TestParams_SharedByBothPaths(t *testing.T) {
	f := FilterState{Brightness: 50, Saturation: 100, Inversion: 0, Grayscale: 100}
	tr := TransformState{QuarterTurns: 1, FlipHorizontal: 1, FlipVertical: -1}

	p := Params(f, tr)
	require.Equal(t, 90, p.Degrees)
	require.Equal(t, 1, p.QuarterTurns())
	require.InDelta(t, 1.5707963, p.Radians(), 1e-6)
	require.Equal(t, 1.0, p.ScaleX)
	require.Equal(t, -1.0, p.ScaleY)

	s := ComputeStyle(f, tr)
	require.Equal(t, p.CSSFilter(), s.Filter)
	require.Equal(t, p.CSSTransform(), s.Transform)
}

func TestStyle_Attr(t *testing.T) {
	s := Style{Filter: "a", Transform: "b"}
	require.Equal(t, "filter: a; transform: b;", s.Attr())
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name FilterName
		want FilterRange
	}{
		{FilterBrightness, FilterRange{Min: 0, Max: 200, Step: 1, Default: 100}},
		{FilterSaturation, FilterRange{Min: 0, Max: 200, Step: 1, Default: 100}},
		{FilterInversion, FilterRange{Min: 0, Max: 100, Step: 1, Default: 0}},
		{FilterGrayscale, FilterRange{Min: 0, Max: 100, Step: 1, Default: 0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, ok := Ranges(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, ok := Ranges("blur")
	require.False(t, ok)
}

func TestParseFilterName(t *testing.T) {
	n, err := ParseFilterName("Saturation")
	require.NoError(t, err)
	require.Equal(t, FilterSaturation, n)
	require.Equal(t, "Saturation", n.Label())

	_, err = ParseFilterName("sepia")
	require.ErrorIs(t, err, ErrUnknownFilter)
}

func TestTransformState_Apply(t *testing.T) {
	tests := []struct {
		action TransformAction
		want   TransformState
	}{
		{RotateLeft, TransformState{QuarterTurns: 3, FlipHorizontal: 1, FlipVertical: 1}},
		{RotateRight, TransformState{QuarterTurns: 1, FlipHorizontal: 1, FlipVertical: 1}},
		{FlipHorizontal, TransformState{QuarterTurns: 0, FlipHorizontal: -1, FlipVertical: 1}},
		{FlipVertical, TransformState{QuarterTurns: 0, FlipHorizontal: 1, FlipVertical: -1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, err := DefaultTransformState().Apply(tt.action)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := DefaultTransformState().Apply("diagonal")
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestTransformState_LeftFourTimes(t *testing.T) {
	tr := DefaultTransformState()
	var err error
	for i := 0; i < 4; i++ {
		tr, err = tr.Apply(RotateLeft)
		require.NoError(t, err)
	}
	require.Equal(t, 0, tr.Degrees()%360)
	require.Equal(t, DefaultTransformState(), tr)
}

func TestTransformState_RotationStaysBounded(t *testing.T) {
	tr := DefaultTransformState()
	var err error
	for i := 0; i < 1001; i++ {
		tr, err = tr.Apply(RotateLeft)
		require.NoError(t, err)
		require.GreaterOrEqual(t, tr.QuarterTurns, 0)
		require.Less(t, tr.QuarterTurns, 4)
	}
	// 1001 left turns == one left turn.
	require.Equal(t, 270, tr.Degrees())
}

func TestParseTransformAction(t *testing.T) {
	a, err := ParseTransformAction("Right")
	require.NoError(t, err)
	require.Equal(t, RotateRight, a)
	require.Equal(t, "↻", a.Icon())

	_, err = ParseTransformAction("up")
	require.ErrorIs(t, err, ErrUnknownAction)
}
