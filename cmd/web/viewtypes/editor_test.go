package viewtypes

import (
	"testing"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

func TestEditor_Defaults(t *testing.T) {
	v := Editor{Snapshot: photoedit.NewEditor().Snapshot()}

	require.False(t, v.HasImage())
	require.Equal(t, PlaceholderURL, v.ImageURL())
	require.Equal(t, "No image loaded", v.ImageMeta())
	require.Equal(t, PlaceholderURL, v.PreviewAttrs()["src"])
	require.Equal(t, "Brightness", v.ActiveLabel())
	require.Equal(t, "100%", v.Readout())
	require.Equal(t, "0", v.SliderMin())
	require.Equal(t, "200", v.SliderMax())
	require.Equal(t, "1", v.SliderStep())
	require.Equal(t, "{sliderValue: 100}", v.Signals())
	require.Equal(t,
		"filter: brightness(100%) saturate(100%) invert(0%) grayscale(0%); transform: rotate(0deg) scale(1, 1);",
		v.PreviewStyle())
}

func TestEditor_PreviewFollowsRotationDirection(t *testing.T) {
	e := photoedit.NewEditor()
	_, err := e.ApplyTransform(photoedit.RotateLeft)
	require.NoError(t, err)

	v := Editor{Snapshot: e.Snapshot()}
	require.Contains(t, v.PreviewStyle(), "transform: rotate(-90deg) scale(1, 1);")
}

func TestEditor_FilterButtonsMarkActive(t *testing.T) {
	e := photoedit.NewEditor()
	require.NoError(t, e.SelectFilter(photoedit.FilterGrayscale))
	v := Editor{Snapshot: e.Snapshot()}

	buttons := v.FilterButtons()
	require.Len(t, buttons, 4)
	for _, b := range buttons {
		require.Equal(t, b.Name == photoedit.FilterGrayscale, b.Active, b.Name)
	}
	require.Equal(t, "@post('/api/editor/filters/grayscale')", buttons[3].OnClick)
	require.Equal(t, "100", v.SliderMax())
	require.Equal(t, "0%", v.Readout())
}

func TestEditor_TransformButtons(t *testing.T) {
	buttons := Editor{}.TransformButtons()
	require.Len(t, buttons, 4)
	require.Equal(t, "↺", buttons[0].Icon)
	require.Equal(t, "@post('/api/editor/transforms/left')", buttons[0].OnClick)
	require.Equal(t, "Flip vertically", buttons[3].Title)
}

func TestEditor_ImageMeta(t *testing.T) {
	v := Editor{Snapshot: photoedit.Snapshot{Image: &photoedit.Image{
		Name: "cat.jpg", Width: 1024, Height: 768, Size: 1_200_000, URL: "/blobs/abc",
	}}}
	require.True(t, v.HasImage())
	require.Equal(t, "/blobs/abc", v.ImageURL())
	require.Equal(t, "cat.jpg · 1024×768 · 1.2 MB", v.ImageMeta())
}
