package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRun_RotateAndGrayscale(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writePNG(t, in, 6, 3)

	err := run([]string{"--in", in, "--out", out, "--grayscale", "100", "--rotate", "right", "--flip-h"}, io.Discard)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 6), img.Bounds())

	r, g, b, _ := img.At(1, 1).RGBA()
	require.Equal(t, r>>8, g>>8)
	require.Equal(t, g>>8, b>>8)
}

func TestRun_FullTurnKeepsShape(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writePNG(t, in, 5, 2)

	require.NoError(t, run([]string{"-i", in, "-o", out, "--rotate", "left,left", "--rotate", "right", "--rotate", "left"}, io.Discard))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Width)
	require.Equal(t, 2, cfg.Height)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 2, 2)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"--out", filepath.Join(dir, "x.png")}},
		{"unreadable input", []string{"--in", filepath.Join(dir, "nope.png")}},
		{"flip as rotation", []string{"--in", in, "--out", filepath.Join(dir, "x.png"), "--rotate", "horizontal"}},
		{"unknown rotation", []string{"--in", in, "--out", filepath.Join(dir, "x.png"), "--rotate", "up"}},
		{"unknown flag", []string{"--in", in, "--sepia", "10"}},
		{"brightness above range", []string{"--in", in, "--out", filepath.Join(dir, "x.png"), "--brightness", "300"}},
		{"grayscale below range", []string{"--in", in, "--out", filepath.Join(dir, "x.png"), "--grayscale", "-1"}},
		{"saturation not a number", []string{"--in", in, "--out", filepath.Join(dir, "x.png"), "--saturation", "NaN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, run(tt.args, io.Discard))
		})
	}
}

func TestRun_OutOfRangeNamesTheRange(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writePNG(t, in, 2, 2)

	err := run([]string{"--in", in, "--out", out, "--brightness", "300"}, io.Discard)
	require.EqualError(t, err, "--brightness 300: want 0 to 200")
	require.NoFileExists(t, out)
}

func TestRun_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(in, []byte("plain text"), 0o644))

	require.Error(t, run([]string{"--in", in, "--out", filepath.Join(dir, "x.png")}, io.Discard))
}
