package static

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	var got []string
	err := fs.WalkDir(FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"dist/editor.css",
		"dist/editor.js",
		"help/editor.md",
		"img/image-placeholder.svg",
	}, got)
}

func TestEditorScriptHandlesPolicyAndKeys(t *testing.T) {
	js, err := fs.ReadFile(FS, "dist/editor.js")
	require.NoError(t, err)
	src := string(js)

	require.Contains(t, src, "contextmenu")
	require.Contains(t, src, "disableContextMenu")
	require.Contains(t, src, "/api/editor/close")
	for _, key := range []string{`"["`, `"]"`} {
		require.True(t, strings.Contains(src, key), "missing binding for %s", key)
	}
}

func TestPlaceholderIsSVG(t *testing.T) {
	svg, err := fs.ReadFile(FS, "img/image-placeholder.svg")
	require.NoError(t, err)
	require.Contains(t, string(svg), "<svg")
}
