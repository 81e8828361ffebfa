// Package editor serves the image editor page and the datastar endpoints
// behind its controls.
package editor

import (
	"encoding/json"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/cmd/web/internal/editorhub"
	"thirdcoast.systems/photoedit/cmd/web/session"
	"thirdcoast.systems/photoedit/cmd/web/templates/components"
	"thirdcoast.systems/photoedit/cmd/web/viewtypes"
	"thirdcoast.systems/photoedit/pkg/blobstore"
	"thirdcoast.systems/photoedit/pkg/photoedit"
	"thirdcoast.systems/photoedit/pkg/utils/markdown"
)

// Deps are shared by every editor handler.
type Deps struct {
	Sessions *session.Manager
	Hub      *editorhub.Hub
	Blobs    *blobstore.Store
	// Help is rendered into the panel; may be nil.
	Help               *markdown.Markdown
	DisableContextMenu bool
	// MaxUploadBytes caps a single image upload. 0 means no cap beyond the
	// server body limit.
	MaxUploadBytes int64
}

func (d *Deps) editor(c echo.Context) (*photoedit.Editor, error) {
	return common.RequireEditor(c, d.Sessions, d.Hub)
}

func (d *Deps) view(snap photoedit.Snapshot, errMsg string) viewtypes.Editor {
	v := viewtypes.Editor{Snapshot: snap, Error: errMsg}
	if d.Help != nil {
		v.Help = d.Help.Render()
	}
	return v
}

func patchPreview(sse *datastar.ServerSentEventGenerator, v viewtypes.Editor) {
	if err := sse.PatchElementTempl(components.EditorPreview(v), datastar.WithSelectorID("editor-preview")); err != nil {
		slog.Warn("failed to patch editor preview", "error", err)
	}
}

func patchPanel(sse *datastar.ServerSentEventGenerator, v viewtypes.Editor) {
	if err := sse.PatchElementTempl(components.EditorPanel(v), datastar.WithSelectorID("editor-panel")); err != nil {
		slog.Warn("failed to patch editor panel", "error", err)
	}
}

func patchReadout(sse *datastar.ServerSentEventGenerator, v viewtypes.Editor) {
	if err := sse.PatchElementTempl(components.SliderReadout(v), datastar.WithSelectorID("editor-readout")); err != nil {
		slog.Warn("failed to patch slider readout", "error", err)
	}
}

// patchSlider moves the bound slider signal to the active filter's value.
func patchSlider(sse *datastar.ServerSentEventGenerator, snap photoedit.Snapshot) {
	b, _ := json.Marshal(map[string]any{"sliderValue": snap.ActiveValue()})
	if err := sse.PatchSignals(b); err != nil {
		slog.Warn("failed to patch slider signal", "error", err)
	}
}
