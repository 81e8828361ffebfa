package editor

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
)

// HandleReset restores every filter and transform to its default.
func HandleReset(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		ed.Reset()

		sse := common.NewSSE(c)

		snap := ed.Snapshot()
		v := d.view(snap, "")
		patchPreview(sse, v)
		patchPanel(sse, v)
		patchSlider(sse, snap)
		return nil
	}
}
