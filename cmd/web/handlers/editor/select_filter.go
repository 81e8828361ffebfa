package editor

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// HandleSelectFilter points the slider at another filter. The preview is not
// touched; only the panel and the slider signal change.
func HandleSelectFilter(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		name, err := photoedit.ParseFilterName(c.Param("name"))
		if err != nil {
			return common.ErrBadRequest("unknown filter")
		}
		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		if err := ed.SelectFilter(name); err != nil {
			return common.ErrBadRequest(err.Error())
		}

		sse := common.NewSSE(c)

		snap := ed.Snapshot()
		patchPanel(sse, d.view(snap, ""))
		patchSlider(sse, snap)
		return nil
	}
}
