package editor

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// HandleTransform rotates or flips the preview.
func HandleTransform(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		action, err := photoedit.ParseTransformAction(c.Param("action"))
		if err != nil {
			return common.ErrBadRequest("unknown transform")
		}
		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		if _, err := ed.ApplyTransform(action); err != nil {
			return common.ErrBadRequest(err.Error())
		}

		sse := common.NewSSE(c)
		patchPreview(sse, d.view(ed.Snapshot(), ""))
		return nil
	}
}
