package editor

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/templates"
)

// HandlePage renders the editor for the browser's session.
func HandlePage(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		v := d.view(ed.Snapshot(), "")
		return templates.EditorPage(v, d.DisableContextMenu).Render(c.Request().Context(), c.Response())
	}
}
