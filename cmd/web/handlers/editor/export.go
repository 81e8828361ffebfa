package editor

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/pkg/photoedit/export"
)

// HandleExport rasterizes the current edit and sends it as a download.
func HandleExport(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		snap := ed.Snapshot()
		if snap.Image == nil {
			return common.ErrConflict("no image loaded")
		}

		start := time.Now()
		out, err := export.Render(snap.Image.Pixels, snap.Params())
		if err != nil {
			slog.Error("export render failed", "name", snap.Image.Name, "error", err)
			return common.ErrInternal("failed to render image")
		}

		h := c.Response().Header()
		h.Set(echo.HeaderContentType, export.ContentType)
		h.Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
		h.Set(echo.HeaderCacheControl, "no-store")
		c.Response().WriteHeader(http.StatusOK)

		if err := export.Encode(c.Response(), out); err != nil {
			// Headers are already sent; nothing left to report to the client.
			slog.Error("export encode failed", "name", snap.Image.Name, "error", err)
			return nil
		}

		slog.Info("image exported",
			"name", snap.Image.Name,
			"width", out.Bounds().Dx(),
			"height", out.Bounds().Dy(),
			"filter", snap.Style().Filter,
			"transform", snap.Style().Transform,
			"took", time.Since(start),
		)
		return nil
	}
}
