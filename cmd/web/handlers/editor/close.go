package editor

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/session"
)

// HandleClose unmounts the browser's editor: the session is dropped, its
// image reference revoked and the cookie expired. The page sends it as a
// beacon when it is unloaded.
func HandleClose(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		id, err := d.Sessions.Lookup(r)
		if errors.Is(err, session.ErrNoSession) {
			return c.NoContent(http.StatusNoContent)
		}
		if err != nil {
			// Undecodable cookie; expire it so the next visit starts clean.
			_ = d.Sessions.Clear(c.Response(), r)
			return c.NoContent(http.StatusNoContent)
		}

		age := time.Since(d.Sessions.CreatedAt(r))
		d.Hub.Close(id)
		if err := d.Sessions.Clear(c.Response(), r); err != nil {
			slog.Warn("failed to clear editor session", "error", err)
		}
		slog.Info("editor closed", "session_age", age.Round(time.Second), "open_editors", d.Hub.Len())
		return c.NoContent(http.StatusNoContent)
	}
}
