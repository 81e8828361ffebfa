package common

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/internal/editorhub"
	"thirdcoast.systems/photoedit/cmd/web/session"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// RequireEditor returns the editor bound to the browser's session cookie,
// creating both when missing. Returns 503 when the hub is full.
func RequireEditor(c echo.Context, sm *session.Manager, hub *editorhub.Hub) (*photoedit.Editor, error) {
	id, err := sm.EditorID(c.Response(), c.Request())
	if err != nil {
		slog.Error("failed to save editor session", "error", err)
		return nil, ErrInternal("session error")
	}
	ed, err := hub.GetOrCreate(id)
	if err != nil {
		if errors.Is(err, editorhub.ErrTooManySessions) {
			slog.Warn("editor hub full", "sessions", hub.Len())
			return nil, ErrUnavailable("too many editors open, try again later")
		}
		return nil, ErrInternal("editor unavailable")
	}
	return ed, nil
}
