package editor

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/pkg/blobstore"
)

// HandleBlob serves a temporary image reference to the preview element.
func HandleBlob(blobs *blobstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := blobs.Lookup(c.Param("id"))
		if err != nil {
			return common.ErrNotFound("blob not found")
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=3600, immutable")
		return c.Blob(http.StatusOK, b.MIME, b.Data)
	}
}
