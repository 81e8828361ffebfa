package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
	"thirdcoast.systems/photoedit/pkg/blobstore"
	"thirdcoast.systems/photoedit/pkg/imagefile"
	"thirdcoast.systems/photoedit/pkg/photoedit"
)

// HandleLoadImage accepts the picked file, decodes it and installs it in the
// editor. A request without a file does nothing. Rejected files are reported
// in the panel's error banner; the current image stays.
func HandleLoadImage(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		ed, err := d.editor(c)
		if err != nil {
			return err
		}

		// The multipart body must be consumed before NewSSE flushes headers.
		name, data, err := d.readUpload(c)
		if errors.Is(err, http.ErrMissingFile) {
			common.NewSSE(c)
			return nil
		}

		tok := ed.BeginLoad()
		var img *photoedit.Image
		if err == nil {
			img, err = d.decode(name, data)
		}

		sse := common.NewSSE(c)
		if err != nil {
			slog.Warn("image rejected", "name", name, "bytes", len(data), "error", err)
			patchPanel(sse, d.view(ed.Snapshot(), loadErrorMessage(err)))
			return nil
		}

		if _, err := ed.CompleteLoad(tok, img); err != nil {
			if errors.Is(err, photoedit.ErrStaleLoad) {
				slog.Debug("discarded superseded image load", "name", name)
				return nil
			}
			return err
		}

		snap := ed.Snapshot()
		v := d.view(snap, "")
		patchPreview(sse, v)
		patchPanel(sse, v)
		patchSlider(sse, snap)
		return nil
	}
}

var errTooLarge = errors.New("file too large")

func (d *Deps) readUpload(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, http.ErrMissingFile
		}
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if d.MaxUploadBytes > 0 && fh.Size > d.MaxUploadBytes {
		return fh.Filename, nil, fmt.Errorf("%w: %s exceeds %s", errTooLarge,
			humanize.Bytes(uint64(fh.Size)), humanize.Bytes(uint64(d.MaxUploadBytes)))
	}

	f, err := fh.Open()
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fh.Filename, nil, fmt.Errorf("read upload: %w", err)
	}
	return fh.Filename, data, nil
}

// decode turns the upload into an editor image backed by a blob reference.
// The reference is revoked when the editor releases the image.
func (d *Deps) decode(name string, data []byte) (*photoedit.Image, error) {
	file, err := imagefile.Decode(name, data)
	if err != nil {
		return nil, err
	}

	ref, err := d.Blobs.Create(file.Data, file.MIME)
	if err != nil {
		if errors.Is(err, blobstore.ErrStoreFull) {
			slog.Warn("blob store full", "in_use", humanize.IBytes(uint64(d.Blobs.Bytes())), "open_editors", d.Hub.Len())
		}
		return nil, err
	}

	return &photoedit.Image{
		Pixels:  file.Pixels,
		Width:   file.Width,
		Height:  file.Height,
		Name:    file.Name,
		MIME:    file.MIME,
		Size:    file.Size,
		URL:     ref.URL(),
		Release: func() { d.Blobs.Revoke(ref) },
	}, nil
}

func loadErrorMessage(err error) string {
	switch {
	case errors.Is(err, imagefile.ErrNotImage):
		return "That file is not an image."
	case errors.Is(err, imagefile.ErrEmpty):
		return "That image is empty."
	case errors.Is(err, imagefile.ErrDecode):
		return "That image could not be read. It may be damaged or in an unsupported format."
	case errors.Is(err, errTooLarge):
		return "That image is too large."
	case errors.Is(err, blobstore.ErrStoreFull):
		return "The server is busy. Try again in a few minutes."
	default:
		return "The image could not be loaded."
	}
}
