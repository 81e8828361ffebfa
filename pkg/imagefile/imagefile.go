// Package imagefile validates and decodes user-selected image files.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
	"thirdcoast.systems/photoedit/pkg/utils/filename"
)

var (
	ErrEmpty    = errors.New("empty image")
	ErrNotImage = errors.New("file is not an image")
	ErrDecode   = errors.New("image could not be decoded")
)

// maxNameLen bounds the sanitized original filename.
const maxNameLen = 120

// Image is a decoded file together with the bytes it was decoded from.
type Image struct {
	Pixels image.Image
	Width  int
	Height int
	MIME   string
	Name   string
	Size   int64
	Data   []byte
}

// Sniff returns the media type of data. Only image/* types are accepted.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// Decode sniffs and decodes data. name is the client-supplied filename and is
// only kept, sanitized, for display.
func Decode(name string, data []byte) (*Image, error) {
	mime, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrDecode, mime, err)
	}

	b := pixels.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmpty
	}

	return &Image{
		Pixels: pixels,
		Width:  b.Dx(),
		Height: b.Dy(),
		MIME:   mime,
		Name:   DisplayName(name, format),
		Size:   int64(len(data)),
		Data:   data,
	}, nil
}

// DisplayName sanitizes a client filename. Empty names fall back to
// "image.<format>".
func DisplayName(name, format string) string {
	if s := filename.Sanitize(name, maxNameLen); s != "" {
		return s
	}
	if format == "" {
		format = "img"
	}
	return "image." + format
}
