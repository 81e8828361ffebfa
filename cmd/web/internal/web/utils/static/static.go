package static

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/photoedit/static"
)

// servedDirs are the embedded directories reachable over HTTP. Everything
// else in the embed (help text) is rendered server-side only.
var servedDirs = []string{"dist/", "img/"}

// CachedFileInfo holds metadata for a static file used in HTTP cache headers.
type CachedFileInfo struct {
	ETag         string
	Size         int64
	LastModified time.Time
}

// StaticCache holds ETag and Last-Modified metadata for the embedded assets.
// Entries are computed once at startup and never change.
type StaticCache struct {
	entries map[string]CachedFileInfo
	fs      fs.FS
}

// NewStaticCache scans the embedded filesystem and computes ETag and Last-Modified for each file.
func NewStaticCache() (*StaticCache, error) {
	return newStaticCache(static.FS)
}

func newStaticCache(fsys fs.FS) (*StaticCache, error) {
	c := &StaticCache{
		entries: make(map[string]CachedFileInfo),
		fs:      fsys,
	}

	// embed.FS reports a zero ModTime; use process start instead.
	started := time.Now().UTC().Truncate(time.Second)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !served(path) {
			return err
		}
		f, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return err
		}
		modTime := info.ModTime()
		if modTime.IsZero() {
			modTime = started
		}

		c.entries[path] = CachedFileInfo{
			ETag:         fmt.Sprintf("\"%x\"", h.Sum(nil)),
			Size:         info.Size(),
			LastModified: modTime,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func served(path string) bool {
	for _, dir := range servedDirs {
		if strings.HasPrefix(path, dir) {
			return true
		}
	}
	return false
}

func cacheControl(path string) string {
	ext := filepath.Ext(path)

	// dist/ assets are not fingerprinted; long-lived caching would serve stale JS/CSS.
	if strings.HasPrefix(path, "dist/") && (ext == ".css" || ext == ".js") {
		return "no-cache, must-revalidate"
	}
	switch ext {
	case ".css", ".js":
		return "public, max-age=86400, stale-while-revalidate=3600" // 1 day
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico":
		return "public, max-age=31536000, stale-while-revalidate=86400" // 1 year
	default:
		return "public, max-age=3600, stale-while-revalidate=300" // 1 hour
	}
}

// ServeStaticFile serves embedded assets under prefix with cache validators.
func (s *StaticCache) ServeStaticFile(prefix string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := strings.TrimPrefix(c.Request().URL.Path, prefix)

		ci, ok := s.entries[path]
		if !ok {
			return echo.ErrNotFound
		}

		// If client has up-to-date version, return 304
		if inm := c.Request().Header.Get("If-None-Match"); inm != "" && inm == ci.ETag {
			return c.NoContent(http.StatusNotModified)
		}
		if ims := c.Request().Header.Get(echo.HeaderIfModifiedSince); ims != "" {
			if t, err := http.ParseTime(ims); err == nil && !ci.LastModified.After(t) {
				return c.NoContent(http.StatusNotModified)
			}
		}

		f, err := s.fs.Open(path)
		if err != nil {
			return echo.ErrNotFound
		}
		defer f.Close()

		h := c.Response().Header()
		h.Set(echo.HeaderCacheControl, cacheControl(path))
		h.Set("ETag", ci.ETag)
		h.Set(echo.HeaderLastModified, ci.LastModified.Format(http.TimeFormat))

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		return c.Stream(http.StatusOK, contentType, f)
	}
}
