package web

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/photoedit/cmd/web/handlers/editor"
	"thirdcoast.systems/photoedit/cmd/web/internal/editorhub"
	staticpkg "thirdcoast.systems/photoedit/cmd/web/internal/web/utils/static"
	"thirdcoast.systems/photoedit/cmd/web/session"
	"thirdcoast.systems/photoedit/internal/config"
	"thirdcoast.systems/photoedit/pkg/blobstore"
	"thirdcoast.systems/photoedit/pkg/utils/markdown"
	"thirdcoast.systems/photoedit/static"
)

// How often idle editor sessions are swept.
const hubJanitorInterval = time.Minute

type Webserver struct {
	*echo.Echo
	conf           *config.Config
	sessionManager *session.Manager
	staticCache    *staticpkg.StaticCache
	editorHub      *editorhub.Hub
	blobs          *blobstore.Store
	editorDeps     *editor.Deps
	bodyLimit      int64
}

// NewWebserver builds the server. The editor hub's janitor runs until ctx
// is cancelled, at which point every open editor is closed.
func NewWebserver(ctx context.Context, conf *config.Config, sessionManager *session.Manager) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache()
	if err != nil {
		return nil, err
	}

	uploadBytes, err := conf.MaxUploadBytes()
	if err != nil {
		return nil, err
	}
	blobBytes, err := conf.BlobStoreBytes()
	if err != nil {
		return nil, err
	}

	help, err := markdown.Load(static.FS, "help/editor.md")
	if err != nil {
		return nil, fmt.Errorf("load help: %w", err)
	}

	hub := editorhub.NewHub(conf.MaxEditorSessions, conf.EditorIdleTimeout)
	blobs := blobstore.New(blobBytes)

	webserver := &Webserver{
		Echo:           e,
		conf:           conf,
		sessionManager: sessionManager,
		staticCache:    staticCache,
		editorHub:      hub,
		blobs:          blobs,
		// Multipart framing on top of the file itself.
		bodyLimit: uploadBytes + 64<<10,
		editorDeps: &editor.Deps{
			Sessions:           sessionManager,
			Hub:                hub,
			Blobs:              blobs,
			Help:               help,
			DisableContextMenu: conf.DisableContextMenu,
			MaxUploadBytes:     uploadBytes,
		},
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	go hub.Run(ctx, hubJanitorInterval)

	return webserver, nil
}

// noGzip lists routes whose bodies are already compressed images.
var noGzip = map[string]bool{
	"/api/editor/export": true,
	"/blobs/:id":         true,
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit(strconv.FormatInt(s.bodyLimit, 10)))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return noGzip[c.Path()]
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/api/editor/slider", "/healthz":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	d := s.editorDeps

	apiGroup := s.Group("/api/editor")
	apiGroup.POST("/image", editor.HandleLoadImage(d))
	apiGroup.POST("/filters/:name", editor.HandleSelectFilter(d))
	apiGroup.POST("/slider", editor.HandleSlider(d))
	apiGroup.POST("/transforms/:action", editor.HandleTransform(d))
	apiGroup.POST("/reset", editor.HandleReset(d))
	apiGroup.GET("/export", editor.HandleExport(d))
	apiGroup.POST("/close", editor.HandleClose(d))

	// Temporary image references for the live preview
	s.GET("/blobs/:id", editor.HandleBlob(s.blobs))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	s.GET("/", editor.HandlePage(d))

	return nil
}
