package common

import (
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
)

// NewSSE opens the datastar event stream for c. Anything that reads the
// request body (signals, multipart uploads) must run first.
func NewSSE(c echo.Context) *datastar.ServerSentEventGenerator {
	// Proxies such as nginx would otherwise hold patches until the response ends.
	c.Response().Header().Set("X-Accel-Buffering", "no")
	return datastar.NewSSE(c.Response().Writer, c.Request())
}
