package common

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestErrHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  *echo.HTTPError
		code int
		msg  string
	}{
		{"bad request", ErrBadRequest("bad"), http.StatusBadRequest, "bad"},
		{"not found", ErrNotFound("gone"), http.StatusNotFound, "gone"},
		{"conflict", ErrConflict("busy"), http.StatusConflict, "busy"},
		{"unavailable", ErrUnavailable("full"), http.StatusServiceUnavailable, "full"},
		{"internal", ErrInternal("oops"), http.StatusInternalServerError, "oops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.err.Code)
			require.Equal(t, tt.msg, tt.err.Message)
		})
	}
}
