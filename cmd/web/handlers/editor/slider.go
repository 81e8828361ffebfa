package editor

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/photoedit/cmd/web/handlers/common"
)

// sliderNumber accepts the slider value as a JSON number or numeric string;
// range inputs report strings until the signal has been coerced.
type sliderNumber float64

func (n *sliderNumber) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("slider value: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("slider value: %s is not finite", b)
	}
	*n = sliderNumber(v)
	return nil
}

type sliderSignals struct {
	SliderValue *sliderNumber `json:"sliderValue"`
}

// HandleSlider writes the slider value into the active filter and restyles
// the preview.
func HandleSlider(d *Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		// ReadSignals MUST happen BEFORE NewSSE.
		signals := &sliderSignals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			slog.Warn("failed to read slider signals", "error", err)
			return common.ErrBadRequest("invalid slider value")
		}
		if signals.SliderValue == nil {
			return common.ErrBadRequest("missing slider value")
		}

		ed, err := d.editor(c)
		if err != nil {
			return err
		}
		ed.AdjustSlider(float64(*signals.SliderValue))

		sse := common.NewSSE(c)

		v := d.view(ed.Snapshot(), "")
		patchPreview(sse, v)
		patchReadout(sse, v)
		return nil
	}
}
