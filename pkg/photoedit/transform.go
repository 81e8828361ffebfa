package photoedit

import (
	"errors"
	"fmt"
	"strings"
)

// TransformAction is one of the four geometric buttons.
type TransformAction string

const (
	RotateLeft     TransformAction = "left"
	RotateRight    TransformAction = "right"
	FlipHorizontal TransformAction = "horizontal"
	FlipVertical   TransformAction = "vertical"
)

// ErrUnknownAction is returned for a transform action outside the fixed set.
var ErrUnknownAction = errors.New("unknown transform action")

// TransformActions lists the actions in button order.
var TransformActions = []TransformAction{RotateLeft, RotateRight, FlipHorizontal, FlipVertical}

// ParseTransformAction validates an action name.
func ParseTransformAction(s string) (TransformAction, error) {
	a := TransformAction(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case RotateLeft, RotateRight, FlipHorizontal, FlipVertical:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Icon returns the glyph shown on the action's button.
func (a TransformAction) Icon() string {
	switch a {
	case RotateLeft:
		return "↺"
	case RotateRight:
		return "↻"
	case FlipHorizontal:
		return "↔"
	case FlipVertical:
		return "↕"
	default:
		return "?"
	}
}

// TransformState holds the geometric adjustment parameters.
//
// Rotation is kept as a count of clockwise quarter turns in [0, 4) and only
// mapped to degrees when rendering.
type TransformState struct {
	QuarterTurns   int     `json:"quarterTurns"`
	FlipHorizontal float64 `json:"flipHorizontal"`
	FlipVertical   float64 `json:"flipVertical"`
}

// DefaultTransformState returns rotate=0, flipHorizontal=1, flipVertical=1.
func DefaultTransformState() TransformState {
	return TransformState{QuarterTurns: 0, FlipHorizontal: 1, FlipVertical: 1}
}

// Degrees returns the rotation in degrees, one of 0, 90, 180, 270.
func (t TransformState) Degrees() int {
	return normalizeTurns(t.QuarterTurns) * 90
}

// Apply returns t with action applied.
func (t TransformState) Apply(action TransformAction) (TransformState, error) {
	switch action {
	case RotateLeft:
		t.QuarterTurns = normalizeTurns(t.QuarterTurns - 1)
	case RotateRight:
		t.QuarterTurns = normalizeTurns(t.QuarterTurns + 1)
	case FlipHorizontal:
		t.FlipHorizontal = -sign(t.FlipHorizontal)
	case FlipVertical:
		t.FlipVertical = -sign(t.FlipVertical)
	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return t, nil
}

func normalizeTurns(n int) int {
	n %= 4
	if n < 0 {
		n += 4
	}
	return n
}

// sign maps anything that is not negative to 1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
