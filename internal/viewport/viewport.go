// Package viewport maps between world coordinates (meters, y up) and screen
// coordinates (pixels, origin top-left, y down). The world bounding box is
// fixed when the viewport is created; the canvas size follows resizes and the
// scale/offset pair is derived from it on every query.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"raceline-editor/internal/common"
)

// Margin is the fraction of the canvas the bounding box is fitted into.
const Margin = 0.9

var (
	ErrDegenerateBounds = errors.New("bounding box has zero width or height")
	ErrInvalidSize      = errors.New("canvas size must be positive")
)

// ScreenPoint is a position on the canvas in pixels.
type ScreenPoint struct {
	X, Y float64
}

// Bounds is an axis-aligned world bounding box.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// EmptyBounds returns a box that any Extend call replaces.
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}

// Extend grows b to include p.
func (b *Bounds) Extend(p common.Vec2) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Span returns the width and height of the box.
func (b Bounds) Span() (float64, float64) {
	return b.MaxX - b.MinX, b.MaxY - b.MinY
}

// Degenerate reports whether the box cannot be fitted to a canvas: empty,
// flat along an axis, or not finite.
func (b Bounds) Degenerate() bool {
	spanX, spanY := b.Span()
	return !(spanX > 0) || !(spanY > 0) || math.IsInf(spanX, 0) || math.IsInf(spanY, 0)
}

// Corners returns the four corners of the box.
func (b Bounds) Corners() [4]common.Vec2 {
	return [4]common.Vec2{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// Viewport holds the fixed world bounds and the current canvas size.
type Viewport struct {
	bounds        Bounds
	width, height float64
}

// New creates a viewport for bounds on a width x height canvas.
func New(bounds Bounds, width, height float64) (*Viewport, error) {
	if bounds.Degenerate() {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateBounds, bounds)
	}
	v := &Viewport{bounds: bounds}
	if err := v.Resize(width, height); err != nil {
		return nil, err
	}
	return v, nil
}

// Resize records a new canvas size. Transforms pick it up on the next query.
// A non-positive size is rejected and the previous size is kept.
func (v *Viewport) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	v.width, v.height = width, height
	return nil
}

// Size returns the current canvas size.
func (v *Viewport) Size() (float64, float64) {
	return v.width, v.height
}

// Bounds returns the world bounding box fixed at creation.
func (v *Viewport) Bounds() Bounds {
	return v.bounds
}

// Transform derives the scale and offsets for the current canvas size.
func (v *Viewport) Transform() Transform {
	b := v.bounds
	spanX, spanY := b.Span()
	scale := Margin * math.Min(v.width/spanX, v.height/spanY)
	return Transform{
		Scale:   scale,
		OffsetX: (v.width-spanX*scale)/2 - b.MinX*scale,
		// minY lands on the lower margin line, maxY on the upper one.
		OffsetY: v.height - (v.height-spanY*scale)/2 + b.MinY*scale,
	}
}

// WorldToScreen maps a world point to the canvas. Points outside the bounds
// are not clamped.
func (v *Viewport) WorldToScreen(p common.Vec2) ScreenPoint {
	return v.Transform().Forward(p)
}

// ScreenToWorld maps a canvas position back to world coordinates.
func (v *Viewport) ScreenToWorld(s ScreenPoint) common.Vec2 {
	return v.Transform().Inverse(s)
}

// Transform is one scale/offset snapshot. Forward and Inverse of the same
// snapshot are exact inverses up to floating-point rounding; mixing snapshots
// taken at different canvas sizes is not.
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

func (t Transform) Forward(p common.Vec2) ScreenPoint {
	return ScreenPoint{
		X: p.X*t.Scale + t.OffsetX,
		Y: -p.Y*t.Scale + t.OffsetY,
	}
}

func (t Transform) Inverse(s ScreenPoint) common.Vec2 {
	return common.Vec2{
		X: (s.X - t.OffsetX) / t.Scale,
		Y: -(s.Y - t.OffsetY) / t.Scale,
	}
}
