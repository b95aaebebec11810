// Package editor implements the drag-edit state machine that moves racing
// line waypoints in response to pointer events.
package editor

import (
	"errors"
	"fmt"

	"raceline-editor/internal/common"
	"raceline-editor/internal/log"
	"raceline-editor/internal/viewport"
)

// NoHit is passed to PointerDown when the press did not land on a marker.
const NoHit = -1

var ErrIndexOutOfRange = errors.New("marker index out of range")

// Mapper converts between world and screen coordinates.
type Mapper interface {
	WorldToScreen(p common.Vec2) viewport.ScreenPoint
	ScreenToWorld(s viewport.ScreenPoint) common.Vec2
}

// Points is the mutable view of the waypoint table the controller edits.
type Points interface {
	Len() int
	Position(i int) (common.Vec2, error)
	SetPosition(i int, p common.Vec2) error
}

type State uint8

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Controller tracks the seized waypoint, if any, and writes pointer motion
// back into the table. It is not safe for concurrent use; all calls are
// expected from the single input/render loop.
type Controller struct {
	points Points
	view   Mapper
	log    log.Log

	active int
	redraw bool
}

func New(points Points, view Mapper, logger log.Log) *Controller {
	return &Controller{
		points: points,
		view:   view,
		log:    logger,
		active: NoHit,
		redraw: true,
	}
}

func (c *Controller) State() State {
	if c.active == NoHit {
		return Idle
	}
	return Dragging
}

// Active returns the index being dragged.
func (c *Controller) Active() (int, bool) {
	return c.active, c.active != NoHit
}

// PointerDown starts dragging marker hit. A drag already in progress is ended
// first so only one record can follow the pointer. A press with NoHit leaves
// the state untouched.
func (c *Controller) PointerDown(at viewport.ScreenPoint, hit int) error {
	if hit == NoHit {
		return nil
	}
	if hit < 0 || hit >= c.points.Len() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, hit)
	}
	if c.active != NoHit {
		c.PointerUp()
	}
	c.active = hit
	c.redraw = true
	c.log.Debug("drag started",
		log.Int("index", hit),
		log.Float64("screen_x", at.X),
		log.Float64("screen_y", at.Y),
	)
	return nil
}

// PointerMove moves the dragged record to the world position under the
// pointer. Without an active drag it does nothing.
func (c *Controller) PointerMove(at viewport.ScreenPoint) error {
	if c.active == NoHit {
		return nil
	}
	p := c.view.ScreenToWorld(at)
	if err := c.points.SetPosition(c.active, p); err != nil {
		return fmt.Errorf("move waypoint %d: %w", c.active, err)
	}
	c.redraw = true
	return nil
}

// PointerUp ends the drag. The last PointerMove already holds the final value.
func (c *Controller) PointerUp() {
	if c.active == NoHit {
		return
	}
	p, _ := c.points.Position(c.active)
	c.log.Debug("drag ended",
		log.Int("index", c.active),
		log.Float64("x", p.X),
		log.Float64("y", p.Y),
	)
	c.active = NoHit
	c.redraw = true
}

// HitTest returns the marker under at within radius pixels, or NoHit.
func (c *Controller) HitTest(at viewport.ScreenPoint, radius float64) int {
	markers := make([]viewport.ScreenPoint, c.points.Len())
	for i := range markers {
		p, _ := c.points.Position(i)
		markers[i] = c.view.WorldToScreen(p)
	}
	return Nearest(markers, at, radius)
}

// Invalidate requests a redraw without a state change, e.g. after a resize.
func (c *Controller) Invalidate() {
	c.redraw = true
}

// NeedsRedraw reports whether anything changed since the last ClearRedraw.
func (c *Controller) NeedsRedraw() bool {
	return c.redraw
}

func (c *Controller) ClearRedraw() {
	c.redraw = false
}
