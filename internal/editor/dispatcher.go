package editor

import "raceline-editor/internal/viewport"

// Input is one frame's worth of primary-button pointer state.
type Input struct {
	At           viewport.ScreenPoint
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

// Dispatcher turns polled pointer state into controller events. It resolves
// the marker under the pointer at press time, so no per-marker handlers exist.
type Dispatcher struct {
	ctrl      *Controller
	hitRadius float64
	last      viewport.ScreenPoint
}

func NewDispatcher(ctrl *Controller, hitRadius float64) *Dispatcher {
	return &Dispatcher{ctrl: ctrl, hitRadius: hitRadius}
}

// Handle applies one frame of input. Moves are only forwarded when the
// pointer changed position since the previous frame while the button was
// held. A press and release reported in the same frame is a click.
func (d *Dispatcher) Handle(in Input) error {
	defer func() { d.last = in.At }()

	if in.JustPressed {
		hit := d.ctrl.HitTest(in.At, d.hitRadius)
		if err := d.ctrl.PointerDown(in.At, hit); err != nil {
			return err
		}
	} else if (in.Pressed || in.JustReleased) && in.At != d.last {
		if err := d.ctrl.PointerMove(in.At); err != nil {
			return err
		}
	}

	if in.JustReleased {
		d.ctrl.PointerUp()
	}
	return nil
}
