// Package session ties one editing session together: the loaded road network
// and waypoint table, the viewport fitted to them, the drag controller and
// the save path. It is the surface the window layer talks to.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"raceline-editor/internal/editor"
	"raceline-editor/internal/log"
	"raceline-editor/internal/persist"
	"raceline-editor/internal/raceline"
	"raceline-editor/internal/track"
	"raceline-editor/internal/viewport"
)

type Options struct {
	OSMPath string
	CSVPath string

	Width, Height int
	HitRadius     float64

	Picker      persist.Picker
	DefaultName string
}

type Session struct {
	ID      string
	Network *track.Network
	Table   *raceline.Table
	View    *viewport.Viewport
	Editor  *editor.Controller

	input *editor.Dispatcher
	saver *persist.Adapter
	log   log.Log

	lastSaved string
	lastErr   error
}

// Report is what headless mode prints.
type Report struct {
	WayCount   int
	PointCount int
}

func (r Report) String() string {
	return fmt.Sprintf("Loaded %d ways and %d race points", r.WayCount, r.PointCount)
}

// Load reads the road network and the waypoint table concurrently. Either
// both succeed or neither is returned.
func Load(ctx context.Context, osmPath, csvPath string) (*track.Network, *raceline.Table, error) {
	var (
		net   *track.Network
		table *raceline.Table
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := track.Load(osmPath)
		if err != nil {
			return err
		}
		net = n
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := raceline.Load(csvPath)
		if err != nil {
			return err
		}
		table = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return net, table, nil
}

// LoadAndReport loads both inputs without building any view state.
func LoadAndReport(ctx context.Context, osmPath, csvPath string) (Report, error) {
	net, table, err := Load(ctx, osmPath, csvPath)
	if err != nil {
		return Report{}, err
	}
	return Report{WayCount: len(net.Ways), PointCount: table.Len()}, nil
}

// Open loads the inputs named in opts and builds a session around them.
func Open(ctx context.Context, opts Options, logger log.Log) (*Session, error) {
	net, table, err := Load(ctx, opts.OSMPath, opts.CSVPath)
	if err != nil {
		return nil, err
	}
	return New(net, table, opts, logger)
}

// New builds a session from already loaded inputs. The viewport bounds are
// taken once here from every boundary point and every waypoint.
func New(net *track.Network, table *raceline.Table, opts Options, logger log.Log) (*Session, error) {
	id := uuid.NewString()
	logger = logger.With(log.String("session", id))

	b := Bounds(net, table)
	view, err := viewport.New(b, float64(opts.Width), float64(opts.Height))
	if err != nil {
		logger.Error("cannot fit view", log.String("bounds", b.String()), log.Err(err))
		return nil, err
	}

	picker := opts.Picker
	if picker == nil {
		picker = persist.FixedPath("")
	}
	ctrl := editor.New(table, view, logger)
	s := &Session{
		ID:      id,
		Network: net,
		Table:   table,
		View:    view,
		Editor:  ctrl,
		input:   editor.NewDispatcher(ctrl, opts.HitRadius),
		saver:   &persist.Adapter{Picker: picker, DefaultName: opts.DefaultName},
		log:     logger,
	}

	logger.Info("session opened",
		log.Int("ways", len(net.Ways)),
		log.Int("boundary_points", net.PointCount()),
		log.Int("waypoints", table.Len()),
		log.String("bounds", b.String()),
	)
	return s, nil
}

// Bounds returns the box around all boundary points and waypoints.
func Bounds(net *track.Network, table *raceline.Table) viewport.Bounds {
	b := viewport.EmptyBounds()
	if net != nil {
		net.EachPoint(b.Extend)
	}
	if table != nil {
		for _, p := range table.Positions() {
			b.Extend(p)
		}
	}
	return b
}

// OnResize records the new canvas size; transforms use it on the next query.
func (s *Session) OnResize(width, height int) error {
	w, h := s.View.Size()
	if float64(width) == w && float64(height) == h {
		return nil
	}
	if err := s.View.Resize(float64(width), float64(height)); err != nil {
		return err
	}
	s.Editor.Invalidate()
	s.log.Debug("resized", log.Int("width", width), log.Int("height", height))
	return nil
}

func (s *Session) OnPointerDown(x, y float64, hit int) error {
	return s.Editor.PointerDown(viewport.ScreenPoint{X: x, Y: y}, hit)
}

func (s *Session) OnPointerMove(x, y float64) error {
	return s.Editor.PointerMove(viewport.ScreenPoint{X: x, Y: y})
}

func (s *Session) OnPointerUp() {
	s.Editor.PointerUp()
}

// HandleInput feeds one frame of polled pointer state through hit testing
// and the drag controller.
func (s *Session) HandleInput(in editor.Input) error {
	return s.input.Handle(in)
}

// RequestSave writes the table to a destination chosen by the picker. A
// failure is returned and remembered for display; editing can continue.
func (s *Session) RequestSave() (string, error) {
	path, err := s.saver.Save(s.Table)
	s.lastErr = err
	if errors.Is(err, persist.ErrSaveCancelled) {
		s.log.Info("save cancelled")
		return "", err
	}
	if err != nil {
		s.log.Error("save failed", log.Err(err))
		return "", err
	}
	s.Table.MarkSaved()
	s.lastSaved = path
	s.log.Info("saved", log.String("path", path), log.Int("waypoints", s.Table.Len()))
	return path, nil
}

// Status summarises the session for the HUD.
type Status struct {
	Waypoints int
	Modified  bool
	Dragging  int
	LastSaved string
	LastError error
}

func (s *Session) Status() Status {
	idx, ok := s.Editor.Active()
	if !ok {
		idx = editor.NoHit
	}
	return Status{
		Waypoints: s.Table.Len(),
		Modified:  s.Table.Modified(),
		Dragging:  idx,
		LastSaved: s.lastSaved,
		LastError: s.lastErr,
	}
}
