// Package ui is the ebiten window around a session: it polls the mouse and
// keyboard, forwards pointer state to the drag controller, and draws the
// road network, the racing line and its markers.
package ui

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raceline-editor/internal/config"
	"raceline-editor/internal/editor"
	"raceline-editor/internal/log"
	"raceline-editor/internal/persist"
	"raceline-editor/internal/session"
	"raceline-editor/internal/viewport"
)

var (
	ColorBackground = color.RGBA{255, 255, 255, 255}
	ColorWay        = color.RGBA{128, 128, 128, 255}
	ColorLine       = color.RGBA{255, 0, 0, 255}
	ColorMarker     = color.RGBA{0, 0, 255, 255}
	ColorActive     = color.RGBA{255, 140, 0, 255}
	ColorHUDText    = color.RGBA{0, 0, 0, 255}
	ColorHUDPanel   = color.RGBA{255, 255, 255, 200}
)

type Game struct {
	Session *session.Session
	Render  config.RenderConfig

	log   log.Log
	layer *ebiten.Image
}

func New(s *session.Session, render config.RenderConfig, logger log.Log) *Game {
	return &Game{Session: s, Render: render, log: logger}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	in := editor.Input{
		At:           viewport.ScreenPoint{X: float64(x), Y: float64(y)},
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	if err := g.Session.HandleInput(in); err != nil {
		g.log.Warn("pointer event rejected", log.Err(err))
	}

	if saveShortcut() {
		// Release any drag first; the dialog swallows the button-up event.
		g.Session.OnPointerUp()
		if _, err := g.Session.RequestSave(); err != nil && !errors.Is(err, persist.ErrSaveCancelled) {
			g.Session.Editor.Invalidate()
		}
	}
	return nil
}

func saveShortcut() bool {
	if !inpututil.IsKeyJustPressed(ebiten.KeyS) {
		return false
	}
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.layer == nil || g.layer.Bounds() != b {
		if g.layer != nil {
			g.layer.Deallocate()
		}
		g.layer = ebiten.NewImage(b.Dx(), b.Dy())
		g.Session.Editor.Invalidate()
	}

	if g.Session.Editor.NeedsRedraw() {
		g.drawScene(g.layer)
		g.Session.Editor.ClearRedraw()
	}
	screen.DrawImage(g.layer, nil)

	if g.Render.ShowHUD {
		drawHUD(screen, g.Session.Status())
	}
}

// Layout lets the canvas follow the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if err := g.Session.OnResize(outsideWidth, outsideHeight); err != nil {
		w, h := g.Session.View.Size()
		return int(w), int(h)
	}
	return outsideWidth, outsideHeight
}
