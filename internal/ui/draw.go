package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"raceline-editor/internal/common"
	"raceline-editor/internal/session"
	"raceline-editor/internal/viewport"
)

// drawScene renders everything that depends on the table or the canvas size.
// One transform snapshot is used for the whole pass.
func (g *Game) drawScene(dst *ebiten.Image) {
	dst.Fill(ColorBackground)
	tr := g.Session.View.Transform()

	for _, way := range g.Session.Network.Ways {
		strokePolyline(dst, tr, way.Points, 1, ColorWay)
	}

	points := g.Session.Table.Positions()
	strokePolyline(dst, tr, points, float32(g.Render.LineWidth), ColorLine)

	active, dragging := g.Session.Editor.Active()
	r := float32(g.Render.MarkerRadius)
	for i, p := range points {
		s := tr.Forward(p)
		if dragging && i == active {
			vector.FillCircle(dst, float32(s.X), float32(s.Y), r*1.6, ColorActive, true)
			continue
		}
		vector.FillCircle(dst, float32(s.X), float32(s.Y), r, ColorMarker, true)
	}
}

func strokePolyline(dst *ebiten.Image, tr viewport.Transform, pts []common.Vec2, width float32, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	prev := tr.Forward(pts[0])
	for _, p := range pts[1:] {
		next := tr.Forward(p)
		vector.StrokeLine(dst, float32(prev.X), float32(prev.Y), float32(next.X), float32(next.Y), width, clr, true)
		prev = next
	}
}

func hudText(st session.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Waypoints: %d\n", st.Waypoints)
	if st.Dragging >= 0 {
		fmt.Fprintf(&sb, "Dragging:  #%d\n", st.Dragging)
	}
	if st.Modified {
		sb.WriteString("Unsaved changes\n")
	}
	if st.LastError != nil {
		fmt.Fprintf(&sb, "Save failed: %v\n", st.LastError)
	} else if st.LastSaved != "" {
		fmt.Fprintf(&sb, "Saved to %s\n", filepath.Base(st.LastSaved))
	}
	sb.WriteString("Ctrl+S save  Esc quit")
	return sb.String()
}

func drawHUD(screen *ebiten.Image, st session.Status) {
	msg := hudText(st)
	bounds := text.BoundString(basicfont.Face7x13, msg)
	vector.FillRect(screen, 0, 0, float32(bounds.Dx()+16), float32(bounds.Dy()+16), ColorHUDPanel, false)
	text.Draw(screen, msg, basicfont.Face7x13, 8, 8-bounds.Min.Y, ColorHUDText)
}
