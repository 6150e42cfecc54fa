// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// TerminalRenderer draws a top-down view of the scene into a tcell
// screen: the orbit plane projected onto the terminal grid, one colored
// glyph per body, centered on the camera pose from the snapshot.
type TerminalRenderer struct {
	screen tcell.Screen
	scale  float64 // world units per cell
	center physics.Vector3
}

// NewTerminalRenderer creates a renderer over an initialized tcell
// screen. Pass a tcell.SimulationScreen in tests.
func NewTerminalRenderer(screen tcell.Screen, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 4
	}
	return &TerminalRenderer{
		screen: screen,
		scale:  scale,
	}
}

// SetCenter sets the world position mapped to the middle of the screen
func (r *TerminalRenderer) SetCenter(pos physics.Vector3) {
	r.center = pos
}

// worldToScreen converts world coordinates to screen cell coordinates.
// Terminal cells are about twice as tall as wide, so X is stretched to
// keep orbits round.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector3) (int, int) {
	width, height := r.screen.Size()
	screenX := int((pos.X-r.center.X)/r.scale*2) + width/2
	screenY := int((pos.Z-r.center.Z)/r.scale) + height/2
	return screenX, screenY
}

// Clear wipes the screen buffer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present flushes the frame to the terminal
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderFrame draws one snapshot: orbit rings, bodies, the ship and the
// status line.
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot) {
	r.SetCenter(snap.Camera.Position)
	r.Clear()

	for _, body := range snap.Bodies {
		r.drawOrbitRing(body)
	}
	for _, body := range snap.Bodies {
		r.drawBody(body)
	}
	if snap.ShipReady {
		r.drawShip(snap)
	}
	r.drawStatusBar(snap)

	r.Present()
}

// drawOrbitRing traces the body's orbit circle in a dim style
func (r *TerminalRenderer) drawOrbitRing(body engine.BodyTransform) {
	if body.OrbitRadius <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)

	// Step count proportional to the projected circumference keeps the
	// ring solid without overdrawing small orbits.
	steps := int(body.OrbitRadius / r.scale * 16)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		point := physics.Vector3{
			X: body.OrbitRadius * math.Sin(angle),
			Z: body.OrbitRadius * math.Cos(angle),
		}
		x, y := r.worldToScreen(point)
		r.setContentInBounds(x, y, '·', style)
	}
}

// drawBody draws one celestial body glyph
func (r *TerminalRenderer) drawBody(body engine.BodyTransform) {
	x, y := r.worldToScreen(body.Position)

	glyph := 'o'
	if body.Kind == entity.Star {
		glyph = '@'
	} else if body.DisplayRadius >= 6 {
		glyph = 'O'
	}

	style := tcell.StyleDefault.Foreground(tcell.GetColor(body.Color))
	if body.Emissive {
		style = style.Bold(true)
	}
	r.setContentInBounds(x, y, glyph, style)

	// Label to the right of the glyph.
	for i, ch := range body.Name {
		r.setContentInBounds(x+2+i, y, ch, tcell.StyleDefault.Dim(true))
	}
}

// drawShip draws the ship glyph oriented by yaw quadrant
func (r *TerminalRenderer) drawShip(snap engine.Snapshot) {
	x, y := r.worldToScreen(snap.ShipPose.Position)

	glyphs := [...]rune{'^', '<', 'v', '>'}
	quadrant := int((snap.ShipPose.Yaw+math.Pi/4)/(math.Pi/2)+4) % 4
	if quadrant < 0 {
		quadrant += 4
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	r.setContentInBounds(x, y, glyphs[quadrant], style)
}

// drawStatusBar writes the focus and tick readout on the last row
func (r *TerminalRenderer) drawStatusBar(snap engine.Snapshot) {
	_, height := r.screen.Size()
	text := fmt.Sprintf(" focus: %s | tick: %d | t=%.1fs ", snap.FocusName, snap.Tick, snap.Elapsed)

	style := tcell.StyleDefault.Reverse(true)
	for i, ch := range text {
		r.setContentInBounds(i, height-1, ch, style)
	}
}

// setContentInBounds writes one cell, dropping anything off-screen
func (r *TerminalRenderer) setContentInBounds(x, y int, ch rune, style tcell.Style) {
	width, height := r.screen.Size()
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}
