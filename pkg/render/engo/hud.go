// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/engine"
)

// HUDSystem draws the overlay text: the current focus, the simulation
// clock, ship state, and the focus target list with its hotkeys.
type HUDSystem struct {
	renderSystem *common.RenderSystem

	lines      []*textLine
	lineHeight float32

	snapshot engine.Snapshot
	hasSnap  bool

	focusTargets []string
	assetStatus  string

	font *common.Font

	hudColor   color.Color
	focusColor color.Color
	dimColor   color.Color
}

// textLine is one reusable HUD text entity
type textLine struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	text common.Text
}

// NewHUDSystem creates the HUD bound to the given render system
func NewHUDSystem(renderSystem *common.RenderSystem, focusTargets []string) *HUDSystem {
	return &HUDSystem{
		renderSystem: renderSystem,
		lineHeight:   18,
		focusTargets: focusTargets,
		assetStatus:  "loading ship model",
		hudColor:     color.RGBA{230, 230, 230, 255},
		focusColor:   color.RGBA{255, 210, 80, 255},
		dimColor:     color.RGBA{150, 150, 150, 255},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for HUD system
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// Not used for HUD system
}

// Update redraws the overlay from the latest snapshot
func (hud *HUDSystem) Update(dt float32) {
	if !hud.hasSnap || hud.font == nil {
		return
	}
	snap := hud.snapshot

	row := 0
	hud.setLine(row, fmt.Sprintf("focus: %s", snap.FocusName), hud.focusColor)
	row++
	hud.setLine(row, fmt.Sprintf("t = %.1fs  tick %d", snap.Elapsed, snap.Tick), hud.hudColor)
	row++

	if snap.ShipReady {
		pose := snap.ShipPose
		hud.setLine(row, fmt.Sprintf("ship  yaw %+.2f  pitch %+.2f  roll %+.2f", pose.Yaw, pose.Pitch, pose.Roll), hud.hudColor)
	} else {
		hud.setLine(row, hud.assetStatus, hud.dimColor)
	}
	row++
	row++ // blank line before the target list

	for i, name := range hud.focusTargets {
		lineColor := hud.dimColor
		if name == snap.FocusName {
			lineColor = hud.focusColor
		}
		hud.setLine(row, fmt.Sprintf("%2d  %s", i+1, name), lineColor)
		row++
	}

	hud.hideLinesFrom(row)
}

// UpdateSnapshot hands the HUD the frame it should describe
func (hud *HUDSystem) UpdateSnapshot(snap engine.Snapshot) {
	hud.snapshot = snap
	hud.hasSnap = true
}

// SetAssetStatus sets the text shown while the ship model loads
func (hud *HUDSystem) SetAssetStatus(status string) {
	hud.assetStatus = status
}

// setLine writes text into the row's entity, growing the pool on demand
func (hud *HUDSystem) setLine(row int, text string, textColor color.Color) {
	for len(hud.lines) <= row {
		hud.lines = append(hud.lines, hud.newLine(len(hud.lines)))
	}

	line := hud.lines[row]
	line.text.Text = text
	line.RenderComponent.Drawable = line.text
	line.RenderComponent.Color = textColor
	line.RenderComponent.Hidden = false
}

// hideLinesFrom blanks unused rows left over from a longer frame
func (hud *HUDSystem) hideLinesFrom(row int) {
	for i := row; i < len(hud.lines); i++ {
		hud.lines[i].RenderComponent.Hidden = true
	}
}

// newLine allocates one camera-independent text entity
func (hud *HUDSystem) newLine(row int) *textLine {
	line := &textLine{BasicEntity: ecs.NewBasic()}
	line.text = common.Text{
		Font: hud.font,
		Text: "",
	}
	line.RenderComponent = common.RenderComponent{
		Drawable: line.text,
		Color:    hud.hudColor,
	}
	line.RenderComponent.SetZIndex(10)
	line.RenderComponent.SetShader(common.HUDShader)
	line.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: 12, Y: 12 + float32(row)*hud.lineHeight},
		Width:    400,
		Height:   hud.lineHeight,
	}

	hud.renderSystem.Add(&line.BasicEntity, &line.RenderComponent, &line.SpaceComponent)
	return line
}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
	for _, line := range hud.lines {
		line.text.Font = font
	}
}
