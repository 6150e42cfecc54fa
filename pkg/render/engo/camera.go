// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

// CameraSystem drives the viewport. It tracks whatever the simulation
// says is in focus: the ship pivot follows with no lag, a focused body
// eases in at the configured follow speed, and free focus leaves the
// camera where it is.
type CameraSystem struct {
	target    physics.Vector3
	targetSet bool
	immediate bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float32

	currentPos physics.Vector3
}

// NewCameraSystem creates a camera with the given follow speed
func NewCameraSystem(followSpeed float64) *CameraSystem {
	if followSpeed <= 0 {
		followSpeed = 2.0
	}
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.2,
		maxZoom:     4.0,
		followSpeed: float32(followSpeed),
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for camera system
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {
	// Not used for camera system
}

// Update moves the camera toward its target and applies zoom input
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}

	cs.applyCameraTransform()
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetZoom(cs.zoom * float32(1.0+scrollY*0.1))
	}

	if engo.Input.Button("zoomIn").Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button("zoomOut").Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button("resetZoom").JustPressed() {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the target. The ship
// pivot copies its target exactly so the ship never drifts on screen.
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if cs.immediate {
		cs.currentPos = cs.target
		return
	}

	delta := cs.target.Sub(cs.currentPos)
	cs.currentPos = cs.currentPos.Add(delta.Scale(float64(cs.followSpeed) * float64(dt)))
}

// applyCameraTransform pushes the camera state into engo's viewport
func (cs *CameraSystem) applyCameraTransform() {
	screen := worldToScreen(cs.currentPos)

	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:  common.XAxis,
		Value: screen.X,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:  common.YAxis,
		Value: screen.Y,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:  common.ZAxis,
		Value: cs.zoom,
	})
}

// FollowImmediate locks the camera onto a target with no smoothing
func (cs *CameraSystem) FollowImmediate(target physics.Vector3) {
	cs.target = target
	cs.targetSet = true
	cs.immediate = true
}

// FollowSmooth eases the camera toward a target at the follow speed
func (cs *CameraSystem) FollowSmooth(target physics.Vector3) {
	// First target snaps so the scene does not sweep in from the origin.
	if !cs.targetSet {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
	cs.immediate = false
}

// ClearTarget releases the camera for free viewing
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector3 {
	return cs.currentPos
}

// SetupCameraControls registers the camera key bindings
func SetupCameraControls() {
	engo.Input.RegisterButton("zoomIn", engo.KeyNumAdd, engo.KeyE)
	engo.Input.RegisterButton("zoomOut", engo.KeyNumSubtract, engo.KeyQ)
	engo.Input.RegisterButton("resetZoom", engo.KeyR)
}
