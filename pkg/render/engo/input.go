// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
)

// InputSystem polls engo's buttons each frame and forwards the flags
// to the simulation. The simulation decides whether flight keys apply;
// this system only reports what is held.
type InputSystem struct {
	sim *engine.Simulation

	// Names of focusable targets in hotkey order: "Ship" first, then the
	// bodies sunward out.
	focusTargets []string
	focusIndex   int
}

// NewInputSystem creates an input system driving the given simulation
func NewInputSystem(sim *engine.Simulation, focusTargets []string) *InputSystem {
	return &InputSystem{
		sim:          sim,
		focusTargets: focusTargets,
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for input system
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update polls input state once per frame
func (is *InputSystem) Update(dt float32) {
	is.handleFlightInput()
	is.handleFocusInput()
}

// handleFlightInput forwards the held flight keys to the simulation
func (is *InputSystem) handleFlightInput() {
	is.sim.SetShipInput(entity.Forward, engo.Input.Button("pitchDown").Down())
	is.sim.SetShipInput(entity.Backward, engo.Input.Button("pitchUp").Down())
	is.sim.SetShipInput(entity.YawLeft, engo.Input.Button("yawLeft").Down())
	is.sim.SetShipInput(entity.YawRight, engo.Input.Button("yawRight").Down())
}

// handleFocusInput processes focus switching hotkeys
func (is *InputSystem) handleFocusInput() {
	if engo.Input.Button("focusNext").JustPressed() {
		is.cycleFocus(1)
	}
	if engo.Input.Button("focusPrev").JustPressed() {
		is.cycleFocus(-1)
	}
	if engo.Input.Button("focusShip").JustPressed() {
		is.setFocusByName("Ship")
	}
	if engo.Input.Button("focusFree").JustPressed() {
		is.setFocusByName("Free")
	}
}

// cycleFocus steps through the focus target list
func (is *InputSystem) cycleFocus(step int) {
	if len(is.focusTargets) == 0 {
		return
	}

	is.focusIndex = (is.focusIndex + step + len(is.focusTargets)) % len(is.focusTargets)
	is.setFocusByName(is.focusTargets[is.focusIndex])
}

// setFocusByName asks the simulation to switch focus, syncing the
// cycle index when the name is in the target list.
func (is *InputSystem) setFocusByName(name string) {
	if !is.sim.SetFocusByName(name) {
		return
	}
	for i, target := range is.focusTargets {
		if target == name {
			is.focusIndex = i
			return
		}
	}
}

// SetupInputBindings registers the flight and focus key bindings
func SetupInputBindings() {
	// Flight keys. Forward dips the nose, backward raises it.
	engo.Input.RegisterButton("pitchDown", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("pitchUp", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("yawLeft", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("yawRight", engo.KeyD, engo.KeyArrowRight)

	// Focus keys.
	engo.Input.RegisterButton("focusNext", engo.KeyTab)
	engo.Input.RegisterButton("focusPrev", engo.KeyBackspace)
	engo.Input.RegisterButton("focusShip", engo.KeyF)
	engo.Input.RegisterButton("focusFree", engo.KeyEscape)
}
