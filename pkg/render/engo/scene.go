// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// hudFontURL is the font asset preloaded for overlay text
const hudFontURL = "fonts/hud.ttf"

// OrreryScene is the engo scene hosting the simulation: it steps the
// clock each frame, mirrors the snapshot into sprites, and routes
// input back into the simulation.
type OrreryScene struct {
	world *ecs.World

	cfg      *config.SimulationConfig
	sim      *engine.Simulation
	eventBus *event.Bus

	assets   *AssetManager
	renderer *SceneRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewOrreryScene creates a scene around an already-built simulation
func NewOrreryScene(cfg *config.SimulationConfig, sim *engine.Simulation) *OrreryScene {
	return &OrreryScene{
		cfg:      cfg,
		sim:      sim,
		eventBus: sim.EventBus,
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *OrreryScene) Type() string {
	return "OrreryScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *OrreryScene) Preload() {
	// The HUD font is optional; the overlay stays blank without it.
	_ = engo.Files.Load(hudFontURL)
}

// Setup is called when the scene starts (required by Engo)
func (scene *OrreryScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)
	scene.world.AddSystem(&common.MouseSystem{})

	SetupInputBindings()
	SetupCameraControls()

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(scene.cfg.Bodies); err != nil {
		panic("failed to generate sprites: " + err.Error())
	}

	scene.renderer = NewSceneRenderer(scene.world, renderSystem, scene.assets)
	scene.renderer.AddBackground()

	focusTargets := focusTargetNames(scene.cfg)

	scene.camera = NewCameraSystem(scene.cfg.Camera.FollowSpeed)
	scene.world.AddSystem(scene.camera)

	scene.input = NewInputSystem(scene.sim, focusTargets)
	scene.world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(renderSystem, focusTargets)
	scene.hud.SetFont(scene.loadHUDFont())
	scene.world.AddSystem(scene.hud)

	scene.world.AddSystem(&simDriver{scene: scene})

	scene.subscribeToEvents()
	scene.sim.Start()
}

// loadHUDFont creates the overlay font from the preloaded asset,
// returning nil when the asset is missing.
func (scene *OrreryScene) loadHUDFont() *common.Font {
	font := &common.Font{
		URL:  hudFontURL,
		FG:   color.White,
		Size: 14,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil
	}
	return font
}

// subscribeToEvents wires asset loader progress into the HUD
func (scene *OrreryScene) subscribeToEvents() {
	scene.eventBus.Subscribe(event.AssetLoaded, func(e event.Event) {
		scene.hud.SetAssetStatus("ship model ready")
	})
	scene.eventBus.Subscribe(event.AssetLoadFailed, func(e event.Event) {
		scene.hud.SetAssetStatus("ship model unavailable")
	})
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *OrreryScene) Exit() {
	scene.sim.Stop()
}

// simDriver steps the simulation once per rendered frame and fans the
// resulting snapshot out to the renderer, HUD and camera.
type simDriver struct {
	scene *OrreryScene
}

// Add satisfies the ecs.System interface
func (d *simDriver) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	// Not used for the driver
}

// Remove satisfies the ecs.System interface
func (d *simDriver) Remove(basic ecs.BasicEntity) {
	// Not used for the driver
}

// Update advances the simulation by the frame delta
func (d *simDriver) Update(dt float32) {
	scene := d.scene
	scene.sim.Update(float64(dt))

	snap := scene.sim.Snapshot()
	scene.renderer.Sync(snap)
	scene.hud.UpdateSnapshot(snap)

	d.updateCamera(snap)
	d.handlePicking()
}

// updateCamera points the camera at whatever the focus says
func (d *simDriver) updateCamera(snap engine.Snapshot) {
	switch snap.Focus.Kind {
	case engine.FocusShip:
		// Ship pivot has no lag.
		d.scene.camera.FollowImmediate(snap.Camera.Position)
	case engine.FocusBody:
		d.scene.camera.FollowSmooth(snap.Camera.Position)
	default:
		d.scene.camera.ClearTarget()
	}
}

// handlePicking focuses the body under the cursor on click
func (d *simDriver) handlePicking() {
	mouse := engo.Input.Mouse
	if mouse.Action != engo.Press || mouse.Button != engo.MouseButtonLeft {
		return
	}

	world := d.screenToWorld(mouse.X, mouse.Y)
	if id, ok := d.scene.sim.PickBody(world); ok {
		d.scene.sim.SetFocus(engine.BodyFocus(id))
	}
}

// screenToWorld inverts the camera transform onto the orbit plane
func (d *simDriver) screenToWorld(screenX, screenY float32) physics.Vector3 {
	camera := d.scene.camera
	zoom := float64(camera.GetZoom())
	center := camera.GetCurrentPosition()

	relX := (float64(screenX) - float64(engo.GameWidth())/2) / zoom / pixelsPerUnit
	relZ := (float64(screenY) - float64(engo.GameHeight())/2) / zoom / pixelsPerUnit

	return physics.Vector3{
		X: center.X + relX,
		Y: 0,
		Z: center.Z + relZ,
	}
}

// focusTargetNames builds the hotkey-ordered focus list: ship first,
// then the configured bodies.
func focusTargetNames(cfg *config.SimulationConfig) []string {
	names := make([]string, 0, len(cfg.Bodies)+1)
	names = append(names, "Ship")
	for _, body := range cfg.Bodies {
		names = append(names, body.Name)
	}
	return names
}
