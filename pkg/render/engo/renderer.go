// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// pixelsPerUnit maps simulation distances onto the engo viewport
const pixelsPerUnit = 2.0

// spriteEntity bundles the ECS pieces engo needs for one drawable
type spriteEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// SceneRenderer mirrors simulation snapshots into engo's render
// system: one sprite entity per body, an optional ring sprite, and the
// ship once its model is ready.
type SceneRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	bodyEntities map[entity.ID]*spriteEntity
	ringEntities map[entity.ID]*spriteEntity
	shipEntity   *spriteEntity
	background   *spriteEntity

	assets *AssetManager
}

// NewSceneRenderer creates a renderer bound to the given ECS world
func NewSceneRenderer(world *ecs.World, renderSystem *common.RenderSystem, assets *AssetManager) *SceneRenderer {
	return &SceneRenderer{
		world:        world,
		renderSystem: renderSystem,
		bodyEntities: make(map[entity.ID]*spriteEntity),
		ringEntities: make(map[entity.ID]*spriteEntity),
		assets:       assets,
	}
}

// Sync updates sprite positions and rotations from one snapshot
func (r *SceneRenderer) Sync(snap engine.Snapshot) {
	for _, body := range snap.Bodies {
		r.syncBody(body)
	}
	r.syncShip(snap)
}

// syncBody positions the body's sprite, creating it on first sight
func (r *SceneRenderer) syncBody(body engine.BodyTransform) {
	sprite, exists := r.bodyEntities[body.ID]
	if !exists {
		sprite = r.addBodySprite(body)
	}

	pos := worldToScreen(body.Position)
	size := float32(body.DisplayRadius * 2 * pixelsPerUnit)
	sprite.SpaceComponent.Position = engo.Point{X: pos.X - size/2, Y: pos.Y - size/2}
	sprite.SpaceComponent.Rotation = float32(body.Rotation * 180 / math.Pi)

	if ring, ok := r.ringEntities[body.ID]; ok {
		ringSize := size * 2
		ring.SpaceComponent.Position = engo.Point{X: pos.X - ringSize/2, Y: pos.Y - ringSize/2}
	}
}

// addBodySprite registers a new body with the render system
func (r *SceneRenderer) addBodySprite(body engine.BodyTransform) *spriteEntity {
	drawable := r.assets.GetBodySprite(body.Name)
	size := float32(body.DisplayRadius * 2 * pixelsPerUnit)

	sprite := &spriteEntity{BasicEntity: ecs.NewBasic()}
	sprite.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Scale:    scaleFor(drawable, size),
		Color:    color.RGBA{255, 255, 255, 255},
	}
	sprite.SpaceComponent = common.SpaceComponent{
		Width:  size,
		Height: size,
	}
	sprite.RenderComponent.SetZIndex(1)

	r.renderSystem.Add(&sprite.BasicEntity, &sprite.RenderComponent, &sprite.SpaceComponent)
	r.bodyEntities[body.ID] = sprite

	if ringDrawable := r.assets.GetRingSprite(body.Name); ringDrawable != nil {
		r.addRingSprite(body, ringDrawable, size*2)
	}

	return sprite
}

// addRingSprite registers a ring annulus behind the body sprite
func (r *SceneRenderer) addRingSprite(body engine.BodyTransform, drawable common.Drawable, size float32) {
	ring := &spriteEntity{BasicEntity: ecs.NewBasic()}
	ring.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Scale:    scaleFor(drawable, size),
		Color:    color.RGBA{255, 255, 255, 255},
	}
	ring.SpaceComponent = common.SpaceComponent{
		Width:  size,
		Height: size,
	}
	ring.RenderComponent.SetZIndex(0)

	r.renderSystem.Add(&ring.BasicEntity, &ring.RenderComponent, &ring.SpaceComponent)
	r.ringEntities[body.ID] = ring
}

// syncShip positions the ship sprite. The sprite only exists once the
// simulation reports the model ready, matching the asset loader gate.
func (r *SceneRenderer) syncShip(snap engine.Snapshot) {
	if !snap.ShipReady {
		return
	}

	if r.shipEntity == nil {
		r.addShipSprite()
	}

	pos := worldToScreen(snap.ShipPose.Position)
	const size = float32(24)
	r.shipEntity.SpaceComponent.Position = engo.Point{X: pos.X - size/2, Y: pos.Y - size/2}
	// Sprite art points up (-Z). Screen rotation is clockwise degrees,
	// yaw is counterclockwise radians viewed from +Y.
	r.shipEntity.SpaceComponent.Rotation = float32(-snap.ShipPose.Yaw * 180 / math.Pi)
}

// addShipSprite registers the ship with the render system
func (r *SceneRenderer) addShipSprite() {
	drawable := r.assets.GetShipSprite()

	sprite := &spriteEntity{BasicEntity: ecs.NewBasic()}
	sprite.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Scale:    engo.Point{X: 1, Y: 1},
		Color:    color.RGBA{255, 255, 255, 255},
	}
	sprite.SpaceComponent = common.SpaceComponent{
		Width:  24,
		Height: 24,
	}
	sprite.RenderComponent.SetZIndex(2)

	r.renderSystem.Add(&sprite.BasicEntity, &sprite.RenderComponent, &sprite.SpaceComponent)
	r.shipEntity = sprite
}

// AddBackground tiles the starfield behind everything
func (r *SceneRenderer) AddBackground() {
	drawable := r.assets.GetStarfield()

	sprite := &spriteEntity{BasicEntity: ecs.NewBasic()}
	sprite.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Scale:    engo.Point{X: 8, Y: 8},
		Color:    color.RGBA{255, 255, 255, 255},
	}
	sprite.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: -1024, Y: -1024},
		Width:    2048,
		Height:   2048,
	}
	sprite.RenderComponent.SetZIndex(-1)

	r.renderSystem.Add(&sprite.BasicEntity, &sprite.RenderComponent, &sprite.SpaceComponent)
	r.background = sprite
}

// RemoveBody drops a body's sprites from the render system
func (r *SceneRenderer) RemoveBody(id entity.ID) {
	if sprite, exists := r.bodyEntities[id]; exists {
		r.renderSystem.Remove(sprite.BasicEntity)
		delete(r.bodyEntities, id)
	}
	if ring, exists := r.ringEntities[id]; exists {
		r.renderSystem.Remove(ring.BasicEntity)
		delete(r.ringEntities, id)
	}
}

// worldToScreen projects the orbit plane onto engo's 2D viewport:
// world X maps to screen X, world Z to screen Y.
func worldToScreen(worldPos physics.Vector3) engo.Point {
	return engo.Point{
		X: float32(worldPos.X * pixelsPerUnit),
		Y: float32(worldPos.Z * pixelsPerUnit),
	}
}

// scaleFor computes the sprite scale bringing a drawable to the target
// on-screen size.
func scaleFor(drawable common.Drawable, target float32) engo.Point {
	width := drawable.Width()
	if width <= 0 {
		return engo.Point{X: 1, Y: 1}
	}
	s := target / width
	return engo.Point{X: s, Y: s}
}
