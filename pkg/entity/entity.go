// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for everything the simulation ticks
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector3
	Update(deltaTime float64)
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector3
	Rotation float64 // accumulated spin about the Y axis, radians
	Bounds   physics.Sphere
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector3 {
	return e.Position
}

// GetBounds returns the entity's bounding sphere at its current position
func (e *BaseEntity) GetBounds() physics.Sphere {
	return physics.Sphere{
		Center: e.Position,
		Radius: e.Bounds.Radius,
	}
}

var nextID uint64

// GenerateID generates a unique ID for entities
func GenerateID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}
