// pkg/engine/snapshot.go
package engine

import (
	"time"

	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// BodyTransform is the per-frame output for one orbiting body: where it
// is, how far it has spun, and the cosmetics renderers draw it with.
type BodyTransform struct {
	ID            entity.ID
	Name          string
	Kind          entity.BodyKind
	Position      physics.Vector3
	Rotation      float64
	DisplayRadius float64
	OrbitRadius   float64
	Inclination   float64
	Color         string
	HasRings      bool
	Emissive      bool
}

// Snapshot is an immutable copy of the scene for one frame. Renderers
// consume it and never reach back into the simulation.
type Snapshot struct {
	Tick      uint64
	Elapsed   float64
	Bodies    []BodyTransform
	ShipPose  entity.Pose
	ShipReady bool
	Camera    entity.CameraPose
	Focus     FocusTarget
	FocusName string
}

// Snapshot copies the current scene state. Bodies appear in their
// configured sunward-out order.
func (s *Simulation) Snapshot() Snapshot {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	snap := Snapshot{
		Tick:      s.CurrentTick,
		Elapsed:   s.ElapsedTime,
		Bodies:    make([]BodyTransform, 0, len(s.bodyOrder)),
		ShipPose:  s.Ship.CurrentPose(),
		ShipReady: s.Ship.ModelReady(),
		Camera:    s.cameraPoseLocked(),
		Focus:     s.focus,
		FocusName: s.focusNameLocked(s.focus),
	}

	for _, id := range s.bodyOrder {
		body := s.Bodies[id]
		snap.Bodies = append(snap.Bodies, BodyTransform{
			ID:            body.GetID(),
			Name:          body.Name,
			Kind:          body.Kind,
			Position:      body.Position,
			Rotation:      body.Rotation,
			DisplayRadius: body.Bounds.Radius,
			OrbitRadius:   body.Orbit.Radius,
			Inclination:   body.Inclination,
			Color:         body.Color,
			HasRings:      body.HasRings,
			Emissive:      body.Emissive,
		})
	}

	return snap
}

// cameraPoseLocked resolves the focus target to the camera-pivot pose
// for this frame.
func (s *Simulation) cameraPoseLocked() entity.CameraPose {
	switch s.focus.Kind {
	case FocusShip:
		return s.Ship.CameraPose()
	case FocusBody:
		if body, ok := s.Bodies[s.focus.BodyID]; ok {
			return entity.CameraPose{Position: body.Position}
		}
	}
	return entity.CameraPose{}
}

// LastTickTime returns the wall-clock time of the most recent update,
// used by the health check to detect a stalled loop.
func (s *Simulation) LastTickTime() time.Time {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()
	return s.LastUpdate
}
