// pkg/entity/ship.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

// Direction is one of the four logical input directions
type Direction int

const (
	Forward Direction = iota
	Backward
	YawLeft
	YawRight
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	case YawLeft:
		return "YawLeft"
	case YawRight:
		return "YawRight"
	default:
		return "Unknown"
	}
}

// Pose is the ship transform computed each tick and handed to the scene
// graph. One-way: renderers consume it, nothing reads it back.
type Pose struct {
	Position physics.Vector3
	Yaw      float64
	Pitch    float64
	Roll     float64
}

// Orientation returns the pose's angles composed into one quaternion
func (p Pose) Orientation() mgl64.Quat {
	return physics.OrientationQuat(p.Yaw, p.Pitch, p.Roll)
}

// CameraPose is the camera-pivot transform derived from the ship each
// tick. Position tracks the ship with zero lag; Yaw accumulates the
// ship's yaw deltas rather than copying its yaw, so a free-look offset
// applied to the pivot survives turning.
type CameraPose struct {
	Position physics.Vector3
	Yaw      float64
}

// Ship is the controllable spacecraft. Input flags live behind the
// setter so no other package writes them directly; the kinematic state
// is advanced once per frame by Advance.
type Ship struct {
	BaseEntity
	Tuning physics.ShipTuning

	kinematics physics.ShipKinematics
	input      physics.ShipInput
	cameraYaw  float64
	modelReady bool
}

// NewShip creates a ship at the given position. The ship ignores input
// and stays put until SetModelReady marks its model loaded.
func NewShip(id ID, position physics.Vector3, tuning physics.ShipTuning) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Bounds: physics.Sphere{
				Center: position,
				Radius: 2,
			},
			Active: true,
		},
		Tuning:     tuning,
		kinematics: physics.ShipKinematics{Position: position},
	}
}

// SetInputFlag records the state of one directional flag. Idempotent;
// takes effect on the next Advance.
func (s *Ship) SetInputFlag(direction Direction, active bool) {
	switch direction {
	case Forward:
		s.input.Forward = active
	case Backward:
		s.input.Backward = active
	case YawLeft:
		s.input.YawLeft = active
	case YawRight:
		s.input.YawRight = active
	}
}

// ClearInput drops all directional flags, used when ship focus is left
// while keys are still held.
func (s *Ship) ClearInput() {
	s.input = physics.ShipInput{}
}

// SetModelReady marks the ship model as loaded (or not). Until it is
// ready, Advance is a no-op.
func (s *Ship) SetModelReady(ready bool) {
	s.modelReady = ready
}

// ModelReady reports whether the ship model has finished loading
func (s *Ship) ModelReady() bool {
	return s.modelReady
}

// Advance recomputes the ship pose for one tick and returns it. Before
// the model is ready this is a safe no-op returning the unchanged pose;
// flags set in the meantime are kept and apply once the model arrives.
func (s *Ship) Advance(deltaTime float64) Pose {
	if !s.modelReady {
		return s.CurrentPose()
	}

	yawDelta := physics.AdvanceShip(&s.kinematics, s.input, s.Tuning, deltaTime)
	s.cameraYaw = physics.WrapAngle(s.cameraYaw + yawDelta)

	s.Position = s.kinematics.Position
	s.Rotation = s.kinematics.Yaw
	s.Bounds.Center = s.Position

	return s.CurrentPose()
}

// Update satisfies the Entity interface
func (s *Ship) Update(deltaTime float64) {
	s.Advance(deltaTime)
}

// CurrentPose returns a read-only snapshot of the ship transform
func (s *Ship) CurrentPose() Pose {
	return Pose{
		Position: s.kinematics.Position,
		Yaw:      s.kinematics.Yaw,
		Pitch:    s.kinematics.Pitch,
		Roll:     s.kinematics.Roll,
	}
}

// CameraPose returns the camera-pivot transform for the current tick
func (s *Ship) CameraPose() CameraPose {
	return CameraPose{
		Position: s.kinematics.Position,
		Yaw:      s.cameraYaw,
	}
}
