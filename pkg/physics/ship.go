// pkg/physics/ship.go
package physics

// ShipInput holds the directional flags last seen from the keyboard.
// Flags are plain state, not events: key-down sets one, key-up clears it.
type ShipInput struct {
	Forward  bool
	Backward bool
	YawLeft  bool
	YawRight bool
}

// ShipTuning contains the movement constants for the ship
type ShipTuning struct {
	Speed         float64 // forward units per second
	YawRate       float64 // radians per second while turning
	MaxPitch      float64 // pitch tilt bound, radians
	MaxRoll       float64 // roll tilt bound, radians
	TiltSmoothing float64 // per-tick lerp factor toward the tilt target
}

// DefaultShipTuning returns the stock ship movement constants
func DefaultShipTuning() ShipTuning {
	return ShipTuning{
		Speed:         40.0,
		YawRate:       1.2,
		MaxPitch:      0.2,
		MaxRoll:       0.4,
		TiltSmoothing: 0.1,
	}
}

// ShipKinematics tracks ship pose between ticks
type ShipKinematics struct {
	Position Vector3
	Yaw      float64
	Pitch    float64
	Roll     float64
}

// AdvanceShip advances the ship pose by one tick and returns the yaw
// delta applied, which the camera pivot consumes additively.
//
// Translation along the facing vector happens unconditionally every tick
// (constant-speed autopilot); the forward/backward flags only steer the
// pitch target, nose-down for forward and nose-up for backward. The
// yaw flags change yaw by ±YawRate·dt and drive the roll target to the
// corresponding bank bound. Opposite simultaneous flags resolve by a
// fixed, arbitrary check order: backward before forward, yaw-left before
// yaw-right. Pitch and roll approach their targets by fixed-factor lerp
// rather than snapping, so releasing a key eases the tilt back to level.
func AdvanceShip(state *ShipKinematics, input ShipInput, tuning ShipTuning, deltaTime float64) float64 {
	var yawDelta float64
	rollTarget := 0.0
	if input.YawLeft {
		yawDelta = -tuning.YawRate * deltaTime
		rollTarget = -tuning.MaxRoll
	} else if input.YawRight {
		yawDelta = tuning.YawRate * deltaTime
		rollTarget = tuning.MaxRoll
	}

	pitchTarget := 0.0
	if input.Backward {
		pitchTarget = tuning.MaxPitch
	} else if input.Forward {
		pitchTarget = -tuning.MaxPitch
	}

	state.Yaw = WrapAngle(state.Yaw + yawDelta)
	state.Roll = Lerp(state.Roll, rollTarget, tuning.TiltSmoothing)
	state.Pitch = Lerp(state.Pitch, pitchTarget, tuning.TiltSmoothing)

	step := FromYawPitch(state.Yaw, state.Pitch).Scale(tuning.Speed * deltaTime)
	state.Position = state.Position.Add(step)

	return yawDelta
}
