// pkg/physics/orbit.go
package physics

import "math"

// OrbitalState tracks one body's circular orbit around a fixed center.
// Radius must be positive; AngularVelocity may be negative for retrograde
// orbits. The Elapsed accumulator is owned by AdvanceOrbit — callers only
// ever hand in deltas and must not write it themselves.
type OrbitalState struct {
	Radius               float64
	AngularVelocity      float64
	SelfRotationVelocity float64
	Center               Vector3
	Elapsed              float64
}

// AdvanceOrbit advances the orbit phase by deltaTime and returns the new
// position together with the self-rotation increment for this step. The
// orbit is a circle in the horizontal plane at the center's height:
//
//	x = radius·sin(t·ω) + center.x
//	z = radius·cos(t·ω) + center.z
//	y = center.y
//
// Orbit-plane inclination is a cosmetic attribute drawn by renderers; it
// never enters the position math. deltaTime of zero leaves the state
// untouched and returns a zero rotation delta. Radius and deltaTime are
// caller-validated preconditions, not defended against here.
func AdvanceOrbit(state *OrbitalState, deltaTime float64) (Vector3, float64) {
	state.Elapsed += deltaTime

	phase := state.Elapsed * state.AngularVelocity
	position := Vector3{
		X: state.Radius*math.Sin(phase) + state.Center.X,
		Y: state.Center.Y,
		Z: state.Radius*math.Cos(phase) + state.Center.Z,
	}

	return position, state.SelfRotationVelocity * deltaTime
}

// OrbitPeriod returns the time for one full revolution, or zero for a
// body that does not orbit (angular velocity zero).
func OrbitPeriod(state *OrbitalState) float64 {
	if state.AngularVelocity == 0 {
		return 0
	}
	return 2 * math.Pi / math.Abs(state.AngularVelocity)
}
