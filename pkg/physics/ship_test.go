// pkg/physics/ship_test.go
package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// TestAdvanceShip_MovesWithoutFlags verifies the constant-speed
// autopilot: translation happens every tick even with no input.
func TestAdvanceShip_MovesWithoutFlags(t *testing.T) {
	state := &ShipKinematics{}
	tuning := DefaultShipTuning()

	AdvanceShip(state, ShipInput{}, tuning, 0.5)

	expected := Vector3{Z: -tuning.Speed * 0.5}
	if !vecApproxEqual(state.Position, expected, tolerance) {
		t.Errorf("position = %+v, want %+v", state.Position, expected)
	}
}

// TestAdvanceShip_TiltConvergesToZero verifies that with no flags the
// pitch and roll decay monotonically toward level flight.
func TestAdvanceShip_TiltConvergesToZero(t *testing.T) {
	state := &ShipKinematics{Pitch: -0.15, Roll: 0.3}
	tuning := DefaultShipTuning()

	prevPitch := math.Abs(state.Pitch)
	prevRoll := math.Abs(state.Roll)
	for i := 0; i < 200; i++ {
		AdvanceShip(state, ShipInput{}, tuning, 1.0/60.0)

		pitch := math.Abs(state.Pitch)
		roll := math.Abs(state.Roll)
		if pitch > prevPitch || roll > prevRoll {
			t.Fatalf("tick %d: tilt diverged, pitch %v->%v roll %v->%v",
				i, prevPitch, pitch, prevRoll, roll)
		}
		prevPitch, prevRoll = pitch, roll
	}

	if prevPitch >= 1e-3 || prevRoll >= 1e-3 {
		t.Errorf("tilt did not converge: pitch=%v roll=%v", prevPitch, prevRoll)
	}
}

// TestAdvanceShip_YawLeft verifies the left-turn convention: yaw
// decreases monotonically and roll converges toward the negative bound
// without overshooting it.
func TestAdvanceShip_YawLeft(t *testing.T) {
	state := &ShipKinematics{}
	tuning := DefaultShipTuning()
	input := ShipInput{YawLeft: true}

	prevYaw := state.Yaw
	for i := 0; i < 100; i++ {
		delta := AdvanceShip(state, input, tuning, 1.0/120.0)
		if delta >= 0 {
			t.Fatalf("tick %d: expected negative yaw delta, got %v", i, delta)
		}
		if state.Yaw >= prevYaw {
			t.Fatalf("tick %d: yaw did not decrease (%v -> %v)", i, prevYaw, state.Yaw)
		}
		if state.Roll < -tuning.MaxRoll-tolerance {
			t.Fatalf("tick %d: roll %v overshot bound %v", i, state.Roll, -tuning.MaxRoll)
		}
		prevYaw = state.Yaw
	}

	if math.Abs(state.Roll-(-tuning.MaxRoll)) > 0.01 {
		t.Errorf("roll = %v, want near %v", state.Roll, -tuning.MaxRoll)
	}
}

// TestAdvanceShip_PitchTargets covers the flag-to-pitch mapping and the
// fixed tie-break order for simultaneous opposite flags.
func TestAdvanceShip_PitchTargets(t *testing.T) {
	tuning := DefaultShipTuning()

	tests := []struct {
		name     string
		input    ShipInput
		wantSign float64
	}{
		{"ForwardNosesDown", ShipInput{Forward: true}, -1},
		{"BackwardNosesUp", ShipInput{Backward: true}, 1},
		{"BackwardWinsTie", ShipInput{Forward: true, Backward: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &ShipKinematics{}
			for i := 0; i < 100; i++ {
				AdvanceShip(state, tt.input, tuning, 1.0/60.0)
			}
			want := tt.wantSign * tuning.MaxPitch
			if math.Abs(state.Pitch-want) > 0.01 {
				t.Errorf("pitch = %v, want near %v", state.Pitch, want)
			}
		})
	}
}

// TestAdvanceShip_YawLeftWinsTie verifies yaw-left is checked before
// yaw-right when both flags are held.
func TestAdvanceShip_YawLeftWinsTie(t *testing.T) {
	state := &ShipKinematics{}
	input := ShipInput{YawLeft: true, YawRight: true}

	delta := AdvanceShip(state, input, DefaultShipTuning(), 1.0/60.0)
	if delta >= 0 {
		t.Errorf("expected yaw-left to win the tie, got delta %v", delta)
	}
}

// TestAdvanceShip_TurnChangesHeading verifies that yawing actually bends
// the flight path rather than just spinning the mesh.
func TestAdvanceShip_TurnChangesHeading(t *testing.T) {
	straight := &ShipKinematics{}
	turning := &ShipKinematics{}
	tuning := DefaultShipTuning()

	for i := 0; i < 60; i++ {
		AdvanceShip(straight, ShipInput{}, tuning, 1.0/60.0)
		AdvanceShip(turning, ShipInput{YawRight: true}, tuning, 1.0/60.0)
	}

	if straight.Position.Distance(turning.Position) < 1e-3 {
		t.Error("turning ship followed the same path as the straight one")
	}
	if turning.Position.Y != 0 {
		t.Errorf("level turn left the horizontal plane: y=%v", turning.Position.Y)
	}
}

// TestWrapAngle tests angle normalization at the boundaries
func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"Zero", 0, 0},
		{"Positive", 1, 1},
		{"AbovePi", math.Pi + 0.5, -math.Pi + 0.5},
		{"BelowMinusPi", -math.Pi - 0.5, math.Pi - 0.5},
		{"FullTurn", 2 * math.Pi, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapAngle(tt.angle); !approxEqual(got, tt.expected, tolerance) {
				t.Errorf("WrapAngle(%v) = %v, want %v", tt.angle, got, tt.expected)
			}
		})
	}
}

// TestOrientationQuat_MatchesForwardVector checks the composed quaternion
// rotates the rest-frame forward axis onto FromYawPitch's result when
// roll is zero.
func TestOrientationQuat_MatchesForwardVector(t *testing.T) {
	yaw, pitch := 0.6, -0.15

	q := OrientationQuat(yaw, pitch, 0)
	rotated := q.Rotate(mgl64.Vec3{0, 0, -1})

	want := FromYawPitch(yaw, pitch)
	got := Vector3{X: rotated.X(), Y: rotated.Y(), Z: rotated.Z()}
	if !vecApproxEqual(got, want, 1e-9) {
		t.Errorf("quaternion forward %+v, want %+v", got, want)
	}
}
