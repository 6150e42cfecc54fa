// pkg/physics/angles.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lerp linearly interpolates from a toward b by factor t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits value to the range [min, max]
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// WrapAngle normalizes an angle to the range (-π, π]
func WrapAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// OrientationQuat composes yaw, pitch and roll into a single rotation
// quaternion, applied yaw-first so the tilt angles stay in the ship's
// local frame. Renderers that want one rotation instead of three Euler
// angles consume this.
func OrientationQuat(yaw, pitch, roll float64) mgl64.Quat {
	return mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.YXZ)
}
