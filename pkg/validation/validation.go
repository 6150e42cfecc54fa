// Package validation provides bounds checking for user-supplied
// configuration. The motion core itself trusts its callers, so every
// number that reaches it must have been validated here at load time.
package validation

import (
	"fmt"
	"math"
)

// Display size limits; anything outside is a typo, not a preference
const (
	MinDisplayDim = 64
	MaxDisplayDim = 16384
)

// finite reports whether v is a usable float (not NaN or ±Inf)
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateBodyRecord checks one body configuration record. Orbit radius
// zero is legal (the star); negative radii and non-finite velocities are
// not. Name is required because focus selection addresses bodies by name.
func ValidateBodyRecord(name string, displayRadius, orbitRadius, angularVelocity, selfRotationVelocity, inclination float64) error {
	if name == "" {
		return fmt.Errorf("body has no name")
	}
	if !finite(displayRadius) || displayRadius <= 0 {
		return fmt.Errorf("body %q: display radius must be positive, got %v", name, displayRadius)
	}
	if !finite(orbitRadius) || orbitRadius < 0 {
		return fmt.Errorf("body %q: orbit radius must be >= 0, got %v", name, orbitRadius)
	}
	if !finite(angularVelocity) {
		return fmt.Errorf("body %q: angular velocity must be finite, got %v", name, angularVelocity)
	}
	if !finite(selfRotationVelocity) {
		return fmt.Errorf("body %q: self-rotation velocity must be finite, got %v", name, selfRotationVelocity)
	}
	if !finite(inclination) || math.Abs(inclination) > math.Pi/2 {
		return fmt.Errorf("body %q: inclination must be within ±π/2, got %v", name, inclination)
	}
	return nil
}

// ValidateShipTuning checks the ship movement constants
func ValidateShipTuning(speed, yawRate, maxPitch, maxRoll, tiltSmoothing float64) error {
	if !finite(speed) || speed <= 0 {
		return fmt.Errorf("ship speed must be positive, got %v", speed)
	}
	if !finite(yawRate) || yawRate <= 0 {
		return fmt.Errorf("ship yaw rate must be positive, got %v", yawRate)
	}
	if !finite(maxPitch) || maxPitch <= 0 || maxPitch > math.Pi/2 {
		return fmt.Errorf("ship max pitch must be in (0, π/2], got %v", maxPitch)
	}
	if !finite(maxRoll) || maxRoll <= 0 || maxRoll > math.Pi/2 {
		return fmt.Errorf("ship max roll must be in (0, π/2], got %v", maxRoll)
	}
	if !finite(tiltSmoothing) || tiltSmoothing <= 0 || tiltSmoothing > 1 {
		return fmt.Errorf("ship tilt smoothing must be in (0, 1], got %v", tiltSmoothing)
	}
	return nil
}

// ValidateDisplay checks window/screen dimensions
func ValidateDisplay(width, height int) error {
	if width < MinDisplayDim || width > MaxDisplayDim {
		return fmt.Errorf("display width %d outside [%d, %d]", width, MinDisplayDim, MaxDisplayDim)
	}
	if height < MinDisplayDim || height > MaxDisplayDim {
		return fmt.Errorf("display height %d outside [%d, %d]", height, MinDisplayDim, MaxDisplayDim)
	}
	return nil
}
