// pkg/entity/presets.go
package entity

import (
	"fmt"
	"math"
)

// Named body presets in scene units, not ephemeris data: orbit radii and
// angular velocities are compressed so the whole system fits on screen
// and the outer planets still visibly move. Inclinations are the real
// values in radians since they only shape the drawn orbit paths. Venus
// and Uranus spin retrograde.
var bodyPresets = map[string]BodyConfig{
	"Sun": {
		Name:                 "Sun",
		Kind:                 Star,
		DisplayRadius:        16,
		SelfRotationVelocity: 0.04,
		Color:                "#FDB813",
		Emissive:             true,
	},
	"Mercury": {
		Name:                 "Mercury",
		Kind:                 Planet,
		DisplayRadius:        2,
		OrbitRadius:          28,
		AngularVelocity:      0.48,
		SelfRotationVelocity: 0.08,
		Inclination:          7.005 * math.Pi / 180,
		Color:                "#B5B5B5",
	},
	"Venus": {
		Name:                 "Venus",
		Kind:                 Planet,
		DisplayRadius:        3.8,
		OrbitRadius:          44,
		AngularVelocity:      0.35,
		SelfRotationVelocity: -0.02,
		Inclination:          3.395 * math.Pi / 180,
		Color:                "#E8CDA2",
		HasClouds:            true,
	},
	"Earth": {
		Name:                 "Earth",
		Kind:                 Planet,
		DisplayRadius:        4,
		OrbitRadius:          62,
		AngularVelocity:      0.30,
		SelfRotationVelocity: 1.0,
		Color:                "#2E86AB",
		HasClouds:            true,
	},
	"Mars": {
		Name:                 "Mars",
		Kind:                 Planet,
		DisplayRadius:        2.1,
		OrbitRadius:          78,
		AngularVelocity:      0.24,
		SelfRotationVelocity: 0.97,
		Inclination:          1.850 * math.Pi / 180,
		Color:                "#C1440E",
	},
	"Jupiter": {
		Name:                 "Jupiter",
		Kind:                 Planet,
		DisplayRadius:        10,
		OrbitRadius:          110,
		AngularVelocity:      0.13,
		SelfRotationVelocity: 2.4,
		Inclination:          1.303 * math.Pi / 180,
		Color:                "#C88B3A",
	},
	"Saturn": {
		Name:                 "Saturn",
		Kind:                 Planet,
		DisplayRadius:        8.5,
		OrbitRadius:          142,
		AngularVelocity:      0.10,
		SelfRotationVelocity: 2.2,
		Inclination:          2.489 * math.Pi / 180,
		Color:                "#E4D191",
		HasRings:             true,
	},
	"Uranus": {
		Name:                 "Uranus",
		Kind:                 Planet,
		DisplayRadius:        6,
		OrbitRadius:          174,
		AngularVelocity:      0.07,
		SelfRotationVelocity: -1.4,
		Inclination:          0.773 * math.Pi / 180,
		Color:                "#7DE8E8",
	},
	"Neptune": {
		Name:                 "Neptune",
		Kind:                 Planet,
		DisplayRadius:        5.8,
		OrbitRadius:          200,
		AngularVelocity:      0.056,
		SelfRotationVelocity: 1.5,
		Inclination:          1.770 * math.Pi / 180,
		Color:                "#3F54BA",
	},
}

// presetOrder lists presets sunward-out, the order UIs display them in
var presetOrder = []string{
	"Sun", "Mercury", "Venus", "Earth", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune",
}

// BodyPreset looks up a named preset configuration
func BodyPreset(name string) (BodyConfig, error) {
	cfg, ok := bodyPresets[name]
	if !ok {
		return BodyConfig{}, fmt.Errorf("unknown body preset: %q", name)
	}
	return cfg, nil
}

// PresetNames returns all preset names sunward-out
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

// DefaultSystem returns the full solar system preset list sunward-out
func DefaultSystem() []BodyConfig {
	configs := make([]BodyConfig, 0, len(presetOrder))
	for _, name := range presetOrder {
		configs = append(configs, bodyPresets[name])
	}
	return configs
}
