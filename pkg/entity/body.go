// pkg/entity/body.go
package entity

import (
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// BodyKind tags a celestial body's role in the scene
type BodyKind int

const (
	Star BodyKind = iota
	Planet
)

// String returns the kind name
func (k BodyKind) String() string {
	switch k {
	case Star:
		return "Star"
	case Planet:
		return "Planet"
	default:
		return "Unknown"
	}
}

// BodyConfig is the data record a Body is built from. There is one
// constructor for every body; what used to be a subclass per planet is
// now a row of configuration values, usually taken from the preset
// registry in presets.go.
type BodyConfig struct {
	Name                 string   `json:"name"`
	Kind                 BodyKind `json:"kind"`
	DisplayRadius        float64  `json:"displayRadius"`
	OrbitRadius          float64  `json:"orbitRadius"`
	AngularVelocity      float64  `json:"angularVelocity"`
	SelfRotationVelocity float64  `json:"selfRotationVelocity"`
	Inclination          float64  `json:"inclination"` // radians; orbit-path cosmetics only
	Color                string   `json:"color"`       // hex, e.g. "#2E86AB"
	HasClouds            bool     `json:"hasClouds,omitempty"`
	HasRings             bool     `json:"hasRings,omitempty"`
	Emissive             bool     `json:"emissive,omitempty"` // the star lights the scene
}

// Body represents one celestial body in the scene: the star or an
// orbiting planet. Orbit holds the motion state; everything else is
// identity and cosmetics handed through to renderers.
type Body struct {
	BaseEntity
	Name        string
	Kind        BodyKind
	Color       string
	Inclination float64
	HasClouds   bool
	HasRings    bool
	Emissive    bool
	Orbit       physics.OrbitalState
}

// NewBody creates a body from a configuration record, centered on the
// origin. The caller validates the record (see pkg/validation); radius
// and velocities are passed through untouched.
func NewBody(id ID, cfg BodyConfig) *Body {
	body := &Body{
		BaseEntity: BaseEntity{
			ID: id,
			Bounds: physics.Sphere{
				Radius: cfg.DisplayRadius,
			},
			Active: true,
		},
		Name:        cfg.Name,
		Kind:        cfg.Kind,
		Color:       cfg.Color,
		Inclination: cfg.Inclination,
		HasClouds:   cfg.HasClouds,
		HasRings:    cfg.HasRings,
		Emissive:    cfg.Emissive,
		Orbit: physics.OrbitalState{
			Radius:               cfg.OrbitRadius,
			AngularVelocity:      cfg.AngularVelocity,
			SelfRotationVelocity: cfg.SelfRotationVelocity,
		},
	}

	// Place the body at its phase-zero position so the first rendered
	// frame does not start everything at the origin.
	body.Position, _ = physics.AdvanceOrbit(&body.Orbit, 0)
	body.Bounds.Center = body.Position

	return body
}

// Update advances the body's orbit and spin for a single tick
func (b *Body) Update(deltaTime float64) {
	position, spinDelta := physics.AdvanceOrbit(&b.Orbit, deltaTime)
	b.Position = position
	b.Rotation += spinDelta
	b.Bounds.Center = position
}
