// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/validation"
)

// SimulationConfig contains the full scene configuration
type SimulationConfig struct {
	Bodies  []entity.BodyConfig `json:"bodies"`
	Ship    ShipConfig          `json:"ship"`
	Camera  CameraConfig        `json:"camera"`
	Display DisplayConfig       `json:"display"`
}

// ShipConfig contains ship spawn and movement configuration
type ShipConfig struct {
	StartX        float64 `json:"startX"`
	StartY        float64 `json:"startY"`
	StartZ        float64 `json:"startZ"`
	Speed         float64 `json:"speed"`
	YawRate       float64 `json:"yawRate"`
	MaxPitch      float64 `json:"maxPitch"`
	MaxRoll       float64 `json:"maxRoll"`
	TiltSmoothing float64 `json:"tiltSmoothing"`
	ModelPath     string  `json:"modelPath"`
}

// Tuning converts the ship configuration to physics tuning constants
func (s ShipConfig) Tuning() physics.ShipTuning {
	return physics.ShipTuning{
		Speed:         s.Speed,
		YawRate:       s.YawRate,
		MaxPitch:      s.MaxPitch,
		MaxRoll:       s.MaxRoll,
		TiltSmoothing: s.TiltSmoothing,
	}
}

// StartPosition returns the ship spawn point
func (s ShipConfig) StartPosition() physics.Vector3 {
	return physics.Vector3{X: s.StartX, Y: s.StartY, Z: s.StartZ}
}

// CameraConfig contains camera rig configuration
type CameraConfig struct {
	Distance    float64 `json:"distance"`    // trailing distance behind the focus
	Height      float64 `json:"height"`      // height above the focus
	FollowSpeed float64 `json:"followSpeed"` // lerp rate for body-focus transitions
}

// DisplayConfig contains window configuration
type DisplayConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
	Title      string `json:"title"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimulationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate bounds-checks every user-supplied number before any of it
// reaches the motion core.
func (c *SimulationConfig) Validate() error {
	if len(c.Bodies) == 0 {
		return fmt.Errorf("configuration has no bodies")
	}
	for _, body := range c.Bodies {
		err := validation.ValidateBodyRecord(
			body.Name,
			body.DisplayRadius,
			body.OrbitRadius,
			body.AngularVelocity,
			body.SelfRotationVelocity,
			body.Inclination,
		)
		if err != nil {
			return err
		}
	}

	err := validation.ValidateShipTuning(
		c.Ship.Speed,
		c.Ship.YawRate,
		c.Ship.MaxPitch,
		c.Ship.MaxRoll,
		c.Ship.TiltSmoothing,
	)
	if err != nil {
		return err
	}

	return validation.ValidateDisplay(c.Display.Width, c.Display.Height)
}

// DefaultConfig returns the stock solar system configuration
func DefaultConfig() *SimulationConfig {
	tuning := physics.DefaultShipTuning()
	return &SimulationConfig{
		Bodies: entity.DefaultSystem(),
		Ship: ShipConfig{
			StartX:        0,
			StartY:        20,
			StartZ:        260,
			Speed:         tuning.Speed,
			YawRate:       tuning.YawRate,
			MaxPitch:      tuning.MaxPitch,
			MaxRoll:       tuning.MaxRoll,
			TiltSmoothing: tuning.TiltSmoothing,
			// Empty means no external model: the loader reports ready
			// immediately and the ship uses its built-in sprite.
			ModelPath: "",
		},
		Camera: CameraConfig{
			Distance:    30,
			Height:      12,
			FollowSpeed: 2.0,
		},
		Display: DisplayConfig{
			Width:  1024,
			Height: 768,
			Title:  "go-orrery",
		},
	}
}
