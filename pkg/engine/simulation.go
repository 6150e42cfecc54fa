// pkg/engine/simulation.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/physics"
	"github.com/opd-ai/go-orrery/pkg/validation"
)

// Simulation drives the scene: it ticks every body's orbit and the ship
// once per frame, resolves the focus target to a camera pose, and hands
// renderers immutable snapshots. Renderers never write back — transform
// flow is one-way by design.
//
// The graphical frontend calls Update from its frame callback; headless
// mode uses Run for a fixed-timestep loop. The lock exists for the
// headless case where HTTP handlers read snapshots while the loop
// writes; within one frontend everything stays single-threaded.
type Simulation struct {
	Config *config.SimulationConfig

	Bodies     map[entity.ID]*entity.Body
	bodyOrder  []entity.ID
	Ship       *entity.Ship
	EntityLock sync.RWMutex

	Running     bool
	CurrentTick uint64
	ElapsedTime float64 // seconds
	LastUpdate  time.Time

	EventBus *event.Bus

	focus  FocusTarget
	logger *logging.Logger
}

// NewSimulation builds a simulation from the configuration: one body
// per record plus the ship at its spawn point. The configuration must
// already be validated (config.LoadConfig does this).
func NewSimulation(cfg *config.SimulationConfig) *Simulation {
	sim := &Simulation{
		Config:   cfg,
		Bodies:   make(map[entity.ID]*entity.Body),
		EventBus: event.NewEventBus(),
		focus:    FreeFocus(),
		logger:   logging.NewLogger(),
	}

	for _, bodyCfg := range cfg.Bodies {
		sim.addBodyLocked(bodyCfg)
	}

	sim.Ship = entity.NewShip(entity.GenerateID(), cfg.Ship.StartPosition(), cfg.Ship.Tuning())
	sim.EventBus.Publish(&event.BaseEvent{
		EventType: event.ShipSpawned,
		Source:    sim,
	})

	return sim
}

// addBodyLocked creates and registers a body without taking the lock
func (s *Simulation) addBodyLocked(cfg entity.BodyConfig) *entity.Body {
	body := entity.NewBody(entity.GenerateID(), cfg)
	s.Bodies[body.GetID()] = body
	s.bodyOrder = append(s.bodyOrder, body.GetID())
	s.EventBus.Publish(event.NewBodyEvent(event.BodyAdded, s, uint64(body.GetID()), body.Name))
	return body
}

// AddBody validates a body record and adds it to the running scene
func (s *Simulation) AddBody(cfg entity.BodyConfig) (*entity.Body, error) {
	err := validation.ValidateBodyRecord(
		cfg.Name, cfg.DisplayRadius, cfg.OrbitRadius,
		cfg.AngularVelocity, cfg.SelfRotationVelocity, cfg.Inclination,
	)
	if err != nil {
		return nil, err
	}

	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()
	return s.addBodyLocked(cfg), nil
}

// Start marks the simulation active
func (s *Simulation) Start() {
	s.Running = true
	s.LastUpdate = time.Now()
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationStarted,
		Source:    s,
	})
}

// Stop halts the simulation
func (s *Simulation) Stop() {
	s.Running = false
	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationEnded,
		Source:    s,
	})
}

// Update advances the whole scene by deltaTime: every orbit first, then
// the ship. Input flags set since the last frame are already in place
// when this runs, matching event-loop ordering.
func (s *Simulation) Update(deltaTime float64) {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	s.CurrentTick++
	s.ElapsedTime += deltaTime
	s.LastUpdate = time.Now()

	for _, id := range s.bodyOrder {
		s.Bodies[id].Update(deltaTime)
	}

	// The ship flies its constant-speed autopilot whenever its model is
	// present, focused or not; Advance itself no-ops until then.
	s.Ship.Advance(deltaTime)
}

// SetFocus switches the camera focus target. A focus on a body that
// does not exist is ignored, per the "ignore missing object" rule.
// Leaving ship focus drops any held directional keys. Returns whether
// the focus actually changed.
func (s *Simulation) SetFocus(target FocusTarget) bool {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	if target.Kind == FocusBody {
		if _, ok := s.Bodies[target.BodyID]; !ok {
			s.logger.Debug(context.Background(), "ignoring focus on missing body",
				"body_id", uint64(target.BodyID),
			)
			return false
		}
	}
	if target == s.focus {
		return false
	}

	if s.focus.Kind == FocusShip && target.Kind != FocusShip {
		s.Ship.ClearInput()
	}
	s.focus = target

	s.EventBus.Publish(event.NewFocusEvent(s, s.focusNameLocked(target), uint64(target.BodyID)))
	return true
}

// SetFocusByName resolves "Free", "Ship" or a body name to a focus
// target and applies it. Unknown names are ignored.
func (s *Simulation) SetFocusByName(name string) bool {
	switch name {
	case "Free":
		return s.SetFocus(FreeFocus())
	case "Ship":
		return s.SetFocus(ShipFocus())
	}

	s.EntityLock.RLock()
	var target FocusTarget
	found := false
	for _, id := range s.bodyOrder {
		if s.Bodies[id].Name == name {
			target = BodyFocus(id)
			found = true
			break
		}
	}
	s.EntityLock.RUnlock()

	if !found {
		return false
	}
	return s.SetFocus(target)
}

// Focus returns the current focus target
func (s *Simulation) Focus() FocusTarget {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()
	return s.focus
}

// ShipControlActive reports whether keyboard input should steer the
// ship: only while the ship is the focus target.
func (s *Simulation) ShipControlActive() bool {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()
	return s.focus.Kind == FocusShip
}

// SetShipInput applies one directional flag, gated by ship-control
// mode. Key events arriving while another target is focused are
// dropped rather than queued.
func (s *Simulation) SetShipInput(direction entity.Direction, active bool) {
	s.EntityLock.Lock()
	defer s.EntityLock.Unlock()

	if s.focus.Kind != FocusShip {
		return
	}
	s.Ship.SetInputFlag(direction, active)
}

// PickBody returns the body whose bounding sphere contains the point,
// used for click-to-focus.
func (s *Simulation) PickBody(point physics.Vector3) (entity.ID, bool) {
	s.EntityLock.RLock()
	defer s.EntityLock.RUnlock()

	for _, id := range s.bodyOrder {
		if s.Bodies[id].GetBounds().Contains(point) {
			return id, true
		}
	}
	return 0, false
}

// focusNameLocked resolves a focus target to its display name
func (s *Simulation) focusNameLocked(target FocusTarget) string {
	switch target.Kind {
	case FocusShip:
		return "Ship"
	case FocusBody:
		if body, ok := s.Bodies[target.BodyID]; ok {
			return body.Name
		}
	}
	return "Free"
}

// Run drives the simulation at a fixed timestep until the context is
// cancelled. Used by headless mode; the graphical frontend calls Update
// from its own frame clock instead.
func (s *Simulation) Run(ctx context.Context, tickRate int) {
	s.Start()
	defer s.Stop()

	interval := time.Second / time.Duration(tickRate)
	deltaTime := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "simulation loop started",
		"tick_rate", tickRate,
		"bodies", len(s.bodyOrder),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "simulation loop stopped",
				"ticks", s.CurrentTick,
				"elapsed_seconds", s.ElapsedTime,
			)
			return
		case <-ticker.C:
			s.Update(deltaTime)
		}
	}
}
