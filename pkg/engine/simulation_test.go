// pkg/engine/simulation_test.go
package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

func newTestSimulation() *Simulation {
	return NewSimulation(config.DefaultConfig())
}

func TestNewSimulation_BuildsScene(t *testing.T) {
	sim := newTestSimulation()

	if len(sim.Bodies) != 9 {
		t.Errorf("bodies = %d, want 9", len(sim.Bodies))
	}
	if sim.Ship == nil {
		t.Fatal("ship not created")
	}
	if sim.Focus().Kind != FocusFree {
		t.Errorf("initial focus = %v, want Free", sim.Focus().Kind)
	}
}

func TestSimulation_UpdateAdvancesBodies(t *testing.T) {
	sim := newTestSimulation()
	before := sim.Snapshot()

	sim.Update(1.0)
	after := sim.Snapshot()

	if after.Tick != before.Tick+1 {
		t.Errorf("tick = %d, want %d", after.Tick, before.Tick+1)
	}
	moved := 0
	for i, b := range after.Bodies {
		if b.Kind == entity.Planet && b.Position.Distance(before.Bodies[i].Position) > 1e-9 {
			moved++
		}
		if b.Rotation == before.Bodies[i].Rotation {
			t.Errorf("%s did not spin", b.Name)
		}
	}
	if moved != 8 {
		t.Errorf("%d planets moved, want 8", moved)
	}
}

func TestSimulation_ShipHoldsUntilModelReady(t *testing.T) {
	sim := newTestSimulation()
	start := sim.Snapshot().ShipPose.Position

	sim.Update(0.5)
	if pos := sim.Snapshot().ShipPose.Position; pos != start {
		t.Errorf("ship moved before model ready: %+v", pos)
	}

	sim.Ship.SetModelReady(true)
	sim.Update(0.5)
	if pos := sim.Snapshot().ShipPose.Position; pos == start {
		t.Error("ship did not move after model ready")
	}
}

func TestSimulation_SetFocusByName(t *testing.T) {
	sim := newTestSimulation()

	tests := []struct {
		name    string
		target  string
		changed bool
		kind    FocusKind
	}{
		{"Body", "Earth", true, FocusBody},
		{"SameBodyAgain", "Earth", false, FocusBody},
		{"Ship", "Ship", true, FocusShip},
		{"Free", "Free", true, FocusFree},
		{"MissingIgnored", "Pluto", false, FocusFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if changed := sim.SetFocusByName(tt.target); changed != tt.changed {
				t.Errorf("SetFocusByName(%q) = %v, want %v", tt.target, changed, tt.changed)
			}
			if sim.Focus().Kind != tt.kind {
				t.Errorf("focus kind = %v, want %v", sim.Focus().Kind, tt.kind)
			}
		})
	}
}

func TestSimulation_SetFocusIgnoresMissingBody(t *testing.T) {
	sim := newTestSimulation()

	if sim.SetFocus(BodyFocus(entity.ID(999999))) {
		t.Error("focus on missing body should be ignored")
	}
	if sim.Focus().Kind != FocusFree {
		t.Errorf("focus changed to %v", sim.Focus())
	}
}

func TestSimulation_InputGatedByShipFocus(t *testing.T) {
	sim := newTestSimulation()
	sim.Ship.SetModelReady(true)

	// Not in ship focus: input must be dropped.
	sim.SetShipInput(entity.YawLeft, true)
	sim.Update(0.1)
	if yaw := sim.Snapshot().ShipPose.Yaw; yaw != 0 {
		t.Errorf("yaw = %v, input applied outside ship focus", yaw)
	}

	sim.SetFocusByName("Ship")
	sim.SetShipInput(entity.YawLeft, true)
	sim.Update(0.1)
	if yaw := sim.Snapshot().ShipPose.Yaw; yaw >= 0 {
		t.Errorf("yaw = %v, want negative in ship focus", yaw)
	}
}

func TestSimulation_LeavingShipFocusDropsHeldKeys(t *testing.T) {
	sim := newTestSimulation()
	sim.Ship.SetModelReady(true)
	sim.SetFocusByName("Ship")
	sim.SetShipInput(entity.YawRight, true)
	sim.Update(0.1)

	sim.SetFocusByName("Earth")
	yawBefore := sim.Snapshot().ShipPose.Yaw
	sim.Update(0.1)

	if yaw := sim.Snapshot().ShipPose.Yaw; yaw != yawBefore {
		t.Errorf("yaw still changing after focus left ship: %v -> %v", yawBefore, yaw)
	}
}

func TestSimulation_CameraFollowsFocus(t *testing.T) {
	sim := newTestSimulation()
	sim.Ship.SetModelReady(true)

	sim.SetFocusByName("Mars")
	sim.Update(0.25)
	snap := sim.Snapshot()

	var mars BodyTransform
	for _, b := range snap.Bodies {
		if b.Name == "Mars" {
			mars = b
		}
	}
	if snap.Camera.Position != mars.Position {
		t.Errorf("camera %+v not on Mars %+v", snap.Camera.Position, mars.Position)
	}

	sim.SetFocusByName("Ship")
	sim.Update(0.25)
	snap = sim.Snapshot()
	if snap.Camera.Position != snap.ShipPose.Position {
		t.Errorf("camera %+v not on ship %+v", snap.Camera.Position, snap.ShipPose.Position)
	}
}

func TestSimulation_FocusEventsPublished(t *testing.T) {
	sim := newTestSimulation()

	var names []string
	sim.EventBus.Subscribe(event.FocusChanged, func(e event.Event) {
		if fe, ok := e.(*event.FocusEvent); ok {
			names = append(names, fe.Target)
		}
	})

	sim.SetFocusByName("Venus")
	sim.SetFocusByName("Ship")
	sim.SetFocusByName("Pluto") // ignored, no event

	if len(names) != 2 || names[0] != "Venus" || names[1] != "Ship" {
		t.Errorf("focus events = %v, want [Venus Ship]", names)
	}
}

func TestSimulation_AddBody(t *testing.T) {
	sim := newTestSimulation()

	body, err := sim.AddBody(entity.BodyConfig{
		Name:            "Ceres",
		Kind:            entity.Planet,
		DisplayRadius:   1,
		OrbitRadius:     90,
		AngularVelocity: 0.2,
	})
	if err != nil {
		t.Fatalf("AddBody() error: %v", err)
	}
	if !sim.SetFocus(BodyFocus(body.GetID())) {
		t.Error("could not focus the added body")
	}

	if _, err := sim.AddBody(entity.BodyConfig{Name: "", DisplayRadius: 1}); err == nil {
		t.Error("expected validation error for unnamed body")
	}
}

func TestSimulation_PickBody(t *testing.T) {
	sim := newTestSimulation()
	snap := sim.Snapshot()

	var sun BodyTransform
	for _, b := range snap.Bodies {
		if b.Kind == entity.Star {
			sun = b
		}
	}

	id, ok := sim.PickBody(sun.Position)
	if !ok || id != sun.ID {
		t.Errorf("PickBody(sun center) = %v %v", id, ok)
	}
	if _, ok := sim.PickBody(physics.Vector3{X: 9999}); ok {
		t.Error("picked a body in empty space")
	}
}

func TestSimulation_RunStopsOnCancel(t *testing.T) {
	sim := newTestSimulation()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sim.Run(ctx, 120)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if sim.CurrentTick == 0 {
		t.Error("loop never ticked")
	}
	if sim.Running {
		t.Error("simulation still marked running")
	}
}

func TestSimulation_DeterministicUpdate(t *testing.T) {
	a := newTestSimulation()
	b := newTestSimulation()

	for i := 0; i < 100; i++ {
		a.Update(1.0 / 60.0)
		b.Update(1.0 / 60.0)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa.Bodies {
		if d := sa.Bodies[i].Position.Distance(sb.Bodies[i].Position); d > 1e-12 {
			t.Errorf("%s diverged by %v", sa.Bodies[i].Name, d)
		}
		if math.Abs(sa.Bodies[i].Rotation-sb.Bodies[i].Rotation) > 1e-12 {
			t.Errorf("%s spin diverged", sa.Bodies[i].Name)
		}
	}
}
