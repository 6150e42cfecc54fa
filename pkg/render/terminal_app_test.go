package render

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
)

func newTestApp(t *testing.T) (*TerminalApp, *engine.Simulation) {
	t.Helper()
	screen := newTestScreen(t, 80, 24)
	t.Cleanup(screen.Fini)

	sim := engine.NewSimulation(config.DefaultConfig())
	app := NewTerminalApp(sim, screen, []string{"Ship", "Sun", "Earth"})
	return app, sim
}

func keyEvent(key tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(key, r, tcell.ModNone)
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"RuneQ", keyEvent(tcell.KeyRune, 'q')},
		{"RuneShiftQ", keyEvent(tcell.KeyRune, 'Q')},
		{"CtrlC", keyEvent(tcell.KeyCtrlC, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			if !app.handleEvent(tt.ev) {
				t.Error("expected quit")
			}
		})
	}
}

func TestFlightKeysArmHoldWindow(t *testing.T) {
	app, sim := newTestApp(t)
	sim.SetFocusByName("Ship")

	app.handleKey(keyEvent(tcell.KeyRune, 'a'))

	if _, held := app.holdUntil[entity.YawLeft]; !held {
		t.Fatal("yaw-left not armed after keypress")
	}

	// Within the window the flag stays set.
	app.expireHeldKeys(time.Now())
	if _, held := app.holdUntil[entity.YawLeft]; !held {
		t.Error("hold window expired immediately")
	}

	// Past the window the flag clears.
	app.expireHeldKeys(time.Now().Add(keyHoldWindow + time.Millisecond))
	if _, held := app.holdUntil[entity.YawLeft]; held {
		t.Error("hold window did not expire")
	}
}

func TestArrowKeysMapToFlight(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		want entity.Direction
	}{
		{"Up", tcell.KeyUp, entity.Forward},
		{"Down", tcell.KeyDown, entity.Backward},
		{"Left", tcell.KeyLeft, entity.YawLeft},
		{"Right", tcell.KeyRight, entity.YawRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			app.handleKey(keyEvent(tt.key, 0))
			if _, held := app.holdUntil[tt.want]; !held {
				t.Errorf("%v not armed", tt.want)
			}
		})
	}
}

func TestTabCyclesFocus(t *testing.T) {
	app, sim := newTestApp(t)

	app.handleKey(keyEvent(tcell.KeyTab, 0))
	if got := sim.Snapshot().FocusName; got != "Sun" {
		t.Errorf("focus after one Tab = %q, want Sun", got)
	}

	app.handleKey(keyEvent(tcell.KeyTab, 0))
	if got := sim.Snapshot().FocusName; got != "Earth" {
		t.Errorf("focus after two Tabs = %q, want Earth", got)
	}

	// Wraps back around the list.
	app.handleKey(keyEvent(tcell.KeyTab, 0))
	if got := sim.Snapshot().FocusName; got != "Ship" {
		t.Errorf("focus after three Tabs = %q, want Ship", got)
	}
}

func TestFocusHotkeys(t *testing.T) {
	app, sim := newTestApp(t)

	app.handleKey(keyEvent(tcell.KeyRune, 'f'))
	if got := sim.Snapshot().FocusName; got != "Ship" {
		t.Errorf("focus after 'f' = %q, want Ship", got)
	}

	app.handleKey(keyEvent(tcell.KeyEscape, 0))
	if got := sim.Snapshot().FocusName; got != "Free" {
		t.Errorf("focus after Escape = %q, want Free", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
