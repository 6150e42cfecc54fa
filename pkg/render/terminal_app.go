// pkg/render/terminal_app.go
package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// keyHoldWindow is how long a keypress counts as held. Terminals only
// report presses, never releases, so flight keys are re-armed on every
// repeat event and expire after this window.
const keyHoldWindow = 200 * time.Millisecond

// TerminalApp runs the simulation against a tcell screen: a frame
// ticker drives updates while a reader goroutine feeds key events.
type TerminalApp struct {
	sim      *engine.Simulation
	screen   tcell.Screen
	renderer *TerminalRenderer
	logger   *logging.Logger

	frameRate int

	// deadline per flight key for hold emulation
	holdUntil map[entity.Direction]time.Time

	focusTargets []string
	focusIndex   int
}

// NewTerminalApp creates a terminal frontend over an initialized screen
func NewTerminalApp(sim *engine.Simulation, screen tcell.Screen, focusTargets []string) *TerminalApp {
	return &TerminalApp{
		sim:          sim,
		screen:       screen,
		renderer:     NewTerminalRenderer(screen, 4),
		logger:       logging.NewLogger(),
		frameRate:    30,
		holdUntil:    make(map[entity.Direction]time.Time),
		focusTargets: focusTargets,
	}
}

// Run blocks until the context is canceled or the user quits
func (app *TerminalApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go app.readEvents(ctx, events)

	app.logger.Info(ctx, "terminal frontend started", "frame_rate", app.frameRate)
	app.sim.Start()
	defer app.sim.Stop()

	frame := time.Second / time.Duration(app.frameRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if quit := app.handleEvent(ev); quit {
				return nil
			}
		case now := <-ticker.C:
			app.expireHeldKeys(now)
			app.sim.Update(now.Sub(last).Seconds())
			last = now
			app.renderer.RenderFrame(app.sim.Snapshot())
		}
	}
}

// readEvents pumps tcell events into the channel until shutdown
func (app *TerminalApp) readEvents(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := app.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes one tcell event, reporting whether to quit
func (app *TerminalApp) handleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventKey:
		return app.handleKey(tev)
	}
	return false
}

// handleKey maps one keypress onto flight, focus or quit actions
func (app *TerminalApp) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		app.pressFlightKey(entity.Forward)
	case tcell.KeyDown:
		app.pressFlightKey(entity.Backward)
	case tcell.KeyLeft:
		app.pressFlightKey(entity.YawLeft)
	case tcell.KeyRight:
		app.pressFlightKey(entity.YawRight)
	case tcell.KeyTab:
		app.cycleFocus(1)
	case tcell.KeyEscape:
		app.sim.SetFocusByName("Free")
	case tcell.KeyRune:
		return app.handleRune(ev.Rune())
	}
	return false
}

// handleRune maps letter keys, reporting whether to quit
func (app *TerminalApp) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return true
	case 'w', 'W':
		app.pressFlightKey(entity.Forward)
	case 's', 'S':
		app.pressFlightKey(entity.Backward)
	case 'a', 'A':
		app.pressFlightKey(entity.YawLeft)
	case 'd', 'D':
		app.pressFlightKey(entity.YawRight)
	case 'f', 'F':
		app.sim.SetFocusByName("Ship")
	}
	return false
}

// pressFlightKey arms a flight flag for the hold window
func (app *TerminalApp) pressFlightKey(direction entity.Direction) {
	app.holdUntil[direction] = time.Now().Add(keyHoldWindow)
	app.sim.SetShipInput(direction, true)
}

// expireHeldKeys clears flags whose hold window has lapsed
func (app *TerminalApp) expireHeldKeys(now time.Time) {
	for direction, deadline := range app.holdUntil {
		if now.After(deadline) {
			app.sim.SetShipInput(direction, false)
			delete(app.holdUntil, direction)
		}
	}
}

// cycleFocus steps through the focus target list
func (app *TerminalApp) cycleFocus(step int) {
	if len(app.focusTargets) == 0 {
		return
	}
	app.focusIndex = (app.focusIndex + step + len(app.focusTargets)) % len(app.focusTargets)
	app.sim.SetFocusByName(app.focusTargets[app.focusIndex])
}
