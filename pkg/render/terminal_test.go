package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(width, height)
	return screen
}

func cellRune(screen tcell.SimulationScreen, x, y int) rune {
	contents, width, _ := screen.GetContents()
	return contents[y*width+x].Runes[0]
}

func testSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Tick:    42,
		Elapsed: 3.5,
		Bodies: []engine.BodyTransform{
			{
				ID:            1,
				Name:          "Sun",
				Kind:          entity.Star,
				Position:      physics.Vector3{},
				DisplayRadius: 16,
				Color:         "#ffcc33",
				Emissive:      true,
			},
			{
				ID:            2,
				Name:          "Earth",
				Kind:          entity.Planet,
				Position:      physics.Vector3{X: 0, Y: 0, Z: 62},
				DisplayRadius: 2.2,
				OrbitRadius:   62,
				Color:         "#3366cc",
			},
		},
		ShipPose:  entity.Pose{Position: physics.Vector3{X: 8, Y: 20, Z: 0}},
		ShipReady: true,
		FocusName: "Free",
	}
}

func TestTerminalRendererDrawsStarAtCenter(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	defer screen.Fini()

	renderer := NewTerminalRenderer(screen, 4)
	renderer.RenderFrame(testSnapshot())

	if got := cellRune(screen, 40, 12); got != '@' {
		t.Errorf("expected star glyph '@' at screen center, got %q", got)
	}
}

func TestTerminalRendererDrawsShipGlyph(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	defer screen.Fini()

	renderer := NewTerminalRenderer(screen, 4)
	renderer.RenderFrame(testSnapshot())

	// Ship at world (8,20,0), camera at origin, scale 4: x offset 8/4*2=4.
	if got := cellRune(screen, 44, 12); got != '^' {
		t.Errorf("expected ship glyph '^' at (44,12), got %q", got)
	}
}

func TestTerminalRendererSkipsUnreadyShip(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	defer screen.Fini()

	snap := testSnapshot()
	snap.ShipReady = false

	renderer := NewTerminalRenderer(screen, 4)
	renderer.RenderFrame(snap)

	if got := cellRune(screen, 44, 12); got == '^' {
		t.Error("ship glyph drawn before model ready")
	}
}

func TestTerminalRendererStatusBar(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	defer screen.Fini()

	renderer := NewTerminalRenderer(screen, 4)
	renderer.RenderFrame(testSnapshot())

	want := " focus: Free"
	for i, ch := range want {
		if got := cellRune(screen, i, 23); got != ch {
			t.Fatalf("status bar cell %d: got %q, want %q", i, got, ch)
		}
	}
}

func TestTerminalRendererOffscreenBodies(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	defer screen.Fini()

	snap := testSnapshot()
	snap.Bodies = append(snap.Bodies, engine.BodyTransform{
		ID:       3,
		Name:     "Neptune",
		Kind:     entity.Planet,
		Position: physics.Vector3{X: 0, Y: 0, Z: 200},
		Color:    "#3344bb",
	})

	renderer := NewTerminalRenderer(screen, 4)
	// Must not panic writing cells far outside the 20x10 grid.
	renderer.RenderFrame(snap)
}

func TestTerminalRendererCameraCentering(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	defer screen.Fini()

	snap := testSnapshot()
	snap.Camera = entity.CameraPose{Position: physics.Vector3{X: 0, Y: 0, Z: 62}}

	renderer := NewTerminalRenderer(screen, 4)
	renderer.RenderFrame(snap)

	// Earth sits at the camera center now.
	if got := cellRune(screen, 40, 12); got != 'o' {
		t.Errorf("expected planet glyph 'o' at screen center, got %q", got)
	}
}

func TestShipGlyphQuadrants(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		want rune
	}{
		{"FacingAway", 0, '^'},
		{"FacingLeft", 1.5707963267948966, '<'},
		{"FacingToward", 3.141592653589793, 'v'},
		{"FacingRight", -1.5707963267948966, '>'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 40, 12)
			defer screen.Fini()

			snap := testSnapshot()
			snap.Bodies = nil
			snap.ShipPose.Position = physics.Vector3{}
			snap.ShipPose.Yaw = tt.yaw

			renderer := NewTerminalRenderer(screen, 4)
			renderer.RenderFrame(snap)

			if got := cellRune(screen, 20, 6); got != tt.want {
				t.Errorf("yaw %.2f: got %q, want %q", tt.yaw, got, tt.want)
			}
		})
	}
}
