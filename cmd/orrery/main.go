// cmd/orrery/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/render"
	engorender "github.com/opd-ai/go-orrery/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file and exit")
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo' or 'terminal'")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadSimConfig(ctx, logger, *configPath)
	if *width > 0 {
		simConfig.Display.Width = *width
	}
	if *height > 0 {
		simConfig.Display.Height = *height
	}
	if *fullscreen {
		simConfig.Display.Fullscreen = true
	}

	envConfig, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "invalid environment configuration", err)
		os.Exit(1)
	}

	sim := engine.NewSimulation(simConfig)

	// Ship model loads in the background; until it reports ready the
	// ship holds its spawn pose.
	loader := asset.NewLoader(envConfig, sim.EventBus)
	go func() {
		if _, err := loader.LoadShipModel(ctx, simConfig.Ship.ModelPath); err != nil {
			logger.Error(ctx, "ship model load failed, ship stays parked", err,
				"model_path", simConfig.Ship.ModelPath,
			)
			return
		}
		sim.Ship.SetModelReady(true)
	}()

	switch *renderer {
	case "terminal":
		runTerminal(ctx, logger, sim, simConfig)
	case "engo":
		fallthrough
	default:
		runEngo(sim, simConfig)
	}
}

// loadSimConfig reads the scene config, falling back to defaults when
// the file does not exist.
func loadSimConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimulationConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using defaults",
			"config_path", path,
		)
		return config.DefaultConfig()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "failed to load configuration", err,
			"config_path", path,
		)
		os.Exit(1)
	}
	return cfg
}

// runEngo starts the graphical frontend
func runEngo(sim *engine.Simulation, cfg *config.SimulationConfig) {
	scene := engorender.NewOrreryScene(cfg, sim)

	opts := engo.RunOptions{
		Title:      cfg.Display.Title,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// runTerminal starts the tcell frontend
func runTerminal(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, cfg *config.SimulationConfig) {
	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error(ctx, "failed to open terminal screen", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		logger.Error(ctx, "failed to initialize terminal screen", err)
		os.Exit(1)
	}
	defer screen.Fini()

	focusTargets := make([]string, 0, len(cfg.Bodies)+1)
	focusTargets = append(focusTargets, "Ship")
	for _, body := range cfg.Bodies {
		focusTargets = append(focusTargets, body.Name)
	}

	app := render.NewTerminalApp(sim, screen, focusTargets)
	if err := app.Run(ctx); err != nil && err != context.Canceled {
		logger.Error(ctx, "terminal frontend failed", err)
	}
}
