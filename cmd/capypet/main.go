// Command capypet puts a few capybaras on the desktop: a transparent,
// borderless, always-on-top window they wander along the bottom of.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/capypet/config"
	"github.com/plus3/capypet/debugui"
	debugui_ebiten "github.com/plus3/capypet/debugui/ebiten"
	"github.com/plus3/capypet/gfx"
	"github.com/plus3/capypet/scene"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "capypet:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML or TOML config file.")
	pets := flag.Int("pets", -1, "Number of pets (overrides the config).")
	seed := flag.Uint64("seed", 0, "Random seed (overrides the config, 0 keeps it).")
	debug := flag.Bool("debug", false, "Show the debug overlay (F1 toggles it).")
	logLevel := flag.String("log-level", "", "Log level (overrides the config).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *pets >= 0 {
		cfg.Scene.Pets = *pets
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Scene.Seed == 0 {
		cfg.Scene.Seed = uint64(time.Now().UnixNano())
	}

	game, err := newGame(cfg, logger)
	if err != nil {
		return err
	}
	defer game.scene.Teardown()

	setupWindow(cfg.Window, game.imgui != nil)
	logger.Info("capypet starting",
		zap.Int("pets", cfg.Scene.Pets),
		zap.Uint64("seed", cfg.Scene.Seed),
		zap.Bool("debug", game.imgui != nil))

	opts := &ebiten.RunGameOptions{ScreenTransparent: cfg.Window.Transparent}
	if err := ebiten.RunGameWithOptions(game, opts); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func newGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	g := &Game{
		logger: logger,
		dt:     1 / float64(cfg.Window.TPS),
		fps:    newFrameCounter(time.Now()),
	}

	// The ImGui backend creates the window, so it has to exist before any
	// other window setup.
	if cfg.Debug.Overlay {
		g.imgui = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	}

	sheets := gfx.LoadSheets(cfg, logger)
	renderer, err := gfx.NewRenderer(sheets)
	if err != nil {
		return nil, err
	}
	g.renderer = renderer

	g.scene = scene.New(scene.Options{
		Settings:  scene.SettingsFromConfig(cfg, sheets.FrameCounts()),
		Seed:      cfg.Scene.Seed,
		Pets:      cfg.Scene.Pets,
		HalfWidth: cfg.Scene.WorldHalfWidth,
		Renderer:  renderer,
		Logger:    logger,
	})

	if g.imgui != nil {
		g.overlay = debugui.Install(g.scene, debugui.Options{
			Visible:       true,
			HistoryFrames: cfg.Debug.History,
		})
	}
	return g, nil
}

func setupWindow(cfg config.WindowConfig, debug bool) {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowDecorated(cfg.Decorated || debug)
	ebiten.SetWindowFloating(cfg.Floating)
	// the overlay needs clicks
	ebiten.SetWindowMousePassthrough(cfg.MousePassthrough && !debug)
	ebiten.SetTPS(cfg.TPS)

	if monitor := ebiten.Monitor(); monitor != nil {
		mw, mh := monitor.Size()
		ebiten.SetWindowPosition((mw-cfg.Width)/2, mh-cfg.Height-bottomMargin)
	}
}

// bottomMargin keeps the window clear of a typical taskbar.
const bottomMargin = 48
