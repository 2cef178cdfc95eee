package grove

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ClearColor Color  `yaml:"clearColor"`
	ShowFPS    bool   `yaml:"showFPS"`
	Resizable  bool   `yaml:"resizable"`
	TPS        int    `yaml:"tps"`
	Debug      bool   `yaml:"debug"`
}

const (
	defaultWidth  = 640
	defaultHeight = 480
)

func (c *RunConfig) applyDefaults() {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.TPS <= 0 {
		c.TPS = ebiten.DefaultTPS
	}
}

// LoadRunConfig parses a YAML RunConfig and fills in defaults for missing
// size and TPS values. clearColor takes r, g, b, a keys in [0, 1].
func LoadRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene     *Scene
	width     int
	height    int
	resizable bool
}

func (g *game) Update() error {
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.resizable {
		return g.scene.Layout(outsideWidth, outsideHeight)
	}
	return g.scene.Layout(g.width, g.height)
}

// Run opens a window and runs scene until the window closes or the update
// func returns an error. ebiten.Termination is treated as a clean exit.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		panic("grove: cannot run nil scene")
	}
	cfg.applyDefaults()

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.TPS)
	if cfg.ClearColor.A > 0 {
		scene.ClearColor = cfg.ClearColor
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}

	g := &game{scene: scene, width: cfg.Width, height: cfg.Height, resizable: cfg.Resizable}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
