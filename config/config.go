// Package config loads capypet settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/plus3/capypet/behavior"
	"github.com/plus3/capypet/sprite"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window   WindowConfig    `yaml:"window" toml:"window"`
	Scene    SceneConfig     `yaml:"scene" toml:"scene"`
	Sprites  SpritesConfig   `yaml:"sprites" toml:"sprites"`
	Behavior behavior.Params `yaml:"behavior" toml:"behavior"`
	Logging  LoggingConfig   `yaml:"logging" toml:"logging"`
	Debug    DebugConfig     `yaml:"debug" toml:"debug"`
}

type WindowConfig struct {
	Width            int    `yaml:"width" toml:"width"`
	Height           int    `yaml:"height" toml:"height"`
	Title            string `yaml:"title" toml:"title"`
	Transparent      bool   `yaml:"transparent" toml:"transparent"`
	Decorated        bool   `yaml:"decorated" toml:"decorated"`
	Floating         bool   `yaml:"floating" toml:"floating"`
	MousePassthrough bool   `yaml:"mouse_passthrough" toml:"mouse_passthrough"`
	TPS              int    `yaml:"tps" toml:"tps"`
}

type SceneConfig struct {
	Pets    int     `yaml:"pets" toml:"pets"`
	Seed    uint64  `yaml:"seed" toml:"seed"` // 0 picks a random seed
	PetSize float64 `yaml:"pet_size" toml:"pet_size"`
	// WorldHalfWidth is the world-space distance from the window centre to
	// either side edge.
	WorldHalfWidth float64 `yaml:"world_half_width" toml:"world_half_width"`
}

type SpritesConfig struct {
	Dir           string            `yaml:"dir" toml:"dir"`
	FrameWidth    int               `yaml:"frame_width" toml:"frame_width"`
	FrameDuration float64           `yaml:"frame_duration" toml:"frame_duration"`
	Files         map[string]string `yaml:"files" toml:"files"` // clip name -> file name
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `yaml:"overlay" toml:"overlay"`
	History int  `yaml:"history" toml:"history"` // samples kept by the frame time plot
}

// Load reads path, picking the decoder from its extension. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := Decode(cfg, filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data over cfg. ext selects the format.
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Defaults returns a config that runs without any file on disk.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:       600,
			Height:      200,
			Title:       "capypet",
			Transparent: true,
			Decorated:   false,
			Floating:    true,
			TPS:         60,
		},
		Scene: SceneConfig{
			Pets:           3,
			PetSize:        1.2,
			WorldHalfWidth: 6,
		},
		Sprites: SpritesConfig{
			Dir:           "res/sprites",
			FrameWidth:    32,
			FrameDuration: 0.1,
			Files: map[string]string{
				sprite.ClipIdle.String(): "Capybara_Idle.png",
				sprite.ClipWalk.String(): "Capybara_Walk.png",
				sprite.ClipRun.String():  "Capybara_Run.png",
				sprite.ClipSit.String():  "Capybara_Sit.png",
			},
		},
		Behavior: behavior.DefaultParams(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			History: 120,
		},
	}
}

// Validate checks values a file can get wrong.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	if c.Scene.Pets < 0 {
		errs = append(errs, fmt.Errorf("scene.pets must not be negative, got %d", c.Scene.Pets))
	}
	if c.Scene.PetSize <= 0 {
		errs = append(errs, fmt.Errorf("scene.pet_size must be positive, got %g", c.Scene.PetSize))
	}
	if c.Scene.WorldHalfWidth <= 0 {
		errs = append(errs, fmt.Errorf("scene.world_half_width must be positive, got %g", c.Scene.WorldHalfWidth))
	}
	if c.Debug.History < 0 {
		errs = append(errs, fmt.Errorf("debug.history must not be negative, got %d", c.Debug.History))
	}
	if c.Sprites.FrameWidth <= 0 {
		errs = append(errs, fmt.Errorf("sprites.frame_width must be positive, got %d", c.Sprites.FrameWidth))
	}
	if c.Sprites.FrameDuration <= 0 {
		errs = append(errs, fmt.Errorf("sprites.frame_duration must be positive, got %g", c.Sprites.FrameDuration))
	}
	for name := range c.Sprites.Files {
		if _, err := sprite.ParseClip(name); err != nil {
			errs = append(errs, fmt.Errorf("sprites.files: %w", err))
		}
	}
	if err := c.Behavior.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("behavior: %w", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// SheetPath returns where the sheet for clip lives, or "" if none is set.
func (c *Config) SheetPath(clip sprite.Clip) string {
	name, ok := c.Sprites.Files[clip.String()]
	if !ok || name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Sprites.Dir, name)
}
