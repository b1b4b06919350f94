package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/fosdem/pointsprite/lib/rendering/shaders"
	"github.com/fosdem/pointsprite/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window           *WindowCfg
	World            geom.Rect
	PointSize        float32 `yaml:"point_size"`
	Program          string
	BackgroundColour string `yaml:"background_colour"`
	BotColour        string `yaml:"bot_colour"`
	Square           bool
	Swarm            *SwarmCfg
	Watch            bool
	DumpShaders      CfgPath `yaml:"dump_shaders"`
	Api              *ApiCfg
}

type WindowCfg struct {
	Title      string
	Width      int
	Height     int
	Vsync      *bool
	Resizable  bool
	Fullscreen bool
}

type SwarmCfg struct {
	Bots  int
	Speed float32
	Seed  int64
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			logger.Warn(fmt.Sprintf("could not close %s", filename), "err", err)
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

func (c *Config) Validate() error {
	if c.Window == nil {
		c.Window = &WindowCfg{}
	}
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}

	err = c.World.Validate()
	if err != nil {
		return fmt.Errorf("world is invalid: %w", err)
	}
	if !(c.PointSize > 0) || math.IsInf(float64(c.PointSize), 0) {
		return fmt.Errorf("point_size must be positive")
	}

	_, err = shaders.ParseKind(c.Program)
	if err != nil {
		return err
	}

	if c.BackgroundColour == "" {
		c.BackgroundColour = "#000000ff"
	}
	if !utils.ColourValidate(c.BackgroundColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.BackgroundColour)
	}
	if c.BotColour == "" {
		return fmt.Errorf("please set bot_colour in the config")
	}
	if !utils.ColourValidate(c.BotColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.BotColour)
	}

	if c.Swarm == nil {
		c.Swarm = &SwarmCfg{}
	}
	err = c.Swarm.Validate()
	if err != nil {
		return fmt.Errorf("swarm is invalid: %w", err)
	}

	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api needs a bind address")
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Title == "" {
		w.Title = "pointsprite"
	}
	if w.Width == 0 && w.Height == 0 {
		w.Width, w.Height = 1024, 768
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", w.Width, w.Height)
	}
	return nil
}

// VsyncEnabled defaults to true when vsync is not mentioned.
func (w *WindowCfg) VsyncEnabled() bool {
	return w.Vsync == nil || *w.Vsync
}

func (s *SwarmCfg) Validate() error {
	if s.Bots < 0 {
		return fmt.Errorf("bots must be nonnegative")
	}
	if s.Speed < 0 {
		return fmt.Errorf("speed must be nonnegative")
	}
	return nil
}

func (c *Config) Kind() shaders.Kind {
	// validated in Validate
	kind, _ := shaders.ParseKind(c.Program)
	return kind
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d vsync=%t resizable=%t fullscreen=%t\n",
		c.Window.Title, c.Window.Width, c.Window.Height, c.Window.VsyncEnabled(), c.Window.Resizable, c.Window.Fullscreen))

	b.WriteString("\nCamera:\n")
	b.WriteString(fmt.Sprintf("  world %s, point size %g\n", c.World, c.PointSize))

	b.WriteString("\nProgram:\n")
	b.WriteString(fmt.Sprintf("  %s, square=%t, bots %s on %s\n", c.Kind(), c.Square, c.BotColour, c.BackgroundColour))

	b.WriteString("\nSwarm:\n")
	b.WriteString(fmt.Sprintf("  %d bots at speed %g\n", c.Swarm.Bots, c.Swarm.Speed))

	if c.Api != nil {
		b.WriteString("\nApi:\n")
		b.WriteString(fmt.Sprintf("  %s (profiler=%t)\n", c.Api.Bind, c.Api.EnableProfiler))
	}

	return b.String()
}
