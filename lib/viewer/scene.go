package viewer

import (
	"fmt"

	"github.com/fosdem/pointsprite/lib/api"
	"github.com/fosdem/pointsprite/lib/config"
	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/rendering"
	"github.com/fosdem/pointsprite/lib/sim"
	"github.com/fosdem/pointsprite/lib/utils"
)

var logger = log.Module("viewer")

// Scene is everything drawn in one window: the swarm, the render system fed
// from it and the controls acting on both. All methods run on the render
// thread.
type Scene[V rendering.Vertex] struct {
	System *rendering.System[V]
	Swarm  *sim.Swarm

	vertex   func(*sim.Swarm, *sim.Bot) V
	shutdown bool
}

func NewScene[V rendering.Vertex](gl gpu.GL, surface rendering.Surface, cfg *config.Config, vertex func(*sim.Swarm, *sim.Bot) V) (*Scene[V], error) {
	swarm := sim.New(cfg.Swarm.Bots, cfg.World, cfg.Swarm.Speed, cfg.Swarm.Seed)
	system, err := rendering.NewSystem[V](gl, surface, options(cfg))
	if err != nil {
		return nil, err
	}
	s := &Scene[V]{
		System: system,
		Swarm:  swarm,
		vertex: vertex,
	}
	return s, nil
}

func options(cfg *config.Config) rendering.Options {
	return rendering.Options{
		NumVertices: cfg.Swarm.Bots,
		World:       cfg.World,
		PointSize:   cfg.PointSize,
		BackColour:  utils.ColourVec3(utils.ColourParse(cfg.BackgroundColour)),
		BotColour:   utils.ColourVec3(utils.ColourParse(cfg.BotColour)),
		Square:      cfg.Square,
	}
}

// Frame advances the swarm by dt seconds and draws it.
func (s *Scene[V]) Frame(dt float32) error {
	s.Swarm.Step(dt)
	err := rendering.UpdateWith(s.System.Buffer(), s.Swarm.Bots, func(b *sim.Bot) V {
		return s.vertex(s.Swarm, b)
	})
	if err != nil {
		return fmt.Errorf("could not upload bots: %w", err)
	}
	return s.System.DrawAll()
}

// Apply takes over a reloaded config. The window section only applies at
// startup.
func (s *Scene[V]) Apply(cfg *config.Config) error {
	if cfg.Kind() != rendering.KindFor[V]() {
		logger.Warn(fmt.Sprintf("program change to %s needs a restart", cfg.Kind()))
	}
	opts := options(cfg)
	if err := s.System.SetCamera(opts.World, opts.PointSize); err != nil {
		return err
	}
	s.System.SetBackColour(opts.BackColour)
	s.System.SetBotColour(opts.BotColour)
	s.System.SetSquare(opts.Square)

	s.Swarm.World = cfg.World
	s.Swarm.Speed = cfg.Swarm.Speed
	if len(s.Swarm.Bots) != cfg.Swarm.Bots {
		s.Swarm.Resize(cfg.Swarm.Bots)
		if err := s.System.RegenerateBuffer(cfg.Swarm.Bots); err != nil {
			return err
		}
	}
	logger.Info("config applied", "world", cfg.World.String(), "bots", cfg.Swarm.Bots)
	return nil
}

// ApplyCamera takes over a camera change requested through the api.
func (s *Scene[V]) ApplyCamera(c api.CameraReq) error {
	if err := s.System.SetCamera(c.World, c.PointSize); err != nil {
		return err
	}
	s.System.SetSquare(c.Square)
	return nil
}

func (s *Scene[V]) Camera() api.CameraReq {
	return api.CameraReq{
		World:     s.System.World(),
		PointSize: s.System.PointSize(),
		Square:    s.System.Square(),
	}
}

func (s *Scene[V]) ShutdownRequested() bool {
	return s.shutdown
}

func (s *Scene[V]) Release() {
	s.System.Release()
}

func (s *Scene[V]) RequestShutdown() {
	s.shutdown = true
}

func (s *Scene[V]) ToggleSquare() {
	s.System.SetSquare(!s.System.Square())
}

func (s *Scene[V]) ScalePointSize(f float32) {
	s.setCamera(s.System.World(), s.System.PointSize()*f)
}

func (s *Scene[V]) Pan(fx, fy float32) {
	s.setCamera(s.System.World().Pan(fx, fy), s.System.PointSize())
}

func (s *Scene[V]) Zoom(f float32) {
	s.setCamera(s.System.World().Zoom(f), s.System.PointSize())
}

func (s *Scene[V]) setCamera(world geom.Rect, pointSize float32) {
	if err := s.System.SetCamera(world, pointSize); err != nil {
		logger.Warn("camera change ignored", "err", err)
	}
}
