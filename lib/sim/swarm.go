// Package sim moves a swarm of bots around the world rectangle. It is what
// feeds the renderer in the demo binary.
package sim

import (
	"math"
	"math/rand"

	"github.com/fosdem/pointsprite/lib/geom"
	"github.com/fosdem/pointsprite/lib/rendering"
)

type Bot struct {
	X, Y   float32
	VX, VY float32
}

type Swarm struct {
	Bots  []Bot
	World geom.Rect
	Speed float32

	rng *rand.Rand
}

func New(n int, world geom.Rect, speed float32, seed int64) *Swarm {
	s := &Swarm{
		World: world,
		Speed: speed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.Resize(n)
	return s
}

// Resize grows or shrinks the swarm. New bots start at random positions with
// random headings.
func (s *Swarm) Resize(n int) {
	if n <= len(s.Bots) {
		s.Bots = s.Bots[:n]
		return
	}
	for len(s.Bots) < n {
		s.Bots = append(s.Bots, s.spawn())
	}
}

func (s *Swarm) spawn() Bot {
	heading := s.rng.Float64() * 2 * math.Pi
	speed := s.Speed * (0.25 + 0.75*s.rng.Float32())
	return Bot{
		X:  s.World.X1 + s.rng.Float32()*s.World.Width(),
		Y:  s.World.Y1 + s.rng.Float32()*s.World.Height(),
		VX: speed * float32(math.Cos(heading)),
		VY: speed * float32(math.Sin(heading)),
	}
}

// Step advances every bot by dt seconds, bouncing off the world edges.
func (s *Swarm) Step(dt float32) {
	w := s.World
	for i := range s.Bots {
		b := &s.Bots[i]
		b.X, b.VX = bounce(b.X+b.VX*dt, b.VX, w.X1, w.X2)
		b.Y, b.VY = bounce(b.Y+b.VY*dt, b.VY, w.Y1, w.Y2)
	}
}

func bounce(pos, vel, lo, hi float32) (float32, float32) {
	span := hi - lo
	if span <= 0 {
		return lo, vel
	}
	for pos < lo || pos > hi {
		if pos < lo {
			pos = 2*lo - pos
		} else {
			pos = 2*hi - pos
		}
		vel = -vel
		if pos < lo-span || pos > hi+span {
			// moved more than a whole world in one step
			pos = lo + float32(math.Mod(float64(pos-lo), float64(span)))
			if pos < lo {
				pos += span
			}
		}
	}
	return pos, vel
}

// Vertex renders a bot with an opacity that follows its speed, so slow bots
// fade into the background.
func (s *Swarm) Vertex(b *Bot) rendering.AlphaPoint {
	alpha := float32(1)
	if s.Speed > 0 {
		v := float32(math.Hypot(float64(b.VX), float64(b.VY)))
		alpha = min(1, 0.2+0.8*v/s.Speed)
	}
	return rendering.AlphaPoint{b.X, b.Y, alpha}
}

// Point renders a bot without opacity, for the flat program.
func (s *Swarm) Point(b *Bot) rendering.Point {
	return rendering.Point{b.X, b.Y}
}
