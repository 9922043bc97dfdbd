package effects

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/cheddar/internal/viz"
)

// Pixel space: one terminal cell is CellPX x CellPY virtual pixels.
const (
	CellPX = 8
	CellPY = 16
)

type ParticleConfig struct {
	Count        int
	Color        string
	MaxSize      float64
	Speed        float64
	Opacity      float64
	LinkDistance float64
}

func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		Count:        100,
		Color:        "#22A39F",
		MaxSize:      3,
		Speed:        0.5,
		Opacity:      0.6,
		LinkDistance: 120,
	}
}

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
}

// Link joins two particles closer than the link distance.
type Link struct {
	A, B    int
	Opacity float64
}

type ParticleSystem struct {
	cfg       ParticleConfig
	width     float64
	height    float64
	particles []Particle
	stopped   bool
}

func NewParticleSystem(cfg ParticleConfig, width, height float64, rng *rand.Rand) *ParticleSystem {
	ps := &ParticleSystem{cfg: cfg, width: width, height: height}
	ps.particles = make([]Particle, cfg.Count)
	for i := range ps.particles {
		ps.particles[i] = Particle{
			X:       rng.Float64() * width,
			Y:       rng.Float64() * height,
			Size:    rng.Float64()*cfg.MaxSize + 1,
			VX:      (rng.Float64() - 0.5) * cfg.Speed,
			VY:      (rng.Float64() - 0.5) * cfg.Speed,
			Opacity: rng.Float64() * cfg.Opacity,
		}
	}
	return ps
}

func (ps *ParticleSystem) Resize(width, height float64) {
	ps.width, ps.height = width, height
}

func (ps *ParticleSystem) Particles() []Particle { return ps.particles }

func (ps *ParticleSystem) Config() ParticleConfig { return ps.cfg }

func (ps *ParticleSystem) Step() {
	for i := range ps.particles {
		p := &ps.particles[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 {
			p.X = ps.width
		}
		if p.X > ps.width {
			p.X = 0
		}
		if p.Y < 0 {
			p.Y = ps.height
		}
		if p.Y > ps.height {
			p.Y = 0
		}
	}
}

func (ps *ParticleSystem) Links() []Link {
	limit := ps.cfg.LinkDistance
	var links []Link
	for i := 0; i < len(ps.particles); i++ {
		for j := i + 1; j < len(ps.particles); j++ {
			dx := ps.particles[i].X - ps.particles[j].X
			dy := ps.particles[i].Y - ps.particles[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			if d < limit {
				links = append(links, Link{A: i, B: j, Opacity: (1 - d/limit) * 0.3})
			}
		}
	}
	return links
}

func (ps *ParticleSystem) Tick(time.Time) bool {
	if ps.stopped {
		return false
	}
	ps.Step()
	return true
}

func (ps *ParticleSystem) Stop() { ps.stopped = true }

func (ps *ParticleSystem) Stopped() bool { return ps.stopped }

// Draw plots particles and their links onto a braille canvas. Faint links
// are dashed.
func (ps *ParticleSystem) Draw(c *viz.Canvas) {
	const sx, sy = CellPX / 2, CellPY / 4
	for _, l := range ps.Links() {
		a, b := ps.particles[l.A], ps.particles[l.B]
		x0, y0 := int(a.X/sx), int(a.Y/sy)
		x1, y1 := int(b.X/sx), int(b.Y/sy)
		if l.Opacity < 0.15 {
			c.DrawDashed(x0, y0, x1, y1, 2)
		} else {
			c.DrawLine(x0, y0, x1, y1)
		}
	}
	for _, p := range ps.particles {
		c.FillCircle(int(p.X/sx), int(p.Y/sy), int(p.Size/sx))
	}
}
