package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/san-kum/cheddar/internal/effects"
	"github.com/san-kum/cheddar/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

var ErrUnknownEffect = errors.New("tui: unknown effect")

// Effects lists what the live player can run.
var Effects = []string{"matrix", "particles"}

// LivePlayer runs one effect straight to a writer, without the full app.
// Frames are throttled to frameRate.
type LivePlayer struct {
	effect    string
	frameRate int
	width     int
	height    int
	out       io.Writer
	rng       *rand.Rand
	lastFrame time.Time

	matrix    *effects.MatrixRain
	particles *effects.ParticleSystem
}

func NewLivePlayer(effect string, frameRate, width, height int, out io.Writer, seed int64) (*LivePlayer, error) {
	switch effect {
	case "matrix", "particles":
	default:
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownEffect, effect, Effects)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LivePlayer{
		effect:    effect,
		frameRate: frameRate,
		width:     max(width, 1),
		height:    max(height, 1),
		out:       out,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Play runs until the effect ends, duration passes or ctx is done. A
// zero duration plays the matrix until it fades and the particles
// forever.
func (p *LivePlayer) Play(ctx context.Context, duration time.Duration) error {
	var task effects.Task
	start := time.Now()
	switch p.effect {
	case "matrix":
		p.matrix = effects.NewMatrixRain(effects.DefaultMatrixConfig(), p.rng)
		p.matrix.Start(start, p.width, p.height)
		task = p.matrix
	case "particles":
		p.particles = effects.NewParticleSystem(effects.DefaultParticleConfig(),
			float64(p.width*effects.CellPX), float64(p.height*effects.CellPY), p.rng)
		task = p.particles
	}

	p.Start()
	defer p.Stop()

	frame := time.NewTicker(time.Second / time.Duration(p.frameRate))
	defer frame.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-frame.C:
			if duration > 0 && now.Sub(start) >= duration {
				task.Stop()
				return nil
			}
			if !task.Tick(now) {
				return nil
			}
			p.OnFrame(now)
		}
	}
}

// OnFrame draws the current state, skipping frames that come too soon.
func (p *LivePlayer) OnFrame(now time.Time) {
	if now.Sub(p.lastFrame) < time.Second/time.Duration(p.frameRate) {
		return
	}
	p.lastFrame = now
	fmt.Fprint(p.out, p.Frame())
}

// Frame renders one screen, starting with a clear.
func (p *LivePlayer) Frame() string {
	var b strings.Builder
	b.WriteString(clearScreen)
	switch p.effect {
	case "matrix":
		for y := 0; y < p.height; y++ {
			row := make([]rune, p.width)
			for x := range row {
				g, a := p.matrix.At(x, y)
				if a < 0.2 {
					g = ' '
				}
				row[x] = g
			}
			b.WriteString(string(row) + "\n")
		}
	case "particles":
		c := viz.NewCanvas(p.width, p.height)
		p.particles.Draw(c)
		b.WriteString(c.String() + "\n")
	}
	return b.String()
}

func (p *LivePlayer) Start() { fmt.Fprint(p.out, hideCursor) }
func (p *LivePlayer) Stop()  { fmt.Fprint(p.out, showCursor) }
