package pet

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

type Look string

const (
	Classic Look = "classic"
	Cream   Look = "cream"
	Pink    Look = "pink"
)

var ErrUnknownLook = errors.New("pet: unknown look")

var lookNames = map[Look]string{
	Classic: "Classic White",
	Cream:   "Cream Maltipoo",
	Pink:    "Pastel Pink",
}

var lookColors = map[Look]string{
	Classic: "#ffffff",
	Cream:   "#f5deb3",
	Pink:    "#ffb6c1",
}

func ParseLook(s string) (Look, error) {
	l := Look(strings.ToLower(s))
	if _, ok := lookNames[l]; !ok {
		return "", ErrUnknownLook
	}
	return l, nil
}

func (l Look) Name() string  { return lookNames[l] }
func (l Look) Color() string { return lookColors[l] }

func Looks() []Look { return []Look{Classic, Cream, Pink} }

// Config holds the movement constants, in virtual pixels per frame.
type Config struct {
	Width, Height  float64
	EdgeMargin     float64
	StartMin       float64
	StartMargin    float64
	SeekSpeed      float64
	ArriveDistance float64
	Damping        float64
	MinSpeed       float64
	Jitter         float64
	Nudge          float64
}

func DefaultConfig() Config {
	return Config{
		Width:          100,
		Height:         120,
		EdgeMargin:     150,
		StartMin:       100,
		StartMargin:    200,
		SeekSpeed:      2,
		ArriveDistance: 80,
		Damping:        0.9,
		MinSpeed:       0.5,
		Jitter:         1.5,
		Nudge:          0.8,
	}
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Kairi is the screen pet. She bounces around the screen, or walks over to
// the seek target while it is visible.
type Kairi struct {
	X, Y   float64
	VX, VY float64
	Look   Look

	cfg     Config
	rng     *rand.Rand
	screenW float64
	screenH float64

	dragging     bool
	dragDX       float64
	dragDY       float64
	target       Rect
	targetOnView bool
	facingLeft   bool
	frames       int
	stopped      bool
}

func New(cfg Config, screenW, screenH float64, rng *rand.Rand) *Kairi {
	k := &Kairi{
		Look:    Classic,
		cfg:     cfg,
		rng:     rng,
		screenW: screenW,
		screenH: screenH,
	}
	k.X = math.Max(cfg.StartMin, math.Min(screenW/2, screenW-cfg.StartMargin))
	k.Y = math.Max(cfg.StartMin, math.Min(screenH/2, screenH-cfg.StartMargin))
	k.VX = (rng.Float64() - 0.5) * 2
	k.VY = (rng.Float64() - 0.5) * 2
	return k
}

func (k *Kairi) Resize(w, h float64) {
	k.screenW, k.screenH = w, h
}

// SetTarget updates the seek target; visible false means bounce freely.
func (k *Kairi) SetTarget(r Rect, visible bool) {
	k.target = r
	k.targetOnView = visible
}

func (k *Kairi) Grab(x, y float64) {
	k.dragging = true
	k.dragDX = x - k.X
	k.dragDY = y - k.Y
}

func (k *Kairi) DragTo(x, y float64) {
	if !k.dragging {
		return
	}
	k.X = x - k.dragDX
	k.Y = y - k.dragDY
}

func (k *Kairi) Release() { k.dragging = false }

func (k *Kairi) Dragging() bool { return k.dragging }

// Contains reports whether a point falls on the pet's body.
func (k *Kairi) Contains(x, y float64) bool {
	return x >= k.X && x < k.X+k.cfg.Width && y >= k.Y && y < k.Y+k.cfg.Height
}

func (k *Kairi) Step() {
	if k.dragging {
		return
	}
	k.frames++

	if k.targetOnView {
		cx, cy := k.target.Center()
		dx := cx - (k.X + k.cfg.Width/2)
		dy := cy - (k.Y + k.cfg.Height/2)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > k.cfg.ArriveDistance {
			k.VX = dx / dist * k.cfg.SeekSpeed
			k.VY = dy / dist * k.cfg.SeekSpeed
		} else {
			k.VX *= k.cfg.Damping
			k.VY *= k.cfg.Damping
		}
	} else {
		if math.Abs(k.VX) < k.cfg.MinSpeed && math.Abs(k.VY) < k.cfg.MinSpeed {
			k.VX = (k.rng.Float64() - 0.5) * 2
			k.VY = (k.rng.Float64() - 0.5) * 2
		}
		if k.X <= 0 || k.X >= k.screenW-k.cfg.EdgeMargin {
			k.VX = -k.VX
		}
		if k.Y <= 0 || k.Y >= k.screenH-k.cfg.EdgeMargin {
			k.VY = -k.VY
			// keep her from bouncing straight up and down
			k.VX += (k.rng.Float64() - 0.5) * k.cfg.Jitter
			if math.Abs(k.VX) < k.cfg.MinSpeed {
				if k.rng.Float64() > 0.5 {
					k.VX = k.cfg.Nudge
				} else {
					k.VX = -k.cfg.Nudge
				}
			}
		}
	}

	k.X += k.VX
	k.Y += k.VY
	k.facingLeft = k.VX < 0
}

func (k *Kairi) Tick(time.Time) bool {
	if k.stopped {
		return false
	}
	k.Step()
	return true
}

// Stop dismisses the pet.
func (k *Kairi) Stop() { k.stopped = true }

func (k *Kairi) Dismissed() bool { return k.stopped }

func (k *Kairi) FacingLeft() bool { return k.facingLeft }

var sprite = [2][]string{
	{
		` /^ ^\  `,
		`/ o o \ `,
		`V\ Y /V `,
		` / - \  `,
		` |    \_`,
		` || (__)`,
	},
	{
		` /^ ^\  `,
		`/ o o \ `,
		`V\ Y /V `,
		` / - \  `,
		` |    \/`,
		` || (__)`,
	},
}

var mirror = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
}

// Sprite returns the current animation frame, facing the way she walks.
func (k *Kairi) Sprite() string {
	frame := sprite[(k.frames/8)%2]
	lines := make([]string, len(frame))
	for i, line := range frame {
		if k.facingLeft {
			lines[i] = flip(line)
		} else {
			lines[i] = line
		}
	}
	return strings.Join(lines, "\n")
}

func flip(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	for i, c := range r {
		if m, ok := mirror[c]; ok {
			r[i] = m
		}
	}
	return string(r)
}
