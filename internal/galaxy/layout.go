package galaxy

import "math"

const MaxAttempts = 50

// Device is the viewport class the layout is tuned for.
type Device int

const (
	VerySmall Device = iota
	Mobile
	Tablet
	Desktop
)

func (d Device) String() string {
	switch d {
	case VerySmall:
		return "very-small"
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

func DeviceFor(width float64) Device {
	switch {
	case width <= 400:
		return VerySmall
	case width <= 767:
		return Mobile
	case width <= 1024:
		return Tablet
	default:
		return Desktop
	}
}

type tier struct {
	nodes        [3]float64
	base         [3]float64
	gap          float64
	padding      float64
	step         float64
	fallback     float64
	fallbackStep float64
}

var tiers = [...]tier{
	VerySmall: {nodes: [3]float64{52, 42, 34}, base: [3]float64{50, 90, 120}, gap: 18, padding: 40, step: 6, fallback: 60, fallbackStep: 8},
	Mobile:    {nodes: [3]float64{60, 48, 38}, base: [3]float64{70, 115, 150}, gap: 22, padding: 50, step: 8, fallback: 80, fallbackStep: 10},
	Tablet:    {nodes: [3]float64{85, 65, 50}, base: [3]float64{110, 155, 195}, gap: 20, padding: 70, step: 10, fallback: 120, fallbackStep: 12},
	Desktop:   {nodes: [3]float64{120, 90, 70}, base: [3]float64{190, 240, 280}, gap: 20, padding: 80, step: 15, fallback: 270, fallbackStep: 15},
}

func (d Device) NodeSize(s Size) float64 { return tiers[d].nodes[s.rank()] }
func (d Device) Gap() float64            { return tiers[d].gap }
func (d Device) Padding() float64        { return tiers[d].padding }

// Node is a placed interest. Fallback marks nodes the spiral search could
// not fit; they may overlap their neighbours.
type Node struct {
	Interest
	X, Y     float64
	R        float64
	Fallback bool
}

type Layout struct {
	Width, Height float64
	Device        Device
	Nodes         []Node
}

// Place lays the interests out around the centre of a width x height area,
// each one at the first spiral candidate that stays inside the padding and
// clears every node placed before it.
func Place(interests []Interest, width, height float64) *Layout {
	d := DeviceFor(width)
	t := tiers[d]
	cx, cy := width/2, height/2
	n := float64(len(interests))

	l := &Layout{Width: width, Height: height, Device: d, Nodes: make([]Node, 0, len(interests))}
	for i, in := range interests {
		r := d.NodeSize(in.Size) / 2
		maxRadius := math.Min(
			math.Min(cx-r-t.padding, cy-r-t.padding),
			math.Min(width-cx-r-t.padding, height-cy-r-t.padding),
		)
		base := float64(i) / n * 2 * math.Pi

		node := Node{Interest: in, R: r}
		placed := false
		for a := 0; a < MaxAttempts; a++ {
			angle := base + float64(a)/MaxAttempts*math.Pi*0.5
			radius := math.Min(t.base[in.Size.rank()]+float64(a)*t.step, maxRadius)
			x := cx + radius*math.Cos(angle)
			y := cy + radius*math.Sin(angle)

			if x-r < t.padding || x+r > width-t.padding || y-r < t.padding || y+r > height-t.padding {
				continue
			}
			if l.collides(x, y, r, t.gap) {
				continue
			}
			node.X, node.Y = x, y
			placed = true
			break
		}
		if !placed {
			radius := math.Min(t.fallback+float64(i)*t.fallbackStep, maxRadius)
			node.X = cx + radius*math.Cos(base)
			node.Y = cy + radius*math.Sin(base)
			node.Fallback = true
		}
		l.Nodes = append(l.Nodes, node)
	}
	return l
}

func (l *Layout) collides(x, y, r, gap float64) bool {
	for _, p := range l.Nodes {
		if Collide(x, y, r, p.X, p.Y, p.R, gap) {
			return true
		}
	}
	return false
}

// Collide reports whether two circles come closer than gap.
func Collide(x1, y1, r1, x2, y2, r2, gap float64) bool {
	return math.Hypot(x2-x1, y2-y1) < r1+r2+gap
}

func (l *Layout) Node(id string) (*Node, bool) {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i], true
		}
	}
	return nil, false
}

type Edge struct {
	From, To string
}

// Edges lists one edge per declared connection whose target exists.
func (l *Layout) Edges() []Edge {
	var out []Edge
	for _, n := range l.Nodes {
		for _, to := range n.Connections {
			if _, ok := l.Node(to); ok {
				out = append(out, Edge{From: n.ID, To: to})
			}
		}
	}
	return out
}

func (e Edge) Touches(id string) bool { return e.From == id || e.To == id }
