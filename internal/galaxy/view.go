package galaxy

import (
	"math/rand"
	"strings"

	"github.com/san-kum/cheddar/internal/effects"
	"github.com/san-kum/cheddar/internal/viz"
)

// Galaxy is the interactive view state: the current layout, the hovered
// node and the node whose detail panel is open.
type Galaxy struct {
	interests []Interest
	layout    *Layout
	cursor    int
	selected  string
	stars     []Star
}

type Star struct{ X, Y float64 }

// New lays out interests over a cols x rows terminal area.
func New(interests []Interest, cols, rows int, rng *rand.Rand) *Galaxy {
	g := &Galaxy{interests: interests}
	g.stars = make([]Star, 100)
	for i := range g.stars {
		g.stars[i] = Star{X: rng.Float64(), Y: rng.Float64()}
	}
	g.Resize(cols, rows)
	return g
}

func (g *Galaxy) Resize(cols, rows int) {
	g.layout = Place(g.interests, float64(cols*effects.CellPX), float64(rows*effects.CellPY))
}

func (g *Galaxy) Layout() *Layout { return g.layout }

func (g *Galaxy) Cursor() *Node {
	if len(g.layout.Nodes) == 0 {
		return nil
	}
	return &g.layout.Nodes[g.cursor]
}

func (g *Galaxy) Next() { g.move(1) }
func (g *Galaxy) Prev() { g.move(-1) }

func (g *Galaxy) move(d int) {
	n := len(g.layout.Nodes)
	if n == 0 {
		return
	}
	g.cursor = (g.cursor + d + n) % n
}

func (g *Galaxy) Select(id string) error {
	for i, n := range g.layout.Nodes {
		if n.ID == id {
			g.cursor = i
			g.selected = id
			return nil
		}
	}
	return ErrUnknownInterest
}

func (g *Galaxy) SelectCursor() {
	if n := g.Cursor(); n != nil {
		g.selected = n.ID
	}
}

func (g *Galaxy) Close()           { g.selected = "" }
func (g *Galaxy) Selected() string { return g.selected }

// Highlighted returns the edges touching the selected node, or the node
// under the cursor when nothing is selected.
func (g *Galaxy) Highlighted() []Edge {
	id := g.selected
	if id == "" {
		if n := g.Cursor(); n != nil {
			id = n.ID
		}
	}
	var out []Edge
	for _, e := range g.layout.Edges() {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Detail is the content of the side panel for one interest.
type Detail struct {
	Interest  Interest
	Connected []string
}

func (g *Galaxy) Detail(id string) (Detail, error) {
	n, ok := g.layout.Node(id)
	if !ok {
		return Detail{}, ErrUnknownInterest
	}
	d := Detail{Interest: n.Interest}
	for _, c := range n.Connections {
		if other, ok := g.layout.Node(c); ok {
			d.Connected = append(d.Connected, other.Label)
		}
	}
	return d, nil
}

func (d Detail) String() string {
	var sb strings.Builder
	sb.WriteString(d.Interest.Icon + " " + d.Interest.Label + "\n")
	for _, s := range d.Interest.Stats {
		sb.WriteString("  " + s.Label + ": " + s.Value + "\n")
	}
	sb.WriteString("\n" + d.Interest.Description + "\n")
	if d.Interest.Details != "" {
		sb.WriteString("\nDetails: " + d.Interest.Details + "\n")
	}
	if len(d.Interest.RelatedSkills) > 0 {
		sb.WriteString("\nRelated Skills: " + strings.Join(d.Interest.RelatedSkills, ", ") + "\n")
	}
	if len(d.Connected) > 0 {
		sb.WriteString("\nConnected Interests: " + strings.Join(d.Connected, ", ") + "\n")
	}
	return sb.String()
}

// Render draws the galaxy into a cols x rows grid: stars, connection
// lines (solid when highlighted), node rings and labels.
func (g *Galaxy) Render(cols, rows int) *viz.Grid {
	const sx, sy = effects.CellPX / 2, effects.CellPY / 4

	grid := viz.NewGrid(cols, rows)
	for _, s := range g.stars {
		grid.Put(int(s.X*float64(cols)), int(s.Y*float64(rows)), '·')
	}

	hot := make(map[Edge]bool)
	for _, e := range g.Highlighted() {
		hot[e] = true
	}

	c := viz.NewCanvas(cols, rows)
	for _, e := range g.layout.Edges() {
		a, _ := g.layout.Node(e.From)
		b, _ := g.layout.Node(e.To)
		x0, y0 := int(a.X/sx), int(a.Y/sy)
		x1, y1 := int(b.X/sx), int(b.Y/sy)
		if hot[e] {
			c.DrawLine(x0, y0, x1, y1)
		} else {
			c.DrawDashed(x0, y0, x1, y1, 3)
		}
	}
	for _, n := range g.layout.Nodes {
		cx, cy, r := int(n.X/sx), int(n.Y/sy), int(n.R/sx)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx*dx+dy*dy <= r*r {
					c.Unset(cx+dx, cy+dy)
				}
			}
		}
		c.DrawCircle(cx, cy, r)
	}
	grid.Stamp(0, 0, c)

	for i, n := range g.layout.Nodes {
		label := n.Label
		if i == g.cursor {
			label = "[" + label + "]"
		}
		col := int(n.X/effects.CellPX) - len([]rune(label))/2
		row := int(n.Y / effects.CellPY)
		grid.PutString(col, row, label)
	}
	return grid
}
