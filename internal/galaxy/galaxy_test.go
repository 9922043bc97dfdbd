package galaxy

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestDefaultInterests(t *testing.T) {
	in := Default()
	if len(in) != 9 {
		t.Fatalf("expected 9 interests, got %d", len(in))
	}
	if in[0].ID != "music" || in[0].Size != Primary {
		t.Errorf("unexpected first interest %+v", in[0])
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("- {id: a, label: A}\n- {id: a, label: B}\n"))
	if err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := Parse([]byte("[]")); !errors.Is(err, ErrNoInterests) {
		t.Errorf("expected ErrNoInterests, got %v", err)
	}
}

func TestDeviceFor(t *testing.T) {
	tests := []struct {
		width float64
		want  Device
	}{
		{320, VerySmall},
		{400, VerySmall},
		{401, Mobile},
		{767, Mobile},
		{768, Tablet},
		{1024, Tablet},
		{1025, Desktop},
	}
	for _, tt := range tests {
		if got := DeviceFor(tt.width); got != tt.want {
			t.Errorf("DeviceFor(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestNodeSize(t *testing.T) {
	if got := Desktop.NodeSize(Primary); got != 120 {
		t.Errorf("desktop primary: expected 120, got %v", got)
	}
	if got := VerySmall.NodeSize(Tertiary); got != 34 {
		t.Errorf("very small tertiary: expected 34, got %v", got)
	}
	if Mobile.Gap() != 22 || Tablet.Padding() != 70 {
		t.Error("unexpected tier constants")
	}
}

func TestPlace_SpiralNodesStayClear(t *testing.T) {
	in := Default()
	for _, size := range [][2]float64{{1400, 900}, {900, 800}, {600, 700}, {380, 600}} {
		l := Place(in, size[0], size[1])
		if len(l.Nodes) != len(in) {
			t.Fatalf("expected %d nodes, got %d", len(in), len(l.Nodes))
		}
		pad := l.Device.Padding()
		for j, n := range l.Nodes {
			if n.Fallback {
				continue
			}
			if n.X-n.R < pad || n.X+n.R > size[0]-pad || n.Y-n.R < pad || n.Y+n.R > size[1]-pad {
				t.Errorf("%v: node %s outside padding", size, n.ID)
			}
			for i := 0; i < j; i++ {
				p := l.Nodes[i]
				if Collide(n.X, n.Y, n.R, p.X, p.Y, p.R, l.Device.Gap()) {
					t.Errorf("%v: %s collides with earlier %s", size, n.ID, p.ID)
				}
			}
		}
	}
}

func TestPlace_Deterministic(t *testing.T) {
	a := Place(Default(), 1200, 800)
	b := Place(Default(), 1200, 800)
	for i := range a.Nodes {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Y != b.Nodes[i].Y {
			t.Fatalf("node %d moved between runs", i)
		}
	}
}

func TestPlace_FallbackWhenCramped(t *testing.T) {
	l := Place(Default(), 60, 60)
	for _, n := range l.Nodes {
		if !n.Fallback {
			t.Errorf("node %s should not fit in a 60x60 area", n.ID)
		}
	}
}

func TestEdges(t *testing.T) {
	in := []Interest{
		{ID: "a", Connections: []string{"b", "ghost"}},
		{ID: "b", Connections: []string{"a"}},
	}
	edges := Place(in, 1200, 800).Edges()
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %v", edges)
	}
	for _, e := range edges {
		if e.To == "ghost" {
			t.Error("edge to a missing interest")
		}
	}
}

func TestGalaxySelectAndDetail(t *testing.T) {
	g := New(Default(), 160, 50, rand.New(rand.NewSource(1)))

	if err := g.Select("nope"); !errors.Is(err, ErrUnknownInterest) {
		t.Errorf("expected ErrUnknownInterest, got %v", err)
	}
	if err := g.Select("programming"); err != nil {
		t.Fatal(err)
	}
	if g.Selected() != "programming" {
		t.Errorf("expected programming selected, got %s", g.Selected())
	}
	for _, e := range g.Highlighted() {
		if !e.Touches("programming") {
			t.Errorf("highlighted edge %v does not touch the selection", e)
		}
	}

	d, err := g.Detail("programming")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Connected) != 5 {
		t.Errorf("expected 5 connected labels, got %v", d.Connected)
	}
	s := d.String()
	if !strings.Contains(s, "Related Skills: Python") || !strings.Contains(s, "Mathematics") {
		t.Errorf("detail missing sections:\n%s", s)
	}

	g.Close()
	if g.Selected() != "" {
		t.Error("close should clear the selection")
	}
}

func TestGalaxyCursorWraps(t *testing.T) {
	g := New(Default(), 160, 50, rand.New(rand.NewSource(1)))
	g.Prev()
	if g.Cursor().ID != "3d-printing" {
		t.Errorf("expected wrap to last node, got %s", g.Cursor().ID)
	}
	g.Next()
	if g.Cursor().ID != "music" {
		t.Errorf("expected wrap to first node, got %s", g.Cursor().ID)
	}
}

func TestGalaxyRender(t *testing.T) {
	g := New(Default(), 150, 50, rand.New(rand.NewSource(1)))
	lines := g.Render(150, 50).Lines()
	if len(lines) != 50 {
		t.Fatalf("expected 50 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 150 {
			t.Fatalf("row %d has %d cells", i, n)
		}
	}
	if !strings.Contains(strings.Join(lines, "\n"), "[Music]") {
		t.Error("cursor label missing from render")
	}
}
