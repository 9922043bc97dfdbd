package game

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestCastHitsWall(t *testing.T) {
	g := New()
	g.X, g.Y, g.Angle = 1.5, 1.5, 0
	d := g.Cast(0)
	if d < 13 || d > 14.6 {
		t.Errorf("expected the east wall about 13.5 away, got %v", d)
	}
	if up := g.Cast(-math.Pi / 2); up > 0.6 {
		t.Errorf("expected the north wall right above, got %v", up)
	}
}

func TestMoveStopsAtWalls(t *testing.T) {
	g := New()
	g.X, g.Y, g.Angle = 1.5, 1.5, math.Pi
	for i := 0; i < 20; i++ {
		g.Move(MoveStep)
	}
	if g.X < 1 {
		t.Errorf("walked through the wall: x=%v", g.X)
	}
}

func TestKey(t *testing.T) {
	g := New()
	y := g.Y
	g.Key("w")
	if g.Y >= y {
		t.Error("w should walk north from the start")
	}
	a := g.Angle
	g.Key("d")
	if g.Angle == a {
		t.Error("d should turn")
	}
	if !g.Key("q") || !g.Closed() {
		t.Error("q should close the game")
	}
	if g.Tick(time.Now()) {
		t.Error("a closed game stops ticking")
	}
}

func TestRenderSize(t *testing.T) {
	g := New()
	out := g.Render(60, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 60 {
			t.Fatalf("row %d has %d cells", i, n)
		}
	}
	if !strings.ContainsAny(out, shadeWall) {
		t.Error("expected some wall in view")
	}
	if g.Render(0, 10) != "" {
		t.Error("empty view for a zero-width screen")
	}
}
