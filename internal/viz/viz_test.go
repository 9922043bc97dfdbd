package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Fatal("expected dot to be set")
	}
	if c.Grid[1][1] == blank {
		t.Error("cell (1,1) should hold a dot")
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) || c.Grid[1][1] != blank {
		t.Error("expected dot to be cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("out of range dots should be ignored")
			}
		}
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	if !c.IsSet(0, 0) || !c.IsSet(19, 19) {
		t.Error("line should include both endpoints")
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)
	if !c.IsSet(28, 20) || !c.IsSet(12, 20) || !c.IsSet(20, 28) {
		t.Error("circle should pass through its axis points")
	}
	if c.IsSet(20, 20) {
		t.Error("outline should leave the center empty")
	}
	c.FillCircle(20, 20, 3)
	if !c.IsSet(20, 20) {
		t.Error("filled circle should cover the center")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("expected 3 cells, got %q", l)
		}
	}
}

func TestGridOverlay(t *testing.T) {
	g := NewGrid(6, 3)
	g.PutString(0, 0, "abcdef")
	g.Overlay(1, 0, "X Y\n Z")
	want := []string{"aXcYef", "  Z   ", "      "}
	for i, line := range g.Lines() {
		if line != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], line)
		}
	}
	g.Put(99, 0, '!')
	if g.At(99, 0) != ' ' {
		t.Error("out of range reads should be blank")
	}
}

func TestParseHex(t *testing.T) {
	r, g, b := ParseHex("#22A39F")
	if r != 0x22 || g != 0xa3 || b != 0x9f {
		t.Errorf("unexpected channels %d %d %d", r, g, b)
	}
	if r, _, _ := ParseHex("teal"); r != 255 {
		t.Error("invalid hex should read as white")
	}
	if got := HexColor(300, -4, 16); got != "#ff0010" {
		t.Errorf("expected clamped #ff0010, got %s", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(0.5, 10); got != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Errorf("unexpected bar %q", got)
	}
	if got := Bar(2, 4); got != "████" {
		t.Errorf("bar should clamp, got %q", got)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("dream").Primary != ThemeDream.Primary {
		t.Error("expected dream palette")
	}
	if GetTheme("sepia").Name != "light" {
		t.Error("unknown theme should fall back to light")
	}
}

func TestAnimatedSpinner(t *testing.T) {
	first := AnimatedSpinner(0)
	if first == AnimatedSpinner(1) {
		t.Error("consecutive frames should differ")
	}
	if AnimatedSpinner(10) != first {
		t.Error("spinner should cycle every ten frames")
	}
}

func TestBoxWithTitle(t *testing.T) {
	out := BoxWithTitle("Interest", "line one\nline two", 30)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "Interest") {
		t.Errorf("title should come first, got %q", lines[0])
	}
	if !strings.Contains(out, "line two") || !strings.Contains(out, "╭") {
		t.Errorf("content should sit in a rounded box:\n%s", out)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %v", len(Themes), names)
	}
	for _, n := range names {
		if GetTheme(n).Name != n {
			t.Errorf("theme %q does not round-trip through GetTheme", n)
		}
	}
}
