package export

import (
	"strings"
	"testing"

	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/journey"
	"github.com/san-kum/cheddar/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 4, "#fff") != "" {
		t.Error("nil canvas should export nothing")
	}
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 4, "#22A39F")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected size in %s", svg[:120])
	}
}

func TestGalaxySVG(t *testing.T) {
	l := galaxy.Place(galaxy.Default(), 1200, 800)
	svg := GalaxySVG(l, viz.ThemeDark, "music")

	if n := strings.Count(svg, "<line"); n != len(l.Edges()) {
		t.Errorf("expected %d lines, got %d", len(l.Edges()), n)
	}
	if n := strings.Count(svg, "<circle"); n != len(l.Nodes) {
		t.Errorf("expected %d nodes, got %d", len(l.Nodes), n)
	}
	if !strings.Contains(svg, "3D Printing") {
		t.Error("labels missing")
	}
	if !strings.Contains(svg, string(viz.ThemeDark.Accent)) {
		t.Error("highlighted edges should use the accent colour")
	}
}

func TestJourneySVG(t *testing.T) {
	j := journey.New(journey.Default())
	svg := JourneySVG(j, viz.ThemeLight)
	if strings.Count(svg, "<path") != 3 {
		t.Error("expected one path per transit step")
	}
	if strings.Contains(svg, `id="vehicle"`) {
		t.Error("vehicle hidden at the start")
	}
	if !strings.Contains(svg, " Q ") {
		t.Error("routes should be quadratic curves")
	}

	j.SetProgress(1)
	svg = JourneySVG(j, viz.ThemeLight)
	if !strings.Contains(svg, `id="vehicle"`) {
		t.Error("vehicle shown once the journey starts")
	}
	if strings.Contains(svg, "stroke-dasharray") {
		t.Error("every route is active at the end")
	}
}
