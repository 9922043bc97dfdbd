package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/journey"
	"github.com/san-kum/cheddar/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64, bg string) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// CanvasToSVG converts a braille canvas to one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}
	dotsW, dotsH := canvas.Dots()

	var sb strings.Builder
	header(&sb, float64(dotsW)*scale, float64(dotsH)*scale, background)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", color)

	r := scale * 0.4
	for y := 0; y < dotsH; y++ {
		for x := 0; x < dotsW; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// GalaxySVG draws the interest layout: connection lines, then one circle
// and label per node. Edges touching highlight are drawn in the accent
// colour.
func GalaxySVG(l *galaxy.Layout, theme viz.Theme, highlight string) string {
	var sb strings.Builder
	header(&sb, l.Width, l.Height, string(theme.Background))

	sb.WriteString("<g stroke-width=\"2\">\n")
	for _, e := range l.Edges() {
		a, _ := l.Node(e.From)
		b, _ := l.Node(e.To)
		color, dash := string(theme.Muted), ` stroke-dasharray="4 4"`
		if highlight != "" && e.Touches(highlight) {
			color, dash = string(theme.Accent), ""
		}
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"%s/>\n",
			a.X, a.Y, b.X, b.Y, color, dash)
	}
	sb.WriteString("</g>\n")

	for _, n := range l.Nodes {
		fill := string(theme.Primary)
		switch n.Size {
		case galaxy.Secondary:
			fill = string(theme.Secondary)
		case galaxy.Tertiary:
			fill = string(theme.Muted)
		}
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\" fill-opacity=\"0.8\"/>\n",
			n.X, n.Y, n.R, fill)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"12\" text-anchor=\"middle\">%s</text>\n",
			n.X, n.Y+4, theme.Text, html.EscapeString(n.Label))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// JourneySVG draws the tile grid with the route curves, city markers and,
// when progress is past the start, the vehicle.
func JourneySVG(j *journey.Journey, theme viz.Theme) string {
	d := j.Data()
	var sb strings.Builder
	header(&sb, journey.GridPX, journey.GridPX, string(theme.Background))

	active := make(map[string]bool)
	for _, r := range d.ActiveRoutes(d.StepFloat(j.Progress())) {
		active[r.ID] = true
	}
	for _, r := range d.Routes() {
		color, dash := string(theme.Muted), ` stroke-dasharray="8 6"`
		if active[r.ID] {
			color, dash = string(theme.Accent), ""
		}
		fmt.Fprintf(&sb, "<path id=\"route-%s\" d=\"M %.1f %.1f Q %.1f %.1f %.1f %.1f\" fill=\"none\" stroke=\"%s\" stroke-width=\"3\"%s/>\n",
			r.ID, r.X0, r.Y0, r.CX, r.CY, r.X1, r.Y1, color, dash)
	}

	for _, k := range sortedKeys(d.Locations) {
		pos, _ := d.Position(k)
		x, y := pos.Pixels()
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"6\" fill=\"%s\"/>\n", x, y, theme.Primary)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"14\">%s</text>\n",
			x+10, y+5, theme.Text, html.EscapeString(d.Locations[k].Name))
	}

	if j.Progress() > 0 {
		v := j.Vehicle()
		x, y := v.Pos.Pixels()
		fmt.Fprintf(&sb, "<circle id=\"vehicle\" cx=\"%.1f\" cy=\"%.1f\" r=\"9\" fill=\"%s\"/>\n", x, y, theme.Warning)
	}
	sb.WriteString("</svg>")
	return sb.String()
}
