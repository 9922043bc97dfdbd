package journey

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Cumulative returns the miles travelled after each step.
func (d *Data) Cumulative() []float64 {
	out := make([]float64, len(d.Steps))
	total := 0.0
	for i, s := range d.Steps {
		if s.IsTransit() {
			total += s.Distance
		}
		out[i] = total
	}
	return out
}

func (d *Data) Chart(width, height int) string {
	st := d.Stats()
	return asciigraph.Plot(d.Cumulative(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("miles travelled (%d cities, %.0f mi)", st.Cities, st.Miles)),
	)
}
