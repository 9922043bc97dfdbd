package journey

import (
	"sort"

	"github.com/san-kum/cheddar/internal/effects"
	"github.com/san-kum/cheddar/internal/viz"
)

const routeSamples = 32

// Journey tracks the reader's progress through the map.
type Journey struct {
	data     *Data
	progress float64
	vehicle  Vehicle
}

func New(d *Data) *Journey {
	j := &Journey{data: d}
	for i := range d.Steps {
		if v, ok := d.VehicleAt(float64(i)); ok {
			j.vehicle = v
			break
		}
	}
	return j
}

func (j *Journey) Data() *Data { return j.data }

func (j *Journey) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	j.progress = p
	if v, ok := j.data.VehicleAt(j.data.StepFloat(p)); ok {
		j.vehicle = v
	}
}

func (j *Journey) Scroll(delta float64) { j.SetProgress(j.progress + delta) }
func (j *Journey) Progress() float64    { return j.progress }
func (j *Journey) Vehicle() Vehicle     { return j.vehicle }

func (j *Journey) Step() (int, Step) {
	i := j.data.StepAt(j.progress)
	return i, j.data.Steps[i]
}

// Popup returns the card for the current step. There is none at the start
// or while in transit.
func (j *Journey) Popup() (Popup, bool) {
	if j.progress == 0 {
		return Popup{}, false
	}
	_, s := j.Step()
	if s.IsTransit() {
		return Popup{}, false
	}
	return NewPopup(s), true
}

func (j *Journey) Label() string {
	if j.progress == 0 {
		return "Start"
	}
	_, s := j.Step()
	return ProgressText(s)
}

// Render draws routes, city markers, the vehicle and the current popup
// into a cols x rows grid.
func (j *Journey) Render(cols, rows int) *viz.Grid {
	grid := viz.NewGrid(cols, rows)
	c := viz.NewCanvas(cols, rows)
	dx := float64(cols*2) / GridPX
	dy := float64(rows*4) / GridPX

	active := make(map[string]bool)
	for _, r := range j.data.ActiveRoutes(j.data.StepFloat(j.progress)) {
		active[r.ID] = true
	}
	for _, r := range j.data.Routes() {
		px, py := r.At(0)
		for k := 1; k <= routeSamples; k++ {
			x, y := r.At(float64(k) / routeSamples)
			x0, y0, x1, y1 := int(px*dx), int(py*dy), int(x*dx), int(y*dy)
			if active[r.ID] {
				c.DrawLine(x0, y0, x1, y1)
			} else if k%2 == 0 {
				c.DrawLine(x0, y0, x1, y1)
			}
			px, py = x, y
		}
	}
	grid.Stamp(0, 0, c)

	cell := func(p Point) (int, int) {
		return int(p.X / 100 * float64(cols)), int(p.Y / 100 * float64(rows))
	}
	keys := make([]string, 0, len(j.data.Locations))
	for key := range j.data.Locations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		loc := j.data.Locations[key]
		pos, _ := j.data.Position(key)
		x, y := cell(pos)
		grid.Put(x, y, '●')
		grid.PutString(x+2, y, loc.Name)
	}

	vx, vy := cell(j.vehicle.Pos)
	grid.Put(vx, vy, j.vehicle.Glyph())

	if p, ok := j.Popup(); ok {
		_, s := j.Step()
		marker, err := j.data.Position(s.Location)
		if err == nil {
			at := PopupPosition(marker, float64(cols*effects.CellPX))
			x, y := cell(at)
			width := cols * PopupWidthPc / 100
			for i, line := range p.Lines() {
				r := []rune(line)
				if width > 1 && len(r) > width {
					r = append(r[:width-1], '…')
				}
				grid.PutString(x, y+i, string(r))
			}
		}
	}
	return grid
}
