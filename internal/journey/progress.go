package journey

import "math"

// SmallScreen is the widest viewport that pins popups to the top of the
// map instead of beside the marker.
const (
	SmallScreen  = 991
	PopupWidthPc = 30
)

// ScrollProgress maps the section's position to [0, 1]. The journey starts
// when the section top reaches the middle of the viewport and ends when the
// section has scrolled past.
func ScrollProgress(top, sectionHeight, viewportHeight float64) float64 {
	p := 0.0
	if top <= viewportHeight/2 {
		span := sectionHeight - viewportHeight/2
		if span <= 0 {
			return 1
		}
		p = (viewportHeight/2 - top) / span
	}
	return math.Max(0, math.Min(1, p))
}

func (d *Data) StepFloat(progress float64) float64 {
	return progress * float64(len(d.Steps)-1)
}

// StepAt returns the index of the step the progress falls in.
func (d *Data) StepAt(progress float64) int {
	i := int(math.Floor(d.StepFloat(progress)))
	if i >= len(d.Steps) {
		i = len(d.Steps) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

type Vehicle struct {
	Pos     Point
	Driving bool
	// Angle is the heading in degrees, 0 pointing right, clockwise.
	Angle float64
	Left  bool
}

// Glyph is an arrow for the vehicle's heading.
func (v Vehicle) Glyph() rune {
	if !v.Driving {
		return '►'
	}
	arrows := []rune("→↘↓↙←↖↑↗")
	oct := int(math.Round(v.Angle/45)) % 8
	if oct < 0 {
		oct += 8
	}
	return arrows[oct]
}

// VehicleAt places the vehicle for a fractional step. On a transit step it
// moves along the straight line between the cities; elsewhere it sits at
// the step's location. ok is false when the step has no location, in which
// case the vehicle stays where it was.
func (d *Data) VehicleAt(stepFloat float64) (v Vehicle, ok bool) {
	i := int(math.Floor(stepFloat))
	if i < 0 || i >= len(d.Steps) {
		return Vehicle{}, false
	}
	frac := stepFloat - float64(i)
	s := d.Steps[i]

	if s.IsTransit() && frac > 0 {
		from, err1 := d.Position(s.From)
		to, err2 := d.Position(s.To)
		if err1 != nil || err2 != nil {
			return Vehicle{}, false
		}
		angle := math.Atan2(to.Y-from.Y, to.X-from.X)
		return Vehicle{
			Pos: Point{
				X: from.X + (to.X-from.X)*frac,
				Y: from.Y + (to.Y-from.Y)*frac,
			},
			Driving: true,
			Angle:   angle * 180 / math.Pi,
			Left:    math.Abs(angle) > math.Pi/2,
		}, true
	}

	if s.Location == "" {
		return Vehicle{}, false
	}
	pos, err := d.Position(s.Location)
	if err != nil {
		return Vehicle{}, false
	}
	return Vehicle{Pos: pos}, true
}

// ProgressText labels the progress bar for a step.
func ProgressText(s Step) string {
	if s.IsTransit() || s.Company == "" {
		return s.Title
	}
	return s.Company
}

// PopupPosition picks where an experience popup goes, in percent of the
// map. Small screens always use the empty top-right area.
func PopupPosition(marker Point, screenWidth float64) Point {
	if screenWidth <= SmallScreen {
		return Point{X: 35, Y: 5}
	}
	x := marker.X - PopupWidthPc - 3
	if marker.X+PopupWidthPc < 95 {
		x = marker.X + 3
	}
	x = math.Max(2, math.Min(x, 98-PopupWidthPc))
	y := math.Max(2, math.Min(marker.Y-10, 85))
	return Point{X: x, Y: y}
}

// ActiveRoutes lists the routes the vehicle has reached.
func (d *Data) ActiveRoutes(stepFloat float64) []Route {
	var out []Route
	for _, r := range d.Routes() {
		if stepFloat >= float64(r.Step) {
			out = append(out, r)
		}
	}
	return out
}

// Popup formats the experience card for a non-transit step.
type Popup struct {
	Icon     string
	Title    string
	Subtitle string
	Period   string
	Body     string
	GPA      string
	Link     string
	Badge    string
}

func NewPopup(s Step) Popup {
	p := Popup{
		Icon:   s.Icon,
		Title:  s.Title,
		Period: s.Period,
		Body:   s.Description,
		Link:   s.Link,
		Badge:  s.Type,
	}
	if p.Icon == "" {
		p.Icon = "📍"
	}
	if s.Company != "" {
		p.Title = s.Company
		p.Subtitle = s.Title
	}
	if p.Period == "" {
		p.Period = s.Date
	}
	if s.GPA != "" {
		p.GPA = "GPA: " + s.GPA
	}
	return p
}

func (p Popup) Lines() []string {
	lines := []string{p.Icon + " " + p.Title}
	if p.Subtitle != "" {
		lines = append(lines, p.Subtitle)
	}
	if p.Period != "" {
		lines = append(lines, p.Period)
	}
	if p.Body != "" {
		lines = append(lines, p.Body)
	}
	if p.GPA != "" {
		lines = append(lines, p.GPA)
	}
	if p.Link != "" {
		lines = append(lines, p.Link)
	}
	if p.Badge != "" {
		lines = append(lines, "["+p.Badge+"]")
	}
	return lines
}
