package journey

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestDefaultSortedStably(t *testing.T) {
	d := Default()
	if d.Steps[0].ID != "first-code" {
		t.Errorf("undated step should sort first, got %s", d.Steps[0].ID)
	}
	// same date keeps file order
	var order []string
	for _, s := range d.Steps {
		if s.Date == "2014-08" {
			order = append(order, s.ID)
		}
	}
	if len(order) != 2 || order[0] != "to-fayetteville" || order[1] != "university" {
		t.Errorf("unexpected order for equal dates: %v", order)
	}
	for i := 1; i < len(d.Steps); i++ {
		if d.Steps[i-1].sortKey() > d.Steps[i].sortKey() {
			t.Fatalf("steps out of order at %d", i)
		}
	}
}

func TestParseUnknownCity(t *testing.T) {
	src := `
locations:
  a: { name: A, lat: 36, lng: -95 }
journey:
  - { id: t, type: transit, from: a, to: b }
`
	if _, err := Parse([]byte(src)); !errors.Is(err, ErrUnknownCity) {
		t.Errorf("expected ErrUnknownCity, got %v", err)
	}
	if _, err := Parse([]byte("locations: {}\njourney: []\n")); !errors.Is(err, ErrNoSteps) {
		t.Errorf("expected ErrNoSteps, got %v", err)
	}
}

func TestStats(t *testing.T) {
	st := Default().Stats()
	if st.Cities != 4 {
		t.Errorf("expected 4 cities, got %d", st.Cities)
	}
	if st.Miles != 926 {
		t.Errorf("expected 926 miles, got %v", st.Miles)
	}
	if st.Experiences != 9 {
		t.Errorf("expected 9 experiences, got %d", st.Experiences)
	}
}

func TestTilePercent(t *testing.T) {
	tulsa := TilePercent(36.1539, -95.9928)
	if !near(tulsa.X, 21.7, 0.2) || !near(tulsa.Y, 54.8, 0.3) {
		t.Errorf("unexpected Tulsa position %+v", tulsa)
	}
	origin := TilePercent(85.0511, -180+OriginX*360.0/128)
	if !near(origin.X, 0, 1e-9) {
		t.Errorf("tile origin should map to x=0, got %v", origin.X)
	}
	op := TilePercent(38.9822, -94.6708)
	if op.Y >= tulsa.Y {
		t.Error("Overland Park is north of Tulsa and should sit higher on the map")
	}
}

func TestRoutes(t *testing.T) {
	d := Default()
	routes := d.Routes()
	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(routes))
	}
	r := routes[0]
	if !near(r.CY, (r.Y0+r.Y1)/2-CurveLift, 1e-9) {
		t.Error("control point should sit above the midpoint")
	}
	x, y := r.At(0)
	if x != r.X0 || y != r.Y0 {
		t.Error("curve should start at the origin city")
	}
	x, y = r.At(1)
	if !near(x, r.X1, 1e-9) || !near(y, r.Y1, 1e-9) {
		t.Error("curve should end at the destination city")
	}
}

func TestScrollProgress(t *testing.T) {
	tests := []struct {
		top, height, vh float64
		want            float64
	}{
		{800, 2000, 800, 0},
		{400, 2000, 800, 0},
		{-400, 2000, 800, 0.5},
		{-5000, 2000, 800, 1},
		{0, 200, 800, 1},
	}
	for _, tt := range tests {
		if got := ScrollProgress(tt.top, tt.height, tt.vh); !near(got, tt.want, 1e-9) {
			t.Errorf("ScrollProgress(%v, %v, %v) = %v, want %v", tt.top, tt.height, tt.vh, got, tt.want)
		}
	}
}

func TestVehicleAt(t *testing.T) {
	d := Default()
	var transit int
	for i, s := range d.Steps {
		if s.IsTransit() {
			transit = i
			break
		}
	}
	from, _ := d.Position(d.Steps[transit].From)
	to, _ := d.Position(d.Steps[transit].To)

	v, ok := d.VehicleAt(float64(transit) + 0.5)
	if !ok || !v.Driving {
		t.Fatal("expected the vehicle to be driving mid-transit")
	}
	if !near(v.Pos.X, (from.X+to.X)/2, 1e-9) || !near(v.Pos.Y, (from.Y+to.Y)/2, 1e-9) {
		t.Errorf("expected midpoint, got %+v", v.Pos)
	}
	if v.Left {
		t.Error("Tulsa to Fayetteville heads east")
	}

	if _, ok := d.VehicleAt(float64(transit)); ok {
		t.Error("a transit step with no progress has no location of its own")
	}
	v, ok = d.VehicleAt(0)
	if !ok || v.Driving || v.Glyph() != '►' {
		t.Error("on an experience step the vehicle is parked")
	}
}

func TestVehicleGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '→'},
		{90, '↓'},
		{180, '←'},
		{-90, '↑'},
		{-135, '↖'},
	}
	for _, tt := range tests {
		if got := (Vehicle{Driving: true, Angle: tt.angle}).Glyph(); got != tt.want {
			t.Errorf("angle %v: expected %c, got %c", tt.angle, tt.want, got)
		}
	}
}

func TestPopupPosition(t *testing.T) {
	if got := PopupPosition(Point{X: 50, Y: 50}, 800); got != (Point{X: 35, Y: 5}) {
		t.Errorf("small screen: got %+v", got)
	}
	if got := PopupPosition(Point{X: 20, Y: 50}, 1400); got != (Point{X: 23, Y: 40}) {
		t.Errorf("room on the right: got %+v", got)
	}
	if got := PopupPosition(Point{X: 80, Y: 5}, 1400); got != (Point{X: 47, Y: 2}) {
		t.Errorf("flip to the left: got %+v", got)
	}
}

func TestNewPopup(t *testing.T) {
	p := NewPopup(Step{Type: "education", Title: "B.S.", Company: "Uni", GPA: "3.7", Date: "2014"})
	if p.Title != "Uni" || p.Subtitle != "B.S." || p.Period != "2014" || p.GPA != "GPA: 3.7" || p.Icon != "📍" {
		t.Errorf("unexpected popup %+v", p)
	}
	if ProgressText(Step{Type: Transit, Title: "Heading east", Company: "x"}) != "Heading east" {
		t.Error("transit steps are labelled by title")
	}
}

func TestJourneyScroll(t *testing.T) {
	j := New(Default())
	if j.Label() != "Start" {
		t.Errorf("expected Start, got %s", j.Label())
	}
	if _, ok := j.Popup(); ok {
		t.Error("no popup at the start")
	}
	j.Scroll(2)
	if j.Progress() != 1 {
		t.Errorf("progress should clamp to 1, got %v", j.Progress())
	}
	i, s := j.Step()
	if i != len(j.Data().Steps)-1 || s.ID != "homelab" {
		t.Errorf("expected the last step, got %d %s", i, s.ID)
	}
	if _, ok := j.Popup(); !ok {
		t.Error("expected a popup on the last step")
	}
	j.Scroll(-5)
	if j.Progress() != 0 {
		t.Error("progress should clamp to 0")
	}
}

func TestJourneyRender(t *testing.T) {
	j := New(Default())
	j.SetProgress(0.5)
	g := j.Render(120, 40)
	out := g.String()
	if len(g.Lines()) != 40 {
		t.Fatalf("expected 40 rows, got %d", len(g.Lines()))
	}
	if !strings.Contains(out, "Tulsa, OK") || !strings.Contains(out, "●") {
		t.Error("city markers missing")
	}
}

func TestChart(t *testing.T) {
	d := Default()
	c := d.Cumulative()
	if c[len(c)-1] != 926 {
		t.Errorf("expected 926 cumulative miles, got %v", c[len(c)-1])
	}
	if !strings.Contains(d.Chart(40, 6), "miles travelled") {
		t.Error("chart caption missing")
	}
}
