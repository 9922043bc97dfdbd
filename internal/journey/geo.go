package journey

import "math"

// The map is a 4x4 block of zoom-7 web-mercator tiles starting at tile
// (29, 48), 256 px per tile.
const (
	Zoom     = 7
	OriginX  = 29
	OriginY  = 48
	Tiles    = 4
	TileSize = 256
	GridPX   = Tiles * TileSize

	// CurveLift raises each route's control point above the midpoint.
	CurveLift = 40
)

// Point is a position in percent of the tile grid.
type Point struct{ X, Y float64 }

func TilePercent(lat, lng float64) Point {
	n := math.Pow(2, Zoom)
	xTile := (lng + 180) / 360 * n
	latRad := lat * math.Pi / 180
	yTile := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n
	return Point{
		X: (xTile - OriginX) / Tiles * 100,
		Y: (yTile - OriginY) / Tiles * 100,
	}
}

// Pixels converts a percent position to tile-grid pixels.
func (p Point) Pixels() (float64, float64) {
	return p.X / 100 * GridPX, p.Y / 100 * GridPX
}

func (d *Data) Position(city string) (Point, error) {
	loc, ok := d.Locations[city]
	if !ok {
		return Point{}, ErrUnknownCity
	}
	return TilePercent(loc.Lat, loc.Lng), nil
}

// Route is the curve drawn for one transit step, in tile-grid pixels.
type Route struct {
	Step   int
	ID     string
	X0, Y0 float64
	CX, CY float64
	X1, Y1 float64
}

// At evaluates the quadratic curve at t in [0, 1].
func (r Route) At(t float64) (float64, float64) {
	u := 1 - t
	x := u*u*r.X0 + 2*u*t*r.CX + t*t*r.X1
	y := u*u*r.Y0 + 2*u*t*r.CY + t*t*r.Y1
	return x, y
}

func (d *Data) Routes() []Route {
	var out []Route
	for i, s := range d.Steps {
		if !s.IsTransit() {
			continue
		}
		from, err := d.Position(s.From)
		if err != nil {
			continue
		}
		to, err := d.Position(s.To)
		if err != nil {
			continue
		}
		x0, y0 := from.Pixels()
		x1, y1 := to.Pixels()
		out = append(out, Route{
			Step: i,
			ID:   s.ID,
			X0:   x0, Y0: y0,
			CX: (x0 + x1) / 2, CY: (y0+y1)/2 - CurveLift,
			X1: x1, Y1: y1,
		})
	}
	return out
}
