// Package game is the small first-person maze opened by the console's
// doom command.
package game

import (
	"math"
	"strings"
	"time"
)

const (
	FOV       = math.Pi / 3
	MaxDepth  = 16.0
	MoveStep  = 0.25
	TurnStep  = math.Pi / 24
	rayStep   = 0.02
	playerR   = 0.2
	shadeWall = "█▓▒░"
)

var defaultWorld = []string{
	"################",
	"#..............#",
	"#..##......##..#",
	"#..#........#..#",
	"#......##......#",
	"#......##......#",
	"#..#........#..#",
	"#..##......##..#",
	"#..............#",
	"######....######",
	"#..............#",
	"#..............#",
	"################",
}

// Game is the player's position and heading in a grid world. '#' cells
// are walls.
type Game struct {
	world   []string
	X, Y    float64
	Angle   float64
	closed  bool
	frames  int
	flashed int
}

func New() *Game {
	return &Game{world: defaultWorld, X: 8, Y: 10.5, Angle: -math.Pi / 2}
}

func (g *Game) wall(x, y float64) bool {
	row, col := int(y), int(x)
	if row < 0 || row >= len(g.world) || col < 0 || col >= len(g.world[row]) {
		return true
	}
	return g.world[row][col] == '#'
}

// Move walks along the heading, refusing to step into a wall.
func (g *Game) Move(d float64) {
	nx := g.X + math.Cos(g.Angle)*d
	ny := g.Y + math.Sin(g.Angle)*d
	if !g.wall(nx+math.Copysign(playerR, nx-g.X), g.Y) {
		g.X = nx
	}
	if !g.wall(g.X, ny+math.Copysign(playerR, ny-g.Y)) {
		g.Y = ny
	}
}

func (g *Game) Turn(a float64) {
	g.Angle = math.Mod(g.Angle+a, 2*math.Pi)
}

func (g *Game) Fire() { g.flashed = 3 }

// Key applies one key press and reports whether the game should close.
func (g *Game) Key(k string) bool {
	switch k {
	case "w", "up":
		g.Move(MoveStep)
	case "s", "down":
		g.Move(-MoveStep)
	case "a", "left":
		g.Turn(-TurnStep)
	case "d", "right":
		g.Turn(TurnStep)
	case " ", "f":
		g.Fire()
	case "q", "esc":
		g.Stop()
		return true
	}
	return false
}

// Cast returns the distance to the first wall along angle.
func (g *Game) Cast(angle float64) float64 {
	dx, dy := math.Cos(angle), math.Sin(angle)
	for d := 0.0; d < MaxDepth; d += rayStep {
		if g.wall(g.X+dx*d, g.Y+dy*d) {
			return d
		}
	}
	return MaxDepth
}

// Render draws the view as cols x rows characters: ceiling, shaded walls
// and a dotted floor, with a crosshair in the middle.
func (g *Game) Render(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	screen := make([][]rune, rows)
	for i := range screen {
		screen[i] = []rune(strings.Repeat(" ", cols))
	}
	shades := []rune(shadeWall)
	for x := 0; x < cols; x++ {
		ray := g.Angle - FOV/2 + float64(x)/float64(cols)*FOV
		d := g.Cast(ray) * math.Cos(ray-g.Angle)
		if d < 0.1 {
			d = 0.1
		}
		ceiling := int(float64(rows)/2 - float64(rows)/d)
		floor := rows - ceiling

		shade := ' '
		if d < MaxDepth {
			shade = shades[min(len(shades)-1, int(d/MaxDepth*4*float64(len(shades))/2))]
		}
		for y := 0; y < rows; y++ {
			switch {
			case y < ceiling:
				screen[y][x] = ' '
			case y <= floor:
				screen[y][x] = shade
			default:
				b := float64(y-rows/2) / (float64(rows) / 2)
				switch {
				case b > 0.75:
					screen[y][x] = '#'
				case b > 0.5:
					screen[y][x] = '='
				case b > 0.25:
					screen[y][x] = '-'
				default:
					screen[y][x] = '.'
				}
			}
		}
	}
	cy, cx := rows/2, cols/2
	screen[cy][cx] = '+'
	if g.flashed > 0 && rows > 2 {
		screen[rows-1][cx] = '*'
	}

	lines := make([]string, rows)
	for i, r := range screen {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

func (g *Game) Tick(time.Time) bool {
	if g.closed {
		return false
	}
	g.frames++
	if g.flashed > 0 {
		g.flashed--
	}
	return true
}

func (g *Game) Stop()        { g.closed = true }
func (g *Game) Closed() bool { return g.closed }
