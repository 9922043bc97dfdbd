package viz

import "strings"

// Grid is a plain rune surface for composing layers (labels, sprites,
// rain) cell by cell before styling.
type Grid struct {
	Width, Height int
	cells         [][]rune
}

func NewGrid(w, h int) *Grid {
	g := &Grid{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", w))
	}
	return g
}

func (g *Grid) Put(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.cells[y][x] = r
}

func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return ' '
	}
	return g.cells[y][x]
}

// PutString writes s starting at (x, y), clipping at the edges.
func (g *Grid) PutString(x, y int, s string) {
	for i, r := range []rune(s) {
		g.Put(x+i, y, r)
	}
}

// Overlay stamps a multi-line block; spaces in the block are transparent.
func (g *Grid) Overlay(x, y int, block string) {
	for dy, line := range strings.Split(block, "\n") {
		for dx, r := range []rune(line) {
			if r != ' ' {
				g.Put(x+dx, y+dy, r)
			}
		}
	}
}

// Stamp copies a braille canvas, skipping empty cells.
func (g *Grid) Stamp(x, y int, c *Canvas) {
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r != blank {
				g.Put(x+col, y+row, r)
			}
		}
	}
}

func (g *Grid) Lines() []string {
	lines := make([]string, g.Height)
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return lines
}

func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
