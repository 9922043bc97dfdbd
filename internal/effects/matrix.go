package effects

import (
	"math/rand"
	"time"
)

const matrixGlyphs = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type MatrixConfig struct {
	FadeAfter    time.Duration
	FadeDuration time.Duration
	ResetChance  float64
	// Trail is the per-frame brightness kept by already drawn glyphs.
	Trail float64
}

func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		FadeAfter:    8500 * time.Millisecond,
		FadeDuration: 1500 * time.Millisecond,
		ResetChance:  0.025,
		Trail:        0.95,
	}
}

type rainCell struct {
	glyph     rune
	intensity float64
}

// MatrixRain is a full screen rain of glyphs, one column per cell. It
// fades out on its own after FadeAfter.
type MatrixRain struct {
	cfg     MatrixConfig
	rng     *rand.Rand
	glyphs  []rune
	columns []int
	cells   [][]rainCell
	rows    int

	active    bool
	fading    bool
	startedAt time.Time
	fadeStart time.Time
	opacity   float64
}

func NewMatrixRain(cfg MatrixConfig, rng *rand.Rand) *MatrixRain {
	return &MatrixRain{cfg: cfg, rng: rng, glyphs: []rune(matrixGlyphs)}
}

// Start begins the effect on a cols x rows screen. It returns false and
// does nothing while the rain is already running.
func (m *MatrixRain) Start(now time.Time, cols, rows int) bool {
	if m.active {
		return false
	}
	m.active = true
	m.fading = false
	m.startedAt = now
	m.opacity = 1
	m.Resize(cols, rows)
	m.columns = make([]int, max(cols, 0))
	for i := range m.columns {
		m.columns[i] = 1
	}
	return true
}

func (m *MatrixRain) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	m.rows = rows
	cells := make([][]rainCell, rows)
	for y := range cells {
		cells[y] = make([]rainCell, cols)
		if y < len(m.cells) {
			copy(cells[y], m.cells[y])
		}
	}
	m.cells = cells
	for len(m.columns) < cols {
		m.columns = append(m.columns, 1)
	}
	if len(m.columns) > cols {
		m.columns = m.columns[:cols]
	}
}

func (m *MatrixRain) Tick(now time.Time) bool {
	if !m.active {
		return false
	}
	if !m.fading && now.Sub(m.startedAt) >= m.cfg.FadeAfter {
		m.fading = true
		m.fadeStart = now
	}
	if m.fading {
		progress := float64(now.Sub(m.fadeStart)) / float64(m.cfg.FadeDuration)
		if progress > 1 {
			progress = 1
		}
		m.opacity = 1 - progress
		if progress >= 1 {
			m.Stop()
			return false
		}
	}

	for y := range m.cells {
		for x := range m.cells[y] {
			c := &m.cells[y][x]
			c.intensity *= m.cfg.Trail
			if c.intensity < 0.05 {
				c.intensity = 0
				c.glyph = 0
			}
		}
	}

	for i := range m.columns {
		row := m.columns[i] - 1
		if row >= 0 && row < m.rows {
			m.cells[row][i] = rainCell{
				glyph:     m.glyphs[m.rng.Intn(len(m.glyphs))],
				intensity: 1,
			}
		}
		if m.columns[i] > m.rows && m.rng.Float64() > 1-m.cfg.ResetChance {
			m.columns[i] = 0
		}
		m.columns[i]++
	}
	return true
}

func (m *MatrixRain) Stop() {
	m.active = false
	m.fading = false
	m.cells = nil
	m.columns = nil
}

func (m *MatrixRain) Active() bool     { return m.active }
func (m *MatrixRain) Fading() bool     { return m.fading }
func (m *MatrixRain) Opacity() float64 { return m.opacity }

// At returns the glyph at a cell and its brightness scaled by the current
// opacity. Empty cells return (' ', 0).
func (m *MatrixRain) At(x, y int) (rune, float64) {
	if y < 0 || y >= len(m.cells) || x < 0 || x >= len(m.cells[y]) {
		return ' ', 0
	}
	c := m.cells[y][x]
	if c.glyph == 0 {
		return ' ', 0
	}
	return c.glyph, c.intensity * m.opacity
}

func (m *MatrixRain) Size() (cols, rows int) {
	return len(m.columns), m.rows
}
