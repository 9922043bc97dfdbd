package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/san-kum/cheddar/internal/console"
	"github.com/san-kum/cheddar/internal/effects"
	"github.com/san-kum/cheddar/internal/skills"
	"github.com/san-kum/cheddar/internal/viz"
)

const (
	prompt       = "cheddar@os:~$ "
	caret        = "▋"
	bioWidth     = 64
	skillBar     = 16
	statBar      = 20
	detailWidth  = 44
	minConsoleH  = 6
	brailleFirst = 0x2800
	brailleLast  = 0x28ff
	spinnerStep  = 80 * time.Millisecond
)

var (
	rainBright = lipgloss.NewStyle().Foreground(lipgloss.Color("#ccffcc")).Bold(true)
	rainHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	rainMid    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aa00"))
	rainLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("#005500"))
	plain      = lipgloss.NewStyle()
)

func (m model) View() string {
	s := m.s
	t := s.toggler.Theme()
	rows := s.bodyRows()

	var body []string
	switch {
	case s.Running():
		body = strings.Split(t.Title().Render(s.game.Render(s.width, rows)), "\n")
	case s.matrix.Active():
		body = m.rainBody(rows)
	default:
		body = m.tabBody(rows)
	}
	body = fit(body, rows)

	if k := s.kairi; k != nil && !s.Running() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(k.Look.Color()))
		sprite := style.Render(k.Sprite())
		overlay(body, int(k.X/effects.CellPX), int(k.Y/effects.CellPY), sprite)
	}
	if s.console.IsOpen() {
		m.consoleOverlay(body)
	}
	for i := range body {
		body[i] = ansi.Truncate(body[i], s.width, "")
	}

	var b strings.Builder
	b.WriteString(m.header() + "\n")
	b.WriteString(strings.Join(body, "\n") + "\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m model) header() string {
	t := m.s.toggler.Theme()
	title := viz.GradientText("🧀 Cheddar OS", t.Primary, t.Secondary)
	if m.s.matrix.Active() {
		title += " " + t.Highlight().Render(viz.AnimatedSpinner(int(m.s.clock().UnixMilli()/spinnerStep.Milliseconds())))
	}
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs = append(tabs, t.Title().Underline(true).Render(label))
		} else {
			tabs = append(tabs, t.Subtle().Render(label))
		}
	}
	return "  " + title + "   " + strings.Join(tabs, "  ") + "\n" + viz.Separator(m.s.width)
}

func (m model) footer() string {
	s := m.s
	t := s.toggler.Theme()
	if bn, ok := s.activeBanner(s.clock()); ok {
		line := "  " + viz.GradientText(bn.text, lipgloss.Color(bn.from), lipgloss.Color(bn.to))
		if bn.quote != "" {
			line += "  " + t.Subtle().Italic(true).Render(bn.quote)
		}
		return ansi.Truncate(line, s.width, "…")
	}

	var hint string
	switch {
	case s.Running():
		hint = "w/s move  a/d turn  space fire  q close"
	case s.console.IsOpen():
		hint = "enter run  ↑↓ history  esc close  ~ toggle"
	default:
		hint = "tab switch  ~ console  q quit"
		switch m.tab {
		case tabSkills:
			hint = "↑↓ select  enter level up  s shuffle  " + hint
		case tabGalaxy:
			hint = "←→ move  enter open  esc close  " + hint
		case tabJourney:
			hint = "j/k scroll  g/G ends  " + hint
		}
		if s.kairi != nil {
			hint = "l look  x dismiss  " + hint
		}
	}
	return ansi.Truncate("  "+viz.KeyHint.Render(hint), s.width, "")
}

func (m model) tabBody(rows int) []string {
	switch m.tab {
	case tabSkills:
		return m.skillsBody(rows)
	case tabGalaxy:
		return m.galaxyBody(rows)
	case tabJourney:
		return m.journeyBody(rows)
	}
	return m.profileBody(rows)
}

func (m model) profileBody(rows int) []string {
	s := m.s
	t := s.toggler.Theme()

	bg := viz.NewGrid(s.width, rows)
	c := viz.NewCanvas(s.width, rows)
	s.particles.Draw(c)
	bg.Stamp(0, 0, c)
	for _, tag := range s.tags {
		bg.PutString(tag.X, tag.Y, tag.Text)
	}
	muted := t.Subtle().Faint(true)
	lines := make([]string, rows)
	for i, l := range bg.Lines() {
		lines[i] = muted.Render(l)
	}

	width := min(bioWidth, max(10, s.width-8))
	var b strings.Builder
	b.WriteString(t.Title().Render(s.profile.Name) + "\n")
	b.WriteString(t.Highlight().Render(s.profile.Title) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(s.bio.Text()) + "\n\n")
	for i, st := range s.profile.Stats {
		b.WriteString(fmt.Sprintf("%s %-18s %6s  %s\n",
			st.Icon, st.Label, viz.MetricValue.Render(s.counters[i].Text()),
			viz.ProgressBar(st.Percent()/100, statBar)))
	}
	if len(s.profile.Snapshot) > 0 {
		b.WriteString("\n" + t.Title().Render("Snapshot") + "\n")
		for _, l := range s.profile.Snapshot {
			b.WriteString(viz.MetricLabel.Render(l.Label+": ") + l.Text + "\n")
		}
	}
	if len(s.profile.Projects) > 0 {
		b.WriteString("\n" + t.Title().Render("Projects") + "\n")
		for _, l := range s.profile.Projects {
			b.WriteString(viz.MetricLabel.Render(l.Label+": ") + l.Text + "\n")
		}
	}
	panel := t.Panel().Width(width + 2).Render(strings.TrimRight(b.String(), "\n"))
	overlay(lines, 2, 0, panel)
	return lines
}

func (m model) skillsBody(rows int) []string {
	s := m.s
	t := s.toggler.Theme()
	now := s.clock()

	var lines []string
	cursorLine := 0
	idx := 0
	colWidth := max(20, (s.width-4)/2)

	for _, sec := range s.board.Sections() {
		head := strings.ToUpper(sec.Name)
		if s.board.GodModeActive() {
			head += "  ⚡ GOD MODE"
		}
		lines = append(lines, t.Title().Render(head))

		left, right := sec.Columns[0], sec.Columns[1]
		base := idx
		for r := 0; r < max(len(left), len(right)); r++ {
			var cells [2]string
			for c, col := range [2]skills.Column{left, right} {
				if r >= len(col) {
					continue
				}
				i := base + r
				if c == 1 {
					i = base + len(left) + r
				}
				if i == m.cursor {
					cursorLine = len(lines)
				}
				cells[c] = m.skillCell(col[r], i == m.cursor, now)
			}
			line := "  " + padTo(cells[0], colWidth) + cells[1]
			lines = append(lines, line)
		}
		idx = base + len(left) + len(right)
		lines = append(lines, "")
	}

	start := 0
	if cursorLine >= rows {
		start = cursorLine - rows + 1
	}
	return lines[start:min(len(lines), start+rows)]
}

func (m model) skillCell(it *skills.Item, selected bool, now time.Time) string {
	t := m.s.toggler.Theme()
	marker := "  "
	if selected {
		marker = t.Title().Render("▸ ")
	}
	nameStyle := plain
	switch {
	case it.Celebrating(now):
		nameStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	case it.Pulsing(now):
		nameStyle = lipgloss.NewStyle().Bold(true)
	}
	name := it.Name
	if r := []rune(name); len(r) > 18 {
		name = string(r[:17]) + "…"
	}
	cell := marker + nameStyle.Render(fmt.Sprintf("%-18s", name)) + " " +
		viz.ProgressBar(float64(it.Fill)/skills.MaxFill, skillBar) +
		fmt.Sprintf(" %3d%%", it.Fill)
	if it.Prestige > 0 {
		cell += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Render(strings.Repeat("★", it.Prestige))
	}
	return cell
}

func (m model) galaxyBody(rows int) []string {
	s := m.s
	t := s.toggler.Theme()
	g := s.galaxy.Render(s.width, rows)
	primary := lipgloss.NewStyle().Foreground(t.Primary)
	muted := t.Subtle()
	lines := make([]string, rows)
	for i, l := range g.Lines() {
		lines[i] = colorRuns(l, func(r rune) lipgloss.Style {
			switch {
			case r >= brailleFirst && r <= brailleLast:
				return primary
			case r == '·':
				return muted
			}
			return plain
		})
	}

	if id := s.galaxy.Selected(); id != "" {
		d, err := s.galaxy.Detail(id)
		if err == nil {
			w := min(detailWidth, s.width-2)
			panel := t.Panel().Width(w).Render(strings.TrimRight(d.String(), "\n"))
			overlay(lines, s.width-w-3, 0, panel)
		}
	}
	return lines
}

func (m model) journeyBody(rows int) []string {
	s := m.s
	t := s.toggler.Theme()
	j := s.journey
	st := j.Data().Stats()

	head := fmt.Sprintf("%s  %s  %s",
		t.Title().Render(j.Label()),
		viz.ProgressBar(j.Progress(), 30),
		t.Subtle().Render(fmt.Sprintf("%d cities · %.0f miles · %d experiences", st.Cities, st.Miles, st.Experiences)))

	grid := j.Render(s.width, max(1, rows-1))
	primary := lipgloss.NewStyle().Foreground(t.Primary)
	accent := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	vehicle := j.Vehicle().Glyph()

	lines := []string{head}
	for _, l := range grid.Lines() {
		lines = append(lines, colorRuns(l, func(r rune) lipgloss.Style {
			switch {
			case r >= brailleFirst && r <= brailleLast:
				return primary
			case r == '●' || r == vehicle:
				return accent
			}
			return plain
		}))
	}
	return lines
}

func (m model) rainBody(rows int) []string {
	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		row := make([]rune, m.s.width)
		levels := make([]lipgloss.Style, m.s.width)
		for x := range row {
			g, a := m.s.matrix.At(x, y)
			row[x] = g
			levels[x] = rainStyle(a)
		}
		lines[y] = colorCells(row, levels)
	}
	return lines
}

func rainStyle(a float64) lipgloss.Style {
	switch {
	case a >= 0.9:
		return rainBright
	case a >= 0.5:
		return rainHigh
	case a >= 0.2:
		return rainMid
	}
	return rainLow
}

func (m model) consoleOverlay(body []string) {
	s := m.s
	t := s.toggler.Theme()
	h := max(minConsoleH, int(float64(len(body))*consoleShare))
	inner := max(10, s.width-4)

	var lines []string
	for _, e := range s.console.Entries() {
		for _, l := range strings.Split(e.Text, "\n") {
			l = ansi.Truncate(l, inner, "")
			switch {
			case e.Kind == console.KindUser:
				l = t.Highlight().Render(l)
			case e.Color != "":
				l = lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render(l)
			case e.Kind == console.KindBlock:
				l = lipgloss.NewStyle().Foreground(t.Text).Render(l)
			}
			lines = append(lines, l)
		}
	}
	keep := h - 3
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	for len(lines) < keep {
		lines = append([]string{""}, lines...)
	}
	input := t.Title().Render(prompt) + s.console.Input() + caret
	lines = append(lines, ansi.Truncate(input, inner, ""))

	box := t.Panel().Width(s.width - 2).Render(strings.Join(lines, "\n"))
	overlay(body, 0, len(body)-h, box)
}

// overlay writes block over lines starting at column x, row y. Styled
// text on both sides is kept intact.
func overlay(lines []string, x, y int, block string) {
	for i, row := range strings.Split(block, "\n") {
		ly := y + i
		if ly < 0 || ly >= len(lines) {
			continue
		}
		lines[ly] = place(lines[ly], x, row)
	}
}

func place(line string, x int, s string) string {
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	if w := ansi.StringWidth(line); w < x {
		line += strings.Repeat(" ", x-w)
	}
	left := ansi.Truncate(line, x, "")
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(s), "")
	return left + s + right
}

func padTo(s string, w int) string {
	if n := ansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return ansi.Truncate(s, w, "")
}

// fit pads or cuts lines to exactly n rows.
func fit(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// colorRuns styles a line rune by rune, merging neighbours that share a
// style.
func colorRuns(line string, pick func(rune) lipgloss.Style) string {
	row := []rune(line)
	styles := make([]lipgloss.Style, len(row))
	for i, r := range row {
		styles[i] = pick(r)
	}
	return colorCells(row, styles)
}

func colorCells(row []rune, styles []lipgloss.Style) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && sameStyle(styles[i], styles[start]) {
			continue
		}
		seg := string(row[start:i])
		if strings.TrimSpace(seg) == "" {
			b.WriteString(seg)
		} else {
			b.WriteString(styles[start].Render(seg))
		}
		start = i
	}
	return b.String()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground() && a.GetBold() == b.GetBold()
}
