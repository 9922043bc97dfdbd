// Package tui is the full-screen portfolio: profile, skills, interest
// galaxy and journey tabs, with the Cheddar OS console and its effects
// layered on top.
package tui

import (
	"context"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cheddar/internal/config"
	"github.com/san-kum/cheddar/internal/effects"
)

type tab int

const (
	tabProfile tab = iota
	tabSkills
	tabGalaxy
	tabJourney
)

var tabNames = []string{"profile", "skills", "galaxy", "journey"}

// journeyStep is how far one scroll key moves the journey.
const journeyStep = 0.02

type tickMsg time.Time

type model struct {
	ctx    context.Context
	s      *session
	tab    tab
	cursor int
	fps    int
}

func newModel(ctx context.Context, d Deps) model {
	fps := config.DefaultFPS
	if d.Config != nil && d.Config.FPS > 0 {
		fps = d.Config.FPS
	}
	return model{ctx: ctx, s: newSession(d), fps: fps}
}

// Run starts the app on the alternate screen and blocks until it quits.
func Run(ctx context.Context, d Deps) error {
	m := newModel(ctx, d)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	m.s.loop.StopAll()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Cheddar OS"), m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.s.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.s.tick(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.s.Running() {
		m.s.gameKey(key)
		return m, nil
	}
	if m.s.console.IsToggleKey(string(msg.Runes), msg.Alt) {
		m.s.console.Toggle()
		return m, nil
	}
	if m.s.console.IsOpen() {
		return m.consoleKey(msg)
	}

	if ev, ok := m.s.board.Key(key); ok {
		m.s.showEvent(ev)
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	case "1", "2", "3", "4":
		m.tab = tab(key[0] - '1')
		return m, nil
	case "l":
		m.s.cycleLook()
		return m, nil
	case "x":
		if m.s.Dismiss() {
			m.s.console.PetDismissed()
		}
		return m, nil
	}

	switch m.tab {
	case tabSkills:
		return m.skillsKey(key)
	case tabGalaxy:
		return m.galaxyKey(key)
	case tabJourney:
		return m.journeyKey(key)
	}
	return m, nil
}

func (m model) consoleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	c := m.s.console
	switch msg.Type {
	case tea.KeyEnter:
		m.s.dispatch(m.ctx)
	case tea.KeyUp:
		c.HistoryUp()
	case tea.KeyDown:
		c.HistoryDown()
	case tea.KeyBackspace:
		c.Backspace()
	case tea.KeyEsc:
		c.Close()
	case tea.KeySpace:
		c.Type(" ")
	case tea.KeyRunes:
		c.Type(string(msg.Runes))
	}
	return m, nil
}

func (m model) skillsKey(key string) (model, tea.Cmd) {
	items := m.s.board.Items()
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(items) {
			m.s.showEvent(m.s.board.LevelUp(items[m.cursor], m.s.clock()))
		}
	case "s":
		if ev, ok := m.s.board.HeaderClick(m.s.clock()); ok {
			m.s.showEvent(ev)
		}
	}
	return m, nil
}

func (m model) galaxyKey(key string) (model, tea.Cmd) {
	g := m.s.galaxy
	switch key {
	case "right", "down", "j":
		g.Next()
	case "left", "up", "k":
		g.Prev()
	case "enter", " ":
		g.SelectCursor()
	case "esc":
		g.Close()
	}
	return m, nil
}

func (m model) journeyKey(key string) (model, tea.Cmd) {
	j := m.s.journey
	switch key {
	case "down", "j", "pgdown":
		j.Scroll(journeyStep)
	case "up", "k", "pgup":
		j.Scroll(-journeyStep)
	case "home", "g":
		j.SetProgress(0)
	case "end", "G":
		j.SetProgress(1)
	}
	return m, nil
}

// handleMouse drags the pet and picks galaxy nodes. Mouse cells map to
// the middle of their pixel box.
func (m model) handleMouse(msg tea.MouseMsg) {
	row := msg.Y - headerRows
	px := float64(msg.X*effects.CellPX + effects.CellPX/2)
	py := float64(row*effects.CellPY + effects.CellPY/2)

	k := m.s.kairi
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if k != nil && k.Contains(px, py) {
			k.Grab(px, py)
			return
		}
		if m.tab == tabGalaxy && !m.s.console.IsOpen() {
			m.pickNode(px, py)
		}
	case tea.MouseActionMotion:
		if k != nil {
			k.DragTo(px, py)
		}
	case tea.MouseActionRelease:
		if k != nil {
			k.Release()
		}
	}
}

func (m model) pickNode(px, py float64) {
	for _, n := range m.s.galaxy.Layout().Nodes {
		if math.Hypot(px-n.X, py-n.Y) <= n.R {
			if err := m.s.galaxy.Select(n.ID); err != nil {
				m.s.logger.Warn("select interest", "id", n.ID, "err", err)
			}
			return
		}
	}
	m.s.galaxy.Close()
}
