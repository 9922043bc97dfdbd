package theme

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cheddar/internal/logging"
	"github.com/san-kum/cheddar/internal/viz"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
	Dream Mode = "dream"
)

// PrefKey is where a non-default mode is remembered between sessions.
const PrefKey = "theme-mode"

const NotificationTTL = 3 * time.Second

const (
	lightColor = "#22A39F"
	darkColor  = "#22d3ee"
	dreamColor = "#a855f7"
)

// Prefs is the persistence the toggler needs; storage.Store and
// storage.Memory both satisfy it.
type Prefs interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Notification is the transient banner shown after a mode change. The
// banner gradient runs from Color to GradientEnd.
type Notification struct {
	Message     string
	Color       string
	GradientEnd string
}

func newNotification(msg, color string) Notification {
	return Notification{Message: msg, Color: color, GradientEnd: AdjustColor(color, -20)}
}

// Change is the outcome of one toggle: a console line and a banner.
type Change struct {
	Mode         Mode
	Line         string
	Notification Notification
}

type Toggler struct {
	mode   Mode
	prefs  Prefs
	logger *log.Logger
}

func NewToggler(prefs Prefs, logger *log.Logger) *Toggler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Toggler{mode: Light, prefs: prefs, logger: logger}
}

// Restore applies the remembered mode, if any.
func (t *Toggler) Restore() Mode {
	if t.prefs == nil {
		return t.mode
	}
	v, err := t.prefs.Get(PrefKey)
	if err != nil {
		return t.mode
	}
	switch Mode(v) {
	case Dark, Dream:
		t.mode = Mode(v)
	}
	return t.mode
}

func (t *Toggler) Mode() Mode { return t.mode }

func (t *Toggler) Theme() viz.Theme {
	return viz.GetTheme(string(t.mode))
}

func (t *Toggler) ToggleDark() Change {
	if t.mode == Dark {
		t.set(Light)
		return Change{
			Mode:         Light,
			Line:         "🌞 Dark mode disabled. Returning to light mode.",
			Notification: newNotification("☀️ Light Mode", lightColor),
		}
	}
	t.set(Dark)
	return Change{
		Mode:         Dark,
		Line:         "🌙 Dark mode activated. Your eyes will thank you.",
		Notification: newNotification("🌙 Dark Mode Activated", darkColor),
	}
}

func (t *Toggler) ToggleDream() Change {
	if t.mode == Dream {
		t.set(Light)
		return Change{
			Mode:         Light,
			Line:         "✨ Dream mode disabled. Back to reality.",
			Notification: newNotification("☀️ Light Mode", lightColor),
		}
	}
	t.set(Dream)
	return Change{
		Mode:         Dream,
		Line:         "✨ Dream mode activated. Enter the purple realm...",
		Notification: newNotification("✨ Dream Mode Activated", dreamColor),
	}
}

func (t *Toggler) Light() Change {
	t.set(Light)
	return Change{
		Mode:         Light,
		Line:         "☀️ Light mode restored.",
		Notification: newNotification("☀️ Light Mode", lightColor),
	}
}

func (t *Toggler) set(m Mode) {
	t.mode = m
	if t.prefs == nil {
		return
	}
	var err error
	if m == Light {
		err = t.prefs.Delete(PrefKey)
	} else {
		err = t.prefs.Set(PrefKey, string(m))
	}
	if err != nil {
		t.logger.Warn("theme preference not saved", "mode", m, "err", err)
	}
}

// AdjustColor shifts each channel of a #rrggbb color by percent of full
// scale, clamping to [0,255].
func AdjustColor(color string, percent float64) string {
	r, g, b := viz.ParseHex(color)
	amt := int(math.Floor(2.55*percent + 0.5))
	return viz.HexColor(r+amt, g+amt, b+amt)
}
