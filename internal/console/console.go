// Package console is the Cheddar OS command console: an append-only log,
// an input line with history, and a table of easter-egg commands.
package console

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cheddar/internal/ascii"
	"github.com/san-kum/cheddar/internal/logging"
	"github.com/san-kum/cheddar/internal/profile"
)

// SeenKey marks that the console has auto-opened in this session.
const SeenKey = "console_seen"

const Greeting = "Welcome to Cheddar OS — press ~ to toggle. Type help to begin."

type Kind int

const (
	KindLine Kind = iota
	KindUser
	KindBlock
)

// Entry is one item in the output log. Color is optional.
type Entry struct {
	Kind  Kind
	Text  string
	Color string
}

// Prefs holds the session flags. It should live as long as the process,
// not on disk, so a new run greets with the console open again.
type Prefs interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

type Config struct {
	SmallWidth int
	BigWidth   int
	Portrait   string
	Emblem     string
	Glyph      string
	Synth      *ascii.GlyphSynth
	ToggleKeys []string
	AutoOpen   bool
	Profile    *profile.Profile
	// Email is the reversed contact address; empty uses the profile's.
	Email string
}

type Console struct {
	cfg      Config
	entries  []Entry
	history  []string
	histIdx  int
	input    string
	open     bool
	cache    *ascii.Cache
	raster   Rasterizer
	coin     func() bool
	session  Prefs
	hooks    Hooks
	logger   *log.Logger
	commands map[string]*command
	order    []string
}

type Option func(*Console)

func WithSession(p Prefs) Option          { return func(c *Console) { c.session = p } }
func WithHooks(h Hooks) Option            { return func(c *Console) { c.hooks = h } }
func WithLogger(l *log.Logger) Option     { return func(c *Console) { c.logger = l } }
func WithCache(cache *ascii.Cache) Option { return func(c *Console) { c.cache = cache } }

// WithCoin replaces the 50/50 choice between the cheese and the portrait.
// It returns true for cheese.
func WithCoin(f func() bool) Option { return func(c *Console) { c.coin = f } }

func New(cfg Config, raster Rasterizer, rng *rand.Rand, opts ...Option) *Console {
	c := &Console{
		cfg:     cfg,
		histIdx: -1,
		cache:   ascii.NewCache(),
		raster:  raster,
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.coin == nil {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		c.coin = func() bool { return rng.Float64() < 0.5 }
	}
	if c.cfg.Profile == nil {
		c.cfg.Profile = profile.Default()
	}
	if len(c.cfg.ToggleKeys) == 0 {
		c.cfg.ToggleKeys = []string{"`", "~"}
	}
	c.register()
	return c
}

// Start greets and opens the console once per session store.
func (c *Console) Start() bool {
	c.println(Greeting)
	if !c.cfg.AutoOpen || c.session == nil {
		return false
	}
	if _, err := c.session.Get(SeenKey); err == nil {
		return false
	}
	if err := c.session.Set(SeenKey, "1"); err != nil {
		c.logger.Warn("remember console seen", "err", err)
	}
	c.open = true
	return true
}

func (c *Console) Entries() []Entry    { return c.entries }
func (c *Console) IsOpen() bool        { return c.open }
func (c *Console) Toggle()             { c.open = !c.open }
func (c *Console) Close()              { c.open = false }
func (c *Console) Cache() *ascii.Cache { return c.cache }

// IsToggleKey reports whether key opens or closes the console. Alt
// combinations are left alone.
func (c *Console) IsToggleKey(key string, alt bool) bool {
	if alt {
		return false
	}
	for _, k := range c.cfg.ToggleKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (c *Console) Input() string     { return c.input }
func (c *Console) SetInput(s string) { c.input = s }
func (c *Console) Type(s string)     { c.input += s }

func (c *Console) Backspace() {
	if r := []rune(c.input); len(r) > 0 {
		c.input = string(r[:len(r)-1])
	}
}

func (c *Console) History() []string { return c.history }

// HistoryUp recalls the previous command, stopping at the oldest.
func (c *Console) HistoryUp() {
	if len(c.history) == 0 {
		return
	}
	if c.histIdx == -1 {
		c.histIdx = len(c.history) - 1
	} else {
		c.histIdx = max(0, c.histIdx-1)
	}
	c.input = c.history[c.histIdx]
}

// HistoryDown walks forward again. It does nothing unless browsing.
func (c *Console) HistoryDown() {
	if len(c.history) == 0 || c.histIdx == -1 {
		return
	}
	c.histIdx = min(len(c.history)-1, c.histIdx+1)
	c.input = c.history[c.histIdx]
}

// Submit runs the current input line.
func (c *Console) Submit(ctx context.Context) {
	cmd := strings.TrimSpace(c.input)
	if cmd == "" {
		return
	}
	c.history = append(c.history, cmd)
	c.histIdx = -1
	c.entries = append(c.entries, Entry{Kind: KindUser, Text: "> " + cmd})
	c.input = ""
	c.Dispatch(ctx, cmd)
}

// Dispatch routes one command line. Failures end up in the log; nothing
// escapes to the caller.
func (c *Console) Dispatch(ctx context.Context, line string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("command panicked", "line", line, "panic", r)
			c.println(fmt.Sprintf("error: %v", r))
		}
	}()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]
	cmd, ok := c.commands[strings.ToLower(name)]
	if !ok {
		c.println(fmt.Sprintf("unknown command: %s. try help.", name))
		return
	}
	c.logger.Debug("dispatch", "command", cmd.name, "args", args)
	cmd.run(ctx, c, args)
}

func (c *Console) println(text string) {
	c.entries = append(c.entries, Entry{Kind: KindLine, Text: text})
}

func (c *Console) printColor(text, color string) {
	c.entries = append(c.entries, Entry{Kind: KindLine, Text: text, Color: color})
}

func (c *Console) printBlock(text string) {
	c.entries = append(c.entries, Entry{Kind: KindBlock, Text: text})
}

func (c *Console) clear() { c.entries = nil }

// Println appends a line from outside a command, e.g. when the pet leaves.
func (c *Console) Println(text string) { c.println(text) }
