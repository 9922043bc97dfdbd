package skills

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cheddar/internal/logging"
)

const (
	LevelStep       = 10
	MaxFill         = 100
	MaxPrestige     = 5
	CelebrateFor    = 6500 * time.Millisecond
	TripleClickGap  = 500 * time.Millisecond
	PulseFor        = 300 * time.Millisecond
	reanimateFirst  = 3 * time.Second
	reanimateMin    = 3 * time.Second
	reanimateJitter = 5 * time.Second
)

var konamiPattern = []string{"up", "up", "down", "down", "left", "right", "left", "right", "b", "a"}

var quotes = []string{
	`"Any sufficiently advanced technology is indistinguishable from magic." - Arthur C. Clarke`,
	`"Talk is cheap. Show me the code." - Linus Torvalds`,
	`"Code is like humor. When you have to explain it, it's bad." - Cory House`,
	`"First, solve the problem. Then, write the code." - John Johnson`,
	`"Experience is the name everyone gives to their mistakes." - Oscar Wilde`,
	`"In order to be irreplaceable, one must always be different." - Coco Chanel`,
	`"Java is to JavaScript what car is to Carpet." - Chris Heilmann`,
	`"Knowledge is power." - Francis Bacon`,
	`"The best error message is the one that never shows up." - Thomas Fuchs`,
	`"Simplicity is the soul of efficiency." - Austin Freeman`,
	`"Programs must be written for people to read, and only incidentally for machines to execute." - Harold Abelson`,
	`"The only way to go fast is to go well." - Robert C. Martin`,
	`"Make it work, make it right, make it fast." - Kent Beck`,
	`"Perfection is achieved not when there is nothing more to add, but when there is nothing left to take away." - Antoine de Saint-Exupéry`,
	`"The best thing about a boolean is even if you are wrong, you are only off by a bit." - Anonymous`,
}

// Prefs persists prestige between sessions.
type Prefs interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

func prestigeKey(name string) string { return "skills-prestige:" + name }

type Item struct {
	Section  string
	Name     string
	Rating   float64
	Fill     int
	Prestige int

	celebratingUntil time.Time
	pulseUntil       time.Time
}

func (it *Item) Celebrating(now time.Time) bool { return now.Before(it.celebratingUntil) }
func (it *Item) Pulsing(now time.Time) bool     { return now.Before(it.pulseUntil) }
func (it *Item) Maxed() bool                    { return it.Fill >= MaxFill }

type EventKind int

const (
	EventNone EventKind = iota
	EventLevel
	EventMastered
	EventPrestige
	EventLegendary
	EventMaxPrestige
	EventGodMode
	EventShuffle
)

// Event describes what a click or key did, for the notification banner.
type Event struct {
	Kind    EventKind
	Item    *Item
	Message string
	Quote   string
	// Burst is the particle color for the item, empty when none.
	Burst    string
	Duration time.Duration
}

type Column []*Item

type Section struct {
	Name    string
	Columns [2]Column
}

// Board is the interactive skills list: click to level up, prestige stars
// once mastered, the Konami code and a triple click to shuffle.
type Board struct {
	sections []Section
	rng      *rand.Rand
	prefs    Prefs
	logger   *log.Logger

	keys      []string
	clicks    int
	lastClick time.Time
	nextPulse time.Time
	godMode   bool
	stopped   bool
}

func NewBoard(d *Data, rng *rand.Rand, prefs Prefs, logger *log.Logger) *Board {
	if logger == nil {
		logger = logging.Discard()
	}
	b := &Board{rng: rng, prefs: prefs, logger: logger}
	for _, name := range Sections {
		list := d.Section(name)
		items := make([]*Item, len(list))
		for i, s := range list {
			items[i] = &Item{Section: name, Name: s.Name, Rating: s.Rating, Fill: Percent(s.Rating)}
			b.loadPrestige(items[i])
		}
		left, right := Columns(items)
		b.sections = append(b.sections, Section{
			Name:    name,
			Columns: [2]Column{append(Column(nil), left...), append(Column(nil), right...)},
		})
	}
	return b
}

func (b *Board) Sections() []Section { return b.sections }

// Items lists every item in display order.
func (b *Board) Items() []*Item {
	var all []*Item
	for _, s := range b.sections {
		all = append(all, s.Columns[0]...)
		all = append(all, s.Columns[1]...)
	}
	return all
}

func (b *Board) Find(name string) *Item {
	for _, it := range b.Items() {
		if it.Name == name {
			return it
		}
	}
	return nil
}

func (b *Board) GodModeActive() bool { return b.godMode }

// LevelUp handles a click on an item.
func (b *Board) LevelUp(it *Item, now time.Time) Event {
	if it == nil || it.Celebrating(now) {
		return Event{Kind: EventNone}
	}

	if it.Maxed() {
		if it.Prestige < MaxPrestige {
			return b.addPrestige(it)
		}
		return Event{Kind: EventMaxPrestige, Item: it, Message: "⭐ MAX PRESTIGE REACHED! ⭐", Burst: "#FFD700", Duration: 3 * time.Second}
	}

	it.Fill = min(MaxFill, it.Fill+LevelStep)
	if it.Fill < MaxFill {
		return Event{Kind: EventLevel, Item: it, Message: fmt.Sprintf("%s %d%%", it.Name, it.Fill), Burst: "#22A39F"}
	}

	it.celebratingUntil = now.Add(CelebrateFor)
	return Event{
		Kind:     EventMastered,
		Item:     it,
		Message:  fmt.Sprintf("⭐ MASTERED: %s ⭐", it.Name),
		Quote:    quotes[b.rng.Intn(len(quotes))],
		Burst:    "#22A39F",
		Duration: 6 * time.Second,
	}
}

func (b *Board) addPrestige(it *Item) Event {
	it.Prestige = min(MaxPrestige, it.Prestige+1)
	b.savePrestige(it)
	if it.Prestige == MaxPrestige {
		return Event{Kind: EventLegendary, Item: it, Message: "🌟 LEGENDARY PRESTIGE! Maximum rank achieved!", Burst: "#FFD700", Duration: 4 * time.Second}
	}
	return Event{
		Kind:     EventPrestige,
		Item:     it,
		Message:  fmt.Sprintf("⭐ Prestige %d! Click again for more stars!", it.Prestige),
		Burst:    "#FFD700",
		Duration: 3 * time.Second,
	}
}

// GodMode maxes every skill.
func (b *Board) GodMode() Event {
	for _, it := range b.Items() {
		it.Fill = MaxFill
	}
	b.godMode = true
	b.logger.Info("god mode activated", "skills", len(b.Items()))
	return Event{Kind: EventGodMode, Message: "⚡ GOD MODE: All skills maxed!", Burst: "#FFD700", Duration: 3 * time.Second}
}

// Key feeds one key press to the Konami detector. Arrow keys are named
// up/down/left/right.
func (b *Board) Key(key string) (Event, bool) {
	b.keys = append(b.keys, key)
	if len(b.keys) > len(konamiPattern) {
		b.keys = b.keys[len(b.keys)-len(konamiPattern):]
	}
	if len(b.keys) != len(konamiPattern) {
		return Event{}, false
	}
	for i, k := range konamiPattern {
		if b.keys[i] != k {
			return Event{}, false
		}
	}
	return b.GodMode(), true
}

// HeaderClick counts clicks on the section header; three within the gap
// shuffle the board.
func (b *Board) HeaderClick(now time.Time) (Event, bool) {
	if !b.lastClick.IsZero() && now.Sub(b.lastClick) > TripleClickGap {
		b.clicks = 0
	}
	b.lastClick = now
	b.clicks++
	if b.clicks < 3 {
		return Event{}, false
	}
	b.clicks = 0
	return b.Shuffle(), true
}

// Shuffle reorders each column in place (Fisher-Yates).
func (b *Board) Shuffle() Event {
	for s := range b.sections {
		for c := range b.sections[s].Columns {
			col := b.sections[s].Columns[c]
			for i := len(col) - 1; i > 0; i-- {
				j := b.rng.Intn(i + 1)
				col[i], col[j] = col[j], col[i]
			}
		}
	}
	return Event{Kind: EventShuffle, Message: "🔀 Skills shuffled!", Duration: 3 * time.Second}
}

// Tick pulses a random item every 3-8 seconds.
func (b *Board) Tick(now time.Time) bool {
	if b.stopped {
		return false
	}
	if b.nextPulse.IsZero() {
		b.nextPulse = now.Add(reanimateFirst)
		return true
	}
	if now.Before(b.nextPulse) {
		return true
	}
	if items := b.Items(); len(items) > 0 {
		it := items[b.rng.Intn(len(items))]
		it.pulseUntil = now.Add(PulseFor)
	}
	b.nextPulse = now.Add(reanimateMin + time.Duration(b.rng.Float64()*float64(reanimateJitter)))
	return true
}

func (b *Board) Stop() { b.stopped = true }

func (b *Board) loadPrestige(it *Item) {
	if b.prefs == nil {
		return
	}
	v, err := b.prefs.Get(prestigeKey(it.Name))
	if err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return
	}
	it.Prestige = min(n, MaxPrestige)
	if it.Prestige > 0 {
		it.Fill = MaxFill
	}
}

func (b *Board) savePrestige(it *Item) {
	if b.prefs == nil {
		return
	}
	if err := b.prefs.Set(prestigeKey(it.Name), strconv.Itoa(it.Prestige)); err != nil {
		b.logger.Warn("prestige not saved", "skill", it.Name, "err", err)
	}
}
