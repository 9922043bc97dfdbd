package profile

import (
	_ "embed"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultData []byte

const (
	CounterDuration = 2000 * time.Millisecond
	FrameInterval   = 16 * time.Millisecond
)

type Stat struct {
	Icon   string `yaml:"icon"`
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Max    int    `yaml:"max"`
	Suffix string `yaml:"suffix"`
}

// Percent is how full the stat's progress bar is.
func (s Stat) Percent() float64 {
	if s.Max <= 0 {
		return 0
	}
	return float64(s.Value) / float64(s.Max) * 100
}

type Line struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

type Profile struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Bio      string   `yaml:"bio"`
	Email    string   `yaml:"email"`
	Stats    []Stat   `yaml:"stats"`
	Tags     []string `yaml:"tags"`
	Snapshot []Line   `yaml:"snapshot"`
	Projects []Line   `yaml:"projects"`
}

func Parse(b []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("profile: parse: %w", err)
	}
	return &p, nil
}

func Default() *Profile {
	p, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}
	return p
}

func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Deobfuscate undoes the reversed-address trick used to hide the e-mail
// from scrapers.
func Deobfuscate(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func MailTo(obfuscated string) string {
	return "mailto:" + Deobfuscate(obfuscated)
}

// Counter counts a stat up from zero, one increment per frame, finishing
// after roughly CounterDuration.
type Counter struct {
	end       float64
	increment float64
	current   float64
	suffix    string
	text      string
	done      bool
}

func NewCounter(s Stat) *Counter {
	end := float64(s.Value)
	frames := float64(CounterDuration) / float64(FrameInterval)
	return &Counter{
		end:       end,
		increment: end / frames,
		suffix:    s.Suffix,
		text:      "0",
	}
}

func (c *Counter) Step() {
	if c.done {
		return
	}
	c.current += c.increment
	if c.current >= c.end {
		c.text = strconv.Itoa(int(c.end)) + c.suffix
		c.done = true
		return
	}
	c.text = strconv.Itoa(int(math.Floor(c.current))) + c.suffix
}

func (c *Counter) Tick(time.Time) bool {
	c.Step()
	return !c.done
}

func (c *Counter) Stop() {
	c.current = c.end
	c.text = strconv.Itoa(int(c.end)) + c.suffix
	c.done = true
}

func (c *Counter) Text() string { return c.text }
func (c *Counter) Done() bool   { return c.done }

// Tag is one floating word of the background tag cloud, in cells.
type Tag struct {
	Text    string
	X, Y    int
	Opacity float64
}

// Cloud scatters tags over a w x h area.
func Cloud(tags []string, w, h int, rng *rand.Rand) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		span := w - len([]rune(t))
		if span < 1 {
			span = 1
		}
		rows := h
		if rows < 1 {
			rows = 1
		}
		out = append(out, Tag{
			Text:    t,
			X:       rng.Intn(span),
			Y:       rng.Intn(rows),
			Opacity: rng.Float64()*0.4 + 0.3,
		})
	}
	return out
}
