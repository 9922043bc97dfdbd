package console_test

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cheddar/internal/ascii"
	"github.com/san-kum/cheddar/internal/console"
	"github.com/san-kum/cheddar/internal/pet"
	"github.com/san-kum/cheddar/internal/storage"
	"github.com/san-kum/cheddar/internal/theme"
)

// countingRaster renders a fixed block of the requested width and counts
// how often it is asked to.
type countingRaster struct {
	calls int
	err   error
}

func (r *countingRaster) Rasterize(_ context.Context, s ascii.Subject, opts ascii.Options) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	row := strings.Repeat("@", opts.Width) + "\n"
	return row + row, nil
}

type fakePet struct {
	present bool
	look    pet.Look
}

func (p *fakePet) Present() bool      { return p.present }
func (p *fakePet) Spawn()             { p.present = true }
func (p *fakePet) Dismiss() bool      { was := p.present; p.present = false; return was }
func (p *fakePet) SetLook(l pet.Look) { p.look = l }

type fakeGame struct{ running bool }

func (g *fakeGame) Running() bool { return g.running }
func (g *fakeGame) Launch() error { g.running = true; return nil }

type matrixFunc func()

func (f matrixFunc) StartMatrix() { f() }

func texts(c *console.Console) []string {
	var out []string
	for _, e := range c.Entries() {
		out = append(out, e.Text)
	}
	return out
}

func countContaining(c *console.Console, sub string) int {
	n := 0
	for _, t := range texts(c) {
		if strings.Contains(t, sub) {
			n++
		}
	}
	return n
}

func blocks(c *console.Console) []string {
	var out []string
	for _, e := range c.Entries() {
		if e.Kind == console.KindBlock {
			out = append(out, e.Text)
		}
	}
	return out
}

var _ = Describe("Console", func() {
	var (
		ctx    context.Context
		raster *countingRaster
		cheese bool
		c      *console.Console
	)

	newConsole := func(opts ...console.Option) *console.Console {
		opts = append([]console.Option{console.WithCoin(func() bool { return cheese })}, opts...)
		return console.New(console.Config{SmallWidth: 160, BigWidth: 240}, raster, rand.New(rand.NewSource(1)), opts...)
	}

	BeforeEach(func() {
		ctx = context.Background()
		raster = &countingRaster{}
		cheese = false
		c = newConsole()
	})

	Describe("dispatch", func() {
		It("matches command names case-insensitively", func() {
			c.Dispatch(ctx, "help")
			lower := texts(c)
			c2 := newConsole()
			c2.Dispatch(ctx, "HELP")
			Expect(texts(c2)).To(Equal(lower))
			Expect(lower[0]).To(HavePrefix("commands:"))
		})

		It("echoes unknown commands once with their original case", func() {
			Expect(func() { c.Dispatch(ctx, "FooBar baz") }).NotTo(Panic())
			Expect(texts(c)).To(Equal([]string{"unknown command: FooBar. try help."}))
		})

		It("ignores blank lines", func() {
			c.Dispatch(ctx, "   ")
			Expect(c.Entries()).To(BeEmpty())
		})

		It("hints at the argument for summon and call", func() {
			c.Dispatch(ctx, "summon")
			c.Dispatch(ctx, "call dog")
			Expect(texts(c)).To(Equal([]string{"try: summon cheddar", "try: call kairi"}))
		})

		It("prints the stack snapshot and projects", func() {
			c.Dispatch(ctx, "skills")
			c.Dispatch(ctx, "projects")
			Expect(texts(c)[0]).To(ContainSubstring("AI: AWS Bedrock"))
			Expect(texts(c)[1]).To(ContainSubstring("Policy AI: OCR"))
		})

		It("clears the log", func() {
			c.Dispatch(ctx, "help")
			c.Dispatch(ctx, "clear")
			Expect(c.Entries()).To(BeEmpty())
		})

		It("decodes the contact address", func() {
			c.Dispatch(ctx, "contact")
			Expect(texts(c)[0]).To(ContainSubstring("mailto:"))
			Expect(texts(c)[0]).To(ContainSubstring("@example.com"))
		})

		It("turns a panicking hook into a log line", func() {
			c = newConsole(console.WithHooks(console.Hooks{
				Matrix: matrixFunc(func() { panic("boom") }),
			}))
			Expect(func() { c.Dispatch(ctx, "matrix") }).NotTo(Panic())
			Expect(countContaining(c, "boom")).To(Equal(1))
		})
	})

	Describe("summon cheddar", func() {
		It("serves a cache hit without rasterizing again", func() {
			c.Dispatch(ctx, "summon cheddar")
			Expect(raster.calls).To(Equal(1))
			first := blocks(c)[0]

			c.Dispatch(ctx, "summon cheddar")
			Expect(raster.calls).To(Equal(1))
			Expect(blocks(c)).To(HaveLen(2))
			Expect(blocks(c)[1]).To(Equal(first))
			Expect(countContaining(c, "materializing")).To(Equal(1))
			Expect(c.Cache().Len()).To(Equal(1))
		})

		It("keeps the four variants in separate slots", func() {
			for _, ch := range []bool{false, true} {
				cheese = ch
				c.Dispatch(ctx, "summon cheddar")
				c.Dispatch(ctx, "summon cheddar --big")
			}
			Expect(raster.calls).To(Equal(4))
			Expect(c.Cache().Len()).To(Equal(4))
			for _, key := range []string{"cheddar_ascii_small_v1", "cheddar_ascii_big_v1", "cheddar_ascii_small_v1_cheese", "cheddar_ascii_big_v1_cheese"} {
				_, ok := c.Cache().Get(key)
				Expect(ok).To(BeTrue(), key)
			}
		})

		It("renders wider with --big", func() {
			c.Dispatch(ctx, "summon cheddar")
			c.Dispatch(ctx, "SUMMON Cheddar --big")
			b := blocks(c)
			Expect(b).To(HaveLen(2))
			small := strings.Split(b[0], "\n")[0]
			big := strings.Split(b[1], "\n")[0]
			Expect(len(big)).To(BeNumerically(">", len(small)))
		})

		It("appends exactly one error line when every subject fails", func() {
			raster.err = errors.New("decode failed")
			c.Dispatch(ctx, "summon cheddar")
			Expect(texts(c)).To(Equal([]string{
				"materializing cheddar… 🧀",
				"Failed to summon. Error: decode failed",
			}))
			Expect(c.Cache().Len()).To(BeZero())
		})

		It("falls back to the glyph when the cheese image is missing", func() {
			dir := GinkgoT().TempDir()
			renderer := ascii.NewRenderer(mustRamp(), ascii.CellMetrics{Width: 1, Height: 2})
			cheese = true
			c = console.New(console.Config{
				SmallWidth: 40,
				Emblem:     filepath.Join(dir, "missing.png"),
				Glyph:      "C",
			}, renderer, nil, console.WithCoin(func() bool { return cheese }))

			c.Dispatch(ctx, "summon cheddar")
			b := blocks(c)
			Expect(b).To(HaveLen(1))
			Expect(strings.Split(strings.TrimSuffix(b[0], "\n"), "\n")).To(HaveLen(20))
			Expect(countContaining(c, "Failed")).To(BeZero())
		})

		It("reports a missing portrait with one error line", func() {
			dir := GinkgoT().TempDir()
			renderer := ascii.NewRenderer(mustRamp(), ascii.CellMetrics{Width: 1, Height: 2})
			c = console.New(console.Config{Portrait: filepath.Join(dir, "missing.png")}, renderer, nil,
				console.WithCoin(func() bool { return false }))

			c.Dispatch(ctx, "summon cheddar")
			Expect(countContaining(c, "Failed to summon. Error:")).To(Equal(1))
			Expect(blocks(c)).To(BeEmpty())
		})
	})

	Describe("input and history", func() {
		It("echoes and records submitted commands", func() {
			c.SetInput("  help  ")
			c.Submit(ctx)
			Expect(c.Input()).To(BeEmpty())
			Expect(c.History()).To(Equal([]string{"help"}))
			Expect(c.Entries()[0]).To(Equal(console.Entry{Kind: console.KindUser, Text: "> help"}))
		})

		It("skips empty input", func() {
			c.SetInput("   ")
			c.Submit(ctx)
			Expect(c.History()).To(BeEmpty())
			Expect(c.Entries()).To(BeEmpty())
		})

		It("walks history with clamping", func() {
			for _, cmd := range []string{"one", "two", "three"} {
				c.SetInput(cmd)
				c.Submit(ctx)
			}
			c.HistoryDown()
			Expect(c.Input()).To(BeEmpty())

			c.HistoryUp()
			Expect(c.Input()).To(Equal("three"))
			c.HistoryUp()
			c.HistoryUp()
			c.HistoryUp()
			Expect(c.Input()).To(Equal("one"))
			c.HistoryDown()
			Expect(c.Input()).To(Equal("two"))
			c.HistoryDown()
			c.HistoryDown()
			Expect(c.Input()).To(Equal("three"))
		})

		It("edits the input line", func() {
			c.Type("helq")
			c.Backspace()
			c.Type("p")
			Expect(c.Input()).To(Equal("help"))
		})

		It("toggles on backtick and tilde but not with alt", func() {
			Expect(c.IsToggleKey("`", false)).To(BeTrue())
			Expect(c.IsToggleKey("~", false)).To(BeTrue())
			Expect(c.IsToggleKey("~", true)).To(BeFalse())
			Expect(c.IsToggleKey("a", false)).To(BeFalse())
		})
	})

	Describe("start", func() {
		It("greets and auto-opens only once per session", func() {
			session := storage.NewMemory()
			cfg := console.Config{AutoOpen: true}
			first := console.New(cfg, raster, nil, console.WithSession(session))
			Expect(first.Start()).To(BeTrue())
			Expect(first.IsOpen()).To(BeTrue())
			Expect(texts(first)).To(Equal([]string{console.Greeting}))

			second := console.New(cfg, raster, nil, console.WithSession(session))
			Expect(second.Start()).To(BeFalse())
			Expect(second.IsOpen()).To(BeFalse())
		})

		It("auto-opens again in a fresh session", func() {
			cfg := console.Config{AutoOpen: true}
			first := console.New(cfg, raster, nil, console.WithSession(storage.NewMemory()))
			Expect(first.Start()).To(BeTrue())

			next := console.New(cfg, raster, nil, console.WithSession(storage.NewMemory()))
			Expect(next.Start()).To(BeTrue())
			Expect(next.IsOpen()).To(BeTrue())
		})
	})

	Describe("hooks", func() {
		It("reports missing modules", func() {
			for _, cmd := range []string{"matrix", "godmode", "call kairi", "darkmode", "print", "doom"} {
				c.Dispatch(ctx, cmd)
			}
			out := strings.Join(texts(c), "\n")
			Expect(out).To(ContainSubstring("Matrix module not loaded."))
			Expect(out).To(ContainSubstring("Skills module not loaded."))
			Expect(out).To(ContainSubstring("Pet module not loaded."))
			Expect(out).To(ContainSubstring("Theme module not loaded."))
			Expect(out).To(ContainSubstring("Print module not loaded."))
			Expect(out).To(ContainSubstring("DOOM module not loaded."))
		})

		It("starts the matrix", func() {
			started := false
			c = newConsole(console.WithHooks(console.Hooks{Matrix: matrixFunc(func() { started = true })}))
			c.Dispatch(ctx, "matrix")
			Expect(started).To(BeTrue())
			Expect(c.Entries()[1].Text).To(Equal("█ MATRIX ACTIVATED █"))
		})

		It("calls kairi once and changes her look", func() {
			p := &fakePet{}
			c = newConsole(console.WithHooks(console.Hooks{Pet: p}))
			c.Dispatch(ctx, "call kairi")
			Expect(p.present).To(BeTrue())
			c.Dispatch(ctx, "call Kairi")
			Expect(countContaining(c, "Kairi is already here!")).To(Equal(1))

			c.Toggle()
			c.Dispatch(ctx, "kairi look pink")
			Expect(p.look).To(Equal(pet.Pink))
			Expect(countContaining(c, "Kairi changed to Pastel Pink look!")).To(Equal(1))

			c.Dispatch(ctx, "kairi bye")
			Expect(p.present).To(BeFalse())
			Expect(countContaining(c, "Kairi says goodbye!")).To(Equal(1))
		})

		It("toggles themes and notifies", func() {
			var notes []theme.Notification
			tg := theme.NewToggler(storage.NewMemory(), nil)
			c = newConsole(console.WithHooks(console.Hooks{
				Theme:  tg,
				Notify: func(n theme.Notification) { notes = append(notes, n) },
			}))
			c.Dispatch(ctx, "darkmode")
			Expect(tg.Mode()).To(Equal(theme.Dark))
			c.Dispatch(ctx, "dreammode")
			Expect(tg.Mode()).To(Equal(theme.Dream))
			c.Dispatch(ctx, "lightmode")
			Expect(tg.Mode()).To(Equal(theme.Light))
			Expect(notes).To(HaveLen(3))
		})

		It("refuses a second doom", func() {
			g := &fakeGame{}
			c = newConsole(console.WithHooks(console.Hooks{Game: g}))
			c.Dispatch(ctx, "doom")
			c.Dispatch(ctx, "doom")
			Expect(countContaining(c, "DOOM loaded! Have fun!")).To(Equal(1))
			Expect(countContaining(c, "DOOM is already running! Close it first.")).To(Equal(1))
		})
	})
})

func mustRamp() ascii.Ramp {
	r, err := ascii.NewRamp(ascii.DefaultRamp)
	Expect(err).NotTo(HaveOccurred())
	return r
}
