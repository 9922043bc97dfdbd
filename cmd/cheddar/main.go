package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/cheddar/internal/ascii"
	"github.com/san-kum/cheddar/internal/config"
	"github.com/san-kum/cheddar/internal/console"
	"github.com/san-kum/cheddar/internal/export"
	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/journey"
	"github.com/san-kum/cheddar/internal/logging"
	"github.com/san-kum/cheddar/internal/profile"
	"github.com/san-kum/cheddar/internal/skills"
	"github.com/san-kum/cheddar/internal/storage"
	"github.com/san-kum/cheddar/internal/tui"
	"github.com/san-kum/cheddar/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	seed       int64

	asciiWidth  int
	asciiInvert bool
	asciiGlyph  string
	asciiBig    bool

	galaxyWidth  int
	galaxyHeight int
	galaxySVG    string
	galaxyJSON   bool

	journeyProgress float64
	journeySVG      string
	journeyChart    bool
	journeyJSON     bool

	effectDuration time.Duration
	effectFPS      int
	effectWidth    int
	effectHeight   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cheddar",
		Short:        "Cheddar OS: a terminal portfolio with a hidden console",
		SilenceUsage: true,
		RunE:         runApp,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use rasterizer preset")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug log")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time)")

	asciiCmd := &cobra.Command{
		Use:   "ascii [image]",
		Short: "render an image, or the emblem, as ASCII art",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runASCII,
	}
	asciiCmd.Flags().IntVar(&asciiWidth, "width", 0, "columns (default: configured small width)")
	asciiCmd.Flags().BoolVar(&asciiInvert, "invert", false, "dark pixels map to light glyphs")
	asciiCmd.Flags().StringVar(&asciiGlyph, "glyph", "", "render this text instead of an image")
	asciiCmd.Flags().BoolVar(&asciiBig, "big", false, "use the big width class")

	execCmd := &cobra.Command{
		Use:   "exec [command]",
		Short: "run one console command and print the log",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExec,
	}

	galaxyCmd := &cobra.Command{
		Use:   "galaxy [interest]",
		Short: "draw the interest galaxy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGalaxy,
	}
	galaxyCmd.Flags().IntVar(&galaxyWidth, "width", 120, "columns")
	galaxyCmd.Flags().IntVar(&galaxyHeight, "height", 40, "rows")
	galaxyCmd.Flags().StringVar(&galaxySVG, "svg", "", "write the layout as SVG to this path")
	galaxyCmd.Flags().BoolVar(&galaxyJSON, "json", false, "print the layout as JSON")

	journeyCmd := &cobra.Command{
		Use:   "journey",
		Short: "draw the journey map at a scroll position",
		RunE:  runJourney,
	}
	journeyCmd.Flags().Float64Var(&journeyProgress, "progress", 0, "scroll progress in [0,1]")
	journeyCmd.Flags().StringVar(&journeySVG, "svg", "", "write the map as SVG to this path")
	journeyCmd.Flags().BoolVar(&journeyChart, "chart", false, "plot cumulative miles")
	journeyCmd.Flags().BoolVar(&journeyJSON, "json", false, "print the journey state as JSON")

	skillsCmd := &cobra.Command{
		Use:   "skills",
		Short: "list skills with stars and levels",
		RunE:  runSkills,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "show profile and journey stats and saved preferences",
		RunE:  runStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list rasterizer presets and color themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELL\tSMALL\tBIG\tRAMP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0fx%.0f\t%d\t%d\t%d chars\n",
					name, p.ASCII.CellWidth, p.ASCII.CellHeight, p.Widths.Small, p.Widths.Big, len([]rune(p.ASCII.Ramp)))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nthemes: %s\n", strings.Join(viz.ThemeNames(), ", "))
			return nil
		},
	}

	effectCmd := &cobra.Command{
		Use:       "effect [matrix|particles]",
		Short:     "play one effect full screen",
		Args:      cobra.ExactArgs(1),
		ValidArgs: tui.Effects,
		RunE:      runEffect,
	}
	effectCmd.Flags().DurationVar(&effectDuration, "duration", 0, "stop after this long (0 = until done)")
	effectCmd.Flags().IntVar(&effectFPS, "fps", config.DefaultFPS, "frame rate")
	effectCmd.Flags().IntVar(&effectWidth, "width", 80, "columns")
	effectCmd.Flags().IntVar(&effectHeight, "height", 24, "rows")

	rootCmd.AddCommand(asciiCmd, execCmd, galaxyCmd, journeyCmd, skillsCmd, statsCmd, presetsCmd, effectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the preset, the config file, .env and the
// command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func newRenderer(cfg *config.Config) (*ascii.Renderer, error) {
	ramp, err := ascii.NewRamp(cfg.ASCII.Ramp)
	if err != nil {
		return nil, err
	}
	return ascii.NewRenderer(ramp, ascii.CellMetricsFor(cfg.ASCII.CellWidth, cfg.ASCII.CellHeight)), nil
}

// loadSynth reads the configured glyph font, falling back to Go Regular.
func loadSynth(cfg *config.Config, logger *log.Logger) *ascii.GlyphSynth {
	synth, err := ascii.LoadGlyphSynth(cfg.Assets.Font)
	if err != nil {
		logger.Warn("glyph font not loaded, using Go Regular", "path", cfg.Assets.Font, "err", err)
		synth, _ = ascii.NewGlyphSynth(nil)
	}
	return synth
}

// emblemSubject is the emblem image, or the fallback glyph drawn with
// synth when the image cannot be read.
func emblemSubject(cfg *config.Config, synth *ascii.GlyphSynth) ascii.Subject {
	return ascii.Chain{
		ascii.ImageFile{Path: cfg.Assets.Emblem},
		ascii.Glyph{Text: cfg.Assets.FallbackGlyph, Synth: synth},
	}
}

// content is the optional YAML overrides; unset paths use the embedded
// data.
type content struct {
	skills    *skills.Data
	interests []galaxy.Interest
	journey   *journey.Data
}

func loadContent(cfg *config.Config) (content, error) {
	var c content
	var err error
	if c.skills, err = skills.Load(cfg.Data.Skills); err != nil {
		return c, fmt.Errorf("load skills: %w", err)
	}
	if c.interests, err = galaxy.Load(cfg.Data.Interests); err != nil {
		return c, fmt.Errorf("load interests: %w", err)
	}
	if c.journey, err = journey.Load(cfg.Data.Journey); err != nil {
		return c, fmt.Errorf("load journey: %w", err)
	}
	return c, nil
}

// deps wires everything the app and the headless console share. The
// returned func releases the store and log file.
func deps(cfg *config.Config, logger *log.Logger) (tui.Deps, func(), error) {
	raster, err := newRenderer(cfg)
	if err != nil {
		return tui.Deps{}, nil, err
	}
	synth := loadSynth(cfg, logger)
	c, err := loadContent(cfg)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	d := tui.Deps{
		Config:    cfg,
		Logger:    logger,
		Raster:    raster,
		Synth:     synth,
		Profile:   profile.Default(),
		Skills:    c.skills,
		Interests: c.interests,
		Journey:   c.journey,
		Seed:      seed,
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		logger.Warn("preferences not persisted", "dir", cfg.DataDir, "err", err)
		d.Prefs = storage.NewMemory()
		return d, func() {}, nil
	}
	d.Prefs = st
	return d, func() { st.Close() }, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, logFile, err := logging.Setup(cfg.DataDir, cfg.Debug)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	d, release, err := deps(cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	logger.Info("session started", "data", cfg.DataDir)
	if err := tui.Run(ctx, d); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runASCII(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	width := asciiWidth
	if !cmd.Flags().Changed("width") {
		width = cfg.WidthFor(asciiBig)
	}

	var subject ascii.Subject
	switch {
	case asciiGlyph != "":
		synth, err := ascii.LoadGlyphSynth(cfg.Assets.Font)
		if err != nil {
			return err
		}
		subject = ascii.Glyph{Text: asciiGlyph, Synth: synth}
	case len(args) == 1:
		subject = ascii.ImageFile{Path: args[0]}
	default:
		subject = emblemSubject(cfg, loadSynth(cfg, logging.Stderr(cfg.Debug)))
	}

	art, err := r.Rasterize(cmd.Context(), subject, ascii.Options{Width: width, Invert: asciiInvert})
	if err != nil {
		return err
	}
	fmt.Println(art)
	return nil
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Console.AutoOpen = false
	logger := logging.Stderr(cfg.Debug)

	d, release, err := deps(cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	execLine(cmd.Context(), d, strings.Join(args, " "), os.Stdout)
	return nil
}

// execLine runs one console command and writes what it logged. Commands
// like clear shrink the log, so only entries past the starting length are
// printed.
func execLine(ctx context.Context, d tui.Deps, line string, out io.Writer) {
	c := tui.NewConsole(d)
	start := len(c.Entries())
	c.Dispatch(ctx, line)
	entries := c.Entries()
	if start > len(entries) {
		start = len(entries)
	}
	for _, e := range entries[start:] {
		if e.Kind == console.KindUser {
			continue
		}
		fmt.Fprintln(out, e.Text)
	}
}

func runGalaxy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	interests, err := galaxy.Load(cfg.Data.Interests)
	if err != nil {
		return err
	}

	g := galaxy.New(interests, galaxyWidth, galaxyHeight, newRand())
	if len(args) == 1 {
		if err := g.Select(args[0]); err != nil {
			return fmt.Errorf("%w: %s", err, args[0])
		}
	}
	l := g.Layout()
	if galaxyJSON {
		return export.GalaxyJSON(os.Stdout, l, g.Selected())
	}
	fmt.Println(g.Render(galaxyWidth, galaxyHeight))
	fallbacks := 0
	for _, n := range l.Nodes {
		if n.Fallback {
			fallbacks++
		}
	}
	fmt.Printf("\n%d interests  %d connections  device=%s  fallback=%d\n", len(l.Nodes), len(l.Edges()), l.Device, fallbacks)

	if id := g.Selected(); id != "" {
		detail, _ := g.Detail(id)
		fmt.Println()
		fmt.Println(viz.BoxWithTitle("Interest", strings.TrimRight(detail.String(), "\n"), min(galaxyWidth, 72)))
	}

	if galaxySVG != "" {
		svg := export.GalaxySVG(l, viz.ThemeDark, g.Selected())
		if err := os.WriteFile(galaxySVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", galaxySVG)
	}
	return nil
}

func runJourney(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := journey.Load(cfg.Data.Journey)
	if err != nil {
		return err
	}

	j := journey.New(data)
	j.SetProgress(journeyProgress)
	if journeyJSON {
		return export.JourneyJSON(os.Stdout, j)
	}
	fmt.Println(j.Render(100, 30))
	fmt.Printf("\n%s  %.0f%%\n", j.Label(), j.Progress()*100)

	st := data.Stats()
	fmt.Printf("%d cities  %.0f miles  %d experiences\n", st.Cities, st.Miles, st.Experiences)

	if journeyChart {
		fmt.Println()
		fmt.Println(data.Chart(60, 10))
	}
	if journeySVG != "" {
		svg := export.JourneySVG(j, viz.ThemeLight)
		if err := os.WriteFile(journeySVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", journeySVG)
	}
	return nil
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := skills.Load(cfg.Data.Skills)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range skills.Sections {
		list := d.Section(name)
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t\t\n", strings.ToUpper(name))
		for _, s := range list {
			fmt.Fprintf(w, "  %s\t%s\t%d%%\n", s.Name, skills.StarString(s.Rating), skills.Percent(s.Rating))
		}
		fmt.Fprintln(w, "\t\t")
	}
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := profile.Default()
	data, err := journey.Load(cfg.Data.Journey)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAT\tVALUE\tBAR")
	for _, s := range p.Stats {
		fmt.Fprintf(w, "%s %s\t%d%s\t%s\n", s.Icon, s.Label, s.Value, s.Suffix, viz.Bar(s.Percent()/100, 20))
	}
	st := data.Stats()
	fmt.Fprintf(w, "🗺 Cities\t%d\t\n", st.Cities)
	fmt.Fprintf(w, "🚗 Miles\t%.0f\t\n", st.Miles)
	fmt.Fprintf(w, "✨ Experiences\t%d\t\n", st.Experiences)
	if err := w.Flush(); err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()
	prefs, err := store.List()
	if err != nil {
		return err
	}
	if len(prefs) == 0 {
		return nil
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tUPDATED")
	for _, pr := range prefs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", pr.Key, pr.Value, pr.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runEffect(cmd *cobra.Command, args []string) error {
	p, err := tui.NewLivePlayer(args[0], effectFPS, effectWidth, effectHeight, os.Stdout, seedOrNow())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := p.Play(ctx, effectDuration); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func seedOrNow() int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(seedOrNow()))
}
