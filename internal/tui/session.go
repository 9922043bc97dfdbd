package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cheddar/internal/ascii"
	"github.com/san-kum/cheddar/internal/config"
	"github.com/san-kum/cheddar/internal/console"
	"github.com/san-kum/cheddar/internal/effects"
	"github.com/san-kum/cheddar/internal/galaxy"
	"github.com/san-kum/cheddar/internal/game"
	"github.com/san-kum/cheddar/internal/journey"
	"github.com/san-kum/cheddar/internal/logging"
	"github.com/san-kum/cheddar/internal/pet"
	"github.com/san-kum/cheddar/internal/profile"
	"github.com/san-kum/cheddar/internal/skills"
	"github.com/san-kum/cheddar/internal/storage"
	"github.com/san-kum/cheddar/internal/theme"
)

// Prefs is the key/value store behind the theme, prestige and console
// flags. storage.Store and storage.Memory both satisfy it.
type Prefs interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Deps is everything the app needs from main. Nil content falls back to
// the embedded defaults.
type Deps struct {
	Config *config.Config
	Logger *log.Logger
	Prefs  Prefs
	// Session holds flags that last one run, such as the console's
	// auto-open. Nil gets a fresh in-memory store.
	Session   Prefs
	Raster    console.Rasterizer
	Synth     *ascii.GlyphSynth
	Profile   *profile.Profile
	Skills    *skills.Data
	Interests []galaxy.Interest
	Journey   *journey.Data
	Seed      int64
}

// Task names in the frame loop.
const (
	taskParticles = "particles"
	taskMatrix    = "matrix"
	taskPet       = "kairi"
	taskGame      = "doom"
	taskBoard     = "skills"
	taskBio       = "bio"
	taskCounter   = "counter-"
)

const (
	headerRows = 2
	footerRows = 1
	// consoleShare is the fraction of the body the console box covers.
	consoleShare = 0.45
)

type banner struct {
	text  string
	from  string
	to    string
	quote string
	until time.Time
}

// session is the mutable state behind the bubbletea model. It also
// implements the console hooks, so commands act on it directly.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	rng    *rand.Rand
	clock  func() time.Time

	loop      *effects.Loop
	particles *effects.ParticleSystem
	matrix    *effects.MatrixRain
	kairi     *pet.Kairi
	game      *game.Game
	board     *skills.Board
	toggler   *theme.Toggler
	console   *console.Console

	profile  *profile.Profile
	skills   *skills.Data
	counters []*profile.Counter
	bio      *effects.TypeWriter
	tags     []profile.Tag
	galaxy   *galaxy.Galaxy
	journey  *journey.Journey

	banner banner
	width  int
	height int
}

func newSession(d Deps) *session {
	cfg := d.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	prefs := d.Prefs
	if prefs == nil {
		prefs = storage.NewMemory()
	}
	sessionStore := d.Session
	if sessionStore == nil {
		sessionStore = storage.NewMemory()
	}
	seed := d.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &session{
		cfg:     cfg,
		logger:  logger,
		rng:     rand.New(rand.NewSource(seed)),
		clock:   time.Now,
		loop:    effects.NewLoop(),
		profile: d.Profile,
		skills:  d.Skills,
		width:   80,
		height:  24,
	}
	if s.profile == nil {
		s.profile = profile.Default()
	}
	if s.skills == nil {
		data, err := skills.Load("")
		if err != nil {
			logger.Error("embedded skills not loaded", "err", err)
			data = &skills.Data{}
		}
		s.skills = data
	}
	interests := d.Interests
	if interests == nil {
		interests = galaxy.Default()
	}
	jd := d.Journey
	if jd == nil {
		jd = journey.Default()
	}

	s.toggler = theme.NewToggler(prefs, logger)
	s.toggler.Restore()
	s.board = skills.NewBoard(s.skills, s.rng, prefs, logger)
	s.matrix = effects.NewMatrixRain(effects.DefaultMatrixConfig(), s.rng)
	s.galaxy = galaxy.New(interests, s.width, s.bodyRows(), s.rng)
	s.journey = journey.New(jd)

	raster := d.Raster
	if raster == nil {
		raster = defaultRaster(cfg)
	}
	s.console = console.New(console.Config{
		SmallWidth: cfg.WidthFor(false),
		BigWidth:   cfg.WidthFor(true),
		Portrait:   cfg.Assets.Portrait,
		Emblem:     cfg.Assets.Emblem,
		Glyph:      cfg.Assets.FallbackGlyph,
		Synth:      d.Synth,
		ToggleKeys: cfg.Console.ToggleKeys,
		AutoOpen:   cfg.Console.AutoOpen,
		Profile:    s.profile,
		Email:      cfg.Console.Email,
	}, raster, s.rng,
		console.WithSession(sessionStore),
		console.WithLogger(logger),
		console.WithHooks(console.Hooks{
			Matrix: s,
			Skills: s,
			Pet:    s,
			Theme:  s.toggler,
			Resume: s,
			Game:   s,
			Notify: s.notify,
		}),
	)

	s.startContent()
	s.console.Start()
	return s
}

// defaultRaster builds the renderer from cfg when main supplies none.
func defaultRaster(cfg *config.Config) *ascii.Renderer {
	return ascii.NewRenderer(mustRamp(cfg.ASCII.Ramp), ascii.CellMetricsFor(cfg.ASCII.CellWidth, cfg.ASCII.CellHeight))
}

func mustRamp(chars string) ascii.Ramp {
	r, err := ascii.NewRamp(chars)
	if err != nil {
		r, _ = ascii.NewRamp(ascii.DefaultRamp)
	}
	return r
}

// startContent kicks off the intro animations: the particle field, the
// stat counters, the typed bio and the pulsing skills.
func (s *session) startContent() {
	s.particles = effects.NewParticleSystem(effects.DefaultParticleConfig(), s.pxWidth(), s.pxHeight(), s.rng)
	s.loop.Start(taskParticles, s.particles)

	s.counters = make([]*profile.Counter, len(s.profile.Stats))
	for i, st := range s.profile.Stats {
		s.counters[i] = profile.NewCounter(st)
		s.loop.Start(taskCounter+st.Label, s.counters[i])
	}
	s.bio = effects.NewTypeWriter(s.profile.Bio, effects.DefaultTypeInterval)
	s.loop.Start(taskBio, s.bio)
	s.loop.Start(taskBoard, s.board)
	s.tags = profile.Cloud(s.profile.Tags, s.width, s.bodyRows(), s.rng)
}

func (s *session) bodyRows() int {
	return max(1, s.height-headerRows-footerRows)
}

func (s *session) pxWidth() float64  { return float64(s.width * effects.CellPX) }
func (s *session) pxHeight() float64 { return float64(s.bodyRows() * effects.CellPY) }

func (s *session) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = w, h
	s.particles.Resize(s.pxWidth(), s.pxHeight())
	if s.matrix.Active() {
		s.matrix.Resize(w, s.bodyRows())
	}
	if s.kairi != nil {
		s.kairi.Resize(s.pxWidth(), s.pxHeight())
	}
	s.galaxy.Resize(w, s.bodyRows())
	s.tags = profile.Cloud(s.profile.Tags, w, s.bodyRows(), s.rng)
}

// consoleRect is the console box in body pixels.
func (s *session) consoleRect() pet.Rect {
	h := s.pxHeight()
	return pet.Rect{X: 0, Y: h * (1 - consoleShare), W: s.pxWidth(), H: h * consoleShare}
}

func (s *session) tick(now time.Time) {
	if s.kairi != nil {
		s.kairi.SetTarget(s.consoleRect(), s.console.IsOpen())
	}
	s.loop.Tick(now)
	if s.kairi != nil && s.kairi.Dismissed() {
		s.kairi = nil
	}
}

func (s *session) dispatch(ctx context.Context) {
	s.console.Submit(ctx)
}

func (s *session) notify(n theme.Notification) {
	s.banner = banner{
		text:  n.Message,
		from:  n.Color,
		to:    n.GradientEnd,
		until: s.clock().Add(theme.NotificationTTL),
	}
}

func (s *session) showEvent(ev skills.Event) {
	if ev.Kind == skills.EventNone || ev.Message == "" {
		return
	}
	color := ev.Burst
	if color == "" {
		color = string(s.toggler.Theme().Primary)
	}
	ttl := ev.Duration
	if ttl == 0 {
		ttl = theme.NotificationTTL
	}
	s.banner = banner{
		text:  ev.Message,
		from:  color,
		to:    theme.AdjustColor(color, -20),
		quote: ev.Quote,
		until: s.clock().Add(ttl),
	}
}

func (s *session) activeBanner(now time.Time) (banner, bool) {
	if s.banner.text == "" || !now.Before(s.banner.until) {
		return banner{}, false
	}
	return s.banner, true
}

// StartMatrix runs the rain over the body. A second call while it is
// still falling does nothing.
func (s *session) StartMatrix() {
	if s.matrix.Start(s.clock(), s.width, s.bodyRows()) {
		s.loop.Start(taskMatrix, s.matrix)
		s.logger.Debug("matrix started", "cols", s.width, "rows", s.bodyRows())
	}
}

func (s *session) GodMode() {
	s.showEvent(s.board.GodMode())
}

func (s *session) Present() bool { return s.kairi != nil && !s.kairi.Dismissed() }

func (s *session) Spawn() {
	s.kairi = pet.New(pet.DefaultConfig(), s.pxWidth(), s.pxHeight(), s.rng)
	s.loop.Start(taskPet, s.kairi)
	s.logger.Info("kairi spawned")
}

func (s *session) Dismiss() bool {
	if !s.Present() {
		return false
	}
	s.loop.Stop(taskPet)
	s.kairi = nil
	return true
}

func (s *session) SetLook(l pet.Look) {
	if s.kairi != nil {
		s.kairi.Look = l
	}
}

// cycleLook moves the pet to the next look and tells the console.
func (s *session) cycleLook() {
	if s.kairi == nil {
		return
	}
	looks := pet.Looks()
	next := looks[0]
	for i, l := range looks {
		if l == s.kairi.Look {
			next = looks[(i+1)%len(looks)]
			break
		}
	}
	s.kairi.Look = next
	s.console.LookChanged(next)
}

func (s *session) WriteResume() (string, error) {
	path := s.cfg.ResumePath()
	if err := profile.SaveResume(path, s.profile, s.skills); err != nil {
		return "", err
	}
	s.logger.Info("resume written", "path", path)
	return path, nil
}

func (s *session) Running() bool { return s.game != nil && !s.game.Closed() }

func (s *session) Launch() error {
	s.game = game.New()
	s.loop.Start(taskGame, s.game)
	s.console.Close()
	return nil
}

// gameKey forwards a key to the running game and reports whether it
// closed.
func (s *session) gameKey(key string) bool {
	if !s.Running() {
		return false
	}
	if !s.game.Key(key) {
		return false
	}
	s.loop.Stop(taskGame)
	s.game = nil
	s.console.GameClosed()
	return true
}

// NewConsole builds the app state without a screen and returns its
// console, for running commands from the command line.
func NewConsole(d Deps) *console.Console {
	return newSession(d).console
}
