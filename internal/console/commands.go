package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/cheddar/internal/pet"
	"github.com/san-kum/cheddar/internal/profile"
	"github.com/san-kum/cheddar/internal/theme"
)

type command struct {
	name string
	run  func(ctx context.Context, c *Console, args []string)
}

var helpLines = []string{
	"commands:",
	"- help — show this help",
	"- skills — quick snapshot of my stack",
	"- projects — highlight reel",
	"- summon cheddar [--big] — render ASCII portrait",
	"- call kairi — summon an 8-bit Maltipoo screen pet (hover to change looks!)",
	"- matrix — activate the matrix",
	"- godmode — max out all skills to 100%",
	"- darkmode — toggle dark mode theme",
	"- dreammode — toggle dream mode theme (purple/pink vibes)",
	"- lightmode — return to default light theme",
	"- print — open print-friendly version",
	"- clear — wipe the console",
}

func (c *Console) register() {
	c.commands = make(map[string]*command)
	for _, cmd := range []*command{
		{name: "help", run: runHelp},
		{name: "skills", run: runSkills},
		{name: "projects", run: runProjects},
		{name: "clear", run: func(_ context.Context, c *Console, _ []string) { c.clear() }},
		{name: "summon", run: runSummon},
		{name: "matrix", run: runMatrix},
		{name: "godmode", run: runGodMode},
		{name: "call", run: runCall},
		{name: "kairi", run: runKairi},
		{name: "darkmode", run: themeCommand(Theme.ToggleDark)},
		{name: "dreammode", run: themeCommand(Theme.ToggleDream)},
		{name: "lightmode", run: themeCommand(Theme.Light)},
		{name: "print", run: runPrint},
		{name: "doom", run: runDoom},
		{name: "contact", run: runContact},
	} {
		c.commands[cmd.name] = cmd
		c.order = append(c.order, cmd.name)
	}
}

// Commands lists the registered command names in registration order.
func (c *Console) Commands() []string { return c.order }

func runHelp(_ context.Context, c *Console, _ []string) {
	c.println(strings.Join(helpLines, "\n"))
}

func runSkills(_ context.Context, c *Console, _ []string) {
	c.println(joinLines(c.cfg.Profile.Snapshot))
}

func runProjects(_ context.Context, c *Console, _ []string) {
	c.println(joinLines(c.cfg.Profile.Projects))
}

func joinLines(lines []profile.Line) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Label + ": " + l.Text
	}
	return strings.Join(out, "\n")
}

func runSummon(ctx context.Context, c *Console, args []string) {
	if len(args) == 0 || !strings.EqualFold(args[0], "cheddar") {
		c.println("try: summon cheddar")
		return
	}
	big := false
	for _, a := range args[1:] {
		if a == "--big" {
			big = true
		}
	}
	c.summon(ctx, big)
}

func runMatrix(_ context.Context, c *Console, _ []string) {
	c.println("Initializing Matrix Protocol...")
	if c.hooks.Matrix == nil {
		c.println("Matrix module not loaded.")
		return
	}
	c.hooks.Matrix.StartMatrix()
	c.printColor("█ MATRIX ACTIVATED █", "#00ff00")
}

func runGodMode(_ context.Context, c *Console, _ []string) {
	c.println("Activating GOD MODE...")
	if c.hooks.Skills == nil {
		c.println("Skills module not loaded.")
		return
	}
	c.hooks.Skills.GodMode()
	c.printColor("⚡ GOD MODE ACTIVATED! All skills maxed to 100%! ⚡", "#FFD700")
}

func runCall(_ context.Context, c *Console, args []string) {
	if len(args) == 0 || !strings.EqualFold(args[0], "kairi") {
		c.println("try: call kairi")
		return
	}
	if c.hooks.Pet == nil {
		c.println("Pet module not loaded.")
		return
	}
	if c.hooks.Pet.Present() {
		c.println("🐕 Kairi is already here!")
		return
	}
	c.println("🐕 Calling Kairi... *woof woof*")
	c.hooks.Pet.Spawn()
	c.println("✨ Kairi has arrived! Close the console (~) to see her roaming around!")
	c.println("   • Drag her around with the mouse")
	c.println("   • Press l to change her look, x to dismiss her")
}

// runKairi handles "kairi look <name>" and "kairi bye".
func runKairi(_ context.Context, c *Console, args []string) {
	if c.hooks.Pet == nil || !c.hooks.Pet.Present() {
		c.println("Kairi is not here. try: call kairi")
		return
	}
	if len(args) == 0 {
		c.println("try: kairi look classic|cream|pink, kairi bye")
		return
	}
	switch strings.ToLower(args[0]) {
	case "look":
		if len(args) < 2 {
			c.println("try: kairi look classic|cream|pink")
			return
		}
		look, err := pet.ParseLook(args[1])
		if err != nil {
			c.println(err.Error())
			return
		}
		c.hooks.Pet.SetLook(look)
		c.LookChanged(look)
	case "bye", "dismiss":
		if c.hooks.Pet.Dismiss() {
			c.PetDismissed()
		}
	default:
		c.println("try: kairi look classic|cream|pink, kairi bye")
	}
}

// LookChanged reports a new pet look. It only prints while the console
// is open.
func (c *Console) LookChanged(look pet.Look) {
	if c.open {
		c.println(fmt.Sprintf("🎨 Kairi changed to %s look!", look.Name()))
	}
}

func (c *Console) PetDismissed() { c.println("👋 Kairi says goodbye!") }

func themeCommand(toggle func(Theme) theme.Change) func(context.Context, *Console, []string) {
	return func(_ context.Context, c *Console, _ []string) {
		if c.hooks.Theme == nil {
			c.println("Theme module not loaded.")
			return
		}
		ch := toggle(c.hooks.Theme)
		c.println(ch.Line)
		if c.hooks.Notify != nil {
			c.hooks.Notify(ch.Notification)
		}
	}
}

func runPrint(_ context.Context, c *Console, _ []string) {
	c.println("📄 Preparing print-friendly resume...")
	if c.hooks.Resume == nil {
		c.println("Print module not loaded.")
		return
	}
	path, err := c.hooks.Resume.WriteResume()
	if err != nil {
		c.logger.Error("write resume", "err", err)
		c.println(fmt.Sprintf("❌ Could not write resume: %v", err))
		return
	}
	c.println("✅ Resume written to " + path)
}

func runDoom(_ context.Context, c *Console, _ []string) {
	if c.hooks.Game == nil {
		c.println("DOOM module not loaded.")
		return
	}
	if c.hooks.Game.Running() {
		c.println("🎮 DOOM is already running! Close it first.")
		return
	}
	c.println("🔫 Loading DOOM...")
	if err := c.hooks.Game.Launch(); err != nil {
		c.println(fmt.Sprintf("❌ Error loading DOOM: %v", err))
		return
	}
	c.println("✅ DOOM loaded! Have fun!")
	c.println("   • w/s to move, a/d to turn, space to fire, q to quit")
}

func (c *Console) GameClosed() { c.println("👋 DOOM closed. Thanks for playing!") }

func runContact(_ context.Context, c *Console, _ []string) {
	email := c.cfg.Email
	if email == "" {
		email = c.cfg.Profile.Email
	}
	c.println("📧 " + profile.MailTo(email))
}
