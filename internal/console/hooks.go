package console

import (
	"github.com/san-kum/cheddar/internal/pet"
	"github.com/san-kum/cheddar/internal/theme"
)

// Hooks connect commands to the rest of the app. Any of them may be nil;
// the command then reports that its module is not loaded.
type Hooks struct {
	Matrix Matrix
	Skills Skills
	Pet    Pet
	Theme  Theme
	Resume Resume
	Game   Game
	Notify func(theme.Notification)
}

type Matrix interface {
	StartMatrix()
}

type Skills interface {
	GodMode()
}

type Pet interface {
	Present() bool
	Spawn()
	Dismiss() bool
	SetLook(pet.Look)
}

type Theme interface {
	ToggleDark() theme.Change
	ToggleDream() theme.Change
	Light() theme.Change
}

// Resume writes the print-friendly résumé and returns where it went.
type Resume interface {
	WriteResume() (string, error)
}

type Game interface {
	Running() bool
	Launch() error
}
