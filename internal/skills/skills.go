package skills

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var defaultData []byte

var ErrNoSkills = errors.New("skills: no skills defined")

const MaxRating = 5

type Skill struct {
	Name   string  `yaml:"name"`
	Rating float64 `yaml:"rating"`
}

type Data struct {
	Skills    []Skill `yaml:"skills"`
	Languages []Skill `yaml:"languages"`
	Tools     []Skill `yaml:"tools"`
}

// Section names in display order.
var Sections = []string{"skills", "languages", "tools"}

func (d *Data) Section(name string) []Skill {
	switch name {
	case "skills":
		return d.Skills
	case "languages":
		return d.Languages
	case "tools":
		return d.Tools
	}
	return nil
}

func (d *Data) Len() int {
	return len(d.Skills) + len(d.Languages) + len(d.Tools)
}

func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("skills: parse: %w", err)
	}
	if d.Len() == 0 {
		return nil, ErrNoSkills
	}
	for _, name := range Sections {
		for _, s := range d.Section(name) {
			if s.Rating < 0 || s.Rating > MaxRating {
				return nil, fmt.Errorf("skills: %s rating %v out of range", s.Name, s.Rating)
			}
		}
	}
	return &d, nil
}

// Load reads a YAML override, or the embedded list when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultData)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Stars splits a 0-5 rating into full, half and empty stars.
func Stars(rating float64) (full int, half bool, empty int) {
	full = int(math.Floor(rating))
	half = math.Mod(rating, 1) != 0
	empty = MaxRating - int(math.Ceil(rating))
	return
}

func StarString(rating float64) string {
	full, half, empty := Stars(rating)
	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("⯪")
	}
	b.WriteString(strings.Repeat("☆", max(empty, 0)))
	return b.String()
}

// Percent converts the star rendering of a rating to a bar fill.
func Percent(rating float64) int {
	full, half, empty := Stars(rating)
	score := float64(full)
	count := full + max(empty, 0)
	if half {
		score += 0.5
		count++
	}
	if count == 0 {
		count = MaxRating
	}
	return int(math.Round(score / float64(count) * 100))
}

// Columns splits a list in two, the first column taking the extra item.
func Columns[T any](items []T) ([]T, []T) {
	mid := (len(items) + 1) / 2
	return items[:mid], items[mid:]
}
