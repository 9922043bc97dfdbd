package journey

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed journey.yaml
var defaultData []byte

var (
	ErrUnknownCity = errors.New("journey: unknown city")
	ErrNoSteps     = errors.New("journey: no steps")
)

const Transit = "transit"

type Location struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

type Step struct {
	ID          string  `yaml:"id"`
	Type        string  `yaml:"type"`
	Date        string  `yaml:"date"`
	Title       string  `yaml:"title"`
	Company     string  `yaml:"company"`
	Location    string  `yaml:"location"`
	From        string  `yaml:"from"`
	To          string  `yaml:"to"`
	Distance    float64 `yaml:"distance"`
	Period      string  `yaml:"period"`
	Description string  `yaml:"description"`
	GPA         string  `yaml:"gpa"`
	Link        string  `yaml:"link"`
	Icon        string  `yaml:"icon"`
}

func (s Step) IsTransit() bool { return s.Type == Transit }

// sortKey places undated steps first.
func (s Step) sortKey() string {
	if s.Date == "" {
		return "0000"
	}
	return s.Date
}

type Data struct {
	Locations map[string]Location `yaml:"locations"`
	Steps     []Step              `yaml:"journey"`
}

// Parse decodes journey data and orders the steps chronologically. Steps
// sharing a date keep their file order.
func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("journey: parse: %w", err)
	}
	if len(d.Steps) == 0 {
		return nil, ErrNoSteps
	}
	sort.SliceStable(d.Steps, func(i, j int) bool {
		return d.Steps[i].sortKey() < d.Steps[j].sortKey()
	})
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Data) validate() error {
	check := func(step, city string) error {
		if _, ok := d.Locations[city]; !ok {
			return fmt.Errorf("%w: %q in step %s", ErrUnknownCity, city, step)
		}
		return nil
	}
	for _, s := range d.Steps {
		if s.IsTransit() {
			if err := check(s.ID, s.From); err != nil {
				return err
			}
			if err := check(s.ID, s.To); err != nil {
				return err
			}
			continue
		}
		if s.Location != "" {
			if err := check(s.ID, s.Location); err != nil {
				return err
			}
		}
	}
	return nil
}

func Default() *Data {
	d, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}
	return d
}

func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

type Stats struct {
	Cities      int
	Miles       float64
	Experiences int
}

func (d *Data) Stats() Stats {
	st := Stats{Cities: len(d.Locations)}
	for _, s := range d.Steps {
		if s.IsTransit() {
			st.Miles += s.Distance
		} else {
			st.Experiences++
		}
	}
	return st
}
