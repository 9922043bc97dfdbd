package galaxy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed interests.yaml
var defaultData []byte

var (
	ErrUnknownInterest = errors.New("galaxy: unknown interest")
	ErrNoInterests     = errors.New("galaxy: no interests")
)

type Size string

const (
	Primary   Size = "primary"
	Secondary Size = "secondary"
	Tertiary  Size = "tertiary"
)

func (s Size) rank() int {
	switch s {
	case Primary:
		return 0
	case Secondary:
		return 1
	default:
		return 2
	}
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Interest struct {
	ID            string   `yaml:"id"`
	Label         string   `yaml:"label"`
	Icon          string   `yaml:"icon"`
	Size          Size     `yaml:"size"`
	Description   string   `yaml:"description"`
	Stats         []Stat   `yaml:"stats"`
	Connections   []string `yaml:"connections"`
	RelatedSkills []string `yaml:"related_skills"`
	Details       string   `yaml:"details"`
}

func Parse(b []byte) ([]Interest, error) {
	var out []Interest
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("galaxy: parse: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoInterests
	}
	seen := make(map[string]bool, len(out))
	for _, in := range out {
		if in.ID == "" {
			return nil, fmt.Errorf("galaxy: interest %q has no id", in.Label)
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("galaxy: duplicate interest %q", in.ID)
		}
		seen[in.ID] = true
	}
	return out, nil
}

func Default() []Interest {
	out, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}
	return out
}

// Load reads interests from path, or the embedded set when path is empty.
func Load(path string) ([]Interest, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}
