package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir       = ".cheddar"
	DefaultPortrait      = "view/images/profile_pic.png"
	DefaultEmblem        = "view/images/cheese_emoji.png"
	DefaultFallbackGlyph = "🧀"
	DefaultRamp          = " .'`^\",:;Il!i~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@"
	DefaultSmallWidth    = 160
	DefaultBigWidth      = 240
	DefaultFPS           = 30
)

type Config struct {
	DataDir string        `yaml:"data_dir"`
	Debug   bool          `yaml:"debug"`
	Assets  AssetsConfig  `yaml:"assets"`
	ASCII   ASCIIConfig   `yaml:"ascii"`
	Widths  WidthsConfig  `yaml:"widths"`
	Data    DataConfig    `yaml:"data"`
	Console ConsoleConfig `yaml:"console"`
	FPS     int           `yaml:"fps"`
}

type AssetsConfig struct {
	Portrait      string `yaml:"portrait"`
	Emblem        string `yaml:"emblem"`
	FallbackGlyph string `yaml:"fallback_glyph"`
	Font          string `yaml:"font"`
	Resume        string `yaml:"resume"`
}

// ASCIIConfig holds rasterizer settings. Zero cell dimensions mean the
// cell is measured from the monospace face at startup.
type ASCIIConfig struct {
	Ramp       string  `yaml:"ramp"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

type WidthsConfig struct {
	Small int `yaml:"small"`
	Big   int `yaml:"big"`
}

// DataConfig points at optional YAML overrides for the embedded content.
type DataConfig struct {
	Skills    string `yaml:"skills"`
	Journey   string `yaml:"journey"`
	Interests string `yaml:"interests"`
}

// ConsoleConfig tunes the console overlay. Email is stored reversed, as
// on the page; empty means the profile's address.
type ConsoleConfig struct {
	AutoOpen   bool     `yaml:"auto_open"`
	ToggleKeys []string `yaml:"toggle_keys"`
	Email      string   `yaml:"email"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Assets: AssetsConfig{
			Portrait:      DefaultPortrait,
			Emblem:        DefaultEmblem,
			FallbackGlyph: DefaultFallbackGlyph,
		},
		ASCII: ASCIIConfig{
			Ramp: DefaultRamp,
		},
		Widths: WidthsConfig{
			Small: DefaultSmallWidth,
			Big:   DefaultBigWidth,
		},
		Console: ConsoleConfig{
			AutoOpen:   true,
			ToggleKeys: []string{"`", "~"},
		},
		FPS: DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the YAML file over cfg. Keys missing from the file keep
// whatever cfg already holds, so a preset applied first survives.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads a .env file if one exists and applies CHEDDAR_* overrides.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return err
	}
	if v := os.Getenv("CHEDDAR_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CHEDDAR_PORTRAIT"); v != "" {
		c.Assets.Portrait = v
	}
	if v := os.Getenv("CHEDDAR_EMBLEM"); v != "" {
		c.Assets.Emblem = v
	}
	if v := os.Getenv("CHEDDAR_FONT"); v != "" {
		c.Assets.Font = v
	}
	if v := os.Getenv("CHEDDAR_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	return nil
}

// WidthFor returns the configured column count for a width class.
func (c *Config) WidthFor(big bool) int {
	if big {
		if c.Widths.Big > 0 {
			return c.Widths.Big
		}
		return DefaultBigWidth
	}
	if c.Widths.Small > 0 {
		return c.Widths.Small
	}
	return DefaultSmallWidth
}

func (c *Config) ResumePath() string {
	if c.Assets.Resume != "" {
		return c.Assets.Resume
	}
	return c.DataDir + string(os.PathSeparator) + "resume.txt"
}
