package config

// Presets bundle rasterizer settings for common terminals and fonts.
var Presets = map[string]*Config{
	"terminal": {
		ASCII:  ASCIIConfig{Ramp: DefaultRamp, CellWidth: 1, CellHeight: 2},
		Widths: WidthsConfig{Small: DefaultSmallWidth, Big: DefaultBigWidth},
	},
	"compact": {
		ASCII:  ASCIIConfig{Ramp: DefaultRamp, CellWidth: 1, CellHeight: 2},
		Widths: WidthsConfig{Small: 80, Big: 120},
	},
	"square": {
		ASCII:  ASCIIConfig{Ramp: DefaultRamp, CellWidth: 1, CellHeight: 1},
		Widths: WidthsConfig{Small: 64, Big: 96},
	},
	"blocks": {
		ASCII:  ASCIIConfig{Ramp: " ░▒▓█", CellWidth: 1, CellHeight: 2},
		Widths: WidthsConfig{Small: DefaultSmallWidth, Big: DefaultBigWidth},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// Apply copies the preset's rasterizer settings onto cfg.
func (p *Config) Apply(cfg *Config) {
	cfg.ASCII = p.ASCII
	cfg.Widths = p.Widths
}
